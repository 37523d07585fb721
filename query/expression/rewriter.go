package expression

import (
	"github.com/neuronlabs/jsonapi/errors"
)

// RewriteFunc is called for every node of the rewritten tree after its children were rewritten.
// It returns the node replacement or the node itself.
type RewriteFunc func(e Expression) (Expression, error)

// Rewrite rebuilds the expression tree bottom-up. The nodes whose children did not change are preserved.
func Rewrite(e Expression, fn RewriteFunc) (Expression, error) {
	if e == nil {
		return nil, nil
	}
	return Visit[struct{}, Expression](e, &rewriter{fn: fn}, struct{}{})
}

// RewriteFilter rebuilds the filter expression tree. The result must be a filter expression.
func RewriteFilter(f FilterExpression, fn RewriteFunc) (FilterExpression, error) {
	if f == nil {
		return nil, nil
	}
	r := &rewriter{fn: fn}
	return r.filter(f)
}

type rewriter struct {
	fn RewriteFunc
}

var _ Visitor[struct{}, Expression] = &rewriter{}

func (r *rewriter) rewrite(e Expression) (Expression, error) {
	if isNil(e) {
		return e, nil
	}
	return Visit[struct{}, Expression](e, r, struct{}{})
}

func (r *rewriter) filter(f FilterExpression) (FilterExpression, error) {
	rewritten, err := r.rewrite(f)
	if err != nil {
		return nil, err
	}
	if rewritten == nil {
		return nil, nil
	}
	result, ok := rewritten.(FilterExpression)
	if !ok {
		return nil, errors.WrapDetf(ErrInvalidExpression, "rewritten filter expression: '%s' is not a filter", rewritten)
	}
	return result, nil
}

func (r *rewriter) chain(c *ResourceFieldChain) (*ResourceFieldChain, error) {
	rewritten, err := r.rewrite(c)
	if err != nil {
		return nil, err
	}
	result, ok := rewritten.(*ResourceFieldChain)
	if !ok {
		return nil, errors.WrapDetf(ErrInvalidExpression, "rewritten chain: '%v' is not a resource field chain", rewritten)
	}
	return result, nil
}

func (r *rewriter) literal(l *Literal) (*Literal, error) {
	rewritten, err := r.rewrite(l)
	if err != nil {
		return nil, err
	}
	result, ok := rewritten.(*Literal)
	if !ok {
		return nil, errors.WrapDetf(ErrInvalidExpression, "rewritten literal: '%v' is not a literal", rewritten)
	}
	return result, nil
}

// VisitResourceFieldChain implements Visitor interface.
func (r *rewriter) VisitResourceFieldChain(e *ResourceFieldChain, _ struct{}) (Expression, error) {
	return r.fn(e)
}

// VisitLiteral implements Visitor interface.
func (r *rewriter) VisitLiteral(e *Literal, _ struct{}) (Expression, error) {
	return r.fn(e)
}

// VisitNull implements Visitor interface.
func (r *rewriter) VisitNull(e *Null, _ struct{}) (Expression, error) {
	return r.fn(e)
}

// VisitComparison implements Visitor interface.
func (r *rewriter) VisitComparison(e *Comparison, _ struct{}) (Expression, error) {
	left, err := r.rewrite(e.left)
	if err != nil {
		return nil, err
	}
	right, err := r.rewrite(e.right)
	if err != nil {
		return nil, err
	}
	if left == e.left && right == e.right {
		return r.fn(e)
	}
	c, err := NewComparison(e.operator, left, right)
	if err != nil {
		return nil, err
	}
	return r.fn(c)
}

// VisitMatchText implements Visitor interface.
func (r *rewriter) VisitMatchText(e *MatchText, _ struct{}) (Expression, error) {
	target, err := r.chain(e.target)
	if err != nil {
		return nil, err
	}
	text, err := r.literal(e.text)
	if err != nil {
		return nil, err
	}
	if target == e.target && text == e.text {
		return r.fn(e)
	}
	return r.fn(&MatchText{kind: e.kind, target: target, text: text})
}

// VisitAny implements Visitor interface.
func (r *rewriter) VisitAny(e *Any, _ struct{}) (Expression, error) {
	target, err := r.chain(e.target)
	if err != nil {
		return nil, err
	}
	changed := target != e.target
	constants := make([]*Literal, len(e.constants))
	for i, c := range e.constants {
		if constants[i], err = r.literal(c); err != nil {
			return nil, err
		}
		changed = changed || constants[i] != c
	}
	if !changed {
		return r.fn(e)
	}
	return r.fn(&Any{target: target, constants: constants})
}

// VisitHas implements Visitor interface.
func (r *rewriter) VisitHas(e *Has, _ struct{}) (Expression, error) {
	target, err := r.chain(e.target)
	if err != nil {
		return nil, err
	}
	predicate, err := r.filter(e.predicate)
	if err != nil {
		return nil, err
	}
	if target == e.target && predicate == e.predicate {
		return r.fn(e)
	}
	return r.fn(&Has{target: target, predicate: predicate})
}

// VisitCount implements Visitor interface.
func (r *rewriter) VisitCount(e *Count, _ struct{}) (Expression, error) {
	target, err := r.chain(e.target)
	if err != nil {
		return nil, err
	}
	if target == e.target {
		return r.fn(e)
	}
	return r.fn(&Count{target: target})
}

// VisitLogical implements Visitor interface.
func (r *rewriter) VisitLogical(e *Logical, _ struct{}) (Expression, error) {
	var (
		terms   []FilterExpression
		changed bool
	)
	for _, term := range e.terms {
		rewritten, err := r.filter(term)
		if err != nil {
			return nil, err
		}
		changed = changed || rewritten != term
		// the terms rewritten to nil are removed.
		if rewritten != nil {
			terms = append(terms, rewritten)
		}
	}
	if !changed {
		return r.fn(e)
	}
	if len(terms) < 2 {
		combined := AndAll(terms...)
		if combined == nil {
			return nil, nil
		}
		return r.fn(combined)
	}
	return r.fn(&Logical{operator: e.operator, terms: terms})
}

// VisitNot implements Visitor interface.
func (r *rewriter) VisitNot(e *Not, _ struct{}) (Expression, error) {
	child, err := r.filter(e.child)
	if err != nil {
		return nil, err
	}
	if child == e.child {
		return r.fn(e)
	}
	if child == nil {
		return nil, nil
	}
	return r.fn(&Not{child: child})
}

// VisitSortElement implements Visitor interface.
func (r *rewriter) VisitSortElement(e *SortElement, _ struct{}) (Expression, error) {
	target, err := r.rewrite(e.target)
	if err != nil {
		return nil, err
	}
	if target == e.target {
		return r.fn(e)
	}
	s, err := NewSortElement(target, e.ascending)
	if err != nil {
		return nil, err
	}
	return r.fn(s)
}

// VisitSort implements Visitor interface.
func (r *rewriter) VisitSort(e *Sort, _ struct{}) (Expression, error) {
	elements := make([]*SortElement, 0, len(e.elements))
	changed := false
	for _, element := range e.elements {
		rewritten, err := r.rewrite(element)
		if err != nil {
			return nil, err
		}
		s, ok := rewritten.(*SortElement)
		if !ok {
			return nil, errors.WrapDetf(ErrInvalidExpression, "rewritten sort element: '%v' is not a sort element", rewritten)
		}
		changed = changed || s != element
		elements = append(elements, s)
	}
	if !changed {
		return r.fn(e)
	}
	return r.fn(&Sort{elements: elements})
}

// VisitPagination implements Visitor interface.
func (r *rewriter) VisitPagination(e *Pagination, _ struct{}) (Expression, error) {
	return r.fn(e)
}

// VisitPaginationQueryStringValue implements Visitor interface.
func (r *rewriter) VisitPaginationQueryStringValue(e *PaginationQueryStringValue, _ struct{}) (Expression, error) {
	return r.fn(e)
}

// VisitPaginationElementQueryStringValue implements Visitor interface.
func (r *rewriter) VisitPaginationElementQueryStringValue(e *PaginationElementQueryStringValue, _ struct{}) (Expression, error) {
	return r.fn(e)
}

// VisitSparseFieldSet implements Visitor interface.
func (r *rewriter) VisitSparseFieldSet(e *SparseFieldSet, _ struct{}) (Expression, error) {
	return r.fn(e)
}

// VisitSparseFieldTable implements Visitor interface.
func (r *rewriter) VisitSparseFieldTable(e *SparseFieldTable, _ struct{}) (Expression, error) {
	return r.fn(e)
}

// VisitInclude implements Visitor interface.
func (r *rewriter) VisitInclude(e *Include, _ struct{}) (Expression, error) {
	return r.fn(e)
}

// VisitIncludeElement implements Visitor interface.
func (r *rewriter) VisitIncludeElement(e *IncludeElement, _ struct{}) (Expression, error) {
	return r.fn(e)
}
