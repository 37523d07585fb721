// Package expression contains the storage agnostic query expression tree.
// All the expressions are immutable value objects compared structurally by the Equal function.
// The closed set of the nodes is matched by the Visit function with a Visitor implementation.
package expression

import (
	"fmt"

	"github.com/neuronlabs/jsonapi/errors"
)

var (
	// ErrExpression is the error classification for the expression tree failures.
	// Invalid expressions are the result of the programming errors thus it is an internal error.
	ErrExpression = errors.Wrap(errors.ErrInternal, "expression")
	// ErrInvalidExpression is the error classification for the expressions that failed construction validation.
	ErrInvalidExpression = errors.Wrap(ErrExpression, "invalid")
	// ErrUnsupportedExpression is the error classification used by the visitors that doesn't handle given node.
	ErrUnsupportedExpression = errors.Wrap(ErrExpression, "unsupported")
)

// Expression is the query expression tree node.
type Expression interface {
	fmt.Stringer
	expression()
}

// FilterExpression is the expression that evaluates to a boolean value.
type FilterExpression interface {
	Expression
	filter()
}

// Visitor is the function set matching every expression node type. The 'A' is the argument type
// passed through the visits and 'R' is the result type.
type Visitor[A, R any] interface {
	VisitResourceFieldChain(e *ResourceFieldChain, arg A) (R, error)
	VisitLiteral(e *Literal, arg A) (R, error)
	VisitNull(e *Null, arg A) (R, error)
	VisitComparison(e *Comparison, arg A) (R, error)
	VisitMatchText(e *MatchText, arg A) (R, error)
	VisitAny(e *Any, arg A) (R, error)
	VisitHas(e *Has, arg A) (R, error)
	VisitCount(e *Count, arg A) (R, error)
	VisitLogical(e *Logical, arg A) (R, error)
	VisitNot(e *Not, arg A) (R, error)
	VisitSortElement(e *SortElement, arg A) (R, error)
	VisitSort(e *Sort, arg A) (R, error)
	VisitPagination(e *Pagination, arg A) (R, error)
	VisitPaginationQueryStringValue(e *PaginationQueryStringValue, arg A) (R, error)
	VisitPaginationElementQueryStringValue(e *PaginationElementQueryStringValue, arg A) (R, error)
	VisitSparseFieldSet(e *SparseFieldSet, arg A) (R, error)
	VisitSparseFieldTable(e *SparseFieldTable, arg A) (R, error)
	VisitInclude(e *Include, arg A) (R, error)
	VisitIncludeElement(e *IncludeElement, arg A) (R, error)
}

// Visit matches the expression node type and calls related Visitor method.
func Visit[A, R any](e Expression, v Visitor[A, R], arg A) (R, error) {
	switch n := e.(type) {
	case *ResourceFieldChain:
		return v.VisitResourceFieldChain(n, arg)
	case *Literal:
		return v.VisitLiteral(n, arg)
	case *Null:
		return v.VisitNull(n, arg)
	case *Comparison:
		return v.VisitComparison(n, arg)
	case *MatchText:
		return v.VisitMatchText(n, arg)
	case *Any:
		return v.VisitAny(n, arg)
	case *Has:
		return v.VisitHas(n, arg)
	case *Count:
		return v.VisitCount(n, arg)
	case *Logical:
		return v.VisitLogical(n, arg)
	case *Not:
		return v.VisitNot(n, arg)
	case *SortElement:
		return v.VisitSortElement(n, arg)
	case *Sort:
		return v.VisitSort(n, arg)
	case *Pagination:
		return v.VisitPagination(n, arg)
	case *PaginationQueryStringValue:
		return v.VisitPaginationQueryStringValue(n, arg)
	case *PaginationElementQueryStringValue:
		return v.VisitPaginationElementQueryStringValue(n, arg)
	case *SparseFieldSet:
		return v.VisitSparseFieldSet(n, arg)
	case *SparseFieldTable:
		return v.VisitSparseFieldTable(n, arg)
	case *Include:
		return v.VisitInclude(n, arg)
	case *IncludeElement:
		return v.VisitIncludeElement(n, arg)
	}
	var zero R
	return zero, errors.WrapDetf(ErrUnsupportedExpression, "unknown expression type: '%T'", e)
}

// BaseVisitor is the Visitor that returns the ErrUnsupportedExpression error for all the nodes.
// It should be embedded by the visitors that handles only a subset of the expression nodes.
type BaseVisitor[A, R any] struct{}

func unsupported[R any](e Expression) (R, error) {
	var zero R
	return zero, errors.WrapDetf(ErrUnsupportedExpression, "expression: '%T' - '%s' is not supported", e, e)
}

// VisitResourceFieldChain implements Visitor interface.
func (BaseVisitor[A, R]) VisitResourceFieldChain(e *ResourceFieldChain, _ A) (R, error) {
	return unsupported[R](e)
}

// VisitLiteral implements Visitor interface.
func (BaseVisitor[A, R]) VisitLiteral(e *Literal, _ A) (R, error) { return unsupported[R](e) }

// VisitNull implements Visitor interface.
func (BaseVisitor[A, R]) VisitNull(e *Null, _ A) (R, error) { return unsupported[R](e) }

// VisitComparison implements Visitor interface.
func (BaseVisitor[A, R]) VisitComparison(e *Comparison, _ A) (R, error) { return unsupported[R](e) }

// VisitMatchText implements Visitor interface.
func (BaseVisitor[A, R]) VisitMatchText(e *MatchText, _ A) (R, error) { return unsupported[R](e) }

// VisitAny implements Visitor interface.
func (BaseVisitor[A, R]) VisitAny(e *Any, _ A) (R, error) { return unsupported[R](e) }

// VisitHas implements Visitor interface.
func (BaseVisitor[A, R]) VisitHas(e *Has, _ A) (R, error) { return unsupported[R](e) }

// VisitCount implements Visitor interface.
func (BaseVisitor[A, R]) VisitCount(e *Count, _ A) (R, error) { return unsupported[R](e) }

// VisitLogical implements Visitor interface.
func (BaseVisitor[A, R]) VisitLogical(e *Logical, _ A) (R, error) { return unsupported[R](e) }

// VisitNot implements Visitor interface.
func (BaseVisitor[A, R]) VisitNot(e *Not, _ A) (R, error) { return unsupported[R](e) }

// VisitSortElement implements Visitor interface.
func (BaseVisitor[A, R]) VisitSortElement(e *SortElement, _ A) (R, error) { return unsupported[R](e) }

// VisitSort implements Visitor interface.
func (BaseVisitor[A, R]) VisitSort(e *Sort, _ A) (R, error) { return unsupported[R](e) }

// VisitPagination implements Visitor interface.
func (BaseVisitor[A, R]) VisitPagination(e *Pagination, _ A) (R, error) { return unsupported[R](e) }

// VisitPaginationQueryStringValue implements Visitor interface.
func (BaseVisitor[A, R]) VisitPaginationQueryStringValue(e *PaginationQueryStringValue, _ A) (R, error) {
	return unsupported[R](e)
}

// VisitPaginationElementQueryStringValue implements Visitor interface.
func (BaseVisitor[A, R]) VisitPaginationElementQueryStringValue(e *PaginationElementQueryStringValue, _ A) (R, error) {
	return unsupported[R](e)
}

// VisitSparseFieldSet implements Visitor interface.
func (BaseVisitor[A, R]) VisitSparseFieldSet(e *SparseFieldSet, _ A) (R, error) {
	return unsupported[R](e)
}

// VisitSparseFieldTable implements Visitor interface.
func (BaseVisitor[A, R]) VisitSparseFieldTable(e *SparseFieldTable, _ A) (R, error) {
	return unsupported[R](e)
}

// VisitInclude implements Visitor interface.
func (BaseVisitor[A, R]) VisitInclude(e *Include, _ A) (R, error) { return unsupported[R](e) }

// VisitIncludeElement implements Visitor interface.
func (BaseVisitor[A, R]) VisitIncludeElement(e *IncludeElement, _ A) (R, error) {
	return unsupported[R](e)
}
