package parsing

import (
	"reflect"

	"github.com/neuronlabs/jsonapi/internal/typeconv"
	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/resource"
)

// Filter function keywords.
const (
	KeywordNot   = "not"
	KeywordAnd   = "and"
	KeywordOr    = "or"
	KeywordAny   = "any"
	KeywordHas   = "has"
	KeywordCount = "count"
	KeywordNull  = "null"
)

var countType = reflect.TypeOf(int64(0))

// ParseFilter parses the filter 'value' of the query 'parameter' for the resource type 'rt'.
// i.e.: and(equals(title,'Classified'),has(comments)).
func ParseFilter(parameter, value string, rt *resource.Type) (expression.FilterExpression, error) {
	stream, err := newTokenStream(parameter, value)
	if err != nil {
		return nil, err
	}
	p := &filterParser{tokenStream: stream, resolver: fieldResolver{parameter: parameter}}
	filter, err := p.filter(rt)
	if err != nil {
		return nil, err
	}
	if err = p.expectEOF(); err != nil {
		return nil, err
	}
	return filter, nil
}

type filterParser struct {
	*tokenStream
	resolver fieldResolver
}

func (p *filterParser) filter(rt *resource.Type) (expression.FilterExpression, error) {
	t := p.peek()
	if t.kind != tokenText {
		return nil, p.errorf(query.ErrSyntax, "filter function expected, but found: %s", t)
	}
	switch t.value {
	case KeywordNot:
		return p.not(rt)
	case KeywordAnd, KeywordOr:
		return p.logical(rt)
	case KeywordAny:
		return p.any(rt)
	case KeywordHas:
		return p.has(rt)
	}
	if op, ok := expression.ParseComparisonOperator(t.value); ok {
		return p.comparison(op, rt)
	}
	if kind, ok := expression.ParseTextMatchKind(t.value); ok {
		return p.matchText(kind, rt)
	}
	return nil, p.errorf(query.ErrUnknownOperator, "unknown filter operator: '%s'", t.value)
}

func (p *filterParser) not(rt *resource.Type) (expression.FilterExpression, error) {
	p.next()
	if _, err := p.expect(tokenOpenParen); err != nil {
		return nil, err
	}
	child, err := p.filter(rt)
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(tokenCloseParen); err != nil {
		return nil, err
	}
	return expression.NewNot(child)
}

func (p *filterParser) logical(rt *resource.Type) (expression.FilterExpression, error) {
	operator := expression.And
	if p.next().value == KeywordOr {
		operator = expression.Or
	}
	if _, err := p.expect(tokenOpenParen); err != nil {
		return nil, err
	}
	var terms []expression.FilterExpression
	for {
		term, err := p.filter(rt)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
		if !p.peekKind(tokenComma) {
			break
		}
		p.next()
	}
	if _, err := p.expect(tokenCloseParen); err != nil {
		return nil, err
	}
	if len(terms) < 2 {
		return nil, p.errorf(query.ErrSyntax, "function '%s' requires at least two filters", operator)
	}
	return expression.NewLogical(operator, terms...)
}

func (p *filterParser) comparison(operator expression.ComparisonOperator, rt *resource.Type) (expression.FilterExpression, error) {
	p.next()
	if _, err := p.expect(tokenOpenParen); err != nil {
		return nil, err
	}
	left, leftType, err := p.comparisonLeft(rt)
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(tokenComma); err != nil {
		return nil, err
	}
	right, err := p.comparisonRight(operator, rt, leftType)
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(tokenCloseParen); err != nil {
		return nil, err
	}
	return expression.NewComparison(operator, left, right)
}

// comparisonLeft parses the count function or the attribute chain. Returns the operand with the go type of its values.
func (p *filterParser) comparisonLeft(rt *resource.Type) (expression.Expression, reflect.Type, error) {
	if p.isCount() {
		count, err := p.count(rt)
		return count, countType, err
	}
	chain, err := p.attrChain(rt)
	if err != nil {
		return nil, nil, err
	}
	return chain, chain.Last().(*resource.Attr).GoType(), nil
}

func (p *filterParser) comparisonRight(operator expression.ComparisonOperator, rt *resource.Type, leftType reflect.Type) (expression.Expression, error) {
	t := p.peek()
	switch {
	case t.kind == tokenQuotedText:
		p.next()
		return p.literal(t.value, leftType)
	case t.kind == tokenText && t.value == KeywordNull:
		p.next()
		if operator != expression.Equals {
			return nil, p.errorf(query.ErrInvalidValue, "null is allowed only in the 'equals' comparison")
		}
		if !typeconv.CanContainNull(leftType) {
			return nil, p.errorf(query.ErrInvalidValue, "value of type '%s' cannot be null", leftType)
		}
		return expression.NullValue, nil
	case p.isCount():
		return p.count(rt)
	case t.kind == tokenText:
		return p.attrChain(rt)
	}
	return nil, p.errorf(query.ErrSyntax, "value, null, count function or field name expected, but found: %s", t)
}

func (p *filterParser) matchText(kind expression.TextMatchKind, rt *resource.Type) (expression.FilterExpression, error) {
	p.next()
	if _, err := p.expect(tokenOpenParen); err != nil {
		return nil, err
	}
	chain, err := p.attrChain(rt)
	if err != nil {
		return nil, err
	}
	attr := chain.Last().(*resource.Attr)
	if baseKind(attr.GoType()) != reflect.String {
		return nil, p.errorf(query.ErrInvalidValue, "function '%s' requires a text attribute, but '%s' is: '%s'", kind, attr.PublicName(), attr.GoType())
	}
	if _, err = p.expect(tokenComma); err != nil {
		return nil, err
	}
	text, err := p.expect(tokenQuotedText)
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(tokenCloseParen); err != nil {
		return nil, err
	}
	return expression.NewMatchText(kind, chain, expression.NewTypedLiteral(text.value, text.value))
}

func (p *filterParser) any(rt *resource.Type) (expression.FilterExpression, error) {
	p.next()
	if _, err := p.expect(tokenOpenParen); err != nil {
		return nil, err
	}
	chain, err := p.attrChain(rt)
	if err != nil {
		return nil, err
	}
	goType := chain.Last().(*resource.Attr).GoType()
	var constants []*expression.Literal
	for p.peekKind(tokenComma) {
		p.next()
		t, err := p.expect(tokenQuotedText)
		if err != nil {
			return nil, err
		}
		literal, err := p.literal(t.value, goType)
		if err != nil {
			return nil, err
		}
		constants = append(constants, literal)
	}
	if len(constants) == 0 {
		return nil, p.errorf(query.ErrSyntax, "function '%s' requires at least one value", KeywordAny)
	}
	if _, err = p.expect(tokenCloseParen); err != nil {
		return nil, err
	}
	return expression.NewAny(chain, constants...)
}

func (p *filterParser) has(rt *resource.Type) (expression.FilterExpression, error) {
	p.next()
	if _, err := p.expect(tokenOpenParen); err != nil {
		return nil, err
	}
	chain, err := p.toManyChain(rt)
	if err != nil {
		return nil, err
	}
	var filter expression.FilterExpression
	if p.peekKind(tokenComma) {
		p.next()
		if filter, err = p.filter(rightType(rt, chain.Fields())); err != nil {
			return nil, err
		}
	}
	if _, err = p.expect(tokenCloseParen); err != nil {
		return nil, err
	}
	return expression.NewHas(chain, filter)
}

func (p *filterParser) isCount() bool {
	t := p.peek()
	if t.kind != tokenText || t.value != KeywordCount {
		return false
	}
	return p.pos+1 < len(p.tokens) && p.tokens[p.pos+1].kind == tokenOpenParen
}

func (p *filterParser) count(rt *resource.Type) (*expression.Count, error) {
	p.next()
	if _, err := p.expect(tokenOpenParen); err != nil {
		return nil, err
	}
	chain, err := p.toManyChain(rt)
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(tokenCloseParen); err != nil {
		return nil, err
	}
	return expression.NewCount(chain)
}

func (p *filterParser) attrChain(rt *resource.Type) (*expression.ResourceFieldChain, error) {
	t, err := p.expect(tokenText)
	if err != nil {
		return nil, err
	}
	fields, err := p.resolver.attrChain(rt, t.value, filterable(p.parameter))
	if err != nil {
		return nil, err
	}
	return expression.NewResourceFieldChain(fields...)
}

func (p *filterParser) toManyChain(rt *resource.Type) (*expression.ResourceFieldChain, error) {
	t, err := p.expect(tokenText)
	if err != nil {
		return nil, err
	}
	fields, err := p.resolver.toManyChain(rt, t.value)
	if err != nil {
		return nil, err
	}
	return expression.NewResourceFieldChain(fields...)
}

// literal converts the quoted 'value' into the typed literal of the 'goType'.
func (p *filterParser) literal(value string, goType reflect.Type) (*expression.Literal, error) {
	for goType.Kind() == reflect.Ptr {
		goType = goType.Elem()
	}
	typed, err := typeconv.ConvertTo(value, goType)
	if err != nil {
		return nil, p.errorf(query.ErrInvalidValue, "failed to convert '%s' of type 'String' to type '%s'", value, goType)
	}
	return expression.NewTypedLiteral(value, typed), nil
}

func baseKind(t reflect.Type) reflect.Kind {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind()
}
