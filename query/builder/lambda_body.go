package builder

import (
	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/query/queryable"
	"github.com/neuronlabs/jsonapi/resource"
)

// lambdaBodyBuilder translates the filter and sort target expressions into the lambda bodies.
// The field chains are accessed from the lambda scope accessor, one member access per traversed field.
type lambdaBodyBuilder struct {
	expression.BaseVisitor[*LambdaScope, queryable.Expression]
	scopes *LambdaScopeFactory
}

func (b *lambdaBodyBuilder) build(e expression.Expression, scope *LambdaScope) (queryable.Expression, error) {
	body, err := expression.Visit[*LambdaScope, queryable.Expression](e, b, scope)
	if err != nil {
		logger.Errorf("Building lambda body for: '%s' failed: %v", e, err)
		return nil, err
	}
	return body, nil
}

var comparisonOperators = map[expression.ComparisonOperator]queryable.BinaryOperator{
	expression.Equals:         queryable.Equal,
	expression.GreaterThan:    queryable.GreaterThan,
	expression.GreaterOrEqual: queryable.GreaterThanOrEqual,
	expression.LessThan:       queryable.LessThan,
	expression.LessOrEqual:    queryable.LessThanOrEqual,
}

// VisitResourceFieldChain implements expression.Visitor interface.
func (b *lambdaBodyBuilder) VisitResourceFieldChain(e *expression.ResourceFieldChain, scope *LambdaScope) (queryable.Expression, error) {
	return access(scope.Accessor, e.Fields()...), nil
}

// VisitLiteral implements expression.Visitor interface.
func (b *lambdaBodyBuilder) VisitLiteral(e *expression.Literal, _ *LambdaScope) (queryable.Expression, error) {
	if typed := e.Typed(); typed != nil {
		return &queryable.Constant{Value: typed}, nil
	}
	return &queryable.Constant{Value: e.Value()}, nil
}

// VisitNull implements expression.Visitor interface.
func (b *lambdaBodyBuilder) VisitNull(*expression.Null, *LambdaScope) (queryable.Expression, error) {
	return &queryable.Constant{}, nil
}

// VisitComparison implements expression.Visitor interface.
func (b *lambdaBodyBuilder) VisitComparison(e *expression.Comparison, scope *LambdaScope) (queryable.Expression, error) {
	operator, ok := comparisonOperators[e.Operator()]
	if !ok {
		return nil, errors.WrapDetf(ErrInternal, "unknown comparison operator: '%s'", e.Operator())
	}
	left, err := b.build(e.Left(), scope)
	if err != nil {
		return nil, err
	}
	right, err := b.build(e.Right(), scope)
	if err != nil {
		return nil, err
	}
	return &queryable.Binary{Operator: operator, Left: left, Right: right}, nil
}

// VisitMatchText implements expression.Visitor interface.
func (b *lambdaBodyBuilder) VisitMatchText(e *expression.MatchText, scope *LambdaScope) (queryable.Expression, error) {
	var method queryable.Method
	switch e.Kind() {
	case expression.Contains:
		method = queryable.Contains
	case expression.StartsWith:
		method = queryable.StartsWith
	case expression.EndsWith:
		method = queryable.EndsWith
	default:
		return nil, errors.WrapDetf(ErrInternal, "unknown text match kind: '%s'", e.Kind())
	}
	return queryable.NewCall(method, access(scope.Accessor, e.Target().Fields()...), &queryable.Constant{Value: e.Text().Value()}), nil
}

// VisitAny implements expression.Visitor interface.
func (b *lambdaBodyBuilder) VisitAny(e *expression.Any, scope *LambdaScope) (queryable.Expression, error) {
	values := make([]interface{}, len(e.Constants()))
	for i, c := range e.Constants() {
		values[i] = c.Typed()
		if values[i] == nil {
			values[i] = c.Value()
		}
	}
	return queryable.NewCall(queryable.Contains, &queryable.Constant{Value: values}, access(scope.Accessor, e.Target().Fields()...)), nil
}

// VisitHas implements expression.Visitor interface.
func (b *lambdaBodyBuilder) VisitHas(e *expression.Has, scope *LambdaScope) (queryable.Expression, error) {
	collection := access(scope.Accessor, e.Target().Fields()...)
	if e.Filter() == nil {
		return queryable.NewCall(queryable.Any, collection), nil
	}
	rel, ok := e.Target().Last().(*resource.Relationship)
	if !ok {
		return nil, errors.WrapDetf(ErrInternal, "has target: '%s' is not a relationship", e.Target())
	}
	inner := b.scopes.CreateScope(rel.RightType(), nil)
	defer inner.Release()

	body, err := b.build(e.Filter(), inner)
	if err != nil {
		return nil, err
	}
	return queryable.NewCall(queryable.Any, collection, &queryable.Lambda{Parameter: inner.Parameter, Body: body}), nil
}

// VisitCount implements expression.Visitor interface.
func (b *lambdaBodyBuilder) VisitCount(e *expression.Count, scope *LambdaScope) (queryable.Expression, error) {
	return queryable.NewCall(queryable.Count, access(scope.Accessor, e.Target().Fields()...)), nil
}

// VisitLogical implements expression.Visitor interface.
func (b *lambdaBodyBuilder) VisitLogical(e *expression.Logical, scope *LambdaScope) (queryable.Expression, error) {
	operator := queryable.AndAlso
	if e.Operator() == expression.Or {
		operator = queryable.OrElse
	}
	var result queryable.Expression
	for _, term := range e.Terms() {
		body, err := b.build(term, scope)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = body
			continue
		}
		result = &queryable.Binary{Operator: operator, Left: result, Right: body}
	}
	return result, nil
}

// VisitNot implements expression.Visitor interface.
func (b *lambdaBodyBuilder) VisitNot(e *expression.Not, scope *LambdaScope) (queryable.Expression, error) {
	operand, err := b.build(e.Child(), scope)
	if err != nil {
		return nil, err
	}
	return &queryable.Not{Operand: operand}, nil
}
