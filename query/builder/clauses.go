package builder

import (
	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/query/queryable"
	"github.com/neuronlabs/jsonapi/resource"
)

// WhereClauseBuilder translates the filter expressions into the Where method calls.
type WhereClauseBuilder struct {
	body *lambdaBodyBuilder
}

// NewWhereClauseBuilder creates new where clause builder.
func NewWhereClauseBuilder(scopes *LambdaScopeFactory) *WhereClauseBuilder {
	return &WhereClauseBuilder{body: &lambdaBodyBuilder{scopes: scopes}}
}

// ApplyWhere applies the 'filter' on the 'source' collection of the resource type 'rt'.
func (b *WhereClauseBuilder) ApplyWhere(source queryable.Expression, rt *resource.Type, filter expression.FilterExpression) (queryable.Expression, error) {
	scope := b.body.scopes.CreateScope(rt, nil)
	defer scope.Release()

	predicate, err := b.body.build(filter, scope)
	if err != nil {
		return nil, err
	}
	return queryable.NewCall(queryable.Where, source, &queryable.Lambda{Parameter: scope.Parameter, Body: predicate}), nil
}

// OrderClauseBuilder translates the sort expressions into the OrderBy and ThenBy method calls.
type OrderClauseBuilder struct {
	body *lambdaBodyBuilder
}

// NewOrderClauseBuilder creates new order clause builder.
func NewOrderClauseBuilder(scopes *LambdaScopeFactory) *OrderClauseBuilder {
	return &OrderClauseBuilder{body: &lambdaBodyBuilder{scopes: scopes}}
}

// ApplyOrderBy applies the 'sort' on the 'source' collection of the resource type 'rt'.
func (b *OrderClauseBuilder) ApplyOrderBy(source queryable.Expression, rt *resource.Type, sort *expression.Sort) (queryable.Expression, error) {
	result := source
	for i, element := range sort.Elements() {
		method := orderMethod(i == 0, element.IsAscending())
		keySelector, err := b.keySelector(rt, element)
		if err != nil {
			return nil, err
		}
		result = queryable.NewCall(method, result, keySelector)
	}
	return result, nil
}

func (b *OrderClauseBuilder) keySelector(rt *resource.Type, element *expression.SortElement) (*queryable.Lambda, error) {
	scope := b.body.scopes.CreateScope(rt, nil)
	defer scope.Release()

	switch element.Target().(type) {
	case *expression.ResourceFieldChain, *expression.Count:
	default:
		return nil, errors.WrapDetf(ErrInternal, "invalid sort target: '%s'", element.Target())
	}
	key, err := b.body.build(element.Target(), scope)
	if err != nil {
		return nil, err
	}
	return &queryable.Lambda{Parameter: scope.Parameter, Body: key}, nil
}

func orderMethod(first, ascending bool) queryable.Method {
	switch {
	case first && ascending:
		return queryable.OrderBy
	case first:
		return queryable.OrderByDescending
	case ascending:
		return queryable.ThenBy
	}
	return queryable.ThenByDescending
}

// ApplySkipTake applies the 'pagination' on the 'source'. The skip is omitted for the first page
// and nothing is applied for the unbounded page size.
func ApplySkipTake(source queryable.Expression, pagination *expression.Pagination) queryable.Expression {
	if pagination == nil || pagination.PageSize() == nil {
		return source
	}
	if offset := pagination.Offset(); offset > 0 {
		source = queryable.NewCall(queryable.Skip, source, &queryable.Constant{Value: offset})
	}
	return queryable.NewCall(queryable.Take, source, &queryable.Constant{Value: pagination.PageSize().Value()})
}
