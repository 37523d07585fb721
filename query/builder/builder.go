package builder

import (
	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/log"
	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/query/queryable"
	"github.com/neuronlabs/jsonapi/resource"
)

// QueryableBuilder lowers the query layer of a single resource type into the queryable tree.
type QueryableBuilder struct {
	source       queryable.Expression
	resourceType *resource.Type
	names        *LambdaParameterNameFactory
	scopes       *LambdaScopeFactory
}

// New creates the queryable builder for the root collection of the resource type 'rt'.
func New(rt *resource.Type) *QueryableBuilder {
	return NewQueryableBuilder(&queryable.Source{ResourceType: rt}, rt, nil)
}

// NewQueryableBuilder creates the builder applying the clauses on the 'source' collection of the resource type 'rt'.
// The nested builders share the lambda parameter 'names' of their parents.
func NewQueryableBuilder(source queryable.Expression, rt *resource.Type, names *LambdaParameterNameFactory) *QueryableBuilder {
	if names == nil {
		names = NewLambdaParameterNameFactory()
	}
	return &QueryableBuilder{
		source:       source,
		resourceType: rt,
		names:        names,
		scopes:       NewLambdaScopeFactory(names),
	}
}

// Source returns the builder source expression.
func (b *QueryableBuilder) Source() queryable.Expression {
	return b.source
}

// ApplyQuery lowers the 'layer' in the order: include, filter, sort, pagination and projection.
func (b *QueryableBuilder) ApplyQuery(layer *query.QueryLayer) (queryable.Expression, error) {
	if layer == nil || layer.ResourceType != b.resourceType {
		err := errors.WrapDetf(ErrInternal, "query layer doesn't match the builder resource type: '%s'", b.resourceType)
		logger.Errorf("%v", err)
		return nil, err
	}
	var err error
	result := b.source
	// the eager loaded relationships are emitted even without the include.
	if result, err = b.ApplyInclude(result, layer.Include); err != nil {
		return nil, err
	}
	if layer.Filter != nil {
		if result, err = b.ApplyWhere(result, layer.Filter); err != nil {
			return nil, err
		}
	}
	if layer.Sort != nil {
		if result, err = b.ApplyOrderBy(result, layer.Sort); err != nil {
			return nil, err
		}
	}
	if layer.Pagination != nil {
		result = b.ApplySkipTake(result, layer.Pagination)
	}
	if layer.Projection.Len() > 0 {
		if result, err = b.ApplySelect(result, layer.Projection); err != nil {
			return nil, err
		}
	}
	if logger.IsLevelEnabled(log.LDEBUG3) {
		logger.Debug3f("Lowered query layer<%s>: %s", b.resourceType, result)
	}
	return result, nil
}

// ApplyCount lowers the 'filter' into the query counting the matching resources.
func (b *QueryableBuilder) ApplyCount(filter expression.FilterExpression) (queryable.Expression, error) {
	result := b.source
	if filter != nil {
		var err error
		if result, err = b.ApplyWhere(result, filter); err != nil {
			return nil, err
		}
	}
	return queryable.NewCall(queryable.Count, result), nil
}

// ApplyInclude applies the 'include' eager-loads on the 'source'.
func (b *QueryableBuilder) ApplyInclude(source queryable.Expression, include *expression.Include) (queryable.Expression, error) {
	return NewIncludeClauseBuilder(b.resourceType).ApplyInclude(source, include)
}

// ApplyWhere applies the 'filter' on the 'source'.
func (b *QueryableBuilder) ApplyWhere(source queryable.Expression, filter expression.FilterExpression) (queryable.Expression, error) {
	return NewWhereClauseBuilder(b.scopes).ApplyWhere(source, b.resourceType, filter)
}

// ApplyOrderBy applies the 'sort' on the 'source'.
func (b *QueryableBuilder) ApplyOrderBy(source queryable.Expression, sort *expression.Sort) (queryable.Expression, error) {
	return NewOrderClauseBuilder(b.scopes).ApplyOrderBy(source, b.resourceType, sort)
}

// ApplySkipTake applies the 'pagination' on the 'source'.
func (b *QueryableBuilder) ApplySkipTake(source queryable.Expression, pagination *expression.Pagination) queryable.Expression {
	return ApplySkipTake(source, pagination)
}

// ApplySelect applies the 'projection' on the 'source'.
func (b *QueryableBuilder) ApplySelect(source queryable.Expression, projection *query.Projection) (queryable.Expression, error) {
	return NewSelectClauseBuilder(b.names, b.scopes).ApplySelect(source, b.resourceType, projection)
}
