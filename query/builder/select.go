package builder

import (
	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/query/queryable"
	"github.com/neuronlabs/jsonapi/resource"
)

// SelectClauseBuilder translates the layer projection into the Select method call with the member init body.
type SelectClauseBuilder struct {
	names  *LambdaParameterNameFactory
	scopes *LambdaScopeFactory
}

// NewSelectClauseBuilder creates new select clause builder.
func NewSelectClauseBuilder(names *LambdaParameterNameFactory, scopes *LambdaScopeFactory) *SelectClauseBuilder {
	return &SelectClauseBuilder{names: names, scopes: scopes}
}

type selector struct {
	field resource.Field
	layer *query.QueryLayer
}

// ApplySelect applies the 'projection' of the resource type 'rt' on the 'source'. The empty projection selects everything.
func (b *SelectClauseBuilder) ApplySelect(source queryable.Expression, rt *resource.Type, projection *query.Projection) (queryable.Expression, error) {
	if projection.Len() == 0 {
		return source, nil
	}
	scope := b.scopes.CreateScope(rt, nil)
	defer scope.Release()

	body, err := b.initializer(projection, rt, scope, false)
	if err != nil {
		return nil, err
	}
	return queryable.NewCall(queryable.Select, source, &queryable.Lambda{Parameter: scope.Parameter, Body: body}), nil
}

func (b *SelectClauseBuilder) initializer(projection *query.Projection, rt *resource.Type, scope *LambdaScope, testForNull bool) (queryable.Expression, error) {
	selectors := b.selectors(projection, rt)
	bindings := make([]*queryable.MemberBinding, 0, len(selectors))
	for _, s := range selectors {
		if s.field.Owner() != rt {
			return nil, errors.WrapDetf(ErrInternal, "projected field: '%s' doesn't belong to: '%s'", s.field, rt)
		}
		value := access(scope.Accessor, s.field)
		if s.layer != nil {
			var err error
			if value, err = b.layerValue(s.layer, s.field, value); err != nil {
				return nil, err
			}
		}
		bindings = append(bindings, &queryable.MemberBinding{Field: s.field, Value: value})
	}
	init := &queryable.MemberInit{ResourceType: rt, Bindings: bindings}
	if !testForNull {
		return init, nil
	}
	return &queryable.Conditional{
		Test:    &queryable.Binary{Operator: queryable.Equal, Left: scope.Accessor, Right: &queryable.Constant{}},
		IfTrue:  &queryable.Constant{},
		IfFalse: init,
	}, nil
}

// selectors gets the projected fields. The projection of only the relationships selects all the attributes.
// The eager loaded relationships are always selected.
func (b *SelectClauseBuilder) selectors(projection *query.Projection, rt *resource.Type) []selector {
	selectors := make([]selector, 0, projection.Len())
	selected := map[resource.Field]struct{}{}
	add := func(f resource.Field, layer *query.QueryLayer) {
		if _, ok := selected[f]; ok {
			return
		}
		selected[f] = struct{}{}
		selectors = append(selectors, selector{field: f, layer: layer})
	}
	if projection.ContainsOnlyRelationships() {
		for _, attr := range rt.Attributes() {
			add(attr, nil)
		}
	}
	for _, f := range projection.Fields() {
		layer, _ := projection.Get(f)
		add(f, layer)
	}
	for _, eager := range rt.EagerLoads() {
		add(eager, nil)
	}
	return selectors
}

func (b *SelectClauseBuilder) layerValue(layer *query.QueryLayer, field resource.Field, value queryable.Expression) (queryable.Expression, error) {
	rel, ok := field.(*resource.Relationship)
	if !ok {
		return nil, errors.WrapDetf(ErrInternal, "attribute: '%s' has nested query layer", field)
	}
	if rel.RightType() != layer.ResourceType {
		return nil, errors.WrapDetf(ErrInternal, "nested layer: '%s' doesn't match relationship: '%s'", layer.ResourceType, rel)
	}
	if rel.IsToMany() {
		nested, err := NewQueryableBuilder(value, layer.ResourceType, b.names).ApplyQuery(layer)
		if err != nil {
			return nil, err
		}
		return queryable.NewCall(queryable.ToList, nested), nil
	}
	if layer.Projection.Len() == 0 {
		return value, nil
	}
	inner := b.scopes.CreateScope(layer.ResourceType, value)
	defer inner.Release()
	return b.initializer(layer.Projection, layer.ResourceType, inner, true)
}
