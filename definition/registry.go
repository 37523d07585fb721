package definition

import (
	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/resource"
)

// Accessor provides the resource definition hooks for the resource types. The resource types with no
// registered definition are not overridden.
type Accessor interface {
	OnApplyFilter(rt *resource.Type, existing expression.FilterExpression) (expression.FilterExpression, error)
	OnApplySort(rt *resource.Type, existing *expression.Sort) (*expression.Sort, error)
	OnApplyPagination(rt *resource.Type, existing *expression.Pagination) (*expression.Pagination, error)
	OnApplySparseFieldSet(rt *resource.Type, existing *expression.SparseFieldSet) (*expression.SparseFieldSet, error)
	OnApplyIncludes(rt *resource.Type, existing []*expression.IncludeElement) ([]*expression.IncludeElement, error)
	GetMeta(rt *resource.Type, model interface{}) map[string]interface{}
}

var _ Accessor = &Registry{}

// Registry is the resource definitions container keyed by the resource type. It should be filled at
// the startup and is read-only afterwards. The nil registry is a valid Accessor without any definitions.
type Registry struct {
	definitions map[*resource.Type]interface{}
}

// NewRegistry creates new resource definitions registry.
func NewRegistry() *Registry {
	return &Registry{definitions: map[*resource.Type]interface{}{}}
}

// Register registers the 'definition' for the resource type 'rt'. The definition needs to implement
// at least one of the hook interfaces.
func (r *Registry) Register(rt *resource.Type, definition interface{}) error {
	if rt == nil {
		return errors.WrapDet(ErrDefinition, "nil resource type")
	}
	switch definition.(type) {
	case FilterApplier, SortApplier, PaginationApplier, SparseFieldSetApplier, IncludesApplier, MetaProvider:
	default:
		return errors.WrapDetf(ErrDefinition, "definition: '%T' for resource: '%s' doesn't implement any hook", definition, rt.Name())
	}
	if _, ok := r.definitions[rt]; ok {
		return errors.WrapDetf(ErrDefinition, "definition for resource: '%s' is already registered", rt.Name())
	}
	r.definitions[rt] = definition
	return nil
}

// Get gets the definition registered for the resource type.
func (r *Registry) Get(rt *resource.Type) (interface{}, bool) {
	if r == nil {
		return nil, false
	}
	d, ok := r.definitions[rt]
	return d, ok
}

// OnApplyFilter implements Accessor interface.
func (r *Registry) OnApplyFilter(rt *resource.Type, existing expression.FilterExpression) (expression.FilterExpression, error) {
	if applier, ok := r.lookup(rt).(FilterApplier); ok {
		return applier.OnApplyFilter(existing)
	}
	return existing, nil
}

// OnApplySort implements Accessor interface.
func (r *Registry) OnApplySort(rt *resource.Type, existing *expression.Sort) (*expression.Sort, error) {
	if applier, ok := r.lookup(rt).(SortApplier); ok {
		return applier.OnApplySort(existing)
	}
	return existing, nil
}

// OnApplyPagination implements Accessor interface.
func (r *Registry) OnApplyPagination(rt *resource.Type, existing *expression.Pagination) (*expression.Pagination, error) {
	if applier, ok := r.lookup(rt).(PaginationApplier); ok {
		return applier.OnApplyPagination(existing)
	}
	return existing, nil
}

// OnApplySparseFieldSet implements Accessor interface.
func (r *Registry) OnApplySparseFieldSet(rt *resource.Type, existing *expression.SparseFieldSet) (*expression.SparseFieldSet, error) {
	if applier, ok := r.lookup(rt).(SparseFieldSetApplier); ok {
		return applier.OnApplySparseFieldSet(existing)
	}
	return existing, nil
}

// OnApplyIncludes implements Accessor interface.
func (r *Registry) OnApplyIncludes(rt *resource.Type, existing []*expression.IncludeElement) ([]*expression.IncludeElement, error) {
	if applier, ok := r.lookup(rt).(IncludesApplier); ok {
		return applier.OnApplyIncludes(existing)
	}
	return existing, nil
}

// GetMeta implements Accessor interface.
func (r *Registry) GetMeta(rt *resource.Type, model interface{}) map[string]interface{} {
	if provider, ok := r.lookup(rt).(MetaProvider); ok {
		return provider.GetMeta(model)
	}
	return nil
}

func (r *Registry) lookup(rt *resource.Type) interface{} {
	d, _ := r.Get(rt)
	return d
}
