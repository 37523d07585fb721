package resource

import (
	"reflect"

	"github.com/neuronlabs/jsonapi/errors"
)

// Graph is the registry of the mapped resource types. It is read-only after it's built,
// thus it is safe for concurrent reads.
type Graph struct {
	types  []*Type
	byName map[string]*Type
	byType map[reflect.Type]*Type
}

// Types returns all the resource types in the registration order.
func (g *Graph) Types() []*Type {
	return g.types
}

// ByName gets the resource type by its public name.
func (g *Graph) ByName(name string) (*Type, bool) {
	t, ok := g.byName[name]
	return t, ok
}

// ByType gets the resource type by the Go type. The pointers and slices are dereferenced.
func (g *Graph) ByType(t reflect.Type) (*Type, bool) {
	rt, ok := g.byType[baseType(t)]
	return rt, ok
}

// ByModel gets the resource type for the provided 'model' instance.
func (g *Graph) ByModel(model interface{}) (*Type, error) {
	if model == nil {
		return nil, errors.WrapDet(ErrModelNotMapped, "nil model")
	}
	t, ok := g.ByType(reflect.TypeOf(model))
	if !ok {
		return nil, errors.WrapDetf(ErrModelNotMapped, "model: '%T' is not mapped", model)
	}
	return t, nil
}

// MustByName gets the resource type by its public name or panics.
func (g *Graph) MustByName(name string) *Type {
	t, ok := g.byName[name]
	if !ok {
		panic(errors.WrapDetf(ErrModelNotMapped, "resource type: '%s' is not mapped", name))
	}
	return t
}

func baseType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		t = t.Elem()
	}
	return t
}
