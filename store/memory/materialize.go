package memory

import (
	"reflect"

	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/resource"
)

// includeTree is the tree of the eager loaded relationship paths.
type includeTree struct {
	children map[*resource.Relationship]*includeTree
}

func newIncludeTree() *includeTree {
	return &includeTree{children: map[*resource.Relationship]*includeTree{}}
}

// with returns the copy of the tree with the relationship 'path' added.
func (t *includeTree) with(path []*resource.Relationship) *includeTree {
	cp := t.copy()
	node := cp
	for _, rel := range path {
		child, ok := node.children[rel]
		if !ok {
			child = newIncludeTree()
			node.children[rel] = child
		}
		node = child
	}
	return cp
}

func (t *includeTree) copy() *includeTree {
	cp := newIncludeTree()
	for rel, child := range t.children {
		cp.children[rel] = child.copy()
	}
	return cp
}

// eagerTree builds the include tree of the eager loaded relationships of the resource type 'rt'.
func eagerTree(rt *resource.Type, visiting map[*resource.Type]struct{}) *includeTree {
	tree := newIncludeTree()
	visiting[rt] = struct{}{}
	defer delete(visiting, rt)
	for _, eager := range rt.EagerLoads() {
		if _, ok := visiting[eager.RightType()]; ok {
			tree.children[eager] = newIncludeTree()
			continue
		}
		tree.children[eager] = eagerTree(eager.RightType(), visiting)
	}
	return tree
}

// materialize copies the 'model' with only the relationships of the include 'tree' populated.
func materialize(rt *resource.Type, model reflect.Value, tree *includeTree) reflect.Value {
	if model.Kind() != reflect.Ptr || model.IsNil() {
		return model
	}
	cp := rt.NewValue()
	cp.Elem().Set(model.Elem())
	for _, rel := range rt.Relationships() {
		field := cp.Elem().FieldByIndex(rel.Index())
		child, ok := tree.children[rel]
		if !ok {
			field.Set(reflect.Zero(field.Type()))
			continue
		}
		field.Set(materializeRelationship(rel, field, child))
	}
	return cp
}

func materializeRelationship(rel *resource.Relationship, value reflect.Value, tree *includeTree) reflect.Value {
	if !rel.IsToMany() {
		if value.Kind() == reflect.Ptr {
			return materialize(rel.RightType(), value, tree)
		}
		return materialize(rel.RightType(), value.Addr(), tree).Elem()
	}
	if value.IsNil() {
		return value
	}
	result := reflect.MakeSlice(value.Type(), 0, value.Len())
	for i := 0; i < value.Len(); i++ {
		item := value.Index(i)
		if item.Kind() == reflect.Struct {
			result = reflect.Append(result, materialize(rel.RightType(), item.Addr(), tree).Elem())
			continue
		}
		result = reflect.Append(result, materialize(rel.RightType(), item, tree))
	}
	return result
}

// assign sets the evaluated 'value' of the member init binding to the 'field' of the 'target' struct field.
func assign(target reflect.Value, field resource.Field, value interface{}) error {
	switch v := value.(type) {
	case projected:
		return assignValue(target, field, v.value)
	case *sequence:
		if target.Kind() != reflect.Slice {
			return errors.WrapDetf(ErrInternal, "collection assigned to non slice field: '%s'", field)
		}
		result := reflect.MakeSlice(target.Type(), 0, len(v.items))
		for _, item := range v.items {
			if !v.projected {
				item = materialize(v.resourceType, item, v.includes)
			}
			if target.Type().Elem().Kind() == reflect.Struct {
				item = item.Elem()
			}
			result = reflect.Append(result, item)
		}
		target.Set(result)
		return nil
	case reflect.Value:
		if rel, ok := field.(*resource.Relationship); ok && v.IsValid() {
			v = materializeRelationship(rel, v, eagerTree(rel.RightType(), map[*resource.Type]struct{}{}))
		}
		return assignValue(target, field, v)
	}
	return errors.WrapDetf(ErrInternal, "value of type: '%T' can't be assigned to: '%s'", value, field)
}

func assignValue(target reflect.Value, field resource.Field, v reflect.Value) error {
	if isNull(v) {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}
	switch {
	case v.Type().AssignableTo(target.Type()):
		target.Set(v)
	case v.Kind() == reflect.Ptr && v.Elem().Type().AssignableTo(target.Type()):
		target.Set(v.Elem())
	case reflect.PointerTo(v.Type()).AssignableTo(target.Type()):
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		target.Set(ptr)
	case v.Type().ConvertibleTo(target.Type()):
		target.Set(v.Convert(target.Type()))
	default:
		return errors.WrapDetf(ErrInternal, "value of type: '%s' can't be assigned to: '%s'", v.Type(), field)
	}
	return nil
}
