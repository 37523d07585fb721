package jsonapi

import (
	"reflect"

	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/resource"
)

type resourceKey struct {
	resourceType *resource.Type
	id           string
}

// traversal walks the fetched models along the include elements. Each resource is serialized once,
// the included resources are ordered by their first appearance.
type traversal struct {
	adapter  *ResponseModelAdapter
	objects  map[resourceKey]*ResourceObject
	ordered  []*ResourceObject
	included []*ResourceObject
}

func (t *traversal) object(rt *resource.Type, model reflect.Value, primary bool) (*ResourceObject, error) {
	id := rt.FormatID(model.Interface())
	key := resourceKey{resourceType: rt, id: id}
	if obj, ok := t.objects[key]; ok {
		return obj, nil
	}
	obj, err := t.newObject(rt, model, id)
	if err != nil {
		return nil, err
	}
	t.objects[key] = obj
	t.ordered = append(t.ordered, obj)
	if !primary {
		t.included = append(t.included, obj)
	}
	return obj, nil
}

func (t *traversal) newObject(rt *resource.Type, model reflect.Value, id string) (*ResourceObject, error) {
	fields, err := t.adapter.serializedFields(rt)
	if err != nil {
		return nil, err
	}
	obj := &ResourceObject{Type: rt.Name(), ID: id}
	base := model.Elem()
	for _, f := range fields {
		switch field := f.(type) {
		case *resource.Attr:
			if field.IsHidden() {
				continue
			}
			if obj.Attributes == nil {
				obj.Attributes = map[string]interface{}{}
			}
			obj.Attributes[field.PublicName()] = base.FieldByIndex(field.Index()).Interface()
		case *resource.Relationship:
			if obj.Relationships == nil {
				obj.Relationships = map[string]*RelationshipObject{}
			}
			obj.Relationships[field.PublicName()] = t.relationshipObject(field, id)
		}
	}
	if rt.ResourceLinks().Has(resource.LinkSelf) {
		obj.Links = &Links{"self": t.adapter.links.ResourceSelf(rt, id)}
	}
	if meta := t.adapter.accessor.GetMeta(rt, model.Interface()); len(meta) > 0 {
		obj.Meta = meta
	}
	return obj, nil
}

func (t *traversal) relationshipObject(rel *resource.Relationship, id string) *RelationshipObject {
	r := &RelationshipObject{}
	links := Links{}
	if rel.Links().Has(resource.LinkSelf) {
		links["self"] = t.adapter.links.RelationshipSelf(rel, id)
	}
	if rel.Links().Has(resource.LinkRelated) {
		links["related"] = t.adapter.links.RelationshipRelated(rel, id)
	}
	if len(links) > 0 {
		r.Links = &links
	}
	return r
}

// include sets the relationship data of the 'model' for the include 'elements' and walks the related models.
func (t *traversal) include(rt *resource.Type, model reflect.Value, elements []*expression.IncludeElement) error {
	if len(elements) == 0 {
		return nil
	}
	obj := t.objects[resourceKey{resourceType: rt, id: rt.FormatID(model.Interface())}]
	for _, element := range elements {
		rel := element.Relationship()
		if rel.Owner() != rt {
			return errors.WrapDetf(ErrInternal, "include element: '%s' doesn't belong to: '%s'", element, rt.Name())
		}
		related := relatedModels(model.Elem().FieldByIndex(rel.Index()))
		identifiers := make([]*ResourceIdentifier, 0, len(related))
		for _, r := range related {
			relatedObject, err := t.object(rel.RightType(), r, false)
			if err != nil {
				return err
			}
			identifiers = append(identifiers, relatedObject.Identifier())
			if err = t.include(rel.RightType(), r, element.Children()); err != nil {
				return err
			}
		}
		entry, ok := obj.Relationships[rel.PublicName()]
		if !ok {
			continue
		}
		entry.HasData = true
		switch {
		case rel.IsToMany():
			entry.Data = identifiers
		case len(identifiers) > 0:
			entry.Data = identifiers[0]
		default:
			entry.Data = nil
		}
	}
	return nil
}

// dropEmptyRelationships removes the relationship entries without links and data.
func (t *traversal) dropEmptyRelationships() {
	for _, obj := range t.ordered {
		for name, r := range obj.Relationships {
			if r.Links == nil && !r.HasData && len(r.Meta) == 0 {
				delete(obj.Relationships, name)
			}
		}
		if len(obj.Relationships) == 0 {
			obj.Relationships = nil
		}
	}
}

func relatedModels(v reflect.Value) []reflect.Value {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return nil
		}
		return []reflect.Value{v}
	case reflect.Struct:
		return []reflect.Value{v.Addr()}
	case reflect.Slice:
		result := make([]reflect.Value, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			item := v.Index(i)
			if item.Kind() == reflect.Struct {
				item = item.Addr()
			} else if item.IsNil() {
				continue
			}
			result = append(result, item)
		}
		return result
	}
	return nil
}
