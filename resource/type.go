package resource

import (
	"fmt"
	"reflect"
)

// Type is the mapped resource type. It describes the public name, the identifier,
// attributes and relationships of the resource.
type Type struct {
	name          string
	goType        reflect.Type
	id            *Attr
	attributes    []*Attr
	relationships []*Relationship
	fields        map[string]Field
	eagerLoads    []*Relationship

	topLevelLinks     LinkTypes
	resourceLinks     LinkTypes
	relationshipLinks LinkTypes
}

// Name returns the public resource type name.
func (t *Type) Name() string {
	return t.name
}

// GoType returns the struct type of the resource model.
func (t *Type) GoType() reflect.Type {
	return t.goType
}

// ID returns the identifier attribute.
func (t *Type) ID() *Attr {
	return t.id
}

// Attributes returns all the resource attributes, including the identifier.
func (t *Type) Attributes() []*Attr {
	return t.attributes
}

// Relationships returns all the resource relationships.
func (t *Type) Relationships() []*Relationship {
	return t.relationships
}

// Fields returns all the attributes and relationships in the definition order.
func (t *Type) Fields() []Field {
	fields := make([]Field, 0, len(t.attributes)+len(t.relationships))
	for _, attr := range t.attributes {
		fields = append(fields, attr)
	}
	for _, rel := range t.relationships {
		fields = append(fields, rel)
	}
	return fields
}

// Attr gets the attribute by its public name.
func (t *Type) Attr(publicName string) (*Attr, bool) {
	attr, ok := t.fields[publicName].(*Attr)
	return attr, ok
}

// Relationship gets the relationship by its public name.
func (t *Type) Relationship(publicName string) (*Relationship, bool) {
	rel, ok := t.fields[publicName].(*Relationship)
	return rel, ok
}

// Field gets the attribute or relationship by its public name.
func (t *Type) Field(publicName string) (Field, bool) {
	f, ok := t.fields[publicName]
	return f, ok
}

// EagerLoads returns the relationships that are always loaded together with the resource.
func (t *Type) EagerLoads() []*Relationship {
	return t.eagerLoads
}

// TopLevelLinks returns the top-level document link types.
func (t *Type) TopLevelLinks() LinkTypes {
	return t.topLevelLinks
}

// ResourceLinks returns the resource object link types.
func (t *Type) ResourceLinks() LinkTypes {
	return t.resourceLinks
}

// RelationshipLinks returns the default relationship link types.
func (t *Type) RelationshipLinks() LinkTypes {
	return t.relationshipLinks
}

// New creates new model instance - a pointer to the zero value struct.
func (t *Type) New() interface{} {
	return reflect.New(t.goType).Interface()
}

// NewValue creates new reflect.Value of the pointer to the zero value struct.
func (t *Type) NewValue() reflect.Value {
	return reflect.New(t.goType)
}

// IDOf gets the identifier value of the provided 'model'.
func (t *Type) IDOf(model interface{}) interface{} {
	v := reflect.ValueOf(model)
	if model == nil || (v.Kind() == reflect.Ptr && v.IsNil()) {
		return nil
	}
	return t.id.ValueOf(v).Interface()
}

// FormatID gets the string identifier of the provided 'model'.
func (t *Type) FormatID(model interface{}) string {
	id := t.IDOf(model)
	if id == nil {
		return ""
	}
	return FormatValue(id)
}

// String implements fmt.Stringer interface.
func (t *Type) String() string {
	return t.name
}

// FormatValue formats the identifier value into the string.
func FormatValue(value interface{}) string {
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return ""
	}
	if stringer, ok := v.Interface().(fmt.Stringer); ok {
		return stringer.String()
	}
	return fmt.Sprint(v.Interface())
}
