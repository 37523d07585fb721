package resource

import (
	"reflect"
	"strings"
)

// Field is the resource field - an attribute or a relationship.
type Field interface {
	// PublicName is the name exposed by the API.
	PublicName() string
	// Name is the Go struct field name.
	Name() string
	// Index is the struct field index sequence used by the reflect.Value.FieldByIndex.
	Index() []int
	// Owner is the resource type that contains the field.
	Owner() *Type
	// String returns the public name of the field.
	String() string

	isField()
}

// Capabilities are the allowed operations for the attribute.
type Capabilities uint8

// Attribute capabilities.
const (
	CapView Capabilities = 1 << iota
	CapFilter
	CapSort
	CapNone Capabilities = 0
	CapAll               = CapView | CapFilter | CapSort
)

// Has checks if the capabilities contains the provided 'c'.
func (c Capabilities) Has(other Capabilities) bool {
	return c&other == other
}

// ParseCapabilities parses the capability names: 'view', 'filter' and 'sort'.
func ParseCapabilities(names ...string) Capabilities {
	var c Capabilities
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "view":
			c |= CapView
		case "filter":
			c |= CapFilter
		case "sort":
			c |= CapSort
		}
	}
	return c
}

var (
	_ Field = &Attr{}
	_ Field = &Relationship{}
)

type field struct {
	owner        *Type
	publicName   string
	reflectField reflect.StructField
	index        []int
}

// PublicName implements Field interface.
func (f *field) PublicName() string {
	return f.publicName
}

// Name implements Field interface.
func (f *field) Name() string {
	return f.reflectField.Name
}

// Index implements Field interface.
func (f *field) Index() []int {
	return f.index
}

// Owner implements Field interface.
func (f *field) Owner() *Type {
	return f.owner
}

// ReflectField returns the reflect.StructField of given field.
func (f *field) ReflectField() reflect.StructField {
	return f.reflectField
}

// String implements fmt.Stringer interface.
func (f *field) String() string {
	return f.publicName
}

// ValueOf gets the field value from provided 'model' - pointer to the struct or the struct value.
func (f *field) ValueOf(model reflect.Value) reflect.Value {
	for model.Kind() == reflect.Ptr || model.Kind() == reflect.Interface {
		model = model.Elem()
	}
	return model.FieldByIndex(f.index)
}

func (f *field) isField() {}

// Attr is the resource attribute field.
type Attr struct {
	field
	capabilities Capabilities
	hidden       bool
	isID         bool
}

// Capabilities returns attribute capabilities.
func (a *Attr) Capabilities() Capabilities {
	return a.capabilities
}

// CanFilter checks if the attribute could be used in the filter expressions.
func (a *Attr) CanFilter() bool {
	return a.capabilities.Has(CapFilter)
}

// CanSort checks if the attribute could be used in the sort expressions.
func (a *Attr) CanSort() bool {
	return a.capabilities.Has(CapSort)
}

// CanView checks if the attribute is visible for the clients.
func (a *Attr) CanView() bool {
	return a.capabilities.Has(CapView) && !a.hidden
}

// IsHidden checks if the field is hidden for marshaling processes.
func (a *Attr) IsHidden() bool {
	return a.hidden
}

// IsID checks if the attribute is the resource identifier.
func (a *Attr) IsID() bool {
	return a.isID
}

// GoType gets the Go type of the attribute.
func (a *Attr) GoType() reflect.Type {
	return a.reflectField.Type
}

// RelationshipKind is the relation field's relationship kind enum.
type RelationshipKind int

const (
	// HasOne is the to-one relationship kind.
	HasOne RelationshipKind = iota
	// HasMany is the to-many relationship kind.
	HasMany
	// HasManyThrough is the many to many relationship using the join resource.
	HasManyThrough
)

// String implements fmt.Stringer interface.
func (r RelationshipKind) String() string {
	switch r {
	case HasOne:
		return "HasOne"
	case HasMany:
		return "HasMany"
	case HasManyThrough:
		return "HasManyThrough"
	}
	return "Unknown"
}

// Relationship is the resource relationship field.
type Relationship struct {
	field
	kind        RelationshipKind
	rightType   *Type
	through     string
	inverseName string
	inverse     *Relationship
	canInclude  bool
	eager       bool
	links       LinkTypes
	linksSet    bool
}

// Kind returns relationship kind.
func (r *Relationship) Kind() RelationshipKind {
	return r.kind
}

// IsToMany checks if the relationship is a to-many relationship.
func (r *Relationship) IsToMany() bool {
	return r.kind != HasOne
}

// RightType is the related resource type.
func (r *Relationship) RightType() *Type {
	return r.rightType
}

// ThroughName is the join model name of the HasManyThrough relationship.
func (r *Relationship) ThroughName() string {
	return r.through
}

// Inverse returns the back reference relationship on the right type. Might be nil.
func (r *Relationship) Inverse() *Relationship {
	return r.inverse
}

// CanInclude checks if the relationship could be included.
func (r *Relationship) CanInclude() bool {
	return r.canInclude
}

// IsEager checks if the relationship is always loaded with its owner.
func (r *Relationship) IsEager() bool {
	return r.eager
}

// Links returns the relationship link types.
func (r *Relationship) Links() LinkTypes {
	return r.links
}
