package resource

import (
	"reflect"
	"time"

	"github.com/neuronlabs/jsonapi/annotation"
	"github.com/neuronlabs/jsonapi/config"
	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/log"
	"github.com/neuronlabs/jsonapi/namer"
)

var logger = log.NewModuleLogger("resource")

// Collectioner is the interface implemented by the models that defines their own resource type name.
type Collectioner interface {
	CollectionName() string
}

// GraphBuilder maps the models into the resource types and builds the Graph.
type GraphBuilder struct {
	options *config.Options
	namer   namer.Convention

	types  []*Type
	byType map[reflect.Type]*Type
	// relationship candidates are resolved when all the models are registered.
	pending map[*Type][]*pendingField
	links   map[*Type]LinksDefiner
	err     error
}

type pendingField struct {
	reflectField reflect.StructField
	tags         []*fieldTag
	tagged       bool
}

// NewGraphBuilder creates new graph builder for provided 'options'. If the options are nil the default
// options are used.
func NewGraphBuilder(options *config.Options) *GraphBuilder {
	if options == nil {
		options = config.DefaultOptions()
	}
	b := &GraphBuilder{
		options: options,
		byType:  map[reflect.Type]*Type{},
		pending: map[*Type][]*pendingField{},
		links:   map[*Type]LinksDefiner{},
	}
	var err error
	if b.namer, err = namer.ParseConvention(options.NamingConvention); err != nil {
		b.err = err
	}
	return b
}

// Add registers the 'models' within the graph builder. The models must be the pointers to the structs.
// The first failure is stored and returned by the Build method.
func (b *GraphBuilder) Add(models ...interface{}) *GraphBuilder {
	if b.err != nil {
		return b
	}
	for _, model := range models {
		if err := b.add(model); err != nil {
			b.err = err
			return b
		}
	}
	return b
}

// Build resolves the relationships and builds the read-only Graph.
func (b *GraphBuilder) Build() (*Graph, error) {
	if b.err != nil {
		return nil, b.err
	}
	defaultLinks := [3]LinkTypes{}
	for i, values := range [][]string{b.options.TopLevelLinks, b.options.ResourceLinks, b.options.RelationshipLinks} {
		links, err := ParseLinkTypes(values...)
		if err != nil {
			return nil, err
		}
		defaultLinks[i] = links
	}

	g := &Graph{byName: map[string]*Type{}, byType: b.byType}
	for _, t := range b.types {
		if _, ok := g.byName[t.name]; ok {
			return nil, errors.WrapDetf(ErrAlreadyRegistered, "resource type name: '%s' is already registered", t.name)
		}
		g.byName[t.name] = t
		g.types = append(g.types, t)

		t.topLevelLinks, t.resourceLinks, t.relationshipLinks = defaultLinks[0], defaultLinks[1], defaultLinks[2]
		if definer, ok := b.links[t]; ok {
			t.topLevelLinks, t.resourceLinks, t.relationshipLinks = definer.LinkTypes()
		}
	}

	for _, t := range b.types {
		for _, pf := range b.pending[t] {
			if err := b.mapField(t, pf); err != nil {
				return nil, err
			}
		}
		if t.id == nil {
			return nil, errors.WrapDetf(ErrMapping, "model: '%s' have no primary field type defined", t.goType.Name())
		}
	}

	for _, t := range b.types {
		for _, rel := range t.relationships {
			if err := b.setInverse(rel); err != nil {
				return nil, err
			}
			if !rel.linksSet {
				rel.links = t.relationshipLinks
			}
			if rel.eager {
				t.eagerLoads = append(t.eagerLoads, rel)
			}
		}
		logger.Debug2f("Resource type: '%s' mapped with %d attributes and %d relationships.", t.name, len(t.attributes), len(t.relationships))
	}
	return g, nil
}

func (b *GraphBuilder) add(model interface{}) error {
	v := reflect.ValueOf(model)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return errors.WrapDetf(ErrMapping, "provided model: '%T' is not a pointer to struct", model)
	}
	goType := v.Elem().Type()
	if _, ok := b.byType[goType]; ok {
		return errors.WrapDetf(ErrAlreadyRegistered, "model: '%s' is already registered", goType.Name())
	}

	t := &Type{goType: goType, fields: map[string]Field{}}
	if collectioner, ok := model.(Collectioner); ok {
		t.name = collectioner.CollectionName()
	} else {
		t.name = b.namer.ResourceType(goType.Name(), b.options.PluralizeResourceNames)
	}
	if definer, ok := model.(LinksDefiner); ok {
		b.links[t] = definer
	}

	for i := 0; i < goType.NumField(); i++ {
		sf := goType.Field(i)
		if sf.PkgPath != "" {
			// unexported field
			continue
		}
		tags := extractFieldTags(sf)
		if len(tags) == 1 && tags[0].Key == "-" {
			continue
		}
		b.pending[t] = append(b.pending[t], &pendingField{reflectField: sf, tags: tags, tagged: tags != nil})
	}
	b.byType[goType] = t
	b.types = append(b.types, t)
	return nil
}

func (b *GraphBuilder) mapField(t *Type, pf *pendingField) error {
	var fieldType, publicName string
	var flags []string
	f := field{owner: t, reflectField: pf.reflectField, index: pf.reflectField.Index}
	for _, tag := range pf.tags {
		switch tag.Key {
		case annotation.FieldType:
			if len(tag.Values) != 1 {
				return errors.WrapDetf(ErrInvalidTag, "model: '%s' field: '%s' type tag requires exactly one value", t.goType.Name(), f.Name())
			}
			fieldType = tag.Values[0]
		case annotation.Name:
			if len(tag.Values) != 1 {
				return errors.WrapDetf(ErrInvalidTag, "model: '%s' field: '%s' name tag requires exactly one value", t.goType.Name(), f.Name())
			}
			publicName = tag.Values[0]
		case annotation.Flags:
			flags = append(flags, tag.Values...)
		case annotation.Through, annotation.Inverse, annotation.Links:
		default:
			return errors.WrapDetf(ErrInvalidTag, "model: '%s' field: '%s' unknown tag: '%s'", t.goType.Name(), f.Name(), tag.Key)
		}
	}

	if fieldType == "" {
		switch {
		case f.Name() == "ID":
			fieldType = annotation.Primary
		case b.isRelationshipType(pf.reflectField.Type):
			fieldType = annotation.Relation
		default:
			fieldType = annotation.Attribute
		}
	}

	switch fieldType {
	case annotation.Primary, annotation.PrimaryShort, annotation.ID:
		if t.id != nil {
			return errors.WrapDetf(ErrMapping, "model: '%s' have multiple primary fields", t.goType.Name())
		}
		f.publicName = "id"
		attr := &Attr{field: f, capabilities: CapAll, isID: true}
		t.id = attr
		// the identifier is always the first attribute.
		t.attributes = append([]*Attr{attr}, t.attributes...)
		t.fields[attr.publicName] = attr
		return nil
	case annotation.Attribute, annotation.AttributeFull:
		if publicName == "" {
			publicName = b.namer.Field(f.Name())
		}
		f.publicName = publicName
		attr := &Attr{field: f, capabilities: ParseCapabilities(b.options.DefaultAttrCapabilities...)}
		for _, flag := range flags {
			switch flag {
			case annotation.Hidden:
				attr.hidden = true
			case annotation.NoView:
				attr.capabilities &^= CapView
			case annotation.NoFilter:
				attr.capabilities &^= CapFilter
			case annotation.NoSort:
				attr.capabilities &^= CapSort
			default:
				return errors.WrapDetf(ErrInvalidTag, "model: '%s' attribute: '%s' unknown flag: '%s'", t.goType.Name(), f.Name(), flag)
			}
		}
		return b.setField(t, attr)
	case annotation.Relation, annotation.RelationFull:
		if publicName == "" {
			publicName = b.namer.Field(f.Name())
		}
		f.publicName = publicName
		return b.mapRelationship(t, f, pf, flags)
	}
	return errors.WrapDetf(ErrInvalidTag, "model: '%s' field: '%s' unknown field type: '%s'", t.goType.Name(), f.Name(), fieldType)
}

func (b *GraphBuilder) mapRelationship(t *Type, f field, pf *pendingField, flags []string) error {
	rel := &Relationship{field: f, canInclude: true}
	goType := f.reflectField.Type
	switch goType.Kind() {
	case reflect.Ptr:
		rel.kind = HasOne
	case reflect.Slice:
		rel.kind = HasMany
	default:
		return errors.WrapDetf(ErrMapping, "model: '%s' relationship: '%s' must be a pointer or a slice", t.goType.Name(), f.Name())
	}
	right, ok := b.byType[baseType(goType)]
	if !ok {
		return errors.WrapDetf(ErrModelNotMapped, "model: '%s' relationship: '%s' related model: '%s' is not registered", t.goType.Name(), f.Name(), baseType(goType).Name())
	}
	rel.rightType = right

	for _, tag := range pf.tags {
		switch tag.Key {
		case annotation.Through:
			if rel.kind != HasMany || len(tag.Values) != 1 {
				return errors.WrapDetf(ErrInvalidTag, "model: '%s' relationship: '%s' invalid through tag", t.goType.Name(), f.Name())
			}
			rel.kind = HasManyThrough
			rel.through = tag.Values[0]
		case annotation.Inverse:
			if len(tag.Values) != 1 {
				return errors.WrapDetf(ErrInvalidTag, "model: '%s' relationship: '%s' invalid inverse tag", t.goType.Name(), f.Name())
			}
			rel.inverseName = tag.Values[0]
		case annotation.Links:
			links, err := ParseLinkTypes(tag.Values...)
			if err != nil {
				return err
			}
			rel.links, rel.linksSet = links, true
		}
	}
	for _, flag := range flags {
		switch flag {
		case annotation.NoInclude:
			rel.canInclude = false
		case annotation.Eager:
			rel.eager = true
		default:
			return errors.WrapDetf(ErrInvalidTag, "model: '%s' relationship: '%s' unknown flag: '%s'", t.goType.Name(), f.Name(), flag)
		}
	}
	if err := b.setField(t, rel); err != nil {
		return err
	}
	t.relationships = append(t.relationships, rel)
	return nil
}

func (b *GraphBuilder) setField(t *Type, f Field) error {
	if _, ok := t.fields[f.PublicName()]; ok {
		return errors.WrapDetf(ErrMapping, "model: '%s' duplicated field name: '%s'", t.goType.Name(), f.PublicName())
	}
	t.fields[f.PublicName()] = f
	if attr, ok := f.(*Attr); ok {
		t.attributes = append(t.attributes, attr)
	}
	return nil
}

// setInverse sets the back reference relationship. The inverse is taken from the 'inverse' tag or
// if there is exactly one relationship on the right type that points back to the owner type.
func (b *GraphBuilder) setInverse(rel *Relationship) error {
	right := rel.rightType
	if rel.inverseName != "" {
		inverse, ok := right.Relationship(rel.inverseName)
		if !ok || inverse.rightType != rel.owner {
			return errors.WrapDetf(ErrMapping, "model: '%s' relationship: '%s' inverse relationship: '%s' not found in: '%s'",
				rel.owner.goType.Name(), rel.Name(), rel.inverseName, right.name)
		}
		rel.inverse = inverse
		return nil
	}
	var candidate *Relationship
	for _, other := range right.relationships {
		if other == rel || other.rightType != rel.owner {
			continue
		}
		if candidate != nil {
			// ambiguous back reference
			return nil
		}
		candidate = other
	}
	rel.inverse = candidate
	return nil
}

var timeType = reflect.TypeOf(time.Time{})

func (b *GraphBuilder) isRelationshipType(t reflect.Type) bool {
	if t.Kind() != reflect.Ptr && t.Kind() != reflect.Slice {
		return false
	}
	base := baseType(t)
	if base == timeType || base.Kind() != reflect.Struct {
		return false
	}
	_, ok := b.byType[base]
	return ok
}

