package jsonapi

import (
	"reflect"

	"github.com/neuronlabs/jsonapi/definition"
	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/resource"
)

// ResponseModelAdapter converts the models fetched for the request into the JSON:API document.
// It honors the sparse fieldsets and includes evaluated by the query composer, so that only the fetched
// fields and relationships are serialized.
type ResponseModelAdapter struct {
	request    *query.Request
	accessor   definition.Accessor
	fieldSets  *query.SparseFieldSetCache
	includes   *query.EvaluatedIncludeCache
	pagination *query.PaginationContext
	links      *LinkBuilder

	include *expression.Include
	meta    Meta
}

// NewResponseModelAdapter creates the adapter for the 'request' whose query was composed by the 'composer'.
func NewResponseModelAdapter(request *query.Request, composer *query.Composer, accessor definition.Accessor, links *LinkBuilder) *ResponseModelAdapter {
	if accessor == nil {
		accessor = definition.NewRegistry()
	}
	if links == nil {
		links = &LinkBuilder{}
	}
	a := &ResponseModelAdapter{request: request, accessor: accessor, links: links}
	if composer != nil {
		a.fieldSets = composer.SparseFieldSetCache()
		a.includes = composer.EvaluatedIncludeCache()
		a.pagination = composer.PaginationContext()
	}
	return a
}

// WithInclude overrides the include evaluated by the composer.
func (a *ResponseModelAdapter) WithInclude(include *expression.Include) *ResponseModelAdapter {
	a.include = include
	return a
}

// AddMeta adds the top-level meta 'key' with given 'value'.
func (a *ResponseModelAdapter) AddMeta(key string, value interface{}) {
	if a.meta == nil {
		a.meta = Meta{}
	}
	a.meta[key] = value
}

// Convert converts the 'model' into the document. The 'model' is nil, a pointer to the resource struct
// or a slice of such pointers.
func (a *ResponseModelAdapter) Convert(model interface{}) (*Document, error) {
	rt := a.request.ResourceType()
	if rt == nil {
		return nil, errors.WrapDet(ErrInternal, "request without resource type")
	}
	models, err := modelValues(rt, model)
	if err != nil {
		logger.Errorf("Converting model: '%T' failed: %v", model, err)
		return nil, err
	}
	doc := &Document{Meta: a.topMeta()}
	if a.request.Kind == query.RelationshipEndpoint {
		a.relationshipDocument(doc, rt, models)
		return doc, nil
	}

	t := &traversal{adapter: a, objects: map[resourceKey]*ResourceObject{}}
	primary := make([]*ResourceObject, len(models))
	for i, m := range models {
		if primary[i], err = t.object(rt, m, true); err != nil {
			return nil, err
		}
	}
	elements := a.includeElements()
	for _, m := range models {
		if err = t.include(rt, m, elements); err != nil {
			return nil, err
		}
	}
	t.dropEmptyRelationships()

	if a.request.IsCollection() {
		doc.Data = primary
	} else if len(primary) > 0 {
		doc.Data = primary[0]
	}
	doc.Included = t.included
	doc.Links = a.topLinks(rt)
	return doc, nil
}

func (a *ResponseModelAdapter) relationshipDocument(doc *Document, rt *resource.Type, models []reflect.Value) {
	identifiers := make([]*ResourceIdentifier, len(models))
	for i, m := range models {
		identifiers[i] = &ResourceIdentifier{Type: rt.Name(), ID: rt.FormatID(m.Interface())}
	}
	if a.request.IsCollection() {
		doc.Data = identifiers
	} else if len(identifiers) > 0 {
		doc.Data = identifiers[0]
	}
	rel := a.request.Relationship
	links := Links{}
	if rel.Links().Has(resource.LinkSelf) {
		links["self"] = a.links.RelationshipSelf(rel, a.request.PrimaryID)
	}
	if rel.Links().Has(resource.LinkRelated) {
		links["related"] = a.links.RelationshipRelated(rel, a.request.PrimaryID)
	}
	if a.request.IsCollection() && a.request.PrimaryType.TopLevelLinks().Has(resource.LinkPaging) {
		a.links.Paging(links, a.pagination)
	}
	if len(links) > 0 {
		doc.Links = &links
	}
}

func (a *ResponseModelAdapter) includeElements() []*expression.IncludeElement {
	include := a.include
	if include == nil && a.includes != nil {
		include = a.includes.Get()
	}
	if include == nil {
		return nil
	}
	return include.Elements()
}

func (a *ResponseModelAdapter) topLinks(rt *resource.Type) *Links {
	links := Links{}
	linkTypes := rt.TopLevelLinks()
	if a.request.Kind != query.PrimaryEndpoint {
		linkTypes = a.request.PrimaryType.TopLevelLinks()
	}
	if linkTypes.Has(resource.LinkSelf) {
		if self := a.links.Self(); self != "" {
			links["self"] = self
		}
	}
	if a.request.IsCollection() && linkTypes.Has(resource.LinkPaging) {
		a.links.Paging(links, a.pagination)
	}
	if len(links) == 0 {
		return nil
	}
	return &links
}

func (a *ResponseModelAdapter) topMeta() Meta {
	meta := Meta{}
	for k, v := range a.meta {
		meta[k] = v
	}
	if a.pagination != nil && a.pagination.TotalResourceCount != nil {
		meta["total"] = *a.pagination.TotalResourceCount
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

func (a *ResponseModelAdapter) serializedFields(rt *resource.Type) ([]resource.Field, error) {
	if a.fieldSets != nil {
		return a.fieldSets.ForSerializer(rt)
	}
	fields := make([]resource.Field, 0, len(rt.Fields()))
	for _, f := range rt.Fields() {
		if attr, ok := f.(*resource.Attr); ok && (attr.IsID() || !attr.CanView()) {
			continue
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// modelValues gets the pointers to the resource structs from the 'model'.
func modelValues(rt *resource.Type, model interface{}) ([]reflect.Value, error) {
	if model == nil {
		return nil, nil
	}
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr && v.Elem().Kind() == reflect.Slice {
		v = v.Elem()
	}
	var values []reflect.Value
	switch v.Kind() {
	case reflect.Slice:
		values = make([]reflect.Value, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			item := v.Index(i)
			if item.Kind() == reflect.Interface {
				item = item.Elem()
			}
			if item.Kind() == reflect.Struct && item.CanAddr() {
				item = item.Addr()
			}
			values = append(values, item)
		}
	default:
		values = []reflect.Value{v}
	}
	result := values[:0]
	for _, item := range values {
		if !item.IsValid() || (item.Kind() == reflect.Ptr && item.IsNil()) {
			continue
		}
		if item.Kind() != reflect.Ptr || item.Elem().Type() != rt.GoType() {
			return nil, errors.WrapDetf(ErrUnexpectedType, "model: '%s' is not a pointer to: '%s'", item.Type(), rt.GoType())
		}
		result = append(result, item)
	}
	return result, nil
}
