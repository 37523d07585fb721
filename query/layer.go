package query

import (
	"strings"

	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/resource"
)

// QueryLayer is the composed query plan for a single resource type at a single scope.
type QueryLayer struct {
	ResourceType *resource.Type

	Include    *expression.Include
	Filter     expression.FilterExpression
	Sort       *expression.Sort
	Pagination *expression.Pagination
	// Projection maps the selected fields to the nested layers. The attributes have nil layers.
	// The nil projection selects all attributes.
	Projection *Projection
}

// Equal checks if the layers are structurally equal.
func (q *QueryLayer) Equal(other *QueryLayer) bool {
	if q == nil || other == nil {
		return q == other
	}
	if q.ResourceType != other.ResourceType {
		return false
	}
	if !expression.Equal(q.Include, other.Include) || !expression.Equal(q.Filter, other.Filter) ||
		!expression.Equal(q.Sort, other.Sort) || !expression.Equal(q.Pagination, other.Pagination) {
		return false
	}
	return q.Projection.Equal(other.Projection)
}

// String implements fmt.Stringer interface.
func (q *QueryLayer) String() string {
	sb := &strings.Builder{}
	q.write(sb, 0)
	return sb.String()
}

func (q *QueryLayer) write(sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	sb.WriteString("QueryLayer<" + q.ResourceType.Name() + ">\n")
	sb.WriteString(indent + "{\n")
	inner := indent + "  "
	if q.Include != nil {
		sb.WriteString(inner + "Include: " + q.Include.String() + "\n")
	}
	if q.Filter != nil {
		sb.WriteString(inner + "Filter: " + q.Filter.String() + "\n")
	}
	if q.Sort != nil {
		sb.WriteString(inner + "Sort: " + q.Sort.String() + "\n")
	}
	if q.Pagination != nil {
		sb.WriteString(inner + "Pagination: " + q.Pagination.String() + "\n")
	}
	if q.Projection != nil && q.Projection.Len() > 0 {
		sb.WriteString(inner + "Projection\n")
		sb.WriteString(inner + "{\n")
		for _, f := range q.Projection.Fields() {
			sb.WriteString(inner + "  " + f.PublicName())
			if child, _ := q.Projection.Get(f); child != nil {
				sb.WriteString(": ")
				child.write(sb, depth+2)
			} else {
				sb.WriteString("\n")
			}
		}
		sb.WriteString(inner + "}\n")
	}
	sb.WriteString(indent + "}\n")
}

// Projection is the ordered mapping of the selected resource fields to the nested query layers.
// The attributes and the not included relationships have nil layers.
type Projection struct {
	fields []resource.Field
	layers map[resource.Field]*QueryLayer
}

// NewProjection creates new empty projection.
func NewProjection() *Projection {
	return &Projection{layers: map[resource.Field]*QueryLayer{}}
}

// Set sets the 'layer' for the 'field'. If the field already exists its layer is replaced.
func (p *Projection) Set(field resource.Field, layer *QueryLayer) {
	if _, ok := p.layers[field]; !ok {
		p.fields = append(p.fields, field)
	}
	p.layers[field] = layer
}

// Get gets the layer for the 'field'.
func (p *Projection) Get(field resource.Field) (*QueryLayer, bool) {
	if p == nil {
		return nil, false
	}
	layer, ok := p.layers[field]
	return layer, ok
}

// Has checks if the projection contains the 'field'.
func (p *Projection) Has(field resource.Field) bool {
	_, ok := p.Get(field)
	return ok
}

// Remove removes the 'field' from the projection.
func (p *Projection) Remove(field resource.Field) {
	if _, ok := p.layers[field]; !ok {
		return
	}
	delete(p.layers, field)
	for i, f := range p.fields {
		if f == field {
			p.fields = append(p.fields[:i:i], p.fields[i+1:]...)
			break
		}
	}
}

// Fields returns the projected fields in the insertion order.
func (p *Projection) Fields() []resource.Field {
	if p == nil {
		return nil
	}
	return p.fields
}

// Len returns the number of the projected fields.
func (p *Projection) Len() int {
	if p == nil {
		return 0
	}
	return len(p.fields)
}

// Attributes returns the projected attributes.
func (p *Projection) Attributes() []*resource.Attr {
	var attrs []*resource.Attr
	for _, f := range p.Fields() {
		if attr, ok := f.(*resource.Attr); ok {
			attrs = append(attrs, attr)
		}
	}
	return attrs
}

// ContainsOnlyRelationships checks if there are no attributes within the projection.
func (p *Projection) ContainsOnlyRelationships() bool {
	for _, f := range p.Fields() {
		if _, ok := f.(*resource.Attr); ok {
			return false
		}
	}
	return true
}

// Equal checks if the projections are structurally equal.
func (p *Projection) Equal(other *Projection) bool {
	if p == nil || other == nil {
		return p == nil && other == nil
	}
	if len(p.fields) != len(other.fields) {
		return false
	}
	for _, f := range p.fields {
		otherLayer, ok := other.layers[f]
		if !ok || !p.layers[f].Equal(otherLayer) {
			return false
		}
	}
	return true
}
