package expression

import (
	"strings"

	"github.com/neuronlabs/jsonapi/annotation"
	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/resource"
)

// ResourceFieldChain is the ordered sequence of resource fields forming a path from
// the root resource. All but the last field are relationships.
type ResourceFieldChain struct {
	fields []resource.Field
}

// NewResourceFieldChain creates new field chain. The chain must not be empty.
func NewResourceFieldChain(fields ...resource.Field) (*ResourceFieldChain, error) {
	if len(fields) == 0 {
		return nil, errors.WrapDet(ErrInvalidExpression, "resource field chain requires at least one field")
	}
	for i, f := range fields {
		if f == nil {
			return nil, errors.WrapDetf(ErrInvalidExpression, "resource field chain contains nil field at: %d", i)
		}
		if i != len(fields)-1 {
			if _, ok := f.(*resource.Relationship); !ok {
				return nil, errors.WrapDetf(ErrInvalidExpression, "resource field chain: field '%s' is not a relationship", f.PublicName())
			}
		}
	}
	chain := &ResourceFieldChain{fields: make([]resource.Field, len(fields))}
	copy(chain.fields, fields)
	return chain, nil
}

// MustResourceFieldChain creates new field chain or panics if the chain is not valid.
func MustResourceFieldChain(fields ...resource.Field) *ResourceFieldChain {
	chain, err := NewResourceFieldChain(fields...)
	if err != nil {
		panic(err)
	}
	return chain
}

// Fields returns the chain fields. The result must not be modified.
func (c *ResourceFieldChain) Fields() []resource.Field {
	return c.fields
}

// Len returns the chain length.
func (c *ResourceFieldChain) Len() int {
	return len(c.fields)
}

// Last returns the last field of the chain.
func (c *ResourceFieldChain) Last() resource.Field {
	return c.fields[len(c.fields)-1]
}

// Relationships returns the chain as the slice of relationships. The second result is false
// if any field in the chain is not a relationship.
func (c *ResourceFieldChain) Relationships() ([]*resource.Relationship, bool) {
	rels := make([]*resource.Relationship, len(c.fields))
	for i, f := range c.fields {
		rel, ok := f.(*resource.Relationship)
		if !ok {
			return nil, false
		}
		rels[i] = rel
	}
	return rels, true
}

// Prefix returns the chain containing first 'n' fields.
func (c *ResourceFieldChain) Prefix(n int) *ResourceFieldChain {
	if n >= len(c.fields) {
		return c
	}
	return &ResourceFieldChain{fields: c.fields[:n:n]}
}

// Append creates new chain with the 'field' appended.
func (c *ResourceFieldChain) Append(field resource.Field) (*ResourceFieldChain, error) {
	fields := make([]resource.Field, 0, len(c.fields)+1)
	fields = append(fields, c.fields...)
	return NewResourceFieldChain(append(fields, field)...)
}

// Equals checks if the chains contains the same fields.
func (c *ResourceFieldChain) Equals(other *ResourceFieldChain) bool {
	if c == nil || other == nil {
		return c == other
	}
	if len(c.fields) != len(other.fields) {
		return false
	}
	for i := range c.fields {
		if c.fields[i] != other.fields[i] {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer interface.
func (c *ResourceFieldChain) String() string {
	names := make([]string, len(c.fields))
	for i, f := range c.fields {
		names[i] = f.PublicName()
	}
	return strings.Join(names, annotation.NestedSeparator)
}

func (*ResourceFieldChain) expression() {}
