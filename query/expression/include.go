package expression

import (
	"strings"

	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/resource"
)

// IncludeElement is the included relationship with its nested included relationships.
type IncludeElement struct {
	relationship *resource.Relationship
	children     []*IncludeElement
}

// NewIncludeElement creates new include element.
func NewIncludeElement(relationship *resource.Relationship, children ...*IncludeElement) *IncludeElement {
	c := make([]*IncludeElement, len(children))
	copy(c, children)
	return &IncludeElement{relationship: relationship, children: c}
}

// Relationship returns the included relationship.
func (i *IncludeElement) Relationship() *resource.Relationship {
	return i.relationship
}

// Children returns the nested include elements.
func (i *IncludeElement) Children() []*IncludeElement {
	return i.children
}

// String implements fmt.Stringer interface.
func (i *IncludeElement) String() string {
	if len(i.children) == 0 {
		return i.relationship.PublicName()
	}
	children := make([]string, len(i.children))
	for j, child := range i.children {
		children[j] = child.String()
	}
	return i.relationship.PublicName() + "{" + strings.Join(children, ",") + "}"
}

func (*IncludeElement) expression() {}

// Include is the set of included relationship trees.
type Include struct {
	elements []*IncludeElement
}

// NewInclude creates new include expression. It requires at least one element.
func NewInclude(elements ...*IncludeElement) (*Include, error) {
	if len(elements) == 0 {
		return nil, errors.WrapDet(ErrInvalidExpression, "include expression requires at least one element")
	}
	e := make([]*IncludeElement, len(elements))
	copy(e, elements)
	return &Include{elements: e}, nil
}

// IncludeFromChains creates the include expression from the relationship chains. The chains sharing
// the same prefix are merged into a single element tree. Returns nil if there are no chains.
func IncludeFromChains(chains ...*ResourceFieldChain) (*Include, error) {
	if len(chains) == 0 {
		return nil, nil
	}
	root := &mutableElement{}
	for _, chain := range chains {
		rels, ok := chain.Relationships()
		if !ok {
			return nil, errors.WrapDetf(ErrInvalidExpression, "include chain: '%s' contains non relationship field", chain)
		}
		current := root
		for _, rel := range rels {
			current = current.child(rel)
		}
	}
	return NewInclude(root.freeze()...)
}

// Elements returns the top-level include elements.
func (i *Include) Elements() []*IncludeElement {
	return i.elements
}

// Chains returns the relationship chains from the root to every leaf of the include tree.
func (i *Include) Chains() []*ResourceFieldChain {
	var chains []*ResourceFieldChain
	var walk func(prefix []resource.Field, elements []*IncludeElement)
	walk = func(prefix []resource.Field, elements []*IncludeElement) {
		for _, e := range elements {
			fields := make([]resource.Field, len(prefix), len(prefix)+1)
			copy(fields, prefix)
			fields = append(fields, e.relationship)
			if len(e.children) == 0 {
				chains = append(chains, &ResourceFieldChain{fields: fields})
				continue
			}
			walk(fields, e.children)
		}
	}
	walk(nil, i.elements)
	return chains
}

// Contains checks if the include contains the relationship chain or any chain prefixed by it.
func (i *Include) Contains(chain *ResourceFieldChain) bool {
	elements := i.elements
	for _, f := range chain.fields {
		var found *IncludeElement
		for _, e := range elements {
			if resource.Field(e.relationship) == f {
				found = e
				break
			}
		}
		if found == nil {
			return false
		}
		elements = found.children
	}
	return true
}

// String implements fmt.Stringer interface.
func (i *Include) String() string {
	chains := i.Chains()
	names := make([]string, len(chains))
	for j, chain := range chains {
		names[j] = chain.String()
	}
	return strings.Join(names, ",")
}

func (*Include) expression() {}

type mutableElement struct {
	relationship *resource.Relationship
	children     []*mutableElement
}

func (m *mutableElement) child(rel *resource.Relationship) *mutableElement {
	for _, c := range m.children {
		if c.relationship == rel {
			return c
		}
	}
	c := &mutableElement{relationship: rel}
	m.children = append(m.children, c)
	return c
}

func (m *mutableElement) freeze() []*IncludeElement {
	elements := make([]*IncludeElement, len(m.children))
	for i, c := range m.children {
		elements[i] = &IncludeElement{relationship: c.relationship, children: c.freeze()}
	}
	return elements
}
