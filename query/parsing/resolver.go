package parsing

import (
	"strings"

	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/resource"
)

// fieldResolver resolves the dot-separated field chains against the resource graph.
type fieldResolver struct {
	parameter string
}

func (r fieldResolver) segments(path string) ([]string, error) {
	if path == "" {
		return nil, newParameterError(query.ErrSyntax, r.parameter, "field chain expected")
	}
	segments := strings.Split(path, ".")
	for _, s := range segments {
		if s == "" {
			return nil, newParameterError(query.ErrSyntax, r.parameter, "empty field name in the chain: '%s'", path)
		}
	}
	return segments, nil
}

func (r fieldResolver) relationship(rt *resource.Type, name, path string) (*resource.Relationship, error) {
	rel, ok := rt.Relationship(name)
	if !ok {
		return nil, newParameterError(query.ErrUnknownField, r.parameter,
			"relationship '%s' in '%s' does not exist on resource type '%s'", name, path, rt.Name())
	}
	return rel, nil
}

// relationshipChain resolves the chain of the relationships. Each relationship is validated with the 'check' function.
func (r fieldResolver) relationshipChain(rt *resource.Type, path string, check func(*resource.Relationship, string) error) ([]resource.Field, error) {
	segments, err := r.segments(path)
	if err != nil {
		return nil, err
	}
	fields := make([]resource.Field, 0, len(segments))
	for _, name := range segments {
		rel, err := r.relationship(rt, name, path)
		if err != nil {
			return nil, err
		}
		if check != nil {
			if err = check(rel, path); err != nil {
				return nil, err
			}
		}
		fields = append(fields, rel)
		rt = rel.RightType()
	}
	return fields, nil
}

// includeChain resolves the chain of the includable relationships.
func (r fieldResolver) includeChain(rt *resource.Type, path string) ([]resource.Field, error) {
	return r.relationshipChain(rt, path, func(rel *resource.Relationship, path string) error {
		if !rel.CanInclude() {
			return newParameterError(query.ErrNotIncludable, r.parameter,
				"including the relationship '%s' in '%s' on '%s' is not allowed", rel.PublicName(), path, rel.Owner().Name())
		}
		return nil
	})
}

// scopeChain resolves the relationship chain that ends in a to-many relationship.
func (r fieldResolver) scopeChain(rt *resource.Type, path string) ([]resource.Field, error) {
	fields, err := r.relationshipChain(rt, path, nil)
	if err != nil {
		return nil, err
	}
	if last := fields[len(fields)-1].(*resource.Relationship); !last.IsToMany() {
		return nil, newParameterError(query.ErrUnknownField, r.parameter,
			"relationship '%s' in '%s' must be a to-many relationship on resource type '%s'", last.PublicName(), path, last.Owner().Name())
	}
	return fields, nil
}

// attrChain resolves the chain of zero or more to-one relationships ending in an attribute.
func (r fieldResolver) attrChain(rt *resource.Type, path string, check func(*resource.Attr, string) error) ([]resource.Field, error) {
	segments, err := r.segments(path)
	if err != nil {
		return nil, err
	}
	fields := make([]resource.Field, 0, len(segments))
	for i, name := range segments {
		if i == len(segments)-1 {
			attr, ok := rt.Attr(name)
			if !ok || attr.IsHidden() {
				return nil, newParameterError(query.ErrUnknownField, r.parameter,
					"attribute '%s' in '%s' does not exist on resource type '%s'", name, path, rt.Name())
			}
			if check != nil {
				if err = check(attr, path); err != nil {
					return nil, err
				}
			}
			return append(fields, attr), nil
		}
		rel, err := r.relationship(rt, name, path)
		if err != nil {
			return nil, err
		}
		if rel.IsToMany() {
			return nil, newParameterError(query.ErrUnknownField, r.parameter,
				"relationship '%s' in '%s' must be a to-one relationship on resource type '%s'", name, path, rt.Name())
		}
		fields = append(fields, rel)
		rt = rel.RightType()
	}
	return fields, nil
}

// toManyChain resolves the chain of zero or more to-one relationships ending in a to-many relationship.
func (r fieldResolver) toManyChain(rt *resource.Type, path string) ([]resource.Field, error) {
	segments, err := r.segments(path)
	if err != nil {
		return nil, err
	}
	fields := make([]resource.Field, 0, len(segments))
	for i, name := range segments {
		rel, err := r.relationship(rt, name, path)
		if err != nil {
			return nil, err
		}
		last := i == len(segments)-1
		if rel.IsToMany() != last {
			expected := "to-one"
			if last {
				expected = "to-many"
			}
			return nil, newParameterError(query.ErrUnknownField, r.parameter,
				"relationship '%s' in '%s' must be a %s relationship on resource type '%s'", name, path, expected, rt.Name())
		}
		fields = append(fields, rel)
		rt = rel.RightType()
	}
	return fields, nil
}

// rightType gets the resource type at the end of the relationship 'chain' starting from 'rt'.
func rightType(rt *resource.Type, chain []resource.Field) *resource.Type {
	for _, f := range chain {
		if rel, ok := f.(*resource.Relationship); ok {
			rt = rel.RightType()
		}
	}
	return rt
}

func filterable(parameter string) func(*resource.Attr, string) error {
	return func(attr *resource.Attr, path string) error {
		if !attr.CanFilter() {
			return newParameterError(query.ErrNotFilterable, parameter,
				"filtering on attribute '%s' in '%s' is not allowed", attr.PublicName(), path)
		}
		return nil
	}
}

func sortable(parameter string) func(*resource.Attr, string) error {
	return func(attr *resource.Attr, path string) error {
		if !attr.CanSort() {
			return newParameterError(query.ErrNotSortable, parameter,
				"sorting on attribute '%s' in '%s' is not allowed", attr.PublicName(), path)
		}
		return nil
	}
}
