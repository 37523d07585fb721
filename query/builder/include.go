package builder

import (
	"strings"

	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/query/queryable"
	"github.com/neuronlabs/jsonapi/resource"
)

// IncludeClauseBuilder emits the eager-load method calls for the include expression. Each relationship path
// prefix is emitted once, followed by the relationships marked as eager loaded on its right type.
type IncludeClauseBuilder struct {
	resourceType *resource.Type
	emitted      map[string]struct{}
}

// NewIncludeClauseBuilder creates new include clause builder for the root resource type 'rt'.
func NewIncludeClauseBuilder(rt *resource.Type) *IncludeClauseBuilder {
	return &IncludeClauseBuilder{resourceType: rt, emitted: map[string]struct{}{}}
}

// ApplyInclude applies the eager-loads of the 'include' on the 'source'. The eager loaded relationships
// of the root resource type are emitted first.
func (b *IncludeClauseBuilder) ApplyInclude(source queryable.Expression, include *expression.Include) (queryable.Expression, error) {
	result := b.applyEagerLoads(source, b.resourceType, nil, map[*resource.Type]struct{}{b.resourceType: {}})
	if include == nil {
		return result, nil
	}
	for _, chain := range include.Chains() {
		relationships, ok := chain.Relationships()
		if !ok {
			return nil, errors.WrapDetf(ErrInternal, "include chain: '%s' contains non relationship field", chain)
		}
		var path []*resource.Relationship
		for _, rel := range relationships {
			if rel.Owner() != b.rightType(path) {
				return nil, errors.WrapDetf(ErrInternal, "include chain: '%s' doesn't start at: '%s'", chain, b.resourceType)
			}
			path = appendPath(path, rel)
			result = b.emit(result, path)
			result = b.applyEagerLoads(result, rel.RightType(), path, map[*resource.Type]struct{}{rel.RightType(): {}})
		}
	}
	return result, nil
}

func (b *IncludeClauseBuilder) rightType(path []*resource.Relationship) *resource.Type {
	if len(path) == 0 {
		return b.resourceType
	}
	return path[len(path)-1].RightType()
}

func (b *IncludeClauseBuilder) applyEagerLoads(source queryable.Expression, rt *resource.Type, prefix []*resource.Relationship,
	visiting map[*resource.Type]struct{}) queryable.Expression {
	for _, eager := range rt.EagerLoads() {
		path := appendPath(prefix, eager)
		source = b.emit(source, path)
		if _, ok := visiting[eager.RightType()]; ok {
			continue
		}
		visiting[eager.RightType()] = struct{}{}
		source = b.applyEagerLoads(source, eager.RightType(), path, visiting)
		delete(visiting, eager.RightType())
	}
	return source
}

func (b *IncludeClauseBuilder) emit(source queryable.Expression, path []*resource.Relationship) queryable.Expression {
	key := pathKey(path)
	if _, ok := b.emitted[key]; ok {
		return source
	}
	b.emitted[key] = struct{}{}
	return queryable.NewCall(queryable.Include, source, &queryable.IncludePath{Relationships: path})
}

func appendPath(prefix []*resource.Relationship, rel *resource.Relationship) []*resource.Relationship {
	path := make([]*resource.Relationship, len(prefix), len(prefix)+1)
	copy(path, prefix)
	return append(path, rel)
}

func pathKey(path []*resource.Relationship) string {
	names := make([]string, len(path))
	for i, r := range path {
		names[i] = r.Name()
	}
	return strings.Join(names, ".")
}
