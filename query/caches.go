package query

import (
	"github.com/neuronlabs/jsonapi/definition"
	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/resource"
)

// SparseFieldSetCache evaluates the requested sparse fieldsets with the resource definition hooks.
// Each resource type hook is called at most once per request.
type SparseFieldSetCache struct {
	providers []ConstraintProvider
	accessor  definition.Accessor

	source  map[*resource.Type]*expression.SparseFieldSet
	visited map[*resource.Type][]resource.Field
}

// NewSparseFieldSetCache creates new request-scoped sparse fieldset cache.
func NewSparseFieldSetCache(accessor definition.Accessor, providers ...ConstraintProvider) *SparseFieldSetCache {
	if accessor == nil {
		accessor = definition.NewRegistry()
	}
	return &SparseFieldSetCache{providers: providers, accessor: accessor, visited: map[*resource.Type][]resource.Field{}}
}

// ForQuery gets the fields that should be fetched for the resource type 'rt'.
// An empty result means that all the fields should be fetched.
func (s *SparseFieldSetCache) ForQuery(rt *resource.Type) ([]resource.Field, error) {
	if fields, ok := s.visited[rt]; ok {
		return fields, nil
	}
	input := s.sourceTable()[rt]
	output, err := s.accessor.OnApplySparseFieldSet(rt, input)
	if err != nil {
		return nil, err
	}
	var fields []resource.Field
	if output != nil {
		fields = output.Fields()
	}
	s.visited[rt] = fields
	return fields, nil
}

// ForIdentifiers gets the fields fetched for the relationship identifiers - only the identifier attribute.
func (s *SparseFieldSetCache) ForIdentifiers(rt *resource.Type) []resource.Field {
	return []resource.Field{rt.ID()}
}

// ForSerializer gets the fields that should be serialized for the resource type 'rt'.
// The hidden and not viewable attributes are never returned.
func (s *SparseFieldSetCache) ForSerializer(rt *resource.Type) ([]resource.Field, error) {
	fields, err := s.ForQuery(rt)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		fields = rt.Fields()
	}
	result := make([]resource.Field, 0, len(fields))
	for _, f := range fields {
		if attr, ok := f.(*resource.Attr); ok && (attr.IsID() || !attr.CanView()) {
			continue
		}
		result = append(result, f)
	}
	return result, nil
}

func (s *SparseFieldSetCache) sourceTable() map[*resource.Type]*expression.SparseFieldSet {
	if s.source != nil {
		return s.source
	}
	s.source = map[*resource.Type]*expression.SparseFieldSet{}
	for _, provider := range s.providers {
		for _, c := range provider.Constraints() {
			table, ok := c.Expression.(*expression.SparseFieldTable)
			if !ok {
				continue
			}
			for _, rt := range table.Types() {
				set, _ := table.Get(rt)
				if existing, ok := s.source[rt]; ok {
					for _, f := range set.Fields() {
						existing = existing.With(f)
					}
					set = existing
				}
				s.source[rt] = set
			}
		}
	}
	return s.source
}

// EvaluatedIncludeCache stores the include expression evaluated by the Composer, after the
// resource definition hooks were applied. It is used by the response serialization.
type EvaluatedIncludeCache struct {
	include *expression.Include
}

// Set stores the evaluated include expression.
func (e *EvaluatedIncludeCache) Set(include *expression.Include) {
	e.include = include
}

// Get gets the evaluated include expression. Nil if nothing is included.
func (e *EvaluatedIncludeCache) Get() *expression.Include {
	return e.include
}

// PaginationContext contains the top-level pagination applied to the request and the total resource count.
type PaginationContext struct {
	PageNumber expression.PageNumber
	PageSize   *expression.PageSize
	// IsPageFull is set when the returned page contains the page size resources.
	IsPageFull bool
	// TotalResourceCount is the total number of resources matching the top-level filter.
	TotalResourceCount *int64
}

// IsPaginated checks if the top-level pagination is applied.
func (p *PaginationContext) IsPaginated() bool {
	return p.PageSize != nil
}

// TotalPageCount gets the total number of pages. The second result is false if it cannot be computed.
func (p *PaginationContext) TotalPageCount() (int, bool) {
	if p.TotalResourceCount == nil || p.PageSize == nil {
		return 0, false
	}
	total := int(*p.TotalResourceCount)
	size := p.PageSize.Value()
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return pages, true
}
