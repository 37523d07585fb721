// Package definition contains the resource definition policy hooks. A resource definition is
// an application object registered per resource type that might override the query constraints
// parsed from the request.
package definition

import (
	"github.com/neuronlabs/jsonapi/query/expression"
)

// FilterApplier is the resource definition that overrides the filter applied to the resource type.
// Returning nil clears the filter.
type FilterApplier interface {
	OnApplyFilter(existing expression.FilterExpression) (expression.FilterExpression, error)
}

// SortApplier is the resource definition that overrides the sort applied to the resource type.
// Returning nil results in the default sort by the identifier.
type SortApplier interface {
	OnApplySort(existing *expression.Sort) (*expression.Sort, error)
}

// PaginationApplier is the resource definition that overrides the pagination applied to the resource type.
// Returning nil results in the default pagination.
type PaginationApplier interface {
	OnApplyPagination(existing *expression.Pagination) (*expression.Pagination, error)
}

// SparseFieldSetApplier is the resource definition that overrides the sparse fieldset of the resource type.
// Returning nil selects all the fields.
type SparseFieldSetApplier interface {
	OnApplySparseFieldSet(existing *expression.SparseFieldSet) (*expression.SparseFieldSet, error)
}

// IncludesApplier is the resource definition that might veto or replace the included relationships.
type IncludesApplier interface {
	OnApplyIncludes(existing []*expression.IncludeElement) ([]*expression.IncludeElement, error)
}

// MetaProvider is the resource definition that adds the meta object to the serialized resource objects.
type MetaProvider interface {
	GetMeta(model interface{}) map[string]interface{}
}
