package query

import (
	"github.com/neuronlabs/jsonapi/errors"
)

var (
	// ErrQuery is the root error classification for the query package.
	ErrQuery = errors.New("query")
	// ErrInternal is the error classification for the internal consistency failures of the query composition.
	ErrInternal = errors.Wrap(errors.ErrInternal, "query")

	// ErrInvalidQueryStringParameter is the error classification for the invalid query string parameters.
	ErrInvalidQueryStringParameter = errors.Wrap(errors.ErrInvalidInput, "invalid query string parameter")
	// ErrUnknownParameter is the error classification for the unsupported query parameters.
	ErrUnknownParameter = errors.Wrap(ErrInvalidQueryStringParameter, "unknown parameter")
	// ErrDuplicateParameter is the error classification for the query parameters provided more than once.
	ErrDuplicateParameter = errors.Wrap(ErrInvalidQueryStringParameter, "duplicate parameter")
	// ErrSyntax is the error classification for the malformed query parameter values.
	ErrSyntax = errors.Wrap(ErrInvalidQueryStringParameter, "syntax")
	// ErrUnknownField is the error classification for the unknown resource field names.
	ErrUnknownField = errors.Wrap(ErrInvalidQueryStringParameter, "unknown field")
	// ErrUnknownOperator is the error classification for the unknown filter operators.
	ErrUnknownOperator = errors.Wrap(ErrInvalidQueryStringParameter, "unknown operator")
	// ErrInvalidValue is the error classification for the values that could not be converted.
	ErrInvalidValue = errors.Wrap(ErrInvalidQueryStringParameter, "invalid value")
	// ErrInvalidPage is the error classification for the invalid page number or size.
	ErrInvalidPage = errors.Wrap(ErrInvalidQueryStringParameter, "invalid page")
	// ErrNotIncludable is the error classification for the relationships that cannot be included.
	ErrNotIncludable = errors.Wrap(ErrInvalidQueryStringParameter, "not includable")
	// ErrNotFilterable is the error classification for the attributes that cannot be filtered.
	ErrNotFilterable = errors.Wrap(ErrInvalidQueryStringParameter, "not filterable")
	// ErrNotSortable is the error classification for the attributes that cannot be sorted.
	ErrNotSortable = errors.Wrap(ErrInvalidQueryStringParameter, "not sortable")
	// ErrNotViewable is the error classification for the attributes that cannot be selected.
	ErrNotViewable = errors.Wrap(ErrInvalidQueryStringParameter, "not viewable")
)
