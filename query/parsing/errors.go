package parsing

import (
	"fmt"
	"net/http"

	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/query"
)

// InvalidQueryStringParameterError is the client-facing error of the query string parameter
// that could not be parsed or validated.
type InvalidQueryStringParameterError struct {
	// Parameter is the name of the query string parameter i.e.: 'filter[comments]'.
	Parameter string
	// Detail is the human-readable reason of the failure.
	Detail string

	class error
}

func newParameterError(class error, parameter, format string, args ...interface{}) *InvalidQueryStringParameterError {
	return &InvalidQueryStringParameterError{Parameter: parameter, Detail: fmt.Sprintf(format, args...), class: class}
}

// Error implements error interface.
func (e *InvalidQueryStringParameterError) Error() string {
	return e.class.Error() + ": '" + e.Parameter + "': " + e.Detail
}

// Unwrap returns the error classification.
func (e *InvalidQueryStringParameterError) Unwrap() error {
	return e.class
}

// Title gets the short summary of the problem.
func (e *InvalidQueryStringParameterError) Title() string {
	if errors.Is(e.class, query.ErrUnknownParameter) {
		return "Unknown query string parameter."
	}
	return "The specified query string parameter value is invalid."
}

// APIErrors implements errors.APIErrorer interface.
func (e *InvalidQueryStringParameterError) APIErrors() []*errors.APIError {
	apiErr := errors.NewAPIError(http.StatusBadRequest, e.Title(), e.Detail)
	apiErr.Source = &errors.ErrorSource{Parameter: e.Parameter}
	return []*errors.APIError{apiErr}
}
