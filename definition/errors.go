package definition

import (
	"net/http"
	"strconv"

	"github.com/neuronlabs/jsonapi/errors"
)

var (
	// ErrPolicy is the error classification for the resource definition policy rejections.
	ErrPolicy = errors.New("policy")
	// ErrDefinition is the error classification for the invalid resource definitions.
	ErrDefinition = errors.Wrap(errors.ErrInternal, "definition")
)

// PolicyError is the client-facing error returned by the resource definitions that forbids
// the requested operation.
type PolicyError struct {
	Status int
	Title  string
	Detail string
}

// NewPolicyError creates new policy error.
func NewPolicyError(status int, title, detail string) *PolicyError {
	return &PolicyError{Status: status, Title: title, Detail: detail}
}

// Forbidden creates new policy error with the 403 status.
func Forbidden(title, detail string) *PolicyError {
	return NewPolicyError(http.StatusForbidden, title, detail)
}

// Error implements error interface.
func (p *PolicyError) Error() string {
	return ErrPolicy.Error() + ": " + p.Title
}

// Unwrap implements errors unwrapper.
func (p *PolicyError) Unwrap() error {
	return ErrPolicy
}

// APIErrors implements errors.APIErrorer interface.
func (p *PolicyError) APIErrors() []*errors.APIError {
	status := p.Status
	if status == 0 {
		status = http.StatusBadRequest
	}
	return []*errors.APIError{{Status: strconv.Itoa(status), Title: p.Title, Detail: p.Detail}}
}
