package errors

import (
	"net/http"
	"strconv"
)

// APIErrorer is the interface implemented by the errors that could be presented to the API client.
type APIErrorer interface {
	APIErrors() []*APIError
}

// APIError is a JSON:API error object.
type APIError struct {
	// ID is a unique identifier for this particular occurrence of a problem.
	ID string `json:"id,omitempty"`
	// Status is the HTTP status code applicable to this problem, expressed as a string value.
	Status string `json:"status,omitempty"`
	// Code is an application-specific error code, expressed as a string value.
	Code string `json:"code,omitempty"`
	// Title is a short, human-readable summary of the problem.
	Title string `json:"title,omitempty"`
	// Detail is a human-readable explanation specific to this occurrence of the problem.
	Detail string `json:"detail,omitempty"`
	// Source is an object containing references to the source of the error.
	Source *ErrorSource `json:"source,omitempty"`
	// Meta is an object containing non-standard meta-information about the error.
	Meta map[string]interface{} `json:"meta,omitempty"`
}

// ErrorSource contains references to the source of the error.
type ErrorSource struct {
	// Pointer is a JSON Pointer to the associated entity in the request document.
	Pointer string `json:"pointer,omitempty"`
	// Parameter is a string indicating which URI query parameter caused the error.
	Parameter string `json:"parameter,omitempty"`
}

// NewAPIError creates new api error with given 'status', 'title' and 'detail'.
func NewAPIError(status int, title, detail string) *APIError {
	return &APIError{Status: strconv.Itoa(status), Title: title, Detail: detail}
}

// Error implements error interface.
func (e *APIError) Error() string {
	return "APIError: " + e.Status + " " + e.Title + " " + e.Detail
}

// IntStatus returns integer status of the error.
func (e *APIError) IntStatus() int {
	status, err := strconv.Atoi(e.Status)
	if err != nil {
		return http.StatusInternalServerError
	}
	return status
}

// AddMeta adds the meta data for given error.
func (e *APIError) AddMeta(key string, value interface{}) {
	if e.Meta == nil {
		e.Meta = map[string]interface{}{}
	}
	e.Meta[key] = value
}

// APIErrors implements APIErrorer interface.
func (e *APIError) APIErrors() []*APIError {
	return []*APIError{e}
}

// ToAPIErrors converts provided 'err' into the api errors. The errors that doesn't
// implement APIErrorer are presented as a generic internal server error.
func ToAPIErrors(err error) []*APIError {
	if err == nil {
		return nil
	}
	if multi, ok := err.(MultiError); ok {
		var errs []*APIError
		for _, e := range multi {
			errs = append(errs, ToAPIErrors(e)...)
		}
		return errs
	}
	var errorer APIErrorer
	if As(err, &errorer) {
		return errorer.APIErrors()
	}
	var detailed *DetailedError
	if As(err, &detailed) {
		switch {
		case Is(detailed, ErrNotFound):
			return []*APIError{{ID: detailed.ID.String(), Status: "404", Title: "The requested resource does not exist.", Detail: detailed.Details}}
		case Is(detailed, ErrInvalidInput):
			return []*APIError{{ID: detailed.ID.String(), Status: "400", Title: "The request is invalid.", Detail: detailed.Details}}
		}
		return []*APIError{{ID: detailed.ID.String(), Status: "500", Title: "An unhandled error occurred while processing this request."}}
	}
	if Is(err, ErrNotFound) {
		return []*APIError{{Status: "404", Title: "The requested resource does not exist."}}
	}
	return []*APIError{{Status: "500", Title: "An unhandled error occurred while processing this request."}}
}

// Status gets the most relevant http status of the api errors.
func Status(errs []*APIError) int {
	if len(errs) == 0 {
		return http.StatusInternalServerError
	}
	if len(errs) == 1 {
		return errs[0].IntStatus()
	}
	highest := 0
	for _, e := range errs {
		if s := e.IntStatus(); s > highest {
			highest = s
		}
	}
	if highest >= 500 {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}
