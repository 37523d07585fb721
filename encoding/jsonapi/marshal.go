package jsonapi

import (
	"encoding/json"
	"io"

	"github.com/neuronlabs/jsonapi/errors"
)

// Marshal writes the JSON:API 'document' into the writer 'w'.
func Marshal(w io.Writer, document *Document) error {
	if document == nil {
		return errors.WrapDet(ErrInternal, "nil document")
	}
	if err := json.NewEncoder(w).Encode(document); err != nil {
		logger.Errorf("Marshaling document failed: %v", err)
		return errors.WrapDetf(ErrInternal, "marshaling document failed: %v", err)
	}
	return nil
}

// MarshalErrors writes a JSON API response using the given api errors.
// The error documents are described at: http://jsonapi.org/format/#error-objects.
func MarshalErrors(w io.Writer, errorObjects ...*errors.APIError) error {
	if errorObjects == nil {
		errorObjects = []*errors.APIError{}
	}
	if err := json.NewEncoder(w).Encode(&ErrorsPayload{Errors: errorObjects}); err != nil {
		return err
	}
	return nil
}

// ErrorsPayload is a serializer struct for representing a valid JSON API errors payload.
type ErrorsPayload struct {
	Errors []*errors.APIError `json:"errors"`
}

var (
	// ErrEncoding is the root classification of the encoding errors.
	ErrEncoding = errors.New("encoding")
	// ErrInternal is the internal encoding error classification.
	ErrInternal = errors.Wrap(errors.ErrInternal, "encoding")
	// ErrUnexpectedType is the classification of the models that couldn't be serialized.
	ErrUnexpectedType = errors.Wrap(ErrInternal, "unexpected model type")
)
