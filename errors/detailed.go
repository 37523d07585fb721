package errors

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/google/uuid"
)

// DetailedError is the trackable error instance that wraps the error classification.
// Each instance has it's own ID. The Details field is a client-facing explanation,
// where the message is used for logging purpose only.
type DetailedError struct {
	// ID is a unique error instance identification number.
	ID uuid.UUID
	// Details contains the detailed client-facing information.
	Details string
	// Operation is the operation name when the error occurred.
	Operation string

	message string
	err     error
}

// WrapDet wraps the 'err' classification with the detailed error with provided 'message'.
func WrapDet(err error, message string) *DetailedError {
	d := newDetailed(err)
	d.message = message
	return d
}

// WrapDetf wraps the 'err' classification with the detailed error with formatted message.
func WrapDetf(err error, format string, args ...interface{}) *DetailedError {
	d := newDetailed(err)
	d.message = fmt.Sprintf(format, args...)
	return d
}

// Error implements error interface.
func (e *DetailedError) Error() string {
	if e.err == nil {
		return e.message
	}
	return e.err.Error() + ": " + e.message
}

// Message gets the internal message of the error.
func (e *DetailedError) Message() string {
	return e.message
}

// Unwrap implements errors unwrapper.
func (e *DetailedError) Unwrap() error {
	return e.err
}

// WithDetail sets the error 'detail' and returns itself.
func (e *DetailedError) WithDetail(detail string) *DetailedError {
	e.Details = detail
	return e
}

// WithDetailf sets the error's formatted detail and returns itself.
func (e *DetailedError) WithDetailf(format string, args ...interface{}) *DetailedError {
	e.Details = fmt.Sprintf(format, args...)
	return e
}

func newDetailed(err error) *DetailedError {
	d := &DetailedError{
		ID:  uuid.New(),
		err: err,
	}
	pc, _, _, ok := runtime.Caller(2)
	details := runtime.FuncForPC(pc)
	if ok && details != nil {
		file, line := details.FileLine(pc)
		_, singleFile := filepath.Split(file)
		d.Operation = details.Name() + "#" + singleFile + ":" + strconv.Itoa(line)
	}
	return d
}
