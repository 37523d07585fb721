package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInternal is the root classification for internal errors.
	ErrInternal = New("internal")
	// ErrInvalidInput is the root classification for invalid input errors.
	ErrInvalidInput = New("invalid input")
	// ErrNotFound is the root classification for the not found errors.
	ErrNotFound = New("not found")
)

// classError is the error classification node. It might be wrapped by other classifications.
type classError struct {
	parent error
	msg    string
}

// Error implements error interface.
func (c *classError) Error() string {
	if c.parent == nil {
		return c.msg
	}
	return c.parent.Error() + ": " + c.msg
}

// Unwrap implements errors unwrapper.
func (c *classError) Unwrap() error {
	return c.parent
}

// New creates new root error classification with given 'message'.
func New(message string) error {
	return &classError{msg: message}
}

// Wrap creates new error classification or error instance that wraps the 'parent' error with provided 'message'.
func Wrap(parent error, message string) error {
	return &classError{parent: parent, msg: message}
}

// Wrapf wraps the 'parent' error with formatted message.
func Wrapf(parent error, format string, args ...interface{}) error {
	return &classError{parent: parent, msg: fmt.Sprintf(format, args...)}
}

// Is checks if any error in the 'err' chain matches 'target'.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in the 'err' chain that matches 'target'.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
