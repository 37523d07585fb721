package errors

import (
	"strings"
)

// MultiError collects the failures of an operation that doesn't stop on the first error.
type MultiError []error

// ErrorOrNil returns nil for an empty MultiError.
func (m MultiError) ErrorOrNil() error {
	if len(m) == 0 {
		return nil
	}
	return m
}

// Error implements error interface. The messages are joined with a comma.
func (m MultiError) Error() string {
	messages := make([]string, len(m))
	for i, err := range m {
		messages[i] = err.Error()
	}
	return strings.Join(messages, ",")
}

// Unwrap returns the collected errors so that errors.Is matches any of them.
func (m MultiError) Unwrap() []error {
	return m
}
