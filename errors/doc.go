// Package errors is the error classification package used by all jsonapi packages.
//
// Errors are organised in a classification tree of sentinel values:
//
//	ErrQuery   = errors.New("query")
//	ErrInput   = errors.Wrap(ErrQuery, "input")
//
// A classification might be checked with the Is function, which matches every ancestor
// of the wrapped error. The DetailedError is a trackable (uuid) error instance that wraps a classification
// and stores the operation where it was created together with client-facing details.
//
// Errors that could be presented to the client implement the APIErrorer interface.
package errors
