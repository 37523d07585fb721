package service

import (
	"github.com/neuronlabs/jsonapi/errors"
)

var (
	// ErrService is the general service error classification.
	ErrService = errors.New("service")
	// ErrInternal is the internal service error classification.
	ErrInternal = errors.Wrap(errors.ErrInternal, "service")
	// ErrNoServer is the error when the service runs without the server.
	ErrNoServer = errors.Wrap(ErrService, "no server")
	// ErrInvalidRequest is the error classification of the requests that doesn't match the resource graph.
	ErrInvalidRequest = errors.Wrap(errors.ErrInvalidInput, "request")
)
