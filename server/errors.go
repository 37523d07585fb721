package server

import (
	"github.com/neuronlabs/jsonapi/errors"
)

var (
	// ErrInternal is an internal server error.
	ErrInternal = errors.Wrap(errors.ErrInternal, "server")

	// ErrServer is an error related with server.
	ErrServer = errors.New("server")
	// ErrServerOptions is an error related with server options.
	ErrServerOptions = errors.Wrap(ErrServer, "options")
	// ErrURIParameter is an error related with uri parameters.
	ErrURIParameter = errors.Wrap(errors.ErrNotFound, "uri parameter")
)
