package resource

import (
	"github.com/neuronlabs/jsonapi/errors"
)

var (
	// ErrResource is the root error classification for the resource package.
	ErrResource = errors.New("resource")
	// ErrMapping is the error classification for the model mapping failures.
	ErrMapping = errors.Wrap(ErrResource, "mapping")
	// ErrAlreadyRegistered is the error classification for the models registered more than once.
	ErrAlreadyRegistered = errors.Wrap(ErrMapping, "already registered")
	// ErrInvalidTag is the error classification for the malformed struct field tags.
	ErrInvalidTag = errors.Wrap(ErrMapping, "invalid tag")
	// ErrModelNotMapped is the error classification for the models not found in the graph.
	ErrModelNotMapped = errors.Wrap(ErrResource, "model not mapped")
)
