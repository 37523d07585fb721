package builder

import (
	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/log"
)

var logger = log.NewModuleLogger("builder")

// ErrInternal is the error classification for the expression trees that could not be lowered.
// It is the result of the mismatch between the composer and the builders.
var ErrInternal = errors.Wrap(errors.ErrInternal, "builder")
