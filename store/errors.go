package store

import (
	"github.com/neuronlabs/jsonapi/errors"
)

var (
	// ErrStore is the root classification of the store errors.
	ErrStore = errors.New("store")
	// ErrResourceNotFound is the error classification when the queried resource doesn't exist.
	ErrResourceNotFound = errors.Wrap(errors.ErrNotFound, "resource")
	// ErrUnsupportedQuery is the error classification for the queries not supported by given store.
	ErrUnsupportedQuery = errors.Wrap(ErrStore, "unsupported query")
	// ErrInternal is the internal store error classification.
	ErrInternal = errors.Wrap(errors.ErrInternal, "store")
)
