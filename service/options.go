package service

import (
	"time"

	"github.com/neuronlabs/jsonapi/config"
	"github.com/neuronlabs/jsonapi/definition"
	"github.com/neuronlabs/jsonapi/store"
)

// Options is the structure that contains service options.
type Options struct {
	// Options are the query and serialization options.
	Options *config.Options
	// Accessor gets the resource definitions hooks.
	Accessor definition.Accessor
	// Executor executes the lowered queries.
	Executor store.Executor
	// Server serves the service resources.
	Server Server

	// HandleSignals defines if the os signals should stop the service.
	HandleSignals bool
	// ShutdownTimeout is the maximum duration of the server shutdown.
	ShutdownTimeout time.Duration
}

func defaultOptions() *Options {
	return &Options{
		Options:         config.DefaultOptions(),
		HandleSignals:   true,
		ShutdownTimeout: time.Second * 20,
	}
}

// Option is the function that sets the options for the service.
type Option func(o *Options)

// WithOptions sets the query and serialization options.
func WithOptions(options *config.Options) Option {
	return func(o *Options) {
		o.Options = options
	}
}

// WithAccessor sets the resource definitions accessor.
func WithAccessor(accessor definition.Accessor) Option {
	return func(o *Options) {
		o.Accessor = accessor
	}
}

// WithExecutor sets the store executor for the service.
func WithExecutor(executor store.Executor) Option {
	return func(o *Options) {
		o.Executor = executor
	}
}

// WithServer sets the service server option.
func WithServer(s Server) Option {
	return func(o *Options) {
		o.Server = s
	}
}

// WithHandleSignal is the option that determines if the os signals should be handled by the service.
func WithHandleSignal(handle bool) Option {
	return func(o *Options) {
		o.HandleSignals = handle
	}
}

// WithShutdownTimeout sets the server shutdown timeout.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.ShutdownTimeout = timeout
	}
}
