package service

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/neuronlabs/jsonapi/definition"
	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/log"
	"github.com/neuronlabs/jsonapi/resource"
	"github.com/neuronlabs/jsonapi/store"
)

var logger = log.NewModuleLogger("service")

// Server is the interface of the server that serves the service resources.
type Server interface {
	Serve() error
	Shutdown(ctx context.Context) error
}

// Service is the read side of the JSON:API resources. It composes the request queries,
// executes them within the store and converts the results into the documents.
type Service struct {
	Options *Options

	// Graph is the resource graph served by the service.
	Graph *resource.Graph
	// Accessor gets the resource definitions.
	Accessor definition.Accessor
	// Executor executes the queries.
	Executor store.Executor
	// Server serves the service resources.
	Server Server
}

// New creates new service for the resource 'graph'.
func New(graph *resource.Graph, options ...Option) (*Service, error) {
	o := defaultOptions()
	for _, opt := range options {
		opt(o)
	}
	if graph == nil {
		return nil, errors.WrapDet(ErrService, "no resource graph defined for the service")
	}
	if o.Executor == nil {
		return nil, errors.WrapDet(ErrService, "no store executor defined for the service")
	}
	accessor := o.Accessor
	if accessor == nil {
		accessor = definition.NewRegistry()
	}
	return &Service{
		Options:  o,
		Graph:    graph,
		Accessor: accessor,
		Executor: o.Executor,
		Server:   o.Server,
	}, nil
}

// Run starts the service and it's server.
func (s *Service) Run(ctx context.Context) error {
	if s.Server == nil {
		return errors.WrapDet(ErrNoServer, "no server defined for the service")
	}
	if !s.Options.HandleSignals {
		return s.serve(ctx)
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGABRT, syscall.SIGTERM)
	defer stop()
	return s.serve(ctx)
}

func (s *Service) serve(ctx context.Context) error {
	errorChan := make(chan error, 1)
	go func() {
		if err := s.Server.Serve(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("ListenAndServe failed: %v", err)
			errorChan <- err
		}
		close(errorChan)
	}()

	select {
	case <-ctx.Done():
		logger.Infof("Service context had finished. Shutdown Server begins...")
	case err, ok := <-errorChan:
		if ok {
			// The error from the server listen and serve
			return err
		}
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Options.ShutdownTimeout)
	defer cancel()
	if err := s.Server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
		return err
	}
	logger.Infof("Server had shutdown successfully.")
	return s.Close(shutdownCtx)
}
