package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/neuronlabs/jsonapi/config"
	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/log"
	"github.com/neuronlabs/jsonapi/service"
)

var logger = log.NewModuleLogger("server")

// Compile time check if the Server implements service.Server interface.
var _ service.Server = &Server{}

// Options are the http server options.
type Options struct {
	// Address is the listen address of the server.
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// BaseURL is the scheme with the host used for the links i.e. 'https://example.com'.
	// If empty it is taken from the request.
	BaseURL string
	// Middlewares are applied on all the resource endpoints after the default ones.
	Middlewares MiddlewareChain
}

func defaultOptions() *Options {
	return &Options{
		Address:      ":8080",
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
	}
}

// Option is the function that sets the server options.
type Option func(o *Options)

// WithConfig sets the options from the server config.
func WithConfig(c *config.Server) Option {
	return func(o *Options) {
		if c == nil {
			return
		}
		o.Address = c.Address
		o.ReadTimeout = time.Duration(c.ReadTimeout) * time.Second
		o.WriteTimeout = time.Duration(c.WriteTimeout) * time.Second
	}
}

// WithAddress sets the listen address.
func WithAddress(address string) Option {
	return func(o *Options) {
		o.Address = address
	}
}

// WithBaseURL sets the base url of the links.
func WithBaseURL(baseURL string) Option {
	return func(o *Options) {
		o.BaseURL = baseURL
	}
}

// WithMiddlewares adds the middlewares to the server.
func WithMiddlewares(middlewares ...Middleware) Option {
	return func(o *Options) {
		o.Middlewares = append(o.Middlewares, middlewares...)
	}
}

// Server is the JSON:API http server. It routes the resource endpoints to the service.
type Server struct {
	Options *Options

	service *service.Service
	router  chi.Router
	server  *http.Server
}

// New creates new server for the 'svc' resources.
func New(svc *service.Service, options ...Option) (*Server, error) {
	if svc == nil {
		return nil, errors.WrapDet(ErrServerOptions, "no service provided")
	}
	o := defaultOptions()
	for _, option := range options {
		option(o)
	}
	if o.Address == "" {
		return nil, errors.WrapDet(ErrServerOptions, "no listen address provided")
	}
	s := &Server{Options: o, service: svc}
	s.router = s.routes()
	s.server = &http.Server{
		Addr:         o.Address,
		Handler:      s.router,
		ReadTimeout:  o.ReadTimeout,
		WriteTimeout: o.WriteTimeout,
	}
	return s, nil
}

// ServeHTTP implements http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Serve starts listen and serve the requests.
func (s *Server) Serve() error {
	logger.Infof("Listening on: '%s'", s.Options.Address)
	return s.server.ListenAndServe()
}

// Shutdown gently shuts down the server. The remaining requests are finished within given context.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID, Recovery, Logging, Negotiate)
	for _, middleware := range s.Options.Middlewares {
		r.Use(middleware)
	}
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeErrors(w, req, errors.WrapDetf(ErrURIParameter, "path: '%s' doesn't exist", req.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeErrors(w, req, errors.NewAPIError(http.StatusMethodNotAllowed, "The request method is not allowed.",
			"Endpoint does not support the: '"+req.Method+"' method."))
	})

	resources := func(r chi.Router) {
		r.Get("/{type}", s.handle(primaryEndpoint))
		r.Get("/{type}/{id}", s.handle(primaryEndpoint))
		r.Get("/{type}/{id}/relationships/{relationship}", s.handle(relationshipEndpoint))
		r.Get("/{type}/{id}/{relationship}", s.handle(secondaryEndpoint))
	}
	if namespace := s.service.Options.Options.Namespace; namespace != "" {
		r.Route("/"+trimSlashes(namespace), resources)
	} else {
		resources(r)
	}
	return r
}
