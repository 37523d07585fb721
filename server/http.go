package server

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/neuronlabs/jsonapi/errors"
)

// Middleware is a http middleware function.
type Middleware func(http.Handler) http.Handler

// MiddlewareChain is a middleware slice type that could be used as a http.Handler.
type MiddlewareChain []Middleware

// Handle handles the chain of middlewares for given 'handle' http.Handle.
func (c MiddlewareChain) Handle(handle http.Handler) http.Handler {
	for i := range c {
		handle = c[len(c)-1-i](handle)
	}
	return handle
}

// RequestIDHeader is the header that carries the request identifier.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID is the middleware that sets the request identifier in the context and the response header.
// The identifier provided by the client is preserved.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// GetRequestID gets the request identifier from the context.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Recovery is the middleware that recovers the handler panics and writes the internal error document.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				logger.Errorf("[%s] Panic recovered: %v\n%s", GetRequestID(r.Context()), p, debug.Stack())
				writeErrors(w, r, errors.WrapDetf(ErrInternal, "panic: %v", p))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Logging is the middleware that logs the handled requests.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		logger.Infof("[%s] %s %s %d %s", GetRequestID(r.Context()), r.Method, r.URL.RequestURI(), rw.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (s *statusWriter) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}
