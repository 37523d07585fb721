package server

import (
	"bytes"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/neuronlabs/jsonapi/encoding/jsonapi"
	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/service"
)

const (
	primaryEndpoint      = query.PrimaryEndpoint
	secondaryEndpoint    = query.SecondaryEndpoint
	relationshipEndpoint = query.RelationshipEndpoint
)

func (s *Server) handle(kind query.EndpointKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		request, err := s.request(kind, r)
		if err != nil {
			writeErrors(w, r, err)
			return
		}
		doc, err := s.service.Handle(r.Context(), &service.Query{
			Request: request,
			Values:  r.URL.Query(),
			Links:   s.links(r),
		})
		if err != nil {
			writeErrors(w, r, err)
			return
		}
		buf := &bytes.Buffer{}
		if err = jsonapi.Marshal(buf, doc); err != nil {
			writeErrors(w, r, err)
			return
		}
		w.Header().Set("Content-Type", jsonapi.MediaType)
		w.WriteHeader(http.StatusOK)
		if _, err = buf.WriteTo(w); err != nil {
			logger.Debugf("[%s] Writing response failed: %v", GetRequestID(r.Context()), err)
		}
	}
}

// request resolves the endpoint url parameters within the resource graph.
func (s *Server) request(kind query.EndpointKind, r *http.Request) (*query.Request, error) {
	typeName := urlParam(r, "type")
	rt, ok := s.service.Graph.ByName(typeName)
	if !ok {
		return nil, errors.WrapDetf(ErrURIParameter, "resource type: '%s' doesn't exist", typeName)
	}
	request := &query.Request{Kind: kind, PrimaryType: rt, PrimaryID: urlParam(r, "id")}
	if kind == query.PrimaryEndpoint {
		return request, nil
	}
	name := urlParam(r, "relationship")
	if request.Relationship, ok = rt.Relationship(name); !ok {
		return nil, errors.WrapDetf(ErrURIParameter, "resource type: '%s' doesn't have relationship: '%s'", rt, name)
	}
	return request, nil
}

func (s *Server) links(r *http.Request) *jsonapi.LinkBuilder {
	base := s.Options.BaseURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
			scheme = forwarded
		}
		base = scheme + "://" + r.Host
	}
	options := s.service.Options.Options
	return jsonapi.NewLinkBuilder(r.URL, base, options.Namespace, options.UseRelativeLinks)
}

func urlParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}

func trimSlashes(path string) string {
	return strings.Trim(path, "/")
}

// writeErrors writes the error document for the 'err'. The internal errors are logged.
func writeErrors(w http.ResponseWriter, r *http.Request, err error) {
	apiErrors := errors.ToAPIErrors(err)
	status := errors.Status(apiErrors)
	requestID := GetRequestID(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Errorf("[%s] Handling: %s %s failed: %v", requestID, r.Method, r.URL.RequestURI(), err)
		for _, apiErr := range apiErrors {
			if apiErr.ID == "" {
				apiErr.ID = requestID
			}
		}
	} else {
		logger.Debugf("[%s] Handling: %s %s failed: %v", requestID, r.Method, r.URL.RequestURI(), err)
	}
	w.Header().Set("Content-Type", jsonapi.MediaType)
	w.WriteHeader(status)
	if err = jsonapi.MarshalErrors(w, apiErrors...); err != nil {
		logger.Errorf("[%s] Marshaling errors failed: %v", requestID, err)
	}
}

// Negotiate is the middleware that checks the Accept header. The request is not acceptable if all
// the JSON:API media type instances are modified with the media type parameters.
func Negotiate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !acceptable(r.Header.Values("Accept")) {
			writeErrors(w, r, errors.NewAPIError(http.StatusNotAcceptable,
				"The specified Accept header value does not contain any supported media types.",
				"Please include '"+jsonapi.MediaType+"' in the Accept header values."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func acceptable(headers []string) bool {
	var found, plain bool
	for _, header := range headers {
		for _, part := range strings.Split(header, ",") {
			mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
			if err != nil {
				continue
			}
			switch mediaType {
			case jsonapi.MediaType:
				found = true
				delete(params, "q")
				if len(params) == 0 {
					plain = true
				}
			case "*/*", "application/*":
				plain = true
			}
		}
	}
	return !found || plain
}
