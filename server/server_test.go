package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuronlabs/jsonapi/config"
	"github.com/neuronlabs/jsonapi/encoding/jsonapi"
	"github.com/neuronlabs/jsonapi/resource"
	"github.com/neuronlabs/jsonapi/service"
	"github.com/neuronlabs/jsonapi/store/memory"
)

type Article struct {
	ID       int
	Title    string
	Author   *Person
	Comments []*Comment
}

type Person struct {
	ID       int
	Name     string
	Articles []*Article `jsonapi:"type=relation;inverse=author"`
}

type Comment struct {
	ID      int
	Text    string
	Article *Article
}

func newServer(t *testing.T, options *config.Options, serverOptions ...Option) *Server {
	t.Helper()
	g, err := resource.NewGraphBuilder(options).Add(&Article{}, &Person{}, &Comment{}).Build()
	require.NoError(t, err)

	alice := &Person{ID: 1, Name: "Alice"}
	a1 := &Article{ID: 1, Title: "First", Author: alice}
	a2 := &Article{ID: 2, Title: "Second"}
	c1 := &Comment{ID: 1, Text: "nice", Article: a1}
	a1.Comments = []*Comment{c1}
	alice.Articles = []*Article{a1}
	s := memory.New(g)
	require.NoError(t, s.Add(a1, a2, alice, c1))

	if options == nil {
		options = config.DefaultOptions()
	}
	svc, err := service.New(g, service.WithExecutor(s), service.WithOptions(options))
	require.NoError(t, err)
	srv, err := New(svc, serverOptions...)
	require.NoError(t, err)
	return srv
}

type response struct {
	Data     json.RawMessage           `json:"data"`
	Included []*jsonapi.ResourceObject `json:"included"`
	Links    map[string]string         `json:"links"`
	Meta     map[string]interface{}    `json:"meta"`
	Errors   []map[string]interface{}  `json:"errors"`
}

func get(t *testing.T, srv http.Handler, target string, headers ...string) (*httptest.ResponseRecorder, *response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	resp := &response{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), resp), rec.Body.String())
	return rec, resp
}

func TestResourceEndpoints(t *testing.T) {
	srv := newServer(t, nil)

	t.Run("Collection", func(t *testing.T) {
		rec, resp := get(t, srv, "/articles?page[size]=1")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, jsonapi.MediaType, rec.Header().Get("Content-Type"))
		assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

		var data []*jsonapi.ResourceObject
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		require.Len(t, data, 1)
		assert.Equal(t, "1", data[0].ID)
		assert.Equal(t, float64(2), resp.Meta["total"])
		assert.Equal(t, "http://example.com/articles?page[size]=1", resp.Links["self"])
		assert.Contains(t, resp.Links, "next")
		assert.NotContains(t, resp.Links, "prev")
	})

	t.Run("Single", func(t *testing.T) {
		rec, resp := get(t, srv, "/articles/1?include=author")
		assert.Equal(t, http.StatusOK, rec.Code)

		var data jsonapi.ResourceObject
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, "First", data.Attributes["title"])
		require.Len(t, resp.Included, 1)
		assert.Equal(t, "people", resp.Included[0].Type)
		assert.Equal(t, "Alice", resp.Included[0].Attributes["name"])
	})

	t.Run("Secondary", func(t *testing.T) {
		rec, resp := get(t, srv, "/articles/1/author")
		assert.Equal(t, http.StatusOK, rec.Code)
		var data jsonapi.ResourceObject
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, "people", data.Type)
		assert.Equal(t, "1", data.ID)

		rec, resp = get(t, srv, "/articles/2/author")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "null", string(resp.Data))
	})

	t.Run("Relationship", func(t *testing.T) {
		rec, resp := get(t, srv, "/articles/1/relationships/comments")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"type":"comments","id":"1"}]`, string(resp.Data))
		assert.Equal(t, "http://example.com/articles/1/relationships/comments", resp.Links["self"])
		assert.Equal(t, "http://example.com/articles/1/comments", resp.Links["related"])
	})

	t.Run("NotFound", func(t *testing.T) {
		for _, target := range []string{"/articles/9", "/articles/abc", "/unknown", "/articles/1/revisions", "/articles/1/relationships/revisions/x"} {
			rec, resp := get(t, srv, target)
			assert.Equal(t, http.StatusNotFound, rec.Code, target)
			require.Len(t, resp.Errors, 1, target)
			assert.Equal(t, "404", resp.Errors[0]["status"])
		}
	})

	t.Run("InvalidQuery", func(t *testing.T) {
		rec, resp := get(t, srv, "/articles?foo=bar")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, map[string]interface{}{"parameter": "foo"}, resp.Errors[0]["source"])
	})

	t.Run("NotAcceptable", func(t *testing.T) {
		rec, _ := get(t, srv, "/articles", "Accept", jsonapi.MediaType+"; ext=bulk")
		assert.Equal(t, http.StatusNotAcceptable, rec.Code)

		rec, _ = get(t, srv, "/articles", "Accept", jsonapi.MediaType+"; ext=bulk, */*")
		assert.Equal(t, http.StatusOK, rec.Code)

		rec, _ = get(t, srv, "/articles", "Accept", "application/json")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("MethodNotAllowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/articles", strings.NewReader("{}"))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("RequestID", func(t *testing.T) {
		rec, _ := get(t, srv, "/articles", RequestIDHeader, "abc-123")
		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	})
}

func TestNamespace(t *testing.T) {
	options := config.DefaultOptions()
	options.Namespace = "/api/v1/"
	srv := newServer(t, options, WithBaseURL("https://blog.io/"))

	rec, resp := get(t, srv, "/api/v1/articles/1")
	assert.Equal(t, http.StatusOK, rec.Code)
	var data jsonapi.ResourceObject
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "https://blog.io/api/v1/articles/1", (*data.Links)["self"])

	rec, _ = get(t, srv, "/articles/1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecovery(t *testing.T) {
	panicking := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		})
	}
	srv := newServer(t, nil, WithMiddlewares(panicking))

	rec, resp := get(t, srv, "/articles", RequestIDHeader, "req-1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "500", resp.Errors[0]["status"])
	assert.NotEmpty(t, resp.Errors[0]["id"])
	assert.Equal(t, "req-1", rec.Header().Get(RequestIDHeader))
}

func TestMiddlewareChain(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := MiddlewareChain{mark("first"), mark("second")}.Handle(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}
