package service

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuronlabs/jsonapi/definition"
	"github.com/neuronlabs/jsonapi/encoding/jsonapi"
	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/store"
)

func TestHandle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("Collection", func(t *testing.T) {
		doc, err := f.service.Handle(ctx, &Query{Request: f.collection(), Values: values(t, "page[size]=2&sort=-title")})
		require.NoError(t, err)

		data, ok := doc.Data.([]*jsonapi.ResourceObject)
		require.True(t, ok)
		require.Len(t, data, 2)
		assert.Equal(t, "3", data[0].ID)
		assert.Equal(t, "2", data[1].ID)
		assert.Equal(t, int64(3), doc.Meta["total"])
	})

	t.Run("PageFull", func(t *testing.T) {
		composer := query.NewComposer(f.service.Options.Options, nil)
		models, err := f.service.GetCollection(ctx, composer, f.articles)
		require.NoError(t, err)
		assert.Len(t, models, 3)
		assert.False(t, composer.PaginationContext().IsPageFull)
		require.NotNil(t, composer.PaginationContext().TotalResourceCount)
		assert.Equal(t, int64(3), *composer.PaginationContext().TotalResourceCount)
	})

	t.Run("EmptyCollection", func(t *testing.T) {
		doc, err := f.service.Handle(ctx, &Query{Request: f.collection(), Values: values(t, "filter=equals(title,'None')")})
		require.NoError(t, err)
		assert.Equal(t, []*jsonapi.ResourceObject{}, doc.Data)
		assert.Equal(t, int64(0), doc.Meta["total"])
	})

	t.Run("ByIDWithInclude", func(t *testing.T) {
		doc, err := f.service.Handle(ctx, &Query{Request: f.single("1"), Values: values(t, "include=author,comments")})
		require.NoError(t, err)

		data, ok := doc.Data.(*jsonapi.ResourceObject)
		require.True(t, ok)
		assert.Equal(t, "First", data.Attributes["title"])
		included := map[string]int{}
		for _, o := range doc.Included {
			included[o.Type]++
		}
		assert.Equal(t, map[string]int{"people": 1, "comments": 2}, included)
		assert.NotContains(t, doc.Meta, "total")
	})

	t.Run("NotFound", func(t *testing.T) {
		for _, id := range []string{"9", "abc"} {
			_, err := f.service.Handle(ctx, &Query{Request: f.single(id)})
			require.Error(t, err)
			assert.True(t, errors.Is(err, store.ErrResourceNotFound), id)
			assert.Equal(t, http.StatusNotFound, errors.Status(errors.ToAPIErrors(err)))
		}
	})

	t.Run("InvalidParameter", func(t *testing.T) {
		_, err := f.service.Handle(ctx, &Query{Request: f.collection(), Values: values(t, "unknown=1&sort=revisions")})
		require.Error(t, err)
		apiErrors := errors.ToAPIErrors(err)
		assert.Len(t, apiErrors, 2)
		assert.Equal(t, http.StatusBadRequest, errors.Status(apiErrors))
	})

	t.Run("SecondaryToMany", func(t *testing.T) {
		doc, err := f.service.Handle(ctx, &Query{
			Request: f.related(query.SecondaryEndpoint, "1", f.articleComments),
			Values:  values(t, "sort=-text"),
		})
		require.NoError(t, err)

		data, ok := doc.Data.([]*jsonapi.ResourceObject)
		require.True(t, ok)
		require.Len(t, data, 2)
		assert.Equal(t, "comments", data[0].Type)
		assert.Equal(t, "1", data[0].ID)
		assert.Equal(t, "nice", data[0].Attributes["text"])
	})

	t.Run("SecondaryToOne", func(t *testing.T) {
		doc, err := f.service.Handle(ctx, &Query{Request: f.related(query.SecondaryEndpoint, "2", f.articleAuthor)})
		require.NoError(t, err)
		data, ok := doc.Data.(*jsonapi.ResourceObject)
		require.True(t, ok)
		assert.Equal(t, "Alice", data.Attributes["name"])

		doc, err = f.service.Handle(ctx, &Query{Request: f.related(query.SecondaryEndpoint, "3", f.articleAuthor)})
		require.NoError(t, err)
		assert.Nil(t, doc.Data)
	})

	t.Run("SecondaryNotFound", func(t *testing.T) {
		_, err := f.service.Handle(ctx, &Query{Request: f.related(query.SecondaryEndpoint, "7", f.articleAuthor)})
		assert.True(t, errors.Is(err, store.ErrResourceNotFound))
	})

	t.Run("Relationship", func(t *testing.T) {
		doc, err := f.service.Handle(ctx, &Query{Request: f.related(query.RelationshipEndpoint, "1", f.articleComments)})
		require.NoError(t, err)
		assert.Equal(t, []*jsonapi.ResourceIdentifier{{Type: "comments", ID: "1"}, {Type: "comments", ID: "2"}}, doc.Data)
		assert.Empty(t, doc.Included)
	})

	t.Run("InvalidRequest", func(t *testing.T) {
		_, err := f.service.Handle(ctx, &Query{Request: f.related(query.SecondaryEndpoint, "", f.articleAuthor)})
		assert.True(t, errors.Is(err, ErrInvalidRequest))

		_, err = f.service.Handle(ctx, &Query{Request: &query.Request{}})
		assert.True(t, errors.Is(err, ErrInvalidRequest))
	})

	t.Run("Cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := f.service.Handle(cancelled, &Query{Request: f.collection()})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestTotalCountDisabled(t *testing.T) {
	f := newFixture(t)
	f.service.Options.Options.IncludeTotalResourceCount = false

	doc, err := f.service.Handle(context.Background(), &Query{Request: f.collection(), Values: values(t, "page[size]=3")})
	require.NoError(t, err)
	assert.Len(t, doc.Data, 3)
	assert.NotContains(t, doc.Meta, "total")
}

func TestNew(t *testing.T) {
	f := newFixture(t)

	_, err := New(nil, WithExecutor(f.store))
	assert.True(t, errors.Is(err, ErrService))

	_, err = New(f.graph)
	assert.True(t, errors.Is(err, ErrService))

	s, err := New(f.graph, WithExecutor(f.store))
	require.NoError(t, err)
	registry, ok := s.Accessor.(*definition.Registry)
	require.True(t, ok)
	assert.NotNil(t, registry)
	assert.True(t, s.Options.HandleSignals)
}

type testServer struct {
	serving  chan struct{}
	shutdown int32
}

func (s *testServer) Serve() error {
	<-s.serving
	return http.ErrServerClosed
}

func (s *testServer) Shutdown(context.Context) error {
	atomic.StoreInt32(&s.shutdown, 1)
	close(s.serving)
	return nil
}

type closingStore struct {
	store.Executor
	closed bool
}

func (c *closingStore) Close(context.Context) error {
	c.closed = true
	return nil
}

func TestRun(t *testing.T) {
	f := newFixture(t)

	t.Run("NoServer", func(t *testing.T) {
		err := f.service.Run(context.Background())
		assert.True(t, errors.Is(err, ErrNoServer))
	})

	t.Run("Shutdown", func(t *testing.T) {
		server := &testServer{serving: make(chan struct{})}
		executor := &closingStore{Executor: f.store}
		s, err := New(f.graph, WithExecutor(executor), WithServer(server), WithHandleSignal(false), WithShutdownTimeout(time.Second))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- s.Run(ctx)
		}()
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("service didn't stop")
		}
		assert.Equal(t, int32(1), atomic.LoadInt32(&server.shutdown))
		assert.True(t, executor.closed)
	})
}
