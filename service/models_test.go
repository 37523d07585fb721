package service

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neuronlabs/jsonapi/config"
	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/resource"
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

type fixture struct {
	graph   *resource.Graph
	store   *memory.Store
	service *Service

	articles *resource.Type

	articleAuthor, articleComments *resource.Relationship
}

func newFixture(t *testing.T, options ...Option) *fixture {
	t.Helper()
	g, err := resource.NewGraphBuilder(nil).Add(&Article{}, &Person{}, &Comment{}).Build()
	require.NoError(t, err)

	f := &fixture{graph: g, store: memory.New(g), articles: g.MustByName("articles")}
	f.articleAuthor, _ = f.articles.Relationship("author")
	f.articleComments, _ = f.articles.Relationship("comments")

	alice := &Person{ID: 1, Name: "Alice"}
	a1 := &Article{ID: 1, Title: "First", Author: alice}
	a2 := &Article{ID: 2, Title: "Second", Author: alice}
	a3 := &Article{ID: 3, Title: "Third"}
	c1 := &Comment{ID: 1, Text: "nice", Article: a1}
	c2 := &Comment{ID: 2, Text: "meh", Article: a1}
	a1.Comments = []*Comment{c1, c2}
	alice.Articles = []*Article{a1, a2}
	require.NoError(t, f.store.Add(a1, a2, a3, alice, c1, c2))

	options = append([]Option{WithExecutor(f.store), WithOptions(config.DefaultOptions())}, options...)
	f.service, err = New(g, options...)
	require.NoError(t, err)
	return f
}

func (f *fixture) collection() *query.Request {
	return &query.Request{Kind: query.PrimaryEndpoint, PrimaryType: f.articles}
}

func (f *fixture) single(id string) *query.Request {
	return &query.Request{Kind: query.PrimaryEndpoint, PrimaryType: f.articles, PrimaryID: id}
}

func (f *fixture) related(kind query.EndpointKind, id string, rel *resource.Relationship) *query.Request {
	return &query.Request{Kind: kind, PrimaryType: f.articles, PrimaryID: id, Relationship: rel}
}

func values(t *testing.T, raw string) url.Values {
	t.Helper()
	v, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return v
}
