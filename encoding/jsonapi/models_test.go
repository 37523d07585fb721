package jsonapi

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/resource"
)

type Article struct {
	ID       int
	Title    string
	Secret   string `jsonapi:"type=attr;flags=hidden"`
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
	Article *Article `jsonapi:"type=relation;links=none"`
	Author  *Person
}

type fixture struct {
	graph *resource.Graph

	articles, people, comments *resource.Type

	title *resource.Attr

	articleAuthor, articleComments, commentAuthor, commentArticle *resource.Relationship
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	g, err := resource.NewGraphBuilder(nil).Add(&Article{}, &Person{}, &Comment{}).Build()
	require.NoError(t, err)

	f := &fixture{
		graph:    g,
		articles: g.MustByName("articles"),
		people:   g.MustByName("people"),
		comments: g.MustByName("comments"),
	}
	f.title, _ = f.articles.Attr("title")
	f.articleAuthor, _ = f.articles.Relationship("author")
	f.articleComments, _ = f.articles.Relationship("comments")
	f.commentAuthor, _ = f.comments.Relationship("author")
	f.commentArticle, _ = f.comments.Relationship("article")
	return f
}

func chain(fields ...resource.Field) *expression.ResourceFieldChain {
	return expression.MustResourceFieldChain(fields...)
}

func include(t *testing.T, chains ...*expression.ResourceFieldChain) *expression.Include {
	t.Helper()
	i, err := expression.IncludeFromChains(chains...)
	require.NoError(t, err)
	return i
}

func fieldTable(t *testing.T, rt *resource.Type, fields ...resource.Field) *expression.SparseFieldTable {
	t.Helper()
	set, err := expression.NewSparseFieldSet(fields...)
	require.NoError(t, err)
	table, err := expression.NewSparseFieldTable(map[*resource.Type]*expression.SparseFieldSet{rt: set})
	require.NoError(t, err)
	return table
}

func pagination(t *testing.T, number, size int) *expression.Pagination {
	t.Helper()
	n, err := expression.NewPageNumber(number)
	require.NoError(t, err)
	s, err := expression.NewPageSize(size)
	require.NoError(t, err)
	return expression.NewPagination(n, s)
}

// compose composes the query for the 'request' so that the composer caches are filled.
func compose(t *testing.T, request *query.Request, constraints ...expression.Expression) *query.Composer {
	t.Helper()
	var scoped query.Constraints
	for _, c := range constraints {
		scoped = append(scoped, query.ExpressionInScope{Expression: c})
	}
	composer := query.NewComposer(nil, nil, scoped)
	var err error
	switch request.Kind {
	case query.PrimaryEndpoint:
		if request.PrimaryID != "" {
			_, err = composer.ComposeForGetByID(request.PrimaryID, request.PrimaryType)
		} else {
			_, err = composer.Compose(request.PrimaryType)
		}
	case query.SecondaryEndpoint:
		_, err = composer.ComposeSecondaryLayerForRelationship(request.Relationship)
	case query.RelationshipEndpoint:
		_, err = composer.ComposeForRelationshipIdentifiers(request.Relationship)
	}
	require.NoError(t, err)
	return composer
}

func links(t *testing.T, rawURL string) *LinkBuilder {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return NewLinkBuilder(u, "http://example.com", "", false)
}

// blog creates the models graph:
// article 1 by alice with comments 1 (by bob) and 2 (by alice); article 2 by alice; article 3 without author.
func blog() (articles []*Article, alice, bob *Person) {
	alice = &Person{ID: 1, Name: "Alice"}
	bob = &Person{ID: 2, Name: "Bob"}
	a1 := &Article{ID: 1, Title: "First", Secret: "s1", Author: alice}
	a2 := &Article{ID: 2, Title: "Second", Author: alice}
	a3 := &Article{ID: 3, Title: "Third"}
	a1.Comments = []*Comment{
		{ID: 1, Text: "c1", Article: a1, Author: bob},
		{ID: 2, Text: "c2", Article: a1, Author: alice},
	}
	return []*Article{a1, a2, a3}, alice, bob
}
