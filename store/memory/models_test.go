package memory

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/resource"
)

type Article struct {
	ID       int
	Title    string
	Views    int
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
	Author  *Person `jsonapi:"type=relation;flags=eager"`
}

type fixture struct {
	graph *resource.Graph
	store *Store

	articles, people, comments *resource.Type

	title, views, name, text *resource.Attr

	articleAuthor, articleComments *resource.Relationship

	a1, a2, a3 *Article
	alice, bob *Person
	c1, c2, c3 *Comment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	g, err := resource.NewGraphBuilder(nil).Add(&Article{}, &Person{}, &Comment{}).Build()
	require.NoError(t, err)

	f := &fixture{
		graph:    g,
		store:    New(g),
		articles: g.MustByName("articles"),
		people:   g.MustByName("people"),
		comments: g.MustByName("comments"),
	}
	f.title, _ = f.articles.Attr("title")
	f.views, _ = f.articles.Attr("views")
	f.name, _ = f.people.Attr("name")
	f.text, _ = f.comments.Attr("text")
	f.articleAuthor, _ = f.articles.Relationship("author")
	f.articleComments, _ = f.articles.Relationship("comments")

	f.alice = &Person{ID: 1, Name: "Alice"}
	f.bob = &Person{ID: 2, Name: "Bob"}
	f.a1 = &Article{ID: 1, Title: "Zebra", Views: 10, Author: f.alice}
	f.a2 = &Article{ID: 2, Title: "apple", Views: 5, Author: f.bob}
	f.a3 = &Article{ID: 3, Title: "Äpfel", Views: 20}
	f.c1 = &Comment{ID: 1, Text: "first", Article: f.a1, Author: f.bob}
	f.c2 = &Comment{ID: 2, Text: "second", Article: f.a1, Author: f.alice}
	f.c3 = &Comment{ID: 3, Text: "third", Article: f.a2, Author: f.alice}
	f.a1.Comments = []*Comment{f.c1, f.c2}
	f.a2.Comments = []*Comment{f.c3}
	f.alice.Articles = []*Article{f.a1}
	f.bob.Articles = []*Article{f.a2}

	require.NoError(t, f.store.Add(f.a1, f.a2, f.a3, f.alice, f.bob, f.c1, f.c2, f.c3))
	return f
}

func chain(fields ...resource.Field) *expression.ResourceFieldChain {
	return expression.MustResourceFieldChain(fields...)
}

func comparison(t *testing.T, op expression.ComparisonOperator, left, right expression.Expression) expression.FilterExpression {
	t.Helper()
	c, err := expression.NewComparison(op, left, right)
	require.NoError(t, err)
	return c
}

func pagination(t *testing.T, number, size int) *expression.Pagination {
	t.Helper()
	n, err := expression.NewPageNumber(number)
	require.NoError(t, err)
	s, err := expression.NewPageSize(size)
	require.NoError(t, err)
	return expression.NewPagination(n, s)
}

func ids(t *testing.T, models []interface{}) []int {
	t.Helper()
	result := make([]int, len(models))
	for i, m := range models {
		a, ok := m.(*Article)
		require.True(t, ok, "%T", m)
		result[i] = a.ID
	}
	return result
}
