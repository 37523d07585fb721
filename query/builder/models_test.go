package builder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/resource"
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
	Author  *Person `jsonapi:"type=relation;flags=eager"`
}

type fixture struct {
	articles, people, comments *resource.Type

	title, name, text *resource.Attr

	articleAuthor, articleComments, commentAuthor, commentArticle *resource.Relationship
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	g, err := resource.NewGraphBuilder(nil).Add(&Article{}, &Person{}, &Comment{}).Build()
	require.NoError(t, err)

	f := &fixture{
		articles: g.MustByName("articles"),
		people:   g.MustByName("people"),
		comments: g.MustByName("comments"),
	}
	f.title, _ = f.articles.Attr("title")
	f.name, _ = f.people.Attr("name")
	f.text, _ = f.comments.Attr("text")
	f.articleAuthor, _ = f.articles.Relationship("author")
	f.articleComments, _ = f.articles.Relationship("comments")
	f.commentAuthor, _ = f.comments.Relationship("author")
	f.commentArticle, _ = f.comments.Relationship("article")
	return f
}

func chain(fields ...resource.Field) *expression.ResourceFieldChain {
	return expression.MustResourceFieldChain(fields...)
}

func equals(t *testing.T, attr *resource.Attr, value string) expression.FilterExpression {
	t.Helper()
	c, err := expression.NewComparison(expression.Equals, chain(attr), expression.NewLiteral(value))
	require.NoError(t, err)
	return c
}

func compose(t *testing.T, rt *resource.Type, constraints ...expression.Expression) *query.QueryLayer {
	t.Helper()
	var scoped query.Constraints
	for _, c := range constraints {
		scoped = append(scoped, query.ExpressionInScope{Expression: c})
	}
	layer, err := query.NewComposer(nil, nil, scoped).Compose(rt)
	require.NoError(t, err)
	return layer
}

func fieldTable(t *testing.T, rt *resource.Type, fields ...resource.Field) *expression.SparseFieldTable {
	t.Helper()
	set, err := expression.NewSparseFieldSet(fields...)
	require.NoError(t, err)
	table, err := expression.NewSparseFieldTable(map[*resource.Type]*expression.SparseFieldSet{rt: set})
	require.NoError(t, err)
	return table
}

func include(t *testing.T, chains ...*expression.ResourceFieldChain) *expression.Include {
	t.Helper()
	i, err := expression.IncludeFromChains(chains...)
	require.NoError(t, err)
	return i
}
