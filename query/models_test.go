package query

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/resource"
)

type Article struct {
	ID       int
	Title    string
	Body     string
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

	articles, people, comments *resource.Type

	title, body, name, text *resource.Attr

	articleAuthor, articleComments, personArticles, commentAuthor, commentArticle *resource.Relationship
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
	f.body, _ = f.articles.Attr("body")
	f.name, _ = f.people.Attr("name")
	f.text, _ = f.comments.Attr("text")
	f.articleAuthor, _ = f.articles.Relationship("author")
	f.articleComments, _ = f.articles.Relationship("comments")
	f.personArticles, _ = f.people.Relationship("articles")
	f.commentAuthor, _ = f.comments.Relationship("author")
	f.commentArticle, _ = f.comments.Relationship("article")
	return f
}

func chain(fields ...resource.Field) *expression.ResourceFieldChain {
	return expression.MustResourceFieldChain(fields...)
}

func equals(t *testing.T, attr *resource.Attr, value string) *expression.Comparison {
	t.Helper()
	c, err := expression.NewComparison(expression.Equals, chain(attr), expression.NewLiteral(value))
	require.NoError(t, err)
	return c
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

func top(e expression.Expression) ExpressionInScope {
	return ExpressionInScope{Expression: e}
}

// definitions used by the hook tests.
type paginationOverride struct {
	pagination *expression.Pagination
	received   *expression.Pagination
}

func (p *paginationOverride) OnApplyPagination(existing *expression.Pagination) (*expression.Pagination, error) {
	p.received = existing
	return p.pagination, nil
}

type titleSort struct {
	title *resource.Attr
}

func (s *titleSort) OnApplySort(existing *expression.Sort) (*expression.Sort, error) {
	element, err := expression.NewSortElement(chain(s.title), false)
	if err != nil {
		return nil, err
	}
	return expression.NewSort(element)
}

type noIncludes struct{}

func (noIncludes) OnApplyIncludes([]*expression.IncludeElement) ([]*expression.IncludeElement, error) {
	return nil, nil
}

// splitIncludes replaces the includes with the sibling elements of the same relationship.
type splitIncludes struct {
	f *fixture
}

func (s splitIncludes) OnApplyIncludes([]*expression.IncludeElement) ([]*expression.IncludeElement, error) {
	return []*expression.IncludeElement{
		expression.NewIncludeElement(s.f.articleComments, expression.NewIncludeElement(s.f.commentAuthor)),
		expression.NewIncludeElement(s.f.articleAuthor),
		expression.NewIncludeElement(s.f.articleComments, expression.NewIncludeElement(s.f.commentArticle)),
	}, nil
}

type fieldSetCounter struct {
	calls int
}

func (f *fieldSetCounter) OnApplySparseFieldSet(existing *expression.SparseFieldSet) (*expression.SparseFieldSet, error) {
	f.calls++
	return existing, nil
}
