package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

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
	Author  *Person
}

type fixture struct {
	articles, people, comments *resource.Type

	title, name, text *resource.Attr

	// relationships
	articleAuthor, articleComments, personArticles, commentAuthor *resource.Relationship
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
	f.personArticles, _ = f.people.Relationship("articles")
	f.commentAuthor, _ = f.comments.Relationship("author")
	return f
}
