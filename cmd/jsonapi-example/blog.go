package main

import (
	"strings"
	"time"

	"github.com/neuronlabs/jsonapi/config"
	"github.com/neuronlabs/jsonapi/definition"
	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/resource"
	"github.com/neuronlabs/jsonapi/server"
	"github.com/neuronlabs/jsonapi/service"
	"github.com/neuronlabs/jsonapi/store"
	"github.com/neuronlabs/jsonapi/store/memory"
)

// Article is the blog article.
type Article struct {
	ID        int
	Title     string
	Body      string
	Published bool
	CreatedAt time.Time
	Author    *Person
	Comments  []*Comment
}

// Person is the author of the articles and comments.
type Person struct {
	ID       int
	Name     string
	Email    string     `jsonapi:"type=attr;flags=hidden"`
	Articles []*Article `jsonapi:"type=relation;inverse=author"`
}

// Comment is the article comment.
type Comment struct {
	ID      int
	Text    string
	Article *Article
	Author  *Person `jsonapi:"type=relation;flags=eager"`
}

// articleDefinition serves only the published articles.
type articleDefinition struct {
	published *resource.Attr
}

func (a *articleDefinition) OnApplyFilter(existing expression.FilterExpression) (expression.FilterExpression, error) {
	published, err := expression.NewComparison(expression.Equals, expression.MustResourceFieldChain(a.published),
		expression.NewTypedLiteral("true", true))
	if err != nil {
		return nil, err
	}
	return expression.AndAll(existing, published), nil
}

func (a *articleDefinition) GetMeta(model interface{}) map[string]interface{} {
	article, ok := model.(*Article)
	if !ok || article.Body == "" {
		return nil
	}
	return map[string]interface{}{"words": len(strings.Fields(article.Body))}
}

// newBlog creates the service with the in-memory blog and the server bound to it.
func newBlog(c *config.Config) (*service.Service, *server.Server, error) {
	graph, err := resource.NewGraphBuilder(c.Options).Add(&Article{}, &Person{}, &Comment{}).Build()
	if err != nil {
		return nil, nil, err
	}
	s := memory.New(graph, store.WithCollation(c.Options.Collation))
	if err = s.Add(seed()...); err != nil {
		return nil, nil, err
	}

	articles := graph.MustByName("articles")
	def := &articleDefinition{}
	def.published, _ = articles.Attr("published")
	registry := definition.NewRegistry()
	if err = registry.Register(articles, def); err != nil {
		return nil, nil, err
	}

	svc, err := service.New(graph,
		service.WithOptions(c.Options),
		service.WithAccessor(registry),
		service.WithExecutor(s),
	)
	if err != nil {
		return nil, nil, err
	}
	srv, err := server.New(svc, server.WithConfig(c.Server))
	if err != nil {
		return nil, nil, err
	}
	svc.Server = srv
	return svc, srv, nil
}

func seed() []interface{} {
	created := time.Date(2020, 5, 1, 12, 0, 0, 0, time.UTC)
	alice := &Person{ID: 1, Name: "Alice", Email: "alice@example.com"}
	bob := &Person{ID: 2, Name: "Bob", Email: "bob@example.com"}
	chloe := &Person{ID: 3, Name: "Chloé", Email: "chloe@example.com"}

	articles := []*Article{
		{ID: 1, Title: "Getting started", Body: "The first steps with the blog.", Published: true, CreatedAt: created, Author: alice},
		{ID: 2, Title: "Écrire en français", Body: "Les accents sont triés correctement.", Published: true, CreatedAt: created.AddDate(0, 1, 0), Author: chloe},
		{ID: 3, Title: "advanced queries", Body: "Filters, includes and sparse fieldsets.", Published: true, CreatedAt: created.AddDate(0, 2, 0), Author: alice},
		{ID: 4, Title: "Draft", Body: "Not ready yet.", CreatedAt: created.AddDate(0, 3, 0), Author: bob},
	}
	comments := []*Comment{
		{ID: 1, Text: "Great intro!", Article: articles[0], Author: bob},
		{ID: 2, Text: "Thanks.", Article: articles[0], Author: alice},
		{ID: 3, Text: "Très bien.", Article: articles[1], Author: alice},
		{ID: 4, Text: "Can you show sorting by count?", Article: articles[2], Author: chloe},
	}
	for _, c := range comments {
		c.Article.Comments = append(c.Article.Comments, c)
	}
	for _, a := range articles {
		a.Author.Articles = append(a.Author.Articles, a)
	}

	models := []interface{}{alice, bob, chloe}
	for _, a := range articles {
		models = append(models, a)
	}
	for _, c := range comments {
		models = append(models, c)
	}
	return models
}
