package parsing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/resource"
)

type Article struct {
	ID        int
	Title     string
	Views     int
	Rating    *float64
	Secret    string    `jsonapi:"type=attr;flags=hidden"`
	Internal  string    `jsonapi:"type=attr;flags=nofilter,nosort,noview"`
	CreatedAt time.Time `jsonapi:"type=attr;flags=nosort"`
	Author    *Person
	Comments  []*Comment
	Revisions []*Revision `jsonapi:"type=relation;flags=noinclude"`
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

type Revision struct {
	ID      int
	Number  int
	Article *Article
}

func newGraph(t *testing.T) *resource.Graph {
	t.Helper()
	g, err := resource.NewGraphBuilder(nil).Add(&Article{}, &Person{}, &Comment{}, &Revision{}).Build()
	require.NoError(t, err)
	return g
}

func collectionRequest(g *resource.Graph) *query.Request {
	return &query.Request{Kind: query.PrimaryEndpoint, PrimaryType: g.MustByName("articles")}
}

func singleRequest(g *resource.Graph) *query.Request {
	return &query.Request{Kind: query.PrimaryEndpoint, PrimaryType: g.MustByName("articles"), PrimaryID: "1"}
}
