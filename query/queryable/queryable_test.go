package queryable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuronlabs/jsonapi/resource"
)

type Article struct {
	ID     int
	Title  string
	Author *Person
}

type Person struct {
	ID   int
	Name string
}

func TestString(t *testing.T) {
	g, err := resource.NewGraphBuilder(nil).Add(&Article{}, &Person{}).Build()
	require.NoError(t, err)
	articles := g.MustByName("articles")
	title, _ := articles.Attr("title")
	author, _ := articles.Relationship("author")

	param := &Parameter{Name: "article", ResourceType: articles}
	where := NewCall(Where, &Source{ResourceType: articles}, &Lambda{
		Parameter: param,
		Body:      &Binary{Operator: Equal, Left: &Member{Target: param, Field: title}, Right: &Constant{Value: "x"}},
	})
	include := NewCall(Include, where, &IncludePath{Relationships: []*resource.Relationship{author}})
	take := NewCall(Take, include, &Constant{Value: 10})

	assert.Equal(t, `articles.Where(article => (article.Title == "x")).Include("Author").Take(10)`, take.String())

	calls := Calls(take)
	require.Len(t, calls, 3)
	assert.Equal(t, Where, calls[0].Method)
	assert.Equal(t, Take, calls[2].Method)

	var members int
	Walk(take, func(e Expression) bool {
		if _, ok := e.(*Member); ok {
			members++
		}
		return true
	})
	assert.Equal(t, 1, members)
}

type countingVisitor struct {
	BaseVisitor[int, int]
}

func (countingVisitor) VisitConstant(e *Constant, arg int) (int, error) {
	return arg + 1, nil
}

func TestVisit(t *testing.T) {
	v := countingVisitor{}
	result, err := Visit[int, int](&Constant{Value: 1}, v, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, result)

	_, err = Visit[int, int](&Not{Operand: &Constant{}}, v, 1)
	assert.Error(t, err)
}
