package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/query/builder"
	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/query/queryable"
	"github.com/neuronlabs/jsonapi/resource"
	"github.com/neuronlabs/jsonapi/store"
)

func TestExecute(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	where := func(t *testing.T, filter expression.FilterExpression) []int {
		t.Helper()
		b := builder.New(f.articles)
		q, err := b.ApplyWhere(b.Source(), filter)
		require.NoError(t, err)
		result, err := f.store.Execute(ctx, q)
		require.NoError(t, err)
		return ids(t, result)
	}

	t.Run("Source", func(t *testing.T) {
		result, err := f.store.Execute(ctx, &queryable.Source{ResourceType: f.articles})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, ids(t, result))

		first := result[0].(*Article)
		assert.NotSame(t, f.a1, first)
		assert.Equal(t, "Zebra", first.Title)
		assert.Nil(t, first.Author)
		assert.Nil(t, first.Comments)
		// stored models stay untouched.
		assert.Same(t, f.alice, f.a1.Author)
	})

	t.Run("WhereOrderTake", func(t *testing.T) {
		b := builder.New(f.articles)
		q, err := b.ApplyWhere(b.Source(), comparison(t, expression.GreaterOrEqual, chain(f.views), expression.NewTypedLiteral("10", 10)))
		require.NoError(t, err)
		element, err := expression.NewSortElement(chain(f.views), false)
		require.NoError(t, err)
		sort, err := expression.NewSort(element)
		require.NoError(t, err)
		q, err = b.ApplyOrderBy(q, sort)
		require.NoError(t, err)

		result, err := f.store.Execute(ctx, b.ApplySkipTake(q, pagination(t, 1, 1)))
		require.NoError(t, err)
		assert.Equal(t, []int{3}, ids(t, result))

		result, err = f.store.Execute(ctx, b.ApplySkipTake(q, pagination(t, 2, 1)))
		require.NoError(t, err)
		assert.Equal(t, []int{1}, ids(t, result))
	})

	t.Run("CollatedOrder", func(t *testing.T) {
		b := builder.New(f.articles)
		element, err := expression.NewSortElement(chain(f.title), true)
		require.NoError(t, err)
		sort, err := expression.NewSort(element)
		require.NoError(t, err)
		q, err := b.ApplyOrderBy(b.Source(), sort)
		require.NoError(t, err)

		result, err := f.store.Execute(ctx, q)
		require.NoError(t, err)
		// byte order would be: Zebra, apple, Äpfel.
		assert.Equal(t, []int{3, 2, 1}, ids(t, result))
	})

	t.Run("Filters", func(t *testing.T) {
		has, err := expression.NewHas(chain(f.articleComments), comparison(t, expression.Equals, chain(f.text), expression.NewLiteral("third")))
		require.NoError(t, err)
		assert.Equal(t, []int{2}, where(t, has))

		anyOf, err := expression.NewAny(chain(f.title), expression.NewLiteral("apple"), expression.NewLiteral("Zebra"))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, where(t, anyOf))

		count, err := expression.NewCount(chain(f.articleComments))
		require.NoError(t, err)
		assert.Equal(t, []int{1}, where(t, comparison(t, expression.GreaterThan, count, expression.NewTypedLiteral("1", int64(1)))))

		assert.Equal(t, []int{3}, where(t, comparison(t, expression.Equals, chain(f.articleAuthor), expression.NullValue)))

		match, err := expression.NewMatchText(expression.StartsWith, chain(f.articleAuthor, f.name), expression.NewLiteral("A"))
		require.NoError(t, err)
		assert.Equal(t, []int{1}, where(t, match))

		not, err := expression.NewNot(match)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3}, where(t, not))

		or, err := expression.NewLogical(expression.Or,
			comparison(t, expression.LessThan, chain(f.views), expression.NewTypedLiteral("6", 6)),
			comparison(t, expression.Equals, chain(f.title), expression.NewLiteral("Äpfel")))
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3}, where(t, or))
	})

	t.Run("Include", func(t *testing.T) {
		b := builder.New(f.articles)
		include, err := expression.IncludeFromChains(chain(f.articleAuthor))
		require.NoError(t, err)
		q, err := b.ApplyInclude(b.Source(), include)
		require.NoError(t, err)

		result, err := f.store.Execute(ctx, q)
		require.NoError(t, err)
		first := result[0].(*Article)
		require.NotNil(t, first.Author)
		assert.NotSame(t, f.alice, first.Author)
		assert.Equal(t, "Alice", first.Author.Name)
		assert.Nil(t, first.Author.Articles)
		assert.Nil(t, first.Comments)
	})

	t.Run("EagerLoads", func(t *testing.T) {
		b := builder.New(f.comments)
		q, err := b.ApplyInclude(b.Source(), nil)
		require.NoError(t, err)

		result, err := f.store.Execute(ctx, q)
		require.NoError(t, err)
		require.Len(t, result, 3)
		first := result[0].(*Comment)
		require.NotNil(t, first.Author)
		assert.Equal(t, "Bob", first.Author.Name)
		assert.Nil(t, first.Article)
	})

	t.Run("ComposedEagerLoads", func(t *testing.T) {
		layer, err := query.NewComposer(nil, nil).Compose(f.comments)
		require.NoError(t, err)
		q, err := builder.New(f.comments).ApplyQuery(layer)
		require.NoError(t, err)

		result, err := f.store.Execute(ctx, q)
		require.NoError(t, err)
		require.Len(t, result, 3)
		for _, m := range result {
			comment := m.(*Comment)
			assert.NotNil(t, comment.Author, "comment: %d", comment.ID)
			assert.Nil(t, comment.Article)
		}
		assert.Equal(t, "Bob", result[0].(*Comment).Author.Name)
	})

	t.Run("Projection", func(t *testing.T) {
		set, err := expression.NewSparseFieldSet(f.title)
		require.NoError(t, err)
		table, err := expression.NewSparseFieldTable(map[*resource.Type]*expression.SparseFieldSet{f.articles: set})
		require.NoError(t, err)
		layer, err := query.NewComposer(nil, nil, query.Constraints{{Expression: table}}).Compose(f.articles)
		require.NoError(t, err)
		q, err := builder.New(f.articles).ApplyQuery(layer)
		require.NoError(t, err)

		result, err := f.store.Execute(ctx, q)
		require.NoError(t, err)
		require.Len(t, result, 3)
		first := result[0].(*Article)
		assert.Equal(t, 1, first.ID)
		assert.Equal(t, "Zebra", first.Title)
		assert.Zero(t, first.Views)
		assert.Nil(t, first.Author)
	})

	t.Run("NestedPagination", func(t *testing.T) {
		include, err := expression.IncludeFromChains(chain(f.articleComments))
		require.NoError(t, err)
		constraints := query.Constraints{
			{Expression: include},
			{Scope: chain(f.articleComments), Expression: pagination(t, 1, 1)},
		}
		layer, err := query.NewComposer(nil, nil, constraints).Compose(f.articles)
		require.NoError(t, err)
		q, err := builder.New(f.articles).ApplyQuery(layer)
		require.NoError(t, err)

		result, err := f.store.Execute(ctx, q)
		require.NoError(t, err)
		first := result[0].(*Article)
		assert.Equal(t, "Zebra", first.Title)
		require.Len(t, first.Comments, 1)
		assert.Equal(t, 1, first.Comments[0].ID)
		require.NotNil(t, first.Comments[0].Author)
		assert.Equal(t, "Bob", first.Comments[0].Author.Name)
		assert.Nil(t, first.Comments[0].Article)

		third := result[2].(*Article)
		assert.Empty(t, third.Comments)
	})
}

func TestCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	q, err := builder.New(f.articles).ApplyCount(comparison(t, expression.GreaterThan, chain(f.views), expression.NewTypedLiteral("5", 5)))
	require.NoError(t, err)
	count, err := f.store.Count(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = f.store.Execute(ctx, q)
	assert.True(t, errors.Is(err, store.ErrUnsupportedQuery))

	_, err = f.store.Count(ctx, &queryable.Source{ResourceType: f.articles})
	assert.True(t, errors.Is(err, store.ErrUnsupportedQuery))
}

func TestCancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.store.Execute(ctx, &queryable.Source{ResourceType: f.articles})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAdd(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.store.Add(&Article{ID: 2, Title: "replaced"}))
	result, err := f.store.Execute(context.Background(), &queryable.Source{ResourceType: f.articles})
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, "replaced", result[1].(*Article).Title)

	type unmapped struct{ ID int }
	assert.Error(t, f.store.Add(&unmapped{ID: 1}))
}
