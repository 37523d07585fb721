package expression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/resource"
)

func TestResourceFieldChain(t *testing.T) {
	f := newFixture(t)

	t.Run("Empty", func(t *testing.T) {
		_, err := NewResourceFieldChain()
		assert.True(t, errors.Is(err, ErrInvalidExpression))
	})

	t.Run("AttributeInTheMiddle", func(t *testing.T) {
		_, err := NewResourceFieldChain(f.title, f.name)
		assert.True(t, errors.Is(err, ErrInvalidExpression))
	})

	t.Run("Valid", func(t *testing.T) {
		chain, err := NewResourceFieldChain(f.articleAuthor, f.name)
		require.NoError(t, err)
		assert.Equal(t, "author.name", chain.String())
		assert.Equal(t, 2, chain.Len())
		assert.Equal(t, f.name, chain.Last())
		assert.Equal(t, "author", chain.Prefix(1).String())

		_, ok := chain.Relationships()
		assert.False(t, ok)
	})
}

func TestFilterStrings(t *testing.T) {
	f := newFixture(t)
	title := MustResourceFieldChain(f.title)
	comments := MustResourceFieldChain(f.articleComments)

	equals, err := NewComparison(Equals, title, NewLiteral("Don't"))
	require.NoError(t, err)
	assert.Equal(t, "equals(title,'Don''t')", equals.String())

	isNull, err := NewComparison(Equals, MustResourceFieldChain(f.articleAuthor), NullValue)
	require.NoError(t, err)
	assert.Equal(t, "equals(author,null)", isNull.String())

	count, err := NewCount(comments)
	require.NoError(t, err)
	greater, err := NewComparison(GreaterThan, count, NewLiteral("2"))
	require.NoError(t, err)
	assert.Equal(t, "greaterThan(count(comments),'2')", greater.String())

	match, err := NewMatchText(StartsWith, title, NewLiteral("A"))
	require.NoError(t, err)
	assert.Equal(t, "startsWith(title,'A')", match.String())

	anyOf, err := NewAny(title, NewLiteral("a"), NewLiteral("b"))
	require.NoError(t, err)
	assert.Equal(t, "any(title,'a','b')", anyOf.String())

	textFilter, err := NewMatchText(Contains, MustResourceFieldChain(f.text), NewLiteral("x"))
	require.NoError(t, err)
	has, err := NewHas(comments, textFilter)
	require.NoError(t, err)
	assert.Equal(t, "has(comments,contains(text,'x'))", has.String())

	or, err := NewLogical(Or, equals, match)
	require.NoError(t, err)
	not, err := NewNot(or)
	require.NoError(t, err)
	assert.Equal(t, "not(or(equals(title,'Don''t'),startsWith(title,'A')))", not.String())

	t.Run("LogicalRequiresTwoTerms", func(t *testing.T) {
		_, err := NewLogical(And, equals)
		assert.True(t, errors.Is(err, ErrInvalidExpression))
	})

	t.Run("InvalidComparisonOperand", func(t *testing.T) {
		_, err := NewComparison(Equals, NewLiteral("a"), title)
		assert.True(t, errors.Is(err, ErrInvalidExpression))
	})

	t.Run("And", func(t *testing.T) {
		assert.Nil(t, AndAll())
		assert.Equal(t, equals, AndAll(nil, equals))
		combined := AndAll(equals, match)
		logical, ok := combined.(*Logical)
		require.True(t, ok)
		assert.Equal(t, And, logical.Operator())
		assert.Len(t, logical.Terms(), 2)
	})
}

func TestParseOperators(t *testing.T) {
	op, ok := ParseComparisonOperator("greaterOrEqual")
	require.True(t, ok)
	assert.Equal(t, GreaterOrEqual, op)

	// the operators are case sensitive.
	_, ok = ParseComparisonOperator("Equals")
	assert.False(t, ok)

	kind, ok := ParseTextMatchKind("endsWith")
	require.True(t, ok)
	assert.Equal(t, EndsWith, kind)
}

func TestSort(t *testing.T) {
	f := newFixture(t)
	_, err := NewSort()
	assert.True(t, errors.Is(err, ErrInvalidExpression))

	title, err := NewSortElement(MustResourceFieldChain(f.title), false)
	require.NoError(t, err)
	id, err := NewSortElement(MustResourceFieldChain(f.articles.ID()), true)
	require.NoError(t, err)

	s, err := NewSort(title, id)
	require.NoError(t, err)
	assert.Equal(t, "-title,id", s.String())

	_, err = NewSortElement(NewLiteral("x"), true)
	assert.True(t, errors.Is(err, ErrInvalidExpression))
}

func TestPagination(t *testing.T) {
	_, err := NewPageNumber(0)
	assert.True(t, errors.Is(err, ErrInvalidExpression))
	_, err = NewPageSize(0)
	assert.True(t, errors.Is(err, ErrInvalidExpression))

	number, err := NewPageNumber(3)
	require.NoError(t, err)
	size, err := NewPageSize(10)
	require.NoError(t, err)

	p := NewPagination(number, size)
	assert.Equal(t, 3, p.PageNumber().OneBasedValue())
	assert.Equal(t, 10, p.PageSize().Value())
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, "Page number: 3, size: 10", p.String())

	t.Run("FirstPageOffsetIsZero", func(t *testing.T) {
		for _, s := range []int{1, 7, 100} {
			size, err := NewPageSize(s)
			require.NoError(t, err)
			assert.Equal(t, 0, NewPagination(FirstPage, size).Offset())
		}
	})

	t.Run("Unbounded", func(t *testing.T) {
		p := NewPagination(PageNumber{}, nil)
		assert.Equal(t, 1, p.PageNumber().OneBasedValue())
		assert.Nil(t, p.PageSize())
		assert.Equal(t, "Page number: 1, size: (none)", p.String())
	})
}

func TestSparseFieldSet(t *testing.T) {
	f := newFixture(t)
	_, err := NewSparseFieldSet()
	assert.True(t, errors.Is(err, ErrInvalidExpression))

	set, err := NewSparseFieldSet(f.title, f.title, f.articleAuthor)
	require.NoError(t, err)
	assert.Len(t, set.Fields(), 2)
	assert.Equal(t, "title,author", set.String())

	withID := set.With(f.articles.ID())
	assert.Len(t, withID.Fields(), 3)
	assert.Len(t, set.Fields(), 2)
	assert.Same(t, withID, withID.With(f.title))

	table, err := NewSparseFieldTable(map[*resource.Type]*SparseFieldSet{f.people: mustSet(t, f.name), f.articles: set})
	require.NoError(t, err)
	assert.Equal(t, "articles(title,author),people(name)", table.String())
}

func TestInclude(t *testing.T) {
	f := newFixture(t)

	_, err := NewInclude()
	assert.True(t, errors.Is(err, ErrInvalidExpression))

	include, err := IncludeFromChains(
		MustResourceFieldChain(f.articleAuthor, f.personArticles),
		MustResourceFieldChain(f.articleComments),
		MustResourceFieldChain(f.articleAuthor),
		MustResourceFieldChain(f.articleComments, f.commentAuthor),
	)
	require.NoError(t, err)

	require.Len(t, include.Elements(), 2)
	assert.Equal(t, f.articleAuthor, include.Elements()[0].Relationship())
	assert.Equal(t, "author{articles},comments{author}", include.Elements()[0].String()+","+include.Elements()[1].String())
	assert.Equal(t, "author.articles,comments.author", include.String())

	assert.True(t, include.Contains(MustResourceFieldChain(f.articleComments)))
	assert.False(t, include.Contains(MustResourceFieldChain(f.articleAuthor, f.personArticles, f.articleComments)))

	t.Run("NonRelationship", func(t *testing.T) {
		_, err := IncludeFromChains(MustResourceFieldChain(f.title))
		assert.True(t, errors.Is(err, ErrInvalidExpression))
	})

	t.Run("Empty", func(t *testing.T) {
		include, err := IncludeFromChains()
		require.NoError(t, err)
		assert.Nil(t, include)
	})
}

func TestEqual(t *testing.T) {
	f := newFixture(t)
	build := func() FilterExpression {
		a, _ := NewComparison(Equals, MustResourceFieldChain(f.title), NewTypedLiteral("x", "x"))
		b, _ := NewMatchText(Contains, MustResourceFieldChain(f.articleAuthor, f.name), NewLiteral("y"))
		l, _ := NewLogical(And, a, b)
		return l
	}
	assert.True(t, Equal(build(), build()))
	assert.False(t, Equal(build(), nil))
	assert.True(t, Equal(nil, nil))

	first, _ := IncludeFromChains(MustResourceFieldChain(f.articleAuthor), MustResourceFieldChain(f.articleComments))
	second, _ := IncludeFromChains(MustResourceFieldChain(f.articleComments), MustResourceFieldChain(f.articleAuthor))
	assert.True(t, Equal(first, second))

	size, _ := NewPageSize(5)
	assert.False(t, Equal(NewPagination(FirstPage, size), NewPagination(FirstPage, nil)))
}

type countingVisitor struct {
	BaseVisitor[int, int]
}

func (c countingVisitor) VisitLiteral(_ *Literal, depth int) (int, error) {
	return depth, nil
}

func TestVisit(t *testing.T) {
	f := newFixture(t)
	v := countingVisitor{}

	depth, err := Visit[int, int](NewLiteral("a"), v, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, depth)

	_, err = Visit[int, int](MustResourceFieldChain(f.title), v, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedExpression))
	assert.True(t, errors.Is(err, errors.ErrInternal))
}

func TestRewrite(t *testing.T) {
	f := newFixture(t)
	a, _ := NewComparison(Equals, MustResourceFieldChain(f.title), NewLiteral("a"))
	b, _ := NewMatchText(Contains, MustResourceFieldChain(f.title), NewLiteral("b"))
	l, _ := NewLogical(Or, a, b)

	t.Run("Identity", func(t *testing.T) {
		rewritten, err := RewriteFilter(l, func(e Expression) (Expression, error) { return e, nil })
		require.NoError(t, err)
		assert.Same(t, l, rewritten)
	})

	t.Run("ReplaceLiteral", func(t *testing.T) {
		rewritten, err := Rewrite(l, func(e Expression) (Expression, error) {
			if lit, ok := e.(*Literal); ok && lit.Value() == "a" {
				return NewLiteral("c"), nil
			}
			return e, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "or(equals(title,'c'),contains(title,'b'))", rewritten.String())
		// the original is not modified.
		assert.Equal(t, "or(equals(title,'a'),contains(title,'b'))", l.String())
	})

	t.Run("RemoveTerm", func(t *testing.T) {
		rewritten, err := RewriteFilter(l, func(e Expression) (Expression, error) {
			if _, ok := e.(*MatchText); ok {
				return nil, nil
			}
			return e, nil
		})
		require.NoError(t, err)
		assert.Equal(t, a, rewritten)
	})
}

func mustSet(t *testing.T, fields ...resource.Field) *SparseFieldSet {
	t.Helper()
	set, err := NewSparseFieldSet(fields...)
	require.NoError(t, err)
	return set
}
