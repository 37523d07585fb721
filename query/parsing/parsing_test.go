package parsing

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuronlabs/jsonapi/config"
	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/query/expression"
)

func parameterError(t *testing.T, err error) *InvalidQueryStringParameterError {
	t.Helper()
	require.Error(t, err)
	var perr *InvalidQueryStringParameterError
	require.True(t, errors.As(err, &perr), "%v", err)
	return perr
}

func TestSplitBracketParameter(t *testing.T) {
	values, err := SplitBracketParameter("[comments][author]")
	require.NoError(t, err)
	assert.Equal(t, []string{"comments", "author"}, values)

	_, err = SplitBracketParameter("[[comments]")
	assert.True(t, errors.Is(err, query.ErrSyntax))

	_, err = SplitBracketParameter("comments]")
	assert.True(t, errors.Is(err, query.ErrSyntax))

	base, bracket, ok, err := splitParameterName("filter[comments.author]")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "filter", base)
	assert.Equal(t, "comments.author", bracket)
}

func TestTokenize(t *testing.T) {
	tokens, err := tokenize("filter", "equals(title,'O''Brian'),-created-at:5")
	require.NoError(t, err)

	kinds := make([]tokenKind, len(tokens))
	for i, tk := range tokens {
		kinds[i] = tk.kind
	}
	assert.Equal(t, []tokenKind{
		tokenText, tokenOpenParen, tokenText, tokenComma, tokenQuotedText, tokenCloseParen,
		tokenComma, tokenMinus, tokenText, tokenColon, tokenText,
	}, kinds)
	assert.Equal(t, "O'Brian", tokens[4].value)
	assert.Equal(t, "created-at", tokens[8].value)

	_, err = tokenize("filter", "equals(title,'open")
	assert.True(t, errors.Is(err, query.ErrSyntax))
}

func TestParseFilter(t *testing.T) {
	g := newGraph(t)
	articles := g.MustByName("articles")

	testCases := []struct {
		value    string
		expected string
	}{
		{"equals(title,'Classified')", "equals(title,'Classified')"},
		{"greaterThan(views,'10')", "greaterThan(views,'10')"},
		{"equals(author.name,'Jane')", "equals(author.name,'Jane')"},
		{"equals(rating,null)", "equals(rating,null)"},
		{"lessThan(count(comments),'3')", "lessThan(count(comments),'3')"},
		{"contains(title,'news')", "contains(title,'news')"},
		{"any(views,'1','2')", "any(views,'1','2')"},
		{"has(comments)", "has(comments)"},
		{"has(comments,equals(text,'first'))", "has(comments,equals(text,'first'))"},
		{"not(equals(title,'a'))", "not(equals(title,'a'))"},
		{"or(equals(title,'a'),equals(title,'b'),equals(views,title))", "or(equals(title,'a'),equals(title,'b'),equals(views,title))"},
	}
	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			filter, err := ParseFilter("filter", tc.value, articles)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, filter.String())
		})
	}

	t.Run("TypedLiteral", func(t *testing.T) {
		filter, err := ParseFilter("filter", "greaterThan(views,'10')", articles)
		require.NoError(t, err)
		literal := filter.(*expression.Comparison).Right().(*expression.Literal)
		assert.Equal(t, 10, literal.Typed())
	})

	errorCases := []struct {
		name  string
		value string
		class error
	}{
		{"UnknownOperator", "foo(title,'x')", query.ErrUnknownOperator},
		{"UnknownField", "equals(missing,'x')", query.ErrUnknownField},
		{"HiddenField", "equals(secret,'x')", query.ErrUnknownField},
		{"NotFilterable", "equals(internal,'x')", query.ErrNotFilterable},
		{"InvalidValue", "equals(views,'ten')", query.ErrInvalidValue},
		{"NotNullable", "equals(views,null)", query.ErrInvalidValue},
		{"ToManyInChain", "equals(comments.text,'x')", query.ErrUnknownField},
		{"SingleLogicalTerm", "and(equals(title,'a'))", query.ErrSyntax},
		{"MissingParen", "equals(title,'a'", query.ErrSyntax},
		{"TrailingInput", "equals(title,'a'))", query.ErrSyntax},
		{"TextOnNumber", "contains(views,'1')", query.ErrInvalidValue},
		{"CaseSensitiveOperator", "Equals(title,'a')", query.ErrUnknownOperator},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFilter("filter", tc.value, articles)
			perr := parameterError(t, err)
			assert.True(t, errors.Is(err, tc.class), "%v", err)
			assert.Equal(t, "filter", perr.Parameter)
		})
	}

	t.Run("UnknownOperatorNamed", func(t *testing.T) {
		_, err := ParseFilter("filter", "foo(name,'x')", articles)
		perr := parameterError(t, err)
		assert.Contains(t, perr.Detail, "foo")
	})
}

func TestParseSort(t *testing.T) {
	g := newGraph(t)
	articles := g.MustByName("articles")

	sort, err := ParseSort("sort", "-title,count(comments),author.name", articles)
	require.NoError(t, err)
	assert.Equal(t, "-title,count(comments),author.name", sort.String())

	_, err = ParseSort("sort", "createdAt", articles)
	assert.True(t, errors.Is(err, query.ErrNotSortable))

	_, err = ParseSort("sort", "", articles)
	assert.True(t, errors.Is(err, query.ErrSyntax))
}

func TestParseInclude(t *testing.T) {
	g := newGraph(t)
	articles := g.MustByName("articles")

	include, err := ParseInclude("include", "comments.author,author,comments", articles, 0)
	require.NoError(t, err)
	assert.Len(t, include.Elements(), 2)

	_, err = ParseInclude("include", "revisions", articles, 0)
	assert.True(t, errors.Is(err, query.ErrNotIncludable))

	_, err = ParseInclude("include", "comments.author", articles, 1)
	assert.True(t, errors.Is(err, query.ErrNotIncludable))

	_, err = ParseInclude("include", "title", articles, 0)
	assert.True(t, errors.Is(err, query.ErrUnknownField))
}

func TestParseSparseFieldSet(t *testing.T) {
	g := newGraph(t)
	articles := g.MustByName("articles")

	set, err := ParseSparseFieldSet("fields[articles]", "title,author", articles)
	require.NoError(t, err)
	assert.Equal(t, "title,author", set.String())

	set, err = ParseSparseFieldSet("fields[articles]", "", articles)
	require.NoError(t, err)
	assert.Equal(t, "id", set.String())

	_, err = ParseSparseFieldSet("fields[articles]", "internal", articles)
	assert.True(t, errors.Is(err, query.ErrNotViewable))
}

func TestQueryStringReader(t *testing.T) {
	g := newGraph(t)
	articles := g.MustByName("articles")

	read := func(t *testing.T, options *config.Options, request *query.Request, raw string) (*QueryStringReader, error) {
		t.Helper()
		values, err := url.ParseQuery(raw)
		require.NoError(t, err)
		reader := NewQueryStringReader(g, options, request)
		return reader, reader.ReadAll(values)
	}

	t.Run("Compose", func(t *testing.T) {
		reader, err := read(t, nil, collectionRequest(g),
			"filter=equals(title,'Classified')&include=author&fields[articles]=title&page[size]=10&page[number]=3&sort=-views")
		require.NoError(t, err)

		layer, err := query.NewComposer(nil, nil, reader.Providers()...).Compose(articles)
		require.NoError(t, err)

		assert.Equal(t, "equals(title,'Classified')", layer.Filter.String())
		assert.Equal(t, "-views", layer.Sort.String())
		assert.Equal(t, 3, layer.Pagination.PageNumber().OneBasedValue())
		assert.Equal(t, 10, layer.Pagination.PageSize().Value())
		author, _ := articles.Relationship("author")
		child, ok := layer.Projection.Get(author)
		require.True(t, ok)
		assert.NotNil(t, child)
		title, _ := articles.Attr("title")
		assert.True(t, layer.Projection.Has(title))
		assert.True(t, layer.Projection.Has(articles.ID()))
	})

	t.Run("ScopedPagination", func(t *testing.T) {
		reader, err := read(t, nil, collectionRequest(g), "include=comments&page[size]=0,comments:5&filter[comments]=equals(text,'x')")
		require.NoError(t, err)

		layer, err := query.NewComposer(nil, nil, reader.Providers()...).Compose(articles)
		require.NoError(t, err)

		assert.Nil(t, layer.Pagination.PageSize())
		comments, _ := articles.Relationship("comments")
		child, _ := layer.Projection.Get(comments)
		require.NotNil(t, child)
		assert.Equal(t, 5, child.Pagination.PageSize().Value())
		assert.Equal(t, "equals(text,'x')", child.Filter.String())
	})

	t.Run("UnknownOperator", func(t *testing.T) {
		_, err := read(t, nil, collectionRequest(g), "filter=foo(name,'x')")
		require.Error(t, err)
		apiErrors := errors.ToAPIErrors(err)
		require.Len(t, apiErrors, 1)
		assert.Equal(t, "400", apiErrors[0].Status)
		assert.Equal(t, "filter", apiErrors[0].Source.Parameter)
		assert.Contains(t, apiErrors[0].Detail, "foo")
	})

	t.Run("UnknownParameter", func(t *testing.T) {
		_, err := read(t, nil, collectionRequest(g), "foo=bar")
		assert.True(t, errors.Is(err, query.ErrUnknownParameter))

		options := config.DefaultOptions()
		options.AllowUnknownQueryStringParameters = true
		_, err = read(t, options, collectionRequest(g), "foo=bar")
		assert.NoError(t, err)
	})

	t.Run("Duplicates", func(t *testing.T) {
		_, err := read(t, nil, collectionRequest(g), "sort=title&sort=-title")
		assert.True(t, errors.Is(err, query.ErrDuplicateParameter))

		_, err = read(t, nil, collectionRequest(g), "include=author&include=comments")
		assert.True(t, errors.Is(err, query.ErrDuplicateParameter))
	})

	t.Run("SingleResource", func(t *testing.T) {
		_, err := read(t, nil, singleRequest(g), "filter=equals(title,'x')")
		assert.True(t, errors.Is(err, query.ErrInvalidQueryStringParameter))

		_, err = read(t, nil, singleRequest(g), "include=comments&filter[comments]=equals(text,'x')")
		assert.NoError(t, err)
	})

	t.Run("PageLimits", func(t *testing.T) {
		options := config.DefaultOptions()
		options.MaximumPageSize = 20
		options.MaximumPageNumber = 5

		_, err := read(t, options, collectionRequest(g), "page[size]=21")
		assert.True(t, errors.Is(err, query.ErrInvalidPage))
		_, err = read(t, options, collectionRequest(g), "page[size]=0")
		assert.True(t, errors.Is(err, query.ErrInvalidPage))
		_, err = read(t, options, collectionRequest(g), "page[number]=6")
		assert.True(t, errors.Is(err, query.ErrInvalidPage))
		_, err = read(t, options, collectionRequest(g), "page[number]=0")
		assert.True(t, errors.Is(err, query.ErrInvalidPage))
		_, err = read(t, options, collectionRequest(g), "page[size]=-1")
		assert.True(t, errors.Is(err, query.ErrInvalidPage))
	})

	t.Run("MultipleErrors", func(t *testing.T) {
		_, err := read(t, nil, collectionRequest(g), "sort=missing&include=missing")
		multi, ok := err.(errors.MultiError)
		require.True(t, ok)
		assert.Len(t, multi, 2)
	})
}
