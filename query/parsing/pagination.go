package parsing

import (
	"strconv"

	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/resource"
)

// ParsePagination parses the page 'value' i.e.: 10,comments:5. Each element is optionally scoped with
// the to-many relationship chain, relative to the resource type 'rt'.
func ParsePagination(parameter, value string, rt *resource.Type) (*expression.PaginationQueryStringValue, error) {
	stream, err := newTokenStream(parameter, value)
	if err != nil {
		return nil, err
	}
	resolver := fieldResolver{parameter: parameter}

	var elements []*expression.PaginationElementQueryStringValue
	for {
		var scope *expression.ResourceFieldChain
		if stream.peekKind(tokenText) && len(stream.tokens) > stream.pos+1 && stream.tokens[stream.pos+1].kind == tokenColon {
			t := stream.next()
			stream.next()
			fields, err := resolver.scopeChain(rt, t.value)
			if err != nil {
				return nil, err
			}
			if scope, err = expression.NewResourceFieldChain(fields...); err != nil {
				return nil, err
			}
		}
		negative := false
		if stream.peekKind(tokenMinus) {
			stream.next()
			negative = true
		}
		t := stream.next()
		if t.kind != tokenText {
			return nil, stream.errorf(query.ErrSyntax, "number expected, but found: %s", t)
		}
		number, err := strconv.Atoi(t.value)
		if err != nil {
			return nil, stream.errorf(query.ErrInvalidPage, "value '%s' is not a valid number", t.value)
		}
		if negative {
			number = -number
		}
		elements = append(elements, expression.NewPaginationElementQueryStringValue(scope, number))
		if !stream.peekKind(tokenComma) {
			break
		}
		stream.next()
	}
	if err = stream.expectEOF(); err != nil {
		return nil, err
	}
	return expression.NewPaginationQueryStringValue(elements...)
}
