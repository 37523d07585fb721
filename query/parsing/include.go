package parsing

import (
	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/resource"
)

// ParseInclude parses the include 'value' for the resource type 'rt' i.e.: author,comments.author.
// The 'maxDepth' limits the length of the relationship chains, 0 means unlimited.
func ParseInclude(parameter, value string, rt *resource.Type, maxDepth int) (*expression.Include, error) {
	stream, err := newTokenStream(parameter, value)
	if err != nil {
		return nil, err
	}
	resolver := fieldResolver{parameter: parameter}

	var chains []*expression.ResourceFieldChain
	for {
		t := stream.next()
		if t.kind != tokenText {
			return nil, stream.errorf(query.ErrSyntax, "relationship name expected, but found: %s", t)
		}
		fields, err := resolver.includeChain(rt, t.value)
		if err != nil {
			return nil, err
		}
		if maxDepth > 0 && len(fields) > maxDepth {
			return nil, stream.errorf(query.ErrNotIncludable, "including '%s' exceeds the maximum include depth of %d", t.value, maxDepth)
		}
		chain, err := expression.NewResourceFieldChain(fields...)
		if err != nil {
			return nil, err
		}
		chains = append(chains, chain)
		if !stream.peekKind(tokenComma) {
			break
		}
		stream.next()
	}
	if err = stream.expectEOF(); err != nil {
		return nil, err
	}
	return expression.IncludeFromChains(chains...)
}
