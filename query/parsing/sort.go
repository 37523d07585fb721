package parsing

import (
	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/resource"
)

// ParseSort parses the sort 'value' for the resource type 'rt' i.e.: -createdAt,count(comments),author.name.
func ParseSort(parameter, value string, rt *resource.Type) (*expression.Sort, error) {
	stream, err := newTokenStream(parameter, value)
	if err != nil {
		return nil, err
	}
	p := &filterParser{tokenStream: stream, resolver: fieldResolver{parameter: parameter}}

	var elements []*expression.SortElement
	for {
		ascending := true
		if p.peekKind(tokenMinus) {
			p.next()
			ascending = false
		}
		var target expression.Expression
		if p.isCount() {
			target, err = p.count(rt)
		} else {
			target, err = sortChain(p, rt)
		}
		if err != nil {
			return nil, err
		}
		element, err := expression.NewSortElement(target, ascending)
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
		if !p.peekKind(tokenComma) {
			break
		}
		p.next()
	}
	if err = p.expectEOF(); err != nil {
		return nil, err
	}
	return expression.NewSort(elements...)
}

func sortChain(p *filterParser, rt *resource.Type) (*expression.ResourceFieldChain, error) {
	t := p.next()
	if t.kind != tokenText {
		return nil, p.errorf(query.ErrSyntax, "field name expected, but found: %s", t)
	}
	fields, err := p.resolver.attrChain(rt, t.value, sortable(p.parameter))
	if err != nil {
		return nil, err
	}
	return expression.NewResourceFieldChain(fields...)
}
