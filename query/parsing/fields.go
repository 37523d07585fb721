package parsing

import (
	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/resource"
)

// ParseSparseFieldSet parses the comma separated field names of the resource type 'rt'.
// The empty value selects only the resource identifier.
func ParseSparseFieldSet(parameter, value string, rt *resource.Type) (*expression.SparseFieldSet, error) {
	stream, err := newTokenStream(parameter, value)
	if err != nil {
		return nil, err
	}
	if stream.peekKind(tokenEOF) {
		return expression.NewSparseFieldSet(rt.ID())
	}
	var fields []resource.Field
	for {
		t := stream.next()
		if t.kind != tokenText {
			return nil, stream.errorf(query.ErrSyntax, "field name expected, but found: %s", t)
		}
		field, ok := rt.Field(t.value)
		if attr, isAttr := field.(*resource.Attr); !ok || (isAttr && attr.IsHidden()) {
			return nil, stream.errorf(query.ErrUnknownField, "field '%s' does not exist on resource type '%s'", t.value, rt.Name())
		} else if isAttr && !attr.CanView() {
			return nil, stream.errorf(query.ErrNotViewable, "retrieving the attribute '%s' is not allowed", t.value)
		}
		fields = append(fields, field)
		if !stream.peekKind(tokenComma) {
			break
		}
		stream.next()
	}
	if err = stream.expectEOF(); err != nil {
		return nil, err
	}
	return expression.NewSparseFieldSet(fields...)
}
