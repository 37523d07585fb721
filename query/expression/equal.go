package expression

import (
	"reflect"
)

// Equal checks if the expressions 'a' and 'b' are structurally equal.
func Equal(a, b Expression) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	switch x := a.(type) {
	case *ResourceFieldChain:
		y, ok := b.(*ResourceFieldChain)
		return ok && x.Equals(y)
	case *Literal:
		y, ok := b.(*Literal)
		return ok && x.value == y.value && reflect.DeepEqual(x.typed, y.typed)
	case *Null:
		_, ok := b.(*Null)
		return ok
	case *Comparison:
		y, ok := b.(*Comparison)
		return ok && x.operator == y.operator && Equal(x.left, y.left) && Equal(x.right, y.right)
	case *MatchText:
		y, ok := b.(*MatchText)
		return ok && x.kind == y.kind && Equal(x.target, y.target) && Equal(x.text, y.text)
	case *Any:
		y, ok := b.(*Any)
		if !ok || !Equal(x.target, y.target) || len(x.constants) != len(y.constants) {
			return false
		}
		for i := range x.constants {
			if !Equal(x.constants[i], y.constants[i]) {
				return false
			}
		}
		return true
	case *Has:
		y, ok := b.(*Has)
		return ok && Equal(x.target, y.target) && Equal(x.predicate, y.predicate)
	case *Count:
		y, ok := b.(*Count)
		return ok && Equal(x.target, y.target)
	case *Logical:
		y, ok := b.(*Logical)
		if !ok || x.operator != y.operator || len(x.terms) != len(y.terms) {
			return false
		}
		for i := range x.terms {
			if !Equal(x.terms[i], y.terms[i]) {
				return false
			}
		}
		return true
	case *Not:
		y, ok := b.(*Not)
		return ok && Equal(x.child, y.child)
	case *SortElement:
		y, ok := b.(*SortElement)
		return ok && x.ascending == y.ascending && Equal(x.target, y.target)
	case *Sort:
		y, ok := b.(*Sort)
		if !ok || len(x.elements) != len(y.elements) {
			return false
		}
		for i := range x.elements {
			if !Equal(x.elements[i], y.elements[i]) {
				return false
			}
		}
		return true
	case *Pagination:
		y, ok := b.(*Pagination)
		if !ok || x.pageNumber.OneBasedValue() != y.pageNumber.OneBasedValue() {
			return false
		}
		if x.pageSize == nil || y.pageSize == nil {
			return x.pageSize == nil && y.pageSize == nil
		}
		return x.pageSize.value == y.pageSize.value
	case *PaginationElementQueryStringValue:
		y, ok := b.(*PaginationElementQueryStringValue)
		return ok && x.value == y.value && x.scope.Equals(y.scope)
	case *PaginationQueryStringValue:
		y, ok := b.(*PaginationQueryStringValue)
		if !ok || len(x.elements) != len(y.elements) {
			return false
		}
		for i := range x.elements {
			if !Equal(x.elements[i], y.elements[i]) {
				return false
			}
		}
		return true
	case *SparseFieldSet:
		y, ok := b.(*SparseFieldSet)
		if !ok || len(x.fields) != len(y.fields) {
			return false
		}
		for _, f := range x.fields {
			if !y.Contains(f) {
				return false
			}
		}
		return true
	case *SparseFieldTable:
		y, ok := b.(*SparseFieldTable)
		if !ok || len(x.table) != len(y.table) {
			return false
		}
		for rt, set := range x.table {
			other, ok := y.table[rt]
			if !ok || !Equal(set, other) {
				return false
			}
		}
		return true
	case *Include:
		y, ok := b.(*Include)
		return ok && equalElements(x.elements, y.elements)
	case *IncludeElement:
		y, ok := b.(*IncludeElement)
		return ok && x.relationship == y.relationship && equalElements(x.children, y.children)
	}
	return false
}

// equalElements compares the include elements regardless of their order.
func equalElements(a, b []*IncludeElement) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		found := false
		for _, y := range b {
			if x.relationship == y.relationship {
				found = Equal(x, y)
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func isNil(e Expression) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
