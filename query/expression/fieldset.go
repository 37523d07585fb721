package expression

import (
	"sort"
	"strings"

	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/resource"
)

// SparseFieldSet is the set of the resource fields - attributes and relationships, requested to be returned.
type SparseFieldSet struct {
	fields []resource.Field
}

// NewSparseFieldSet creates new sparse fieldset. The duplicated fields are removed. The set must not be empty.
func NewSparseFieldSet(fields ...resource.Field) (*SparseFieldSet, error) {
	if len(fields) == 0 {
		return nil, errors.WrapDet(ErrInvalidExpression, "sparse fieldset requires at least one field")
	}
	s := &SparseFieldSet{}
	for _, f := range fields {
		if f == nil {
			return nil, errors.WrapDet(ErrInvalidExpression, "sparse fieldset contains nil field")
		}
		if !s.Contains(f) {
			s.fields = append(s.fields, f)
		}
	}
	return s, nil
}

// Fields returns the fieldset fields. The result must not be modified.
func (s *SparseFieldSet) Fields() []resource.Field {
	return s.fields
}

// Contains checks if the fieldset contains provided 'field'.
func (s *SparseFieldSet) Contains(field resource.Field) bool {
	for _, f := range s.fields {
		if f == field {
			return true
		}
	}
	return false
}

// Attributes returns the attributes within the fieldset.
func (s *SparseFieldSet) Attributes() []*resource.Attr {
	var attrs []*resource.Attr
	for _, f := range s.fields {
		if attr, ok := f.(*resource.Attr); ok {
			attrs = append(attrs, attr)
		}
	}
	return attrs
}

// With returns the fieldset with the 'field' added. If the field is already in the set it returns itself.
func (s *SparseFieldSet) With(field resource.Field) *SparseFieldSet {
	if s.Contains(field) {
		return s
	}
	fields := make([]resource.Field, 0, len(s.fields)+1)
	fields = append(fields, s.fields...)
	return &SparseFieldSet{fields: append(fields, field)}
}

// String implements fmt.Stringer interface.
func (s *SparseFieldSet) String() string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.PublicName()
	}
	return strings.Join(names, ",")
}

func (*SparseFieldSet) expression() {}

// SparseFieldTable is the mapping of the resource types to the requested sparse fieldsets.
type SparseFieldTable struct {
	types []*resource.Type
	table map[*resource.Type]*SparseFieldSet
}

// NewSparseFieldTable creates new sparse field table. The table must not be empty.
func NewSparseFieldTable(table map[*resource.Type]*SparseFieldSet) (*SparseFieldTable, error) {
	if len(table) == 0 {
		return nil, errors.WrapDet(ErrInvalidExpression, "sparse field table requires at least one entry")
	}
	t := &SparseFieldTable{table: make(map[*resource.Type]*SparseFieldSet, len(table))}
	for rt, set := range table {
		if rt == nil || set == nil {
			return nil, errors.WrapDet(ErrInvalidExpression, "sparse field table contains nil entry")
		}
		t.types = append(t.types, rt)
		t.table[rt] = set
	}
	sort.Slice(t.types, func(i, j int) bool {
		return t.types[i].Name() < t.types[j].Name()
	})
	return t, nil
}

// Types returns the resource types in the table ordered by name.
func (t *SparseFieldTable) Types() []*resource.Type {
	return t.types
}

// Get gets the sparse fieldset for given resource type.
func (t *SparseFieldTable) Get(rt *resource.Type) (*SparseFieldSet, bool) {
	set, ok := t.table[rt]
	return set, ok
}

// String implements fmt.Stringer interface.
func (t *SparseFieldTable) String() string {
	entries := make([]string, len(t.types))
	for i, rt := range t.types {
		entries[i] = rt.Name() + "(" + t.table[rt].String() + ")"
	}
	return strings.Join(entries, ",")
}

func (*SparseFieldTable) expression() {}
