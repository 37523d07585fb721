package expression

import (
	"strings"

	"github.com/neuronlabs/jsonapi/errors"
)

// SortElement is the single sort criterion - a field chain or a count function with the direction.
type SortElement struct {
	target    Expression
	ascending bool
}

// NewSortElement creates new sort element. The 'target' must be a field chain or a count function.
func NewSortElement(target Expression, ascending bool) (*SortElement, error) {
	switch target.(type) {
	case *ResourceFieldChain, *Count:
	default:
		return nil, errors.WrapDetf(ErrInvalidExpression, "invalid sort target: '%v'", target)
	}
	return &SortElement{target: target, ascending: ascending}, nil
}

// Target returns the sorted field chain or count function.
func (s *SortElement) Target() Expression {
	return s.target
}

// IsAscending checks if the sort direction is ascending.
func (s *SortElement) IsAscending() bool {
	return s.ascending
}

// String implements fmt.Stringer interface.
func (s *SortElement) String() string {
	if s.ascending {
		return s.target.String()
	}
	return "-" + s.target.String()
}

func (*SortElement) expression() {}

// Sort is the ordered list of the sort elements.
type Sort struct {
	elements []*SortElement
}

// NewSort creates new sort expression. At least one element is required.
func NewSort(elements ...*SortElement) (*Sort, error) {
	if len(elements) == 0 {
		return nil, errors.WrapDet(ErrInvalidExpression, "sort expression requires at least one element")
	}
	e := make([]*SortElement, len(elements))
	copy(e, elements)
	return &Sort{elements: e}, nil
}

// Elements returns the sort elements.
func (s *Sort) Elements() []*SortElement {
	return s.elements
}

// String implements fmt.Stringer interface.
func (s *Sort) String() string {
	elements := make([]string, len(s.elements))
	for i, e := range s.elements {
		elements[i] = e.String()
	}
	return strings.Join(elements, ",")
}

func (*Sort) expression() {}
