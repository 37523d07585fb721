package expression

import (
	"strconv"
	"strings"

	"github.com/neuronlabs/jsonapi/errors"
)

// PageNumber is the one-based page number.
type PageNumber struct {
	oneBased int
}

// FirstPage is the page number of the first page.
var FirstPage = PageNumber{oneBased: 1}

// NewPageNumber creates new page number. The value must be greater or equal to one.
func NewPageNumber(oneBased int) (PageNumber, error) {
	if oneBased < 1 {
		return PageNumber{}, errors.WrapDetf(ErrInvalidExpression, "page number must be greater than zero, got: %d", oneBased)
	}
	return PageNumber{oneBased: oneBased}, nil
}

// OneBasedValue returns the one-based page number.
func (p PageNumber) OneBasedValue() int {
	if p.oneBased < 1 {
		return 1
	}
	return p.oneBased
}

// String implements fmt.Stringer interface.
func (p PageNumber) String() string {
	return strconv.Itoa(p.OneBasedValue())
}

// PageSize is the maximum number of the resources on the page.
type PageSize struct {
	value int
}

// NewPageSize creates new page size. The value must be greater or equal to one.
func NewPageSize(value int) (*PageSize, error) {
	if value < 1 {
		return nil, errors.WrapDetf(ErrInvalidExpression, "page size must be greater than zero, got: %d", value)
	}
	return &PageSize{value: value}, nil
}

// Value returns the page size value.
func (p *PageSize) Value() int {
	return p.value
}

// String implements fmt.Stringer interface.
func (p *PageSize) String() string {
	if p == nil {
		return "(none)"
	}
	return strconv.Itoa(p.value)
}

// Pagination is the page number with the optional page size. The nil page size means unbounded pagination.
type Pagination struct {
	pageNumber PageNumber
	pageSize   *PageSize
}

// NewPagination creates new pagination expression.
func NewPagination(pageNumber PageNumber, pageSize *PageSize) *Pagination {
	return &Pagination{pageNumber: PageNumber{oneBased: pageNumber.OneBasedValue()}, pageSize: pageSize}
}

// PageNumber returns the one-based page number.
func (p *Pagination) PageNumber() PageNumber {
	return p.pageNumber
}

// PageSize returns the page size. Nil value means no limit.
func (p *Pagination) PageSize() *PageSize {
	return p.pageSize
}

// Offset returns the number of the resources skipped before the page.
func (p *Pagination) Offset() int {
	if p.pageSize == nil {
		return 0
	}
	return (p.pageNumber.OneBasedValue() - 1) * p.pageSize.value
}

// String implements fmt.Stringer interface.
func (p *Pagination) String() string {
	return "Page number: " + p.pageNumber.String() + ", size: " + p.pageSize.String()
}

func (*Pagination) expression() {}

// PaginationElementQueryStringValue is the single scoped value of the 'page[number]' or 'page[size]'
// query parameters i.e.: 'comments:5'.
type PaginationElementQueryStringValue struct {
	scope *ResourceFieldChain
	value int
}

// NewPaginationElementQueryStringValue creates new pagination element. The 'scope' is nil for the top-level.
func NewPaginationElementQueryStringValue(scope *ResourceFieldChain, value int) *PaginationElementQueryStringValue {
	return &PaginationElementQueryStringValue{scope: scope, value: value}
}

// Scope returns the relationship chain scope of given value. Nil for the top-level.
func (p *PaginationElementQueryStringValue) Scope() *ResourceFieldChain {
	return p.scope
}

// Value returns the number value.
func (p *PaginationElementQueryStringValue) Value() int {
	return p.value
}

// String implements fmt.Stringer interface.
func (p *PaginationElementQueryStringValue) String() string {
	if p.scope == nil {
		return strconv.Itoa(p.value)
	}
	return p.scope.String() + ":" + strconv.Itoa(p.value)
}

func (*PaginationElementQueryStringValue) expression() {}

// PaginationQueryStringValue is the parsed 'page[number]' or 'page[size]' query parameter value.
type PaginationQueryStringValue struct {
	elements []*PaginationElementQueryStringValue
}

// NewPaginationQueryStringValue creates new pagination query string value.
func NewPaginationQueryStringValue(elements ...*PaginationElementQueryStringValue) (*PaginationQueryStringValue, error) {
	if len(elements) == 0 {
		return nil, errors.WrapDet(ErrInvalidExpression, "pagination query string value requires at least one element")
	}
	e := make([]*PaginationElementQueryStringValue, len(elements))
	copy(e, elements)
	return &PaginationQueryStringValue{elements: e}, nil
}

// Elements returns the scoped values.
func (p *PaginationQueryStringValue) Elements() []*PaginationElementQueryStringValue {
	return p.elements
}

// String implements fmt.Stringer interface.
func (p *PaginationQueryStringValue) String() string {
	elements := make([]string, len(p.elements))
	for i, e := range p.elements {
		elements[i] = e.String()
	}
	return strings.Join(elements, ",")
}

func (*PaginationQueryStringValue) expression() {}
