package parsing

import (
	"strings"

	"github.com/neuronlabs/jsonapi/config"
	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/resource"
)

// Reader reads a single category of the query string parameters.
type Reader interface {
	query.ConstraintProvider
	// CanRead checks if the reader handles the query string 'parameter'.
	CanRead(parameter string) bool
	// Read parses and validates the 'value' of the 'parameter'.
	Read(parameter, value string) error
}

type readerBase struct {
	request *query.Request
	options *config.Options
}

func (r *readerBase) resourceType() *resource.Type {
	return r.request.ResourceType()
}

// scope resolves the bracketed relationship chain of the 'parameter'. The top-level scope is allowed only
// for the collection endpoints.
func (r *readerBase) scope(parameter, bracket string, hasBracket bool) (*expression.ResourceFieldChain, *resource.Type, error) {
	rt := r.resourceType()
	if !hasBracket {
		if !r.request.IsCollection() {
			return nil, nil, newParameterError(query.ErrInvalidQueryStringParameter, parameter,
				"this query string parameter can only be used on a collection of resources (not on a single resource)")
		}
		return nil, rt, nil
	}
	fields, err := fieldResolver{parameter: parameter}.scopeChain(rt, bracket)
	if err != nil {
		return nil, nil, err
	}
	chain, err := expression.NewResourceFieldChain(fields...)
	if err != nil {
		return nil, nil, err
	}
	return chain, rightType(rt, fields), nil
}

func scopeKey(scope *expression.ResourceFieldChain) string {
	if scope == nil {
		return ""
	}
	return scope.String()
}

// FilterReader reads the 'filter' and 'filter[scope]' parameters. Multiple filters within the same
// scope are combined with the logical and.
type FilterReader struct {
	readerBase
	constraints []query.ExpressionInScope
}

// NewFilterReader creates new filter reader.
func NewFilterReader(request *query.Request, options *config.Options) *FilterReader {
	return &FilterReader{readerBase: readerBase{request: request, options: options}}
}

// CanRead implements Reader interface.
func (r *FilterReader) CanRead(parameter string) bool {
	return parameter == "filter" || strings.HasPrefix(parameter, "filter[")
}

// Read implements Reader interface.
func (r *FilterReader) Read(parameter, value string) error {
	_, bracket, hasBracket, err := splitParameterName(parameter)
	if err != nil {
		return err
	}
	scope, rt, err := r.scope(parameter, bracket, hasBracket)
	if err != nil {
		return err
	}
	filter, err := ParseFilter(parameter, value, rt)
	if err != nil {
		return err
	}
	r.constraints = append(r.constraints, query.ExpressionInScope{Scope: scope, Expression: filter})
	return nil
}

// Constraints implements query.ConstraintProvider interface.
func (r *FilterReader) Constraints() []query.ExpressionInScope {
	return r.constraints
}

// SortReader reads the 'sort' and 'sort[scope]' parameters.
type SortReader struct {
	readerBase
	constraints []query.ExpressionInScope
	visited     map[string]struct{}
}

// NewSortReader creates new sort reader.
func NewSortReader(request *query.Request, options *config.Options) *SortReader {
	return &SortReader{readerBase: readerBase{request: request, options: options}, visited: map[string]struct{}{}}
}

// CanRead implements Reader interface.
func (r *SortReader) CanRead(parameter string) bool {
	return parameter == "sort" || strings.HasPrefix(parameter, "sort[")
}

// Read implements Reader interface.
func (r *SortReader) Read(parameter, value string) error {
	_, bracket, hasBracket, err := splitParameterName(parameter)
	if err != nil {
		return err
	}
	scope, rt, err := r.scope(parameter, bracket, hasBracket)
	if err != nil {
		return err
	}
	key := scopeKey(scope)
	if _, ok := r.visited[key]; ok {
		return newParameterError(query.ErrDuplicateParameter, parameter, "the sort is already specified for this scope")
	}
	sort, err := ParseSort(parameter, value, rt)
	if err != nil {
		return err
	}
	r.visited[key] = struct{}{}
	r.constraints = append(r.constraints, query.ExpressionInScope{Scope: scope, Expression: sort})
	return nil
}

// Constraints implements query.ConstraintProvider interface.
func (r *SortReader) Constraints() []query.ExpressionInScope {
	return r.constraints
}

// IncludeReader reads the 'include' parameter.
type IncludeReader struct {
	readerBase
	include *expression.Include
	read    bool
}

// NewIncludeReader creates new include reader.
func NewIncludeReader(request *query.Request, options *config.Options) *IncludeReader {
	return &IncludeReader{readerBase: readerBase{request: request, options: options}}
}

// CanRead implements Reader interface.
func (r *IncludeReader) CanRead(parameter string) bool {
	return parameter == "include"
}

// Read implements Reader interface.
func (r *IncludeReader) Read(parameter, value string) error {
	if r.request.Kind == query.RelationshipEndpoint {
		return newParameterError(query.ErrInvalidQueryStringParameter, parameter,
			"including related resources is not supported on the relationship endpoints")
	}
	if r.read {
		return newParameterError(query.ErrDuplicateParameter, parameter, "the include parameter is already specified")
	}
	r.read = true
	if value == "" {
		return nil
	}
	include, err := ParseInclude(parameter, value, r.resourceType(), r.options.MaximumIncludeDepth)
	if err != nil {
		return err
	}
	r.include = include
	return nil
}

// Constraints implements query.ConstraintProvider interface.
func (r *IncludeReader) Constraints() []query.ExpressionInScope {
	if r.include == nil {
		return nil
	}
	return []query.ExpressionInScope{{Expression: r.include}}
}

// SparseFieldSetReader reads the 'fields[type]' parameters.
type SparseFieldSetReader struct {
	readerBase
	graph *resource.Graph
	table map[*resource.Type]*expression.SparseFieldSet
}

// NewSparseFieldSetReader creates new sparse fieldset reader.
func NewSparseFieldSetReader(graph *resource.Graph, request *query.Request, options *config.Options) *SparseFieldSetReader {
	return &SparseFieldSetReader{
		readerBase: readerBase{request: request, options: options},
		graph:      graph,
		table:      map[*resource.Type]*expression.SparseFieldSet{},
	}
}

// CanRead implements Reader interface.
func (r *SparseFieldSetReader) CanRead(parameter string) bool {
	return strings.HasPrefix(parameter, "fields[")
}

// Read implements Reader interface.
func (r *SparseFieldSetReader) Read(parameter, value string) error {
	_, bracket, hasBracket, err := splitParameterName(parameter)
	if err != nil {
		return err
	}
	if !hasBracket || bracket == "" {
		return newParameterError(query.ErrSyntax, parameter, "resource type expected")
	}
	rt, ok := r.graph.ByName(bracket)
	if !ok {
		return newParameterError(query.ErrUnknownField, parameter, "resource type '%s' does not exist", bracket)
	}
	if _, ok = r.table[rt]; ok {
		return newParameterError(query.ErrDuplicateParameter, parameter, "the fieldset for '%s' is already specified", bracket)
	}
	set, err := ParseSparseFieldSet(parameter, value, rt)
	if err != nil {
		return err
	}
	r.table[rt] = set
	return nil
}

// Constraints implements query.ConstraintProvider interface.
func (r *SparseFieldSetReader) Constraints() []query.ExpressionInScope {
	if len(r.table) == 0 {
		return nil
	}
	table, err := expression.NewSparseFieldTable(r.table)
	if err != nil {
		logger.Errorf("Creating sparse field table failed: %v", err)
		return nil
	}
	return []query.ExpressionInScope{{Expression: table}}
}

// Page parameters.
const (
	ParamPageNumber = "page[number]"
	ParamPageSize   = "page[size]"
)

type pageEntry struct {
	scope  *expression.ResourceFieldChain
	number *expression.PageNumber
	size   *expression.PageSize
	// sized is set if the page size was requested, also when it is unbounded.
	sized bool
}

// PaginationReader reads the 'page[number]' and 'page[size]' parameters.
type PaginationReader struct {
	readerBase
	entries []*pageEntry
	read    map[string]struct{}
}

// NewPaginationReader creates new pagination reader.
func NewPaginationReader(request *query.Request, options *config.Options) *PaginationReader {
	return &PaginationReader{readerBase: readerBase{request: request, options: options}, read: map[string]struct{}{}}
}

// CanRead implements Reader interface.
func (r *PaginationReader) CanRead(parameter string) bool {
	return parameter == ParamPageNumber || parameter == ParamPageSize
}

// Read implements Reader interface.
func (r *PaginationReader) Read(parameter, value string) error {
	if _, ok := r.read[parameter]; ok {
		return newParameterError(query.ErrDuplicateParameter, parameter, "the parameter is already specified")
	}
	r.read[parameter] = struct{}{}

	values, err := ParsePagination(parameter, value, r.resourceType())
	if err != nil {
		return err
	}
	for _, element := range values.Elements() {
		if element.Scope() == nil && !r.request.IsCollection() {
			return newParameterError(query.ErrInvalidQueryStringParameter, parameter,
				"this query string parameter can only be used on a collection of resources (not on a single resource)")
		}
		entry := r.entry(element.Scope())
		if parameter == ParamPageNumber {
			if entry.number, err = r.pageNumber(parameter, element.Value()); err != nil {
				return err
			}
			continue
		}
		if entry.size, err = r.pageSize(parameter, element.Value()); err != nil {
			return err
		}
		entry.sized = true
	}
	return nil
}

func (r *PaginationReader) entry(scope *expression.ResourceFieldChain) *pageEntry {
	for _, e := range r.entries {
		if e.scope.Equals(scope) {
			return e
		}
	}
	e := &pageEntry{scope: scope}
	r.entries = append(r.entries, e)
	return e
}

func (r *PaginationReader) pageNumber(parameter string, value int) (*expression.PageNumber, error) {
	if value < 1 {
		return nil, newParameterError(query.ErrInvalidPage, parameter, "page number cannot be negative or zero")
	}
	if r.options.MaximumPageNumber > 0 && value > r.options.MaximumPageNumber {
		return nil, newParameterError(query.ErrInvalidPage, parameter, "page number cannot be higher than %d", r.options.MaximumPageNumber)
	}
	number, err := expression.NewPageNumber(value)
	if err != nil {
		return nil, err
	}
	return &number, nil
}

func (r *PaginationReader) pageSize(parameter string, value int) (*expression.PageSize, error) {
	if value < 0 {
		return nil, newParameterError(query.ErrInvalidPage, parameter, "page size cannot be negative")
	}
	if r.options.MaximumPageSize > 0 {
		if value == 0 {
			return nil, newParameterError(query.ErrInvalidPage, parameter, "page size cannot be unconstrained")
		}
		if value > r.options.MaximumPageSize {
			return nil, newParameterError(query.ErrInvalidPage, parameter, "page size cannot be higher than %d", r.options.MaximumPageSize)
		}
	}
	if value == 0 {
		return nil, nil
	}
	return expression.NewPageSize(value)
}

// Constraints implements query.ConstraintProvider interface.
func (r *PaginationReader) Constraints() []query.ExpressionInScope {
	constraints := make([]query.ExpressionInScope, 0, len(r.entries))
	for _, e := range r.entries {
		number := expression.FirstPage
		if e.number != nil {
			number = *e.number
		}
		size := e.size
		if !e.sized && r.options.DefaultPageSize > 0 {
			size, _ = expression.NewPageSize(r.options.DefaultPageSize)
		}
		constraints = append(constraints, query.ExpressionInScope{Scope: e.scope, Expression: expression.NewPagination(number, size)})
	}
	return constraints
}
