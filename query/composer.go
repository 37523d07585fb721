package query

import (
	"github.com/neuronlabs/jsonapi/config"
	"github.com/neuronlabs/jsonapi/definition"
	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/log"
	"github.com/neuronlabs/jsonapi/query/expression"
	"github.com/neuronlabs/jsonapi/resource"
)

var logger = log.NewModuleLogger("query")

// Composer merges the constraints of all providers into the QueryLayer tree.
// It is request-scoped - it is created after all the constraint providers read the request.
type Composer struct {
	options   *config.Options
	accessor  definition.Accessor
	providers []ConstraintProvider

	fieldSets  *SparseFieldSetCache
	includes   *EvaluatedIncludeCache
	pagination *PaginationContext
}

// NewComposer creates new request-scoped composer. The nil 'accessor' doesn't override any constraint.
func NewComposer(options *config.Options, accessor definition.Accessor, providers ...ConstraintProvider) *Composer {
	if options == nil {
		options = config.DefaultOptions()
	}
	if accessor == nil {
		accessor = definition.NewRegistry()
	}
	return &Composer{
		options:    options,
		accessor:   accessor,
		providers:  providers,
		fieldSets:  NewSparseFieldSetCache(accessor, providers...),
		includes:   &EvaluatedIncludeCache{},
		pagination: &PaginationContext{PageNumber: expression.FirstPage},
	}
}

// SparseFieldSetCache returns the request sparse fieldset cache.
func (c *Composer) SparseFieldSetCache() *SparseFieldSetCache {
	return c.fieldSets
}

// EvaluatedIncludeCache returns the include evaluated by the last composition.
func (c *Composer) EvaluatedIncludeCache() *EvaluatedIncludeCache {
	return c.includes
}

// PaginationContext returns the top-level pagination context.
func (c *Composer) PaginationContext() *PaginationContext {
	return c.pagination
}

// GetTopFilter gets the top-level filter for the resource type 'rt'. It is the same filter
// that is set in the root layer composed by the Compose method.
func (c *Composer) GetTopFilter(rt *resource.Type) (expression.FilterExpression, error) {
	if err := checkType(rt); err != nil {
		return nil, err
	}
	return c.getFilter(inScope(c.constraints(), nil), rt)
}

// Compose composes the query layer tree for the root resource type 'rt'.
func (c *Composer) Compose(rt *resource.Type) (*QueryLayer, error) {
	if err := checkType(rt); err != nil {
		return nil, err
	}
	constraints := c.constraints()
	top := inScope(constraints, nil)

	var err error
	layer := &QueryLayer{ResourceType: rt}
	if layer.Filter, err = c.getFilter(top, rt); err != nil {
		return nil, err
	}
	if layer.Sort, err = c.getSort(top, rt); err != nil {
		return nil, err
	}
	pagination, err := c.getPagination(top, rt)
	if err != nil {
		return nil, err
	}
	// the switch is applied after the hooks, so that the definitions are aware of the requested pagination.
	if !c.options.DisableTopPagination {
		layer.Pagination = pagination
		c.pagination.PageNumber = pagination.PageNumber()
		c.pagination.PageSize = pagination.PageSize()
	} else {
		c.pagination.PageNumber, c.pagination.PageSize = expression.FirstPage, nil
	}
	if layer.Projection, err = c.getProjectionForSparseAttributeSet(rt); err != nil {
		return nil, err
	}

	elements, err := c.getIncludeElements(top, rt)
	if err != nil {
		return nil, err
	}
	c.includes.Set(nil)
	if len(elements) > 0 {
		if elements, err = c.processIncludeSet(elements, layer, nil, constraints); err != nil {
			return nil, err
		}
		if len(elements) > 0 {
			if layer.Include, err = expression.NewInclude(elements...); err != nil {
				return nil, errors.WrapDetf(ErrInternal, "creating include failed: %v", err)
			}
			c.includes.Set(layer.Include)
		}
	}
	if logger.IsLevelEnabled(log.LDEBUG2) {
		logger.Debug2f("Composed query layer:\n%s", layer)
	}
	return layer, nil
}

// ComposeForGetByID composes the layer for the single primary resource with the identifier 'id'.
// The pagination and sort are removed, the includes and sparse fieldsets are preserved.
func (c *Composer) ComposeForGetByID(id interface{}, rt *resource.Type) (*QueryLayer, error) {
	layer, err := c.Compose(rt)
	if err != nil {
		return nil, err
	}
	layer.Sort = nil
	layer.Pagination = nil
	c.pagination.PageSize = nil
	layer.Filter, err = filterByID(id, rt, layer.Filter)
	if err != nil {
		return nil, err
	}
	return layer, nil
}

// ComposeSecondaryLayerForRelationship composes the layer for the right side resources of the 'relationship'.
// The to-one relationships are neither sorted nor paginated.
func (c *Composer) ComposeSecondaryLayerForRelationship(relationship *resource.Relationship) (*QueryLayer, error) {
	if relationship == nil {
		return nil, errors.WrapDet(ErrInternal, "nil relationship")
	}
	layer, err := c.Compose(relationship.RightType())
	if err != nil {
		return nil, err
	}
	if !relationship.IsToMany() {
		layer.Sort = nil
		layer.Pagination = nil
		c.pagination.PageSize = nil
	}
	return layer, nil
}

// ComposeForRelationshipIdentifiers composes the layer for the relationship endpoint. Only the identifiers
// of the right side resources are selected and nothing is included.
func (c *Composer) ComposeForRelationshipIdentifiers(relationship *resource.Relationship) (*QueryLayer, error) {
	layer, err := c.ComposeSecondaryLayerForRelationship(relationship)
	if err != nil {
		return nil, err
	}
	layer.Include = nil
	c.includes.Set(nil)
	layer.Projection = NewProjection()
	for _, f := range c.fieldSets.ForIdentifiers(relationship.RightType()) {
		layer.Projection.Set(f, nil)
	}
	return layer, nil
}

// WrapLayerForSecondaryEndpoint wraps the 'secondaryLayer' into the layer of the primary resource with
// the identifier 'primaryID'. The primary layer selects only the identifier and the 'relationship'.
func (c *Composer) WrapLayerForSecondaryEndpoint(secondaryLayer *QueryLayer, primaryType *resource.Type, primaryID interface{},
	relationship *resource.Relationship) (*QueryLayer, error) {
	if err := checkType(primaryType); err != nil {
		return nil, err
	}
	if relationship == nil || relationship.Owner() != primaryType || secondaryLayer == nil || secondaryLayer.ResourceType != relationship.RightType() {
		return nil, errors.WrapDetf(ErrInternal, "secondary layer doesn't match the relationship of: '%s'", primaryType.Name())
	}
	innerInclude := secondaryLayer.Include
	secondaryLayer.Include = nil

	projection := NewProjection()
	for _, f := range c.fieldSets.ForIdentifiers(primaryType) {
		projection.Set(f, nil)
	}
	projection.Set(relationship, secondaryLayer)

	primaryFilter, err := c.getFilter(nil, primaryType)
	if err != nil {
		return nil, err
	}
	filter, err := filterByID(primaryID, primaryType, primaryFilter)
	if err != nil {
		return nil, err
	}

	element := expression.NewIncludeElement(relationship)
	if innerInclude != nil {
		element = expression.NewIncludeElement(relationship, innerInclude.Elements()...)
	}
	include, err := expression.NewInclude(element)
	if err != nil {
		return nil, errors.WrapDetf(ErrInternal, "creating include failed: %v", err)
	}
	return &QueryLayer{
		ResourceType: primaryType,
		Include:      include,
		Filter:       filter,
		Projection:   projection,
	}, nil
}

func (c *Composer) constraints() []ExpressionInScope {
	var constraints []ExpressionInScope
	for _, provider := range c.providers {
		constraints = append(constraints, provider.Constraints()...)
	}
	return constraints
}

func (c *Composer) processIncludeSet(elements []*expression.IncludeElement, parent *QueryLayer, parentChain []resource.Field,
	constraints []ExpressionInScope) ([]*expression.IncludeElement, error) {
	if parent.Projection == nil {
		parent.Projection = NewProjection()
	}
	elements = mergeIncludeElements(elements)
	evaluated := make([]*expression.IncludeElement, 0, len(elements))
	for _, element := range elements {
		relationship := element.Relationship()
		if relationship == nil || relationship.Owner() != parent.ResourceType {
			return nil, errors.WrapDetf(ErrInternal, "include element: '%v' doesn't belong to: '%s'", element, parent.ResourceType.Name())
		}
		if existing, ok := parent.Projection.Get(relationship); ok && existing != nil {
			continue
		}
		chain := make([]resource.Field, len(parentChain), len(parentChain)+1)
		copy(chain, parentChain)
		chain = append(chain, relationship)

		scoped := inScope(constraints, chain)
		rt := relationship.RightType()
		child := &QueryLayer{ResourceType: rt}
		var err error
		if relationship.IsToMany() {
			if child.Filter, err = c.getFilter(scoped, rt); err != nil {
				return nil, err
			}
			if child.Sort, err = c.getSort(scoped, rt); err != nil {
				return nil, err
			}
			pagination, err := c.getPagination(scoped, rt)
			if err != nil {
				return nil, err
			}
			if !c.options.DisableChildrenPagination {
				child.Pagination = pagination
			}
		}
		if child.Projection, err = c.getProjectionForSparseAttributeSet(rt); err != nil {
			return nil, err
		}
		parent.Projection.Set(relationship, child)

		var children []*expression.IncludeElement
		if len(element.Children()) > 0 {
			if children, err = c.accessor.OnApplyIncludes(rt, element.Children()); err != nil {
				return nil, err
			}
			if len(children) > 0 {
				if children, err = c.processIncludeSet(children, child, chain, constraints); err != nil {
					return nil, err
				}
			}
		}
		evaluated = append(evaluated, expression.NewIncludeElement(relationship, children...))
	}
	return evaluated, nil
}

// mergeIncludeElements joins the children of the sibling elements of the same relationship.
// The order of the first occurrence is kept.
func mergeIncludeElements(elements []*expression.IncludeElement) []*expression.IncludeElement {
	var (
		order    []*resource.Relationship
		children = map[*resource.Relationship][]*expression.IncludeElement{}
	)
	for _, element := range elements {
		relationship := element.Relationship()
		if _, ok := children[relationship]; !ok {
			order = append(order, relationship)
			children[relationship] = nil
		}
		children[relationship] = append(children[relationship], element.Children()...)
	}
	if len(order) == len(elements) {
		return elements
	}
	merged := make([]*expression.IncludeElement, len(order))
	for i, relationship := range order {
		merged[i] = expression.NewIncludeElement(relationship, children[relationship]...)
	}
	return merged
}

func (c *Composer) getIncludeElements(expressions []expression.Expression, rt *resource.Type) ([]*expression.IncludeElement, error) {
	var elements []*expression.IncludeElement
	for _, e := range expressions {
		if include, ok := e.(*expression.Include); ok {
			elements = include.Elements()
			break
		}
	}
	return c.accessor.OnApplyIncludes(rt, elements)
}

func (c *Composer) getFilter(expressions []expression.Expression, rt *resource.Type) (expression.FilterExpression, error) {
	var filters []expression.FilterExpression
	for _, e := range expressions {
		if f, ok := e.(expression.FilterExpression); ok {
			filters = append(filters, f)
		}
	}
	return c.accessor.OnApplyFilter(rt, expression.AndAll(filters...))
}

func (c *Composer) getSort(expressions []expression.Expression, rt *resource.Type) (*expression.Sort, error) {
	var sort *expression.Sort
	for _, e := range expressions {
		if s, ok := e.(*expression.Sort); ok {
			sort = s
			break
		}
	}
	sort, err := c.accessor.OnApplySort(rt, sort)
	if err != nil {
		return nil, err
	}
	if sort == nil {
		return defaultSort(rt)
	}
	return sort, nil
}

func (c *Composer) getPagination(expressions []expression.Expression, rt *resource.Type) (*expression.Pagination, error) {
	var pagination *expression.Pagination
	for _, e := range expressions {
		if p, ok := e.(*expression.Pagination); ok {
			pagination = p
			break
		}
	}
	pagination, err := c.accessor.OnApplyPagination(rt, pagination)
	if err != nil {
		return nil, err
	}
	if pagination == nil {
		return c.defaultPagination()
	}
	return pagination, nil
}

func (c *Composer) getProjectionForSparseAttributeSet(rt *resource.Type) (*Projection, error) {
	fields, err := c.fieldSets.ForQuery(rt)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}
	projection := NewProjection()
	for _, f := range fields {
		if attr, ok := f.(*resource.Attr); ok {
			projection.Set(attr, nil)
		}
	}
	projection.Set(rt.ID(), nil)
	return projection, nil
}

func (c *Composer) defaultPagination() (*expression.Pagination, error) {
	if c.options.DefaultPageSize == 0 {
		return expression.NewPagination(expression.FirstPage, nil), nil
	}
	size, err := expression.NewPageSize(c.options.DefaultPageSize)
	if err != nil {
		return nil, errors.WrapDetf(ErrInternal, "invalid default page size: %v", err)
	}
	return expression.NewPagination(expression.FirstPage, size), nil
}

func defaultSort(rt *resource.Type) (*expression.Sort, error) {
	chain, err := expression.NewResourceFieldChain(rt.ID())
	if err != nil {
		return nil, err
	}
	element, err := expression.NewSortElement(chain, true)
	if err != nil {
		return nil, err
	}
	return expression.NewSort(element)
}

func filterByID(id interface{}, rt *resource.Type, existing expression.FilterExpression) (expression.FilterExpression, error) {
	chain, err := expression.NewResourceFieldChain(rt.ID())
	if err != nil {
		return nil, err
	}
	byID, err := expression.NewComparison(expression.Equals, chain, expression.NewTypedLiteral(resource.FormatValue(id), id))
	if err != nil {
		return nil, err
	}
	return expression.AndAll(byID, existing), nil
}

func checkType(rt *resource.Type) error {
	if rt == nil || rt.ID() == nil {
		err := errors.WrapDet(ErrInternal, "composing against unregistered resource type")
		logger.Errorf("%v", err)
		return err
	}
	return nil
}
