package service

import (
	"context"
	"net/url"
	"reflect"

	"github.com/neuronlabs/jsonapi/encoding/jsonapi"
	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/internal/typeconv"
	"github.com/neuronlabs/jsonapi/log"
	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/query/builder"
	"github.com/neuronlabs/jsonapi/query/parsing"
	"github.com/neuronlabs/jsonapi/resource"
	"github.com/neuronlabs/jsonapi/store"
)

// Query is a single read request of the resource endpoint.
type Query struct {
	Request *query.Request
	// Values are the query string parameters of the request.
	Values url.Values
	// Links builds the document links. If nil, only the links that doesn't need the request url are built.
	Links *jsonapi.LinkBuilder
}

// Handle reads the query string parameters, executes the request and converts the result into the document.
func (s *Service) Handle(ctx context.Context, q *Query) (*jsonapi.Document, error) {
	if err := checkRequest(q.Request); err != nil {
		return nil, err
	}
	reader := parsing.NewQueryStringReader(s.Graph, s.Options.Options, q.Request)
	if err := reader.ReadAll(q.Values); err != nil {
		return nil, err
	}
	composer := query.NewComposer(s.Options.Options, s.Accessor, reader.Providers()...)

	var (
		result interface{}
		err    error
	)
	r := q.Request
	switch r.Kind {
	case query.PrimaryEndpoint:
		if r.PrimaryID == "" {
			result, err = s.GetCollection(ctx, composer, r.PrimaryType)
		} else {
			result, err = s.GetByID(ctx, composer, r.PrimaryType, r.PrimaryID)
		}
	case query.SecondaryEndpoint:
		result, err = s.GetSecondary(ctx, composer, r.PrimaryType, r.PrimaryID, r.Relationship)
	case query.RelationshipEndpoint:
		result, err = s.GetRelationship(ctx, composer, r.PrimaryType, r.PrimaryID, r.Relationship)
	}
	if err != nil {
		return nil, err
	}
	return jsonapi.NewResponseModelAdapter(r, composer, s.Accessor, q.Links).Convert(result)
}

// GetCollection gets the primary resources of the type 'rt'. If the options requires so, the total resource count
// is stored in the composer pagination context.
func (s *Service) GetCollection(ctx context.Context, composer *query.Composer, rt *resource.Type) ([]interface{}, error) {
	layer, err := composer.Compose(rt)
	if err != nil {
		return nil, err
	}
	pagination := composer.PaginationContext()
	if s.Options.Options.IncludeTotalResourceCount {
		total, err := s.count(ctx, composer, rt)
		if err != nil {
			return nil, err
		}
		pagination.TotalResourceCount = &total
		if total == 0 {
			return []interface{}{}, nil
		}
	}
	models, err := s.execute(ctx, rt, layer)
	if err != nil {
		return nil, err
	}
	setPageFull(pagination, len(models))
	return models, nil
}

// GetByID gets the primary resource of the type 'rt' with the identifier 'rawID'.
func (s *Service) GetByID(ctx context.Context, composer *query.Composer, rt *resource.Type, rawID string) (interface{}, error) {
	id, err := convertID(rt, rawID)
	if err != nil {
		return nil, err
	}
	layer, err := composer.ComposeForGetByID(id, rt)
	if err != nil {
		return nil, err
	}
	models, err := s.execute(ctx, rt, layer)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, notFound(rt, rawID)
	}
	return models[0], nil
}

// GetSecondary gets the resources related to the primary resource with the identifier 'rawID' by the 'relationship'.
// The result is a pointer to the related resource struct for to-one relationships or a slice of such pointers.
func (s *Service) GetSecondary(ctx context.Context, composer *query.Composer, primaryType *resource.Type, rawID string,
	relationship *resource.Relationship) (interface{}, error) {
	secondary, err := composer.ComposeSecondaryLayerForRelationship(relationship)
	if err != nil {
		return nil, err
	}
	return s.getRelated(ctx, composer, primaryType, rawID, relationship, secondary)
}

// GetRelationship gets the relationship identifiers of the primary resource with the identifier 'rawID'.
// Only the identifiers of the related resources are fetched.
func (s *Service) GetRelationship(ctx context.Context, composer *query.Composer, primaryType *resource.Type, rawID string,
	relationship *resource.Relationship) (interface{}, error) {
	secondary, err := composer.ComposeForRelationshipIdentifiers(relationship)
	if err != nil {
		return nil, err
	}
	return s.getRelated(ctx, composer, primaryType, rawID, relationship, secondary)
}

func (s *Service) getRelated(ctx context.Context, composer *query.Composer, primaryType *resource.Type, rawID string,
	relationship *resource.Relationship, secondary *query.QueryLayer) (interface{}, error) {
	id, err := convertID(primaryType, rawID)
	if err != nil {
		return nil, err
	}
	layer, err := composer.WrapLayerForSecondaryEndpoint(secondary, primaryType, id, relationship)
	if err != nil {
		return nil, err
	}
	models, err := s.execute(ctx, primaryType, layer)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, notFound(primaryType, rawID)
	}
	related := relationship.ValueOf(reflect.ValueOf(models[0]))
	if relationship.IsToMany() {
		setPageFull(composer.PaginationContext(), related.Len())
	}
	return related.Interface(), nil
}

func (s *Service) execute(ctx context.Context, rt *resource.Type, layer *query.QueryLayer) ([]interface{}, error) {
	expr, err := builder.New(rt).ApplyQuery(layer)
	if err != nil {
		return nil, err
	}
	models, err := s.Executor.Execute(ctx, expr)
	if err != nil {
		logger.Debugf("Executing query for: '%s' failed: %v", rt, err)
		return nil, err
	}
	if logger.IsLevelEnabled(log.LDEBUG2) {
		logger.Debug2f("Query for: '%s' returned: %d models", rt, len(models))
	}
	return models, nil
}

func (s *Service) count(ctx context.Context, composer *query.Composer, rt *resource.Type) (int64, error) {
	filter, err := composer.GetTopFilter(rt)
	if err != nil {
		return 0, err
	}
	expr, err := builder.New(rt).ApplyCount(filter)
	if err != nil {
		return 0, err
	}
	return s.Executor.Count(ctx, expr)
}

func setPageFull(pagination *query.PaginationContext, length int) {
	pagination.IsPageFull = pagination.PageSize != nil && length == pagination.PageSize.Value()
}

// convertID converts the 'raw' identifier into the type of the resource identifier attribute.
// The identifier that couldn't be converted doesn't point to any resource.
func convertID(rt *resource.Type, raw string) (interface{}, error) {
	id, err := typeconv.ConvertTo(raw, rt.ID().GoType())
	if err != nil {
		logger.Debug2f("Converting identifier: '%s' of: '%s' failed: %v", raw, rt, err)
		return nil, notFound(rt, raw)
	}
	return id, nil
}

func notFound(rt *resource.Type, rawID string) error {
	return errors.WrapDetf(store.ErrResourceNotFound, "resource: '%s' with id: '%s' does not exist", rt.Name(), rawID)
}

func checkRequest(r *query.Request) error {
	switch {
	case r == nil || r.PrimaryType == nil:
		return errors.WrapDet(ErrInvalidRequest, "request without the primary resource type")
	case r.Kind == query.PrimaryEndpoint:
		return nil
	case r.PrimaryID == "":
		return errors.WrapDetf(ErrInvalidRequest, "request of the '%s' endpoint without the primary id", r.Kind)
	case r.Relationship == nil || r.Relationship.Owner() != r.PrimaryType:
		return errors.WrapDetf(ErrInvalidRequest, "relationship doesn't belong to: '%s'", r.PrimaryType)
	}
	return nil
}
