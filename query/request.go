package query

import (
	"github.com/neuronlabs/jsonapi/resource"
)

// EndpointKind is the kind of the requested endpoint.
type EndpointKind int

const (
	// PrimaryEndpoint is the endpoint of the primary resource collection or a single primary resource.
	// i.e.: /articles or /articles/1
	PrimaryEndpoint EndpointKind = iota
	// SecondaryEndpoint is the endpoint of the related resources. i.e.: /articles/1/author
	SecondaryEndpoint
	// RelationshipEndpoint is the endpoint of the relationship identifiers. i.e.: /articles/1/relationships/author
	RelationshipEndpoint
)

// String implements fmt.Stringer interface.
func (e EndpointKind) String() string {
	switch e {
	case PrimaryEndpoint:
		return "primary"
	case SecondaryEndpoint:
		return "secondary"
	case RelationshipEndpoint:
		return "relationship"
	}
	return "unknown"
}

// Request describes the requested endpoint.
type Request struct {
	Kind EndpointKind
	// PrimaryType is the resource type of the first url segment.
	PrimaryType *resource.Type
	// PrimaryID is the raw identifier of the primary resource. Empty for the collection endpoints.
	PrimaryID string
	// Relationship is the requested relationship of the secondary and relationship endpoints.
	Relationship *resource.Relationship
}

// IsCollection checks if the request results in a collection of resources.
func (r *Request) IsCollection() bool {
	switch r.Kind {
	case PrimaryEndpoint:
		return r.PrimaryID == ""
	default:
		return r.Relationship != nil && r.Relationship.IsToMany()
	}
}

// ResourceType returns the type of the resources in the response document.
func (r *Request) ResourceType() *resource.Type {
	if r.Kind != PrimaryEndpoint && r.Relationship != nil {
		return r.Relationship.RightType()
	}
	return r.PrimaryType
}
