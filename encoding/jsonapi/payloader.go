package jsonapi

import (
	"encoding/json"
)

// Document is the top-level JSON:API document. The Data is nil, *ResourceObject, []*ResourceObject,
// *ResourceIdentifier or []*ResourceIdentifier.
// More info can be found at: 'https://jsonapi.org/format/#document-top-level'
type Document struct {
	Data     interface{}       `json:"data"`
	Included []*ResourceObject `json:"included,omitempty"`
	Links    *Links            `json:"links,omitempty"`
	Meta     Meta              `json:"meta,omitempty"`
}

// ResourceIdentifier identifies the resource by its type and id.
type ResourceIdentifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// ResourceObject is used to represent a generic JSON API Resource.
type ResourceObject struct {
	Type          string                         `json:"type"`
	ID            string                         `json:"id,omitempty"`
	Attributes    map[string]interface{}         `json:"attributes,omitempty"`
	Relationships map[string]*RelationshipObject `json:"relationships,omitempty"`
	Links         *Links                         `json:"links,omitempty"`
	Meta          Meta                           `json:"meta,omitempty"`
}

// Identifier gets the resource object identifier.
func (r *ResourceObject) Identifier() *ResourceIdentifier {
	return &ResourceIdentifier{Type: r.Type, ID: r.ID}
}

// RelationshipObject is the relationship entry of the resource object. The Data is serialized only if HasData
// is set, the null to-one relationship is serialized as the 'null' data.
type RelationshipObject struct {
	Links *Links
	Meta  Meta
	// Data is nil, *ResourceIdentifier or []*ResourceIdentifier.
	Data    interface{}
	HasData bool
}

// MarshalJSON implements json.Marshaler interface.
func (r *RelationshipObject) MarshalJSON() ([]byte, error) {
	type object struct {
		Links *Links          `json:"links,omitempty"`
		Data  json.RawMessage `json:"data,omitempty"`
		Meta  Meta            `json:"meta,omitempty"`
	}
	o := object{Links: r.Links, Meta: r.Meta}
	if r.HasData {
		data, err := json.Marshal(r.Data)
		if err != nil {
			return nil, err
		}
		o.Data = data
	}
	return json.Marshal(o)
}

// Links is used to represent a `links` object.
// http://jsonapi.org/format/#document-links
type Links map[string]interface{}

// Link is used to represent a member of the `links` object.
type Link struct {
	Href string `json:"href"`
	Meta Meta   `json:"meta,omitempty"`
}

// Meta is used to represent a `meta` object.
// http://jsonapi.org/format/#document-meta
type Meta map[string]interface{}
