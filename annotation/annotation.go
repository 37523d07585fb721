// Package annotation contains the struct field tag keywords used while mapping the models
// into the resource graph.
package annotation

// JSONAPI is the root struct field annotation tag.
//
//	type Article struct {
//		ID     int     `jsonapi:"type=primary"`
//		Title  string  `jsonapi:"type=attr;name=title;flags=nosort"`
//		Author *Person `jsonapi:"type=relation;inverse=articles"`
//	}
const JSONAPI = "jsonapi"

// Field type annotation tags.
const (
	// FieldType is the tag used to set the field type.
	FieldType = "type"
	// Name is the tag used to set the field's public name.
	Name = "name"
	// Flags is the tag used for defining field flags.
	Flags = "flags"
)

// Field type values.
const (
	Primary      = "primary"
	PrimaryShort = "pk"
	ID           = "id"

	Attribute     = "attr"
	AttributeFull = "attribute"

	Relation     = "relation"
	RelationFull = "relationship"
)

// Relationship annotation tags.
const (
	// Through is the tag that defines the join model name of the has-many-through relationship.
	Through = "through"
	// Inverse is the tag that defines the inverse relationship public name on the right side resource.
	Inverse = "inverse"
	// Links is the tag that defines the relationship links. i.e.: 'links=self,related' or 'links=none'.
	Links = "links"
)

// Field flags.
const (
	// Hidden defines that the attribute should never be serialized.
	Hidden = "hidden"
	// NoView disallows to view the attribute.
	NoView = "noview"
	// NoFilter disallows to query filter for given field.
	NoFilter = "nofilter"
	// NoSort disallows to query sort on given field.
	NoSort = "nosort"
	// NoInclude disallows to include given relationship.
	NoInclude = "noinclude"
	// Eager marks the relationship to be always loaded with its parent resource.
	Eager = "eager"
)

// Link type values.
const (
	LinkNone    = "none"
	LinkSelf    = "self"
	LinkRelated = "related"
	LinkPaging  = "paging"
	LinkAll     = "all"
)

// Separators and other symbols.
const (
	// Separator is the symbol used to separate the values of given tag.
	// Example: `jsonapi:"flags=nofilter,nosort"`
	//                                  ^
	Separator = ","
	// TagSeparator is the symbol used to separate the tags.
	// Example: `jsonapi:"type=attr;name=custom_name"`
	//                             ^
	TagSeparator = ";"
	// TagEqual is the symbol used to set the values for the for given tag.
	// Example: `jsonapi:"type=attr"`
	//                        ^
	TagEqual = '='
	// NestedSeparator is the symbol used as a separator for the relationship chains.
	// Example: author.articles
	//                ^
	NestedSeparator = "."
	// OpenedBracket is the symbol used in the query parameters scopes.
	// Example: filter[author.articles]
	//                ^
	OpenedBracket = '['
	// ClosedBracket is the symbol used in the query parameters scopes.
	// Example: filter[author.articles]
	//                                ^
	ClosedBracket = ']'
)
