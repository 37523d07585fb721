package config

// Options are the global defaults consumed by the resource graph, query string parsing,
// query layer composition and the response serialization.
type Options struct {
	// DefaultPageSize is the page size used when no pagination is requested. Zero means no limit.
	DefaultPageSize int `mapstructure:"default_page_size" validate:"gte=0"`
	// MaximumPageSize is the maximum page size allowed to be requested. Zero means no maximum.
	MaximumPageSize int `mapstructure:"maximum_page_size" validate:"gte=0"`
	// MaximumPageNumber is the maximum page number allowed to be requested. Zero means no maximum.
	MaximumPageNumber int `mapstructure:"maximum_page_number" validate:"gte=0"`
	// DisableTopPagination suppresses the pagination on the top scope, even if it was requested.
	DisableTopPagination bool `mapstructure:"disable_top_pagination"`
	// DisableChildrenPagination suppresses the pagination on all nested scopes, even if it was requested.
	DisableChildrenPagination bool `mapstructure:"disable_children_pagination"`
	// IncludeTotalResourceCount adds the total resource count to the top-level meta.
	IncludeTotalResourceCount bool `mapstructure:"include_total_resource_count"`
	// MaximumIncludeDepth limits the length of the include chains. Zero means no limit.
	MaximumIncludeDepth int `mapstructure:"maximum_include_depth" validate:"gte=0"`
	// AllowUnknownQueryStringParameters allows unknown query parameters to be silently ignored.
	AllowUnknownQueryStringParameters bool `mapstructure:"allow_unknown_query_string_parameters"`

	// NamingConvention is the naming convention used for the resource field public names.
	NamingConvention string `mapstructure:"naming_convention" validate:"isdefault|oneof=camel lowercamel snake kebab"`
	// PluralizeResourceNames defines if the resource type names are pluralized.
	PluralizeResourceNames bool `mapstructure:"pluralize_resource_names"`
	// DefaultAttrCapabilities are the capabilities set for the attributes without flags.
	DefaultAttrCapabilities []string `mapstructure:"default_attr_capabilities" validate:"dive,oneof=view filter sort"`

	// TopLevelLinks are the default top-level document links.
	TopLevelLinks []string `mapstructure:"top_level_links" validate:"dive,oneof=all none self related paging"`
	// ResourceLinks are the default resource object links.
	ResourceLinks []string `mapstructure:"resource_links" validate:"dive,oneof=all none self"`
	// RelationshipLinks are the default relationship links.
	RelationshipLinks []string `mapstructure:"relationship_links" validate:"dive,oneof=all none self related"`
	// UseRelativeLinks defines if the links are rendered without scheme and host.
	UseRelativeLinks bool `mapstructure:"use_relative_links"`
	// Namespace is the route prefix of all resource endpoints i.e. 'api/v1'.
	Namespace string `mapstructure:"namespace"`

	// Collation is the BCP 47 language tag used for the string ordering within the in-memory store.
	Collation string `mapstructure:"collation" validate:"isdefault|langtag"`
}

// Validate validates the options.
func (o *Options) Validate() error {
	return validateStruct(o)
}
