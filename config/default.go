package config

import (
	"github.com/spf13/viper"
)

// Default returns the default configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		panic(err)
	}
	return c
}

// DefaultOptions returns the default options.
func DefaultOptions() *Options {
	return Default().Options
}

func setDefaults(v *viper.Viper) {
	keys := map[string]interface{}{
		"log_level":                                     "info",
		"server.address":                                ":8080",
		"server.read_timeout":                           30,
		"server.write_timeout":                          30,
		"options.default_page_size":                     10,
		"options.maximum_page_size":                     0,
		"options.maximum_page_number":                   0,
		"options.disable_top_pagination":                false,
		"options.disable_children_pagination":           false,
		"options.include_total_resource_count":          true,
		"options.maximum_include_depth":                 0,
		"options.allow_unknown_query_string_parameters": false,
		"options.naming_convention":                     "lowercamel",
		"options.pluralize_resource_names":              true,
		"options.default_attr_capabilities":             []string{"view", "filter", "sort"},
		"options.top_level_links":                       []string{"all"},
		"options.resource_links":                        []string{"all"},
		"options.relationship_links":                    []string{"all"},
		"options.use_relative_links":                    false,
		"options.namespace":                             "",
		"options.collation":                             "und",
	}
	for k, value := range keys {
		v.SetDefault(k, value)
	}
}
