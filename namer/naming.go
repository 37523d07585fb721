// Package namer converts the Go identifiers into the public names of the resource types and fields.
package namer

import (
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/jinzhu/inflection"

	"github.com/neuronlabs/jsonapi/errors"
)

// ErrNamingConvention is an error classification with errors related with naming convention.
var ErrNamingConvention = errors.Wrap(errors.ErrInvalidInput, "naming convention")

// Convention is the public name convention.
type Convention int

const (
	// LowerCamel joins the words, all but the first one starts with a capital letter i.e.: blogPost.
	LowerCamel Convention = iota
	// Camel joins the words, each one starts with a capital letter i.e.: BlogPost.
	Camel
	// Snake joins the lower case words with the '_' character i.e.: blog_post.
	Snake
	// Kebab joins the lower case words with the '-' character i.e.: blog-post.
	Kebab
)

var (
	names      = [...]string{LowerCamel: "lowercamel", Camel: "camel", Snake: "snake", Kebab: "kebab"}
	converters = [...]func(string) string{
		LowerCamel: strcase.ToLowerCamel,
		Camel:      strcase.ToCamel,
		Snake:      strcase.ToSnake,
		Kebab:      strcase.ToKebab,
	}
)

// ParseConvention gets the convention by its 'name'. The empty name results in the LowerCamel convention.
func ParseConvention(name string) (Convention, error) {
	name = strings.ReplaceAll(strings.ToLower(name), "_", "")
	if name == "" {
		return LowerCamel, nil
	}
	for c, n := range names {
		if n == name {
			return Convention(c), nil
		}
	}
	return LowerCamel, errors.WrapDetf(ErrNamingConvention, "unknown naming convention name: %s", name)
}

// String implements fmt.Stringer interface.
func (c Convention) String() string {
	if c < 0 || int(c) >= len(names) {
		return "unknown"
	}
	return names[c]
}

// Field gets the public name of the struct field 'goName'.
func (c Convention) Field(goName string) string {
	if c < 0 || int(c) >= len(converters) {
		return goName
	}
	return converters[c](goName)
}

// ResourceType gets the resource type name of the struct 'goName'. The last word is pluralized
// if 'pluralize' is set i.e.: BlogPost -> blogPosts.
func (c Convention) ResourceType(goName string, pluralize bool) string {
	if pluralize {
		goName = inflection.Plural(goName)
	}
	return c.Field(goName)
}
