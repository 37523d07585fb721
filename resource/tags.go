package resource

import (
	"reflect"
	"strings"

	"github.com/neuronlabs/jsonapi/annotation"
)

// fieldTag is the key: values pair for the given field struct's tag.
type fieldTag struct {
	Key    string
	Values []string
}

// extractFieldTags extracts the field tags from the 'jsonapi' struct tag of provided field.
// The tag is defined as follows:
//
//	type Model struct {
//		Field string `jsonapi:"subtag=value1,value2;subtag2"`
//	}                                   ^      ^
//	                            valueSeparator tagSeparator
func extractFieldTags(field reflect.StructField) []*fieldTag {
	tag, ok := field.Tag.Lookup(annotation.JSONAPI)
	if !ok {
		return nil
	}
	// omit the field with the '-' tag
	if tag == "-" {
		return []*fieldTag{{Key: "-"}}
	}

	var (
		separators []int
		options    []string
		tags       []*fieldTag
	)
	tagSeparator := []rune(annotation.TagSeparator)[0]
	for i, r := range tag {
		// escaped separators are not taken into account
		if i != 0 && r == tagSeparator && tag[i-1] != '\\' {
			separators = append(separators, i)
		}
	}

	start := 0
	for _, sep := range separators {
		options = append(options, tag[start:sep])
		start = sep + 1
	}
	options = append(options, tag[start:])

	for _, o := range options {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		equalIndex := -1
		for i, r := range o {
			if r == annotation.TagEqual && (i == 0 || o[i-1] != '\\') {
				equalIndex = i
				break
			}
		}
		ft := &fieldTag{}
		if equalIndex > 0 {
			ft.Key = strings.TrimSpace(o[:equalIndex])
			for _, value := range strings.Split(o[equalIndex+1:], annotation.Separator) {
				if value = strings.TrimSpace(value); value != "" {
					ft.Values = append(ft.Values, value)
				}
			}
		} else {
			ft.Key = o
		}
		tags = append(tags, ft)
	}
	return tags
}
