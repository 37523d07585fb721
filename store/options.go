package store

import (
	"golang.org/x/text/language"
)

// Options are the initialization options for the store.
type Options struct {
	// Language is the language used for ordering the string values.
	Language language.Tag
}

// DefaultOptions creates the default store options.
func DefaultOptions() *Options {
	return &Options{Language: language.Und}
}

// Option is an option function that changes Options.
type Option func(o *Options)

// WithLanguage sets the language used to order the strings.
func WithLanguage(tag language.Tag) Option {
	return func(o *Options) {
		o.Language = tag
	}
}

// WithCollation sets the string ordering language from the BCP 47 'collation' tag.
// Invalid tags are ignored.
func WithCollation(collation string) Option {
	return func(o *Options) {
		if tag, err := language.Parse(collation); err == nil {
			o.Language = tag
		}
	}
}
