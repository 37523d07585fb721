package resource

import (
	"strings"

	"github.com/neuronlabs/jsonapi/annotation"
	"github.com/neuronlabs/jsonapi/errors"
)

// LinkTypes is the bit set of the link kinds rendered for given resource, relationship or document.
type LinkTypes uint8

// Link type values.
const (
	LinkNone LinkTypes = 0
	LinkSelf LinkTypes = 1 << iota
	LinkRelated
	LinkPaging
	LinkAll = LinkSelf | LinkRelated | LinkPaging
)

// Has checks if the link types contains given 'link'.
func (l LinkTypes) Has(link LinkTypes) bool {
	return l&link == link && link != LinkNone
}

// String implements fmt.Stringer interface.
func (l LinkTypes) String() string {
	if l == LinkNone {
		return annotation.LinkNone
	}
	var values []string
	if l.Has(LinkSelf) {
		values = append(values, annotation.LinkSelf)
	}
	if l.Has(LinkRelated) {
		values = append(values, annotation.LinkRelated)
	}
	if l.Has(LinkPaging) {
		values = append(values, annotation.LinkPaging)
	}
	return strings.Join(values, annotation.Separator)
}

// ParseLinkTypes parses the link type names into the LinkTypes.
func ParseLinkTypes(values ...string) (LinkTypes, error) {
	var links LinkTypes
	for _, value := range values {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case annotation.LinkAll:
			links |= LinkAll
		case annotation.LinkSelf:
			links |= LinkSelf
		case annotation.LinkRelated:
			links |= LinkRelated
		case annotation.LinkPaging:
			links |= LinkPaging
		case annotation.LinkNone:
		default:
			return LinkNone, errors.WrapDetf(ErrInvalidTag, "unknown link type: '%s'", value)
		}
	}
	return links, nil
}

// LinksDefiner is the interface implemented by the models that defines it's own link types.
type LinksDefiner interface {
	// LinkTypes returns the top-level document, resource object and relationship link types.
	LinkTypes() (topLevel, resource, relationship LinkTypes)
}
