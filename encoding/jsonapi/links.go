package jsonapi

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/query/parsing"
	"github.com/neuronlabs/jsonapi/resource"
)

// LinkBuilder creates the document, resource and relationship links.
type LinkBuilder struct {
	// Base is the scheme with the host i.e. 'https://example.com'. Empty for the relative links.
	Base string
	// Namespace is the path prefix of the resource endpoints i.e. '/api/v1'.
	Namespace string
	// RequestURL is the url of the current request.
	RequestURL *url.URL
}

// NewLinkBuilder creates the link builder for the 'requestURL'. The 'base' is ignored if 'relative' is set.
func NewLinkBuilder(requestURL *url.URL, base, namespace string, relative bool) *LinkBuilder {
	l := &LinkBuilder{RequestURL: requestURL}
	if !relative {
		l.Base = strings.TrimSuffix(base, "/")
	}
	if namespace = strings.Trim(namespace, "/"); namespace != "" {
		l.Namespace = "/" + namespace
	}
	return l
}

// ResourceSelf gets the resource object self link.
func (l *LinkBuilder) ResourceSelf(rt *resource.Type, id string) string {
	return l.Base + l.Namespace + "/" + rt.Name() + "/" + url.PathEscape(id)
}

// RelationshipSelf gets the relationship self link.
func (l *LinkBuilder) RelationshipSelf(rel *resource.Relationship, id string) string {
	return l.ResourceSelf(rel.Owner(), id) + "/relationships/" + rel.PublicName()
}

// RelationshipRelated gets the relationship related resources link.
func (l *LinkBuilder) RelationshipRelated(rel *resource.Relationship, id string) string {
	return l.ResourceSelf(rel.Owner(), id) + "/" + rel.PublicName()
}

// Self gets the top-level document self link - the request url.
func (l *LinkBuilder) Self() string {
	if l.RequestURL == nil {
		return ""
	}
	return l.Base + l.RequestURL.RequestURI()
}

// Paging sets the 'first', 'prev', 'next' and 'last' links of the top-level pagination. The 'next' link is
// set if the current page is full or the total page count is greater than the current page.
func (l *LinkBuilder) Paging(links Links, pagination *query.PaginationContext) {
	if l.RequestURL == nil || pagination == nil || !pagination.IsPaginated() {
		return
	}
	current := pagination.PageNumber.OneBasedValue()
	links["first"] = l.page(1)
	if current > 1 {
		links["prev"] = l.page(current - 1)
	}
	last, hasLast := pagination.TotalPageCount()
	if hasLast {
		if last < 1 {
			last = 1
		}
		links["last"] = l.page(last)
	}
	if (hasLast && current < last) || (!hasLast && pagination.IsPageFull) {
		links["next"] = l.page(current + 1)
	}
}

// page gets the request link with the top-level page number replaced. The scoped page numbers are preserved.
func (l *LinkBuilder) page(number int) string {
	u := *l.RequestURL
	values := u.Query()
	var parts []string
	if number > 1 {
		parts = append(parts, strconv.Itoa(number))
	}
	for _, value := range strings.Split(values.Get(parsing.ParamPageNumber), ",") {
		if strings.Contains(value, ":") {
			parts = append(parts, value)
		}
	}
	if len(parts) == 0 {
		values.Del(parsing.ParamPageNumber)
	} else {
		values.Set(parsing.ParamPageNumber, strings.Join(parts, ","))
	}
	u.RawQuery = values.Encode()
	return l.Base + u.RequestURI()
}
