/*
Package resource contains the resource graph - a process-wide registry that maps the public resource
type names to the mapped Go struct models.

The models are mapped using the 'jsonapi' struct field tags:

	type Article struct {
		ID       int        `jsonapi:"type=primary"`
		Title    string     `jsonapi:"type=attr;flags=nosort"`
		Author   *Person    `jsonapi:"type=relation;inverse=articles;flags=eager"`
		Tags     []*Tag     `jsonapi:"type=relation;through=ArticleTag"`
		Internal string     `jsonapi:"-"`
	}

The graph is built once by the GraphBuilder and it is read-only afterwards.
*/
package resource
