/*
Package parsing contains the query string constraint providers.

Each reader handles a single category of the query string parameters
('filter', 'sort', 'include', 'fields' and 'page'), validates the values against
the resource graph and yields the expressions in scope consumed by the query.Composer.

	reader := parsing.NewQueryStringReader(graph, options, request)
	if err := reader.ReadAll(r.URL.Query()); err != nil {
		...
	}
	composer := query.NewComposer(options, definitions, reader.Providers()...)
*/
package parsing
