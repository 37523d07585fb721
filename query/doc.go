/*
Package query contains the query layer composition. The constraint providers read the request
query parameters into the expressions in scope, which are merged by the Composer into a tree of
the QueryLayers - one node per resource type reached by the included relationship chains.

The Composer applies the resource definition hooks and the defaults:

	filter     -> OnApplyFilter     -> (no default)
	sort       -> OnApplySort       -> identifier ascending
	pagination -> OnApplyPagination -> first page with the default page size
	fields     -> OnApplySparseFieldSet -> identifier always selected
	include    -> OnApplyIncludes

The composed layers are request-scoped and are never shared between the requests.
*/
package query
