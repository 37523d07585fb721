package store

import (
	"context"

	"github.com/neuronlabs/jsonapi/query/queryable"
)

// Executor is the data store execution boundary. It executes the lowered queryable expressions.
// The cancellation of the 'ctx' should stop the outstanding execution.
type Executor interface {
	// Execute executes the 'query' and returns materialized models - pointers to the resource structs.
	// The models have populated only the fields fetched by the query.
	Execute(ctx context.Context, query queryable.Expression) ([]interface{}, error)
	// Count executes the 'query' ending with the Count method call.
	Count(ctx context.Context, query queryable.Expression) (int64, error)
}
