package parsing

import (
	"net/url"
	"sort"

	"github.com/neuronlabs/jsonapi/config"
	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/log"
	"github.com/neuronlabs/jsonapi/query"
	"github.com/neuronlabs/jsonapi/resource"
)

var logger = log.NewModuleLogger("parsing")

// QueryStringReader dispatches the query string parameters to the category readers.
type QueryStringReader struct {
	options *config.Options
	readers []Reader
}

// NewQueryStringReader creates the query string reader with the filter, sort, include, sparse fieldset
// and pagination readers for the 'request'.
func NewQueryStringReader(graph *resource.Graph, options *config.Options, request *query.Request) *QueryStringReader {
	if options == nil {
		options = config.DefaultOptions()
	}
	return &QueryStringReader{
		options: options,
		readers: []Reader{
			NewFilterReader(request, options),
			NewSortReader(request, options),
			NewIncludeReader(request, options),
			NewSparseFieldSetReader(graph, request, options),
			NewPaginationReader(request, options),
		},
	}
}

// ReadAll reads all the query string 'values'. The parameters are read in the sorted order.
// All the failures are returned within the errors.MultiError.
func (q *QueryStringReader) ReadAll(values url.Values) error {
	parameters := make([]string, 0, len(values))
	for parameter := range values {
		parameters = append(parameters, parameter)
	}
	sort.Strings(parameters)

	var multi errors.MultiError
	for _, parameter := range parameters {
		reader := q.reader(parameter)
		if reader == nil {
			if q.options.AllowUnknownQueryStringParameters {
				continue
			}
			multi = append(multi, newParameterError(query.ErrUnknownParameter, parameter, "query string parameter '%s' is not supported", parameter))
			continue
		}
		for _, value := range values[parameter] {
			if err := reader.Read(parameter, value); err != nil {
				logger.Debugf("Reading query parameter: '%s' failed: %v", parameter, err)
				multi = append(multi, err)
				break
			}
		}
	}
	return multi.ErrorOrNil()
}

// Providers returns the readers as the constraint providers.
func (q *QueryStringReader) Providers() []query.ConstraintProvider {
	providers := make([]query.ConstraintProvider, len(q.readers))
	for i, r := range q.readers {
		providers[i] = r
	}
	return providers
}

func (q *QueryStringReader) reader(parameter string) Reader {
	for _, r := range q.readers {
		if r.CanRead(parameter) {
			return r
		}
	}
	return nil
}
