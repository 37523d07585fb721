package memory

import (
	"context"
	"reflect"
	"sync"

	"golang.org/x/text/collate"

	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/log"
	"github.com/neuronlabs/jsonapi/query/queryable"
	"github.com/neuronlabs/jsonapi/resource"
	"github.com/neuronlabs/jsonapi/store"
)

var logger = log.NewModuleLogger("memory")

// ErrInternal is the internal in-memory store error classification.
var ErrInternal = errors.Wrap(store.ErrInternal, "memory")

// Compile time check if memory implements store executor interface.
var _ store.Executor = &Store{}

// Store is an in-memory store executing the queryable expressions on the stored models.
// The stored models are never returned to the caller - the results are always copies.
type Store struct {
	Options *store.Options

	graph  *resource.Graph
	lock   sync.RWMutex
	models map[*resource.Type][]reflect.Value
}

// New creates new in-memory store for the models of the resource 'graph'.
func New(graph *resource.Graph, options ...store.Option) *Store {
	s := &Store{
		Options: store.DefaultOptions(),
		graph:   graph,
		models:  map[*resource.Type][]reflect.Value{},
	}
	for _, option := range options {
		option(s.Options)
	}
	return s
}

// Add stores the 'models' - pointers to the mapped resource structs. A model with the identifier
// of already stored one replaces it. The relationships are stored as they are set within the models.
func (s *Store) Add(models ...interface{}) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, model := range models {
		rt, err := s.graph.ByModel(model)
		if err != nil {
			return err
		}
		v := reflect.ValueOf(model)
		if v.Kind() != reflect.Ptr || v.IsNil() {
			return errors.WrapDetf(ErrInternal, "model: '%T' is not a non nil pointer", model)
		}
		id := rt.IDOf(model)
		stored := s.models[rt]
		replaced := false
		for i, existing := range stored {
			if reflect.DeepEqual(rt.IDOf(existing.Interface()), id) {
				stored[i] = v
				replaced = true
				break
			}
		}
		if !replaced {
			s.models[rt] = append(stored, v)
		}
	}
	return nil
}

// Execute implements store.Executor interface.
func (s *Store) Execute(ctx context.Context, query queryable.Expression) ([]interface{}, error) {
	result, err := s.evaluate(ctx, query)
	if err != nil {
		return nil, err
	}
	seq, ok := result.(*sequence)
	if !ok {
		return nil, errors.WrapDetf(store.ErrUnsupportedQuery, "query: '%s' doesn't result in a collection", query)
	}
	models := make([]interface{}, len(seq.items))
	for i, item := range seq.items {
		if !seq.projected {
			item = materialize(seq.resourceType, item, seq.includes)
		}
		models[i] = item.Interface()
	}
	return models, nil
}

// Count implements store.Executor interface.
func (s *Store) Count(ctx context.Context, query queryable.Expression) (int64, error) {
	call, ok := query.(*queryable.Call)
	if !ok || call.Method != queryable.Count {
		return 0, errors.WrapDetf(store.ErrUnsupportedQuery, "query: '%s' is not a count query", query)
	}
	result, err := s.evaluate(ctx, query)
	if err != nil {
		return 0, err
	}
	v, ok := result.(reflect.Value)
	if !ok || v.Kind() != reflect.Int64 {
		return 0, errors.WrapDetf(ErrInternal, "count query: '%s' result is not an integer", query)
	}
	return v.Int(), nil
}

func (s *Store) evaluate(ctx context.Context, query queryable.Expression) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.lock.RLock()
	defer s.lock.RUnlock()

	if logger.IsLevelEnabled(log.LDEBUG3) {
		logger.Debug3f("Executing: %s", query)
	}
	// The collator is not safe for concurrent use.
	collator := collate.New(s.Options.Language)
	env := &environment{
		ctx:            ctx,
		store:          s,
		compareStrings: collator.CompareString,
	}
	result, err := queryable.Visit[*environment, interface{}](query, &evaluator{}, env)
	if err != nil {
		logger.Debugf("Executing query: '%s' failed: %v", query, err)
		return nil, err
	}
	return result, nil
}

func (s *Store) source(rt *resource.Type) []reflect.Value {
	stored := s.models[rt]
	items := make([]reflect.Value, len(stored))
	copy(items, stored)
	return items
}
