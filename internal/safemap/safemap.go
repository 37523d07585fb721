// Package safemap contains the concurrent safe, append-only hash map used by the process-wide caches.
package safemap

import (
	"sync"
)

// Map is a concurrent safe hash map with the insert-if-absent semantics.
// The values once stored are never removed nor replaced.
type Map[K comparable, V any] struct {
	values map[K]V
	sync.RWMutex
}

// New creates new safe hashmap.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{values: make(map[K]V)}
}

// Get gets the safe hashmap value stored at given 'key'.
func (s *Map[K, V]) Get(key K) (V, bool) {
	s.RLock()
	defer s.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

// Contains checks if given hash map has a given key.
func (s *Map[K, V]) Contains(key K) bool {
	_, ok := s.Get(key)
	return ok
}

// SetIfAbsent stores the 'value' at given 'key' only if the key was not set before.
// Returns the value stored in the map and true if the value was inserted.
func (s *Map[K, V]) SetIfAbsent(key K, value V) (V, bool) {
	s.Lock()
	defer s.Unlock()
	if stored, ok := s.values[key]; ok {
		return stored, false
	}
	s.values[key] = value
	return value, true
}

// GetOrCompute gets the value stored at 'key'. If the key doesn't exists the value is computed
// by the 'compute' function and stored in the map.
func (s *Map[K, V]) GetOrCompute(key K, compute func() V) V {
	if value, ok := s.Get(key); ok {
		return value
	}
	s.Lock()
	defer s.Unlock()
	if stored, ok := s.values[key]; ok {
		return stored
	}
	value := compute()
	s.values[key] = value
	return value
}

// Length gets the hash map length.
func (s *Map[K, V]) Length() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.values)
}
