package engine

// Store is a generic table keyed by a serialized handle or composite key
// Dense key slice keeps iteration deterministic in insertion order
// Not safe for concurrent use; the step loop is the only writer
type Store[K comparable, T any] struct {
	index map[K]int
	keys  []K
	vals  []T
}

// NewStore creates an empty store
func NewStore[K comparable, T any]() *Store[K, T] {
	return &Store[K, T]{
		index: make(map[K]int),
		keys:  make([]K, 0, 16),
		vals:  make([]T, 0, 16),
	}
}

// Set inserts or updates the value for key
func (s *Store[K, T]) Set(key K, val T) {
	if i, ok := s.index[key]; ok {
		s.vals[i] = val
		return
	}
	s.index[key] = len(s.keys)
	s.keys = append(s.keys, key)
	s.vals = append(s.vals, val)
}

// Get returns the value for key
func (s *Store[K, T]) Get(key K) (T, bool) {
	if i, ok := s.index[key]; ok {
		return s.vals[i], true
	}
	var zero T
	return zero, false
}

// Ptr returns a pointer into the store for in-place mutation
// Valid until the next Set of a new key or Remove
func (s *Store[K, T]) Ptr(key K) *T {
	if i, ok := s.index[key]; ok {
		return &s.vals[i]
	}
	return nil
}

// Has checks whether key is present
func (s *Store[K, T]) Has(key K) bool {
	_, ok := s.index[key]
	return ok
}

// Remove deletes key, preserving the order of the remaining keys
func (s *Store[K, T]) Remove(key K) bool {
	i, ok := s.index[key]
	if !ok {
		return false
	}
	delete(s.index, key)
	copy(s.keys[i:], s.keys[i+1:])
	copy(s.vals[i:], s.vals[i+1:])
	last := len(s.keys) - 1
	var zeroK K
	var zeroT T
	s.keys[last] = zeroK
	s.vals[last] = zeroT
	s.keys = s.keys[:last]
	s.vals = s.vals[:last]
	for j := i; j < last; j++ {
		s.index[s.keys[j]] = j
	}
	return true
}

// RemoveIf deletes every entry matching fn in a single compaction pass, returns removed count
func (s *Store[K, T]) RemoveIf(fn func(K, T) bool) int {
	write := 0
	for read := range s.keys {
		k, v := s.keys[read], s.vals[read]
		if fn(k, v) {
			delete(s.index, k)
			continue
		}
		s.keys[write] = k
		s.vals[write] = v
		s.index[k] = write
		write++
	}
	removed := len(s.keys) - write
	var zeroK K
	var zeroT T
	for i := write; i < len(s.keys); i++ {
		s.keys[i] = zeroK
		s.vals[i] = zeroT
	}
	s.keys = s.keys[:write]
	s.vals = s.vals[:write]
	return removed
}

// Keys returns a copy of all keys; safe to mutate the store while iterating the copy
func (s *Store[K, T]) Keys() []K {
	out := make([]K, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of entries
func (s *Store[K, T]) Len() int {
	return len(s.keys)
}

// Clear removes every entry
func (s *Store[K, T]) Clear() {
	clear(s.index)
	clear(s.keys)
	clear(s.vals)
	s.keys = s.keys[:0]
	s.vals = s.vals[:0]
}
