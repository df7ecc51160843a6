package status

import (
	"slices"
	"sync"
)

// Table hands out one stable *T per metric name
// Systems resolve their pointers once at construction and write without the lock afterwards
type Table[T any] struct {
	mu    sync.RWMutex
	slots map[string]*T
}

func newTable[T any]() *Table[T] {
	return &Table[T]{slots: make(map[string]*T)}
}

// Get returns the slot for name, allocating it on first use
func (t *Table[T]) Get(name string) *T {
	t.mu.RLock()
	slot, ok := t.slots[name]
	t.mu.RUnlock()
	if ok {
		return slot
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if slot, ok = t.slots[name]; !ok {
		slot = new(T)
		t.slots[name] = slot
	}
	return slot
}

// Has reports whether name was ever requested
func (t *Table[T]) Has(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.slots[name]
	return ok
}

// Range visits slots in name order
func (t *Table[T]) Range(fn func(name string, slot *T)) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.slots))
	for name := range t.slots {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fn(name, t.slots[name])
	}
}

// Len returns the number of slots
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.slots)
}
