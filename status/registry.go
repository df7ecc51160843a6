package status

import "sync/atomic"

// Registry holds the simulation counters and gauges
// Systems cache pointers at construction; step code writes directly to atomics
// Readers (overlay, otel callback) may run on other goroutines
type Registry struct {
	Ints   *Table[atomic.Int64]
	Gauges *Table[Gauge]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   newTable[atomic.Int64](),
		Gauges: newTable[Gauge](),
	}
}

// Len returns the number of counters and gauges
func (r *Registry) Len() int {
	return r.Ints.Len() + r.Gauges.Len()
}

// IntSnapshot copies every counter into a map for overlay and replay consumers
func (r *Registry) IntSnapshot() map[string]int64 {
	out := make(map[string]int64, r.Ints.Len())
	r.Ints.Range(func(key string, v *atomic.Int64) {
		out[key] = v.Load()
	})
	return out
}

// ResetInts zeroes every counter without dropping cached pointers
func (r *Registry) ResetInts() {
	r.Ints.Range(func(_ string, v *atomic.Int64) {
		v.Store(0)
	})
}
