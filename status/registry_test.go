package status

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestTable_CachedPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get("hit.count")
	b := r.Ints.Get("hit.count")
	require.Same(t, a, b)

	a.Add(3)
	assert.Equal(t, int64(3), r.IntSnapshot()["hit.count"])

	r.ResetInts()
	assert.Zero(t, b.Load())
	assert.True(t, r.Ints.Has("hit.count"))
}

func TestRegistry_RangeSorted(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("z.last")
	r.Ints.Get("a.first")

	var keys []string
	r.Ints.Range(func(key string, _ *atomic.Int64) {
		keys = append(keys, key)
	})
	assert.Equal(t, []string{"a.first", "z.last"}, keys)
	assert.Equal(t, 2, r.Len())
}

func TestGauge_Peak(t *testing.T) {
	var g Gauge
	g.Set(1.5)
	assert.Equal(t, 4.0, g.Peak(4))
	assert.Equal(t, 4.0, g.Peak(2))
	assert.Equal(t, 4.0, g.Get())
}

func TestRegistry_ObserveNoopMeter(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("death.count").Store(2)
	r.Gauges.Get("loop.step_ms").Set(0.4)

	reg, err := r.Observe(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	require.NotNil(t, reg)
	assert.NoError(t, reg.Unregister())
}
