package status

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/lixenwraith/pixel-brawl/status"

// Meter returns the global meter (no-op unless the host configured a provider)
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Observe exports counters and gauges as observable gauges keyed by a "metric" attribute
func (r *Registry) Observe(m metric.Meter) (metric.Registration, error) {
	ints, err := m.Int64ObservableGauge(
		"brawl.status.int",
		metric.WithDescription("Integer simulation counters"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating int gauge: %w", err)
	}

	floats, err := m.Float64ObservableGauge(
		"brawl.status.float",
		metric.WithDescription("Float simulation gauges"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating float gauge: %w", err)
	}

	reg, err := m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			r.Ints.Range(func(key string, v *atomic.Int64) {
				o.ObserveInt64(ints, v.Load(), metric.WithAttributes(attribute.String("metric", key)))
			})
			r.Gauges.Range(func(key string, v *Gauge) {
				o.ObserveFloat64(floats, v.Get(), metric.WithAttributes(attribute.String("metric", key)))
			})
			return nil
		},
		ints, floats,
	)
	if err != nil {
		return nil, fmt.Errorf("registering status callback: %w", err)
	}
	return reg, nil
}
