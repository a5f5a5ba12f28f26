package telemetry

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RegisterPoolMetrics exposes sql.DB pool statistics as observable gauges.
// The returned registration stops the callback when unregistered.
func RegisterPoolMetrics(meter metric.Meter, db *sql.DB) (metric.Registration, error) {
	open, err := meter.Int64ObservableGauge("koperasi.db.pool.connections",
		metric.WithDescription("Open connections by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, fmt.Errorf("create pool gauge: %w", err)
	}
	maxOpen, err := meter.Int64ObservableGauge("koperasi.db.pool.max_open",
		metric.WithDescription("Configured connection limit"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, fmt.Errorf("create pool gauge: %w", err)
	}
	waits, err := meter.Int64ObservableCounter("koperasi.db.pool.wait_count",
		metric.WithDescription("Connections waited for"),
		metric.WithUnit("{wait}"))
	if err != nil {
		return nil, fmt.Errorf("create pool counter: %w", err)
	}

	inUse := metric.WithAttributes(attribute.String("state", "in_use"))
	idle := metric.WithAttributes(attribute.String("state", "idle"))
	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := db.Stats()
		o.ObserveInt64(open, int64(stats.InUse), inUse)
		o.ObserveInt64(open, int64(stats.Idle), idle)
		o.ObserveInt64(maxOpen, int64(stats.MaxOpenConnections))
		o.ObserveInt64(waits, stats.WaitCount)
		return nil
	}, open, maxOpen, waits)
}
