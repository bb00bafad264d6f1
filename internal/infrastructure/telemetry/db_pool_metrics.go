package telemetry

import (
	"context"
	"database/sql"

	"go.opentelemetry.io/otel/metric"
)

// RegisterDBPoolMetrics exposes connection pool usage as observable gauges.
// stats is read on every collection; Unregister the result on shutdown.
func RegisterDBPoolMetrics(meter metric.Meter, stats func() sql.DBStats) (metric.Registration, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	open, err := meter.Int64ObservableGauge("db_pool_open_connections",
		metric.WithDescription("Open connections, in use plus idle"), metric.WithUnit("{connection}"))
	if err != nil {
		return nil, err
	}
	inUse, err := meter.Int64ObservableGauge("db_pool_in_use_connections",
		metric.WithDescription("Connections currently in use"), metric.WithUnit("{connection}"))
	if err != nil {
		return nil, err
	}
	waits, err := meter.Int64ObservableCounter("db_pool_wait_total",
		metric.WithDescription("Connections waited for because the pool was exhausted"), metric.WithUnit("{wait}"))
	if err != nil {
		return nil, err
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := stats()
		o.ObserveInt64(open, int64(s.OpenConnections))
		o.ObserveInt64(inUse, int64(s.InUse))
		o.ObserveInt64(waits, s.WaitCount)
		return nil
	}, open, inUse, waits)
}
