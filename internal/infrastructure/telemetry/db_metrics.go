package telemetry

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dbStartKey = "telemetry:db_start"

// DBMetricsPlugin is a GORM plugin recording query counts and latency
// per operation and table
type DBMetricsPlugin struct {
	queryTotal    *Counter
	queryDuration *Histogram
	logger        *zap.Logger
}

// NewDBMetricsPlugin creates the query instruments on meter
func NewDBMetricsPlugin(meter metric.Meter, logger *zap.Logger) (*DBMetricsPlugin, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	queryTotal, err := NewCounter(meter, "db_query_total", "Database queries by operation and table", "{query}")
	if err != nil {
		return nil, err
	}
	queryDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database query latency in seconds",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return &DBMetricsPlugin{queryTotal: queryTotal, queryDuration: queryDuration, logger: logger}, nil
}

// Name returns the plugin name
func (p *DBMetricsPlugin) Name() string {
	return "db_metrics"
}

// Initialize registers before and after callbacks for every processor
func (p *DBMetricsPlugin) Initialize(db *gorm.DB) error {
	start := func(tx *gorm.DB) {
		tx.InstanceSet(dbStartKey, time.Now())
	}

	cb := db.Callback()
	hooks := []struct {
		name      string
		operation string
		before    func(string, func(*gorm.DB)) error
		after     func(string, func(*gorm.DB)) error
	}{
		{"create", "INSERT", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", "SELECT", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", "UPDATE", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", "DELETE", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", "", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", "", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}

	for _, h := range hooks {
		operation := h.operation
		if err := h.before("db_metrics:before_"+h.name, start); err != nil {
			return err
		}
		if err := h.after("db_metrics:after_"+h.name, func(tx *gorm.DB) { p.record(tx, operation) }); err != nil {
			return err
		}
	}
	return nil
}

func (p *DBMetricsPlugin) record(tx *gorm.DB, operation string) {
	ctx := tx.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if operation == "" {
		operation = detectOperationType(tx.Statement.SQL.String())
	}

	p.queryTotal.Inc(ctx, AttrDBOperation.String(operation), AttrDBTable.String(tx.Statement.Table))
	if v, ok := tx.InstanceGet(dbStartKey); ok {
		if started, ok := v.(time.Time); ok {
			p.queryDuration.RecordDuration(ctx, time.Since(started),
				AttrDBOperation.String(operation), AttrDBTable.String(tx.Statement.Table))
		}
	}
}

func detectOperationType(sql string) string {
	sql = strings.TrimSpace(strings.ToUpper(sql))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, op) {
			return op
		}
	}
	return "OTHER"
}
