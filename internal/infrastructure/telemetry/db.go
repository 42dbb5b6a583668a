package telemetry

import (
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const startedAtKey = "telemetry:started_at"

// DBInstrumentation adds spans, an operation duration histogram and slow
// query logging to a gorm connection.
type DBInstrumentation struct {
	slowThreshold time.Duration
	logger        *zap.Logger
	duration      metric.Float64Histogram
	tracing       bool
}

// DBOption configures DBInstrumentation.
type DBOption func(*DBInstrumentation)

// WithMeter records query durations on the given meter instead of the global one.
func WithMeter(m metric.Meter) DBOption {
	return func(d *DBInstrumentation) {
		d.duration, _ = m.Float64Histogram("db.client.operation.duration",
			metric.WithDescription("Duration of database operations"),
			metric.WithUnit("s"))
	}
}

// WithoutTracing skips the otelgorm span plugin.
func WithoutTracing() DBOption {
	return func(d *DBInstrumentation) { d.tracing = false }
}

// InstrumentDB registers the instrumentation callbacks on db.
func InstrumentDB(db *gorm.DB, slowThreshold time.Duration, logger *zap.Logger, opts ...DBOption) (*DBInstrumentation, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if slowThreshold <= 0 {
		slowThreshold = 200 * time.Millisecond
	}
	d := &DBInstrumentation{slowThreshold: slowThreshold, logger: logger, tracing: true}
	WithMeter(otel.Meter(instrumentationName))(d)
	for _, opt := range opts {
		opt(d)
	}

	if d.tracing {
		if err := db.Use(otelgorm.NewPlugin(otelgorm.WithoutQueryVariables())); err != nil {
			return nil, err
		}
	}

	if err := d.register(db); err != nil {
		return nil, err
	}

	logger.Info("Database instrumentation enabled",
		zap.Bool("tracing", d.tracing),
		zap.Duration("slow_query_threshold", slowThreshold),
	)
	return d, nil
}

func (d *DBInstrumentation) register(db *gorm.DB) error {
	cb := db.Callback()
	after := func(op string) func(*gorm.DB) {
		return func(tx *gorm.DB) { d.observe(tx, op) }
	}
	steps := []error{
		cb.Create().Before("gorm:create").Register("telemetry:before_create", markStart),
		cb.Create().After("gorm:create").Register("telemetry:after_create", after("create")),
		cb.Query().Before("gorm:query").Register("telemetry:before_query", markStart),
		cb.Query().After("gorm:query").Register("telemetry:after_query", after("query")),
		cb.Update().Before("gorm:update").Register("telemetry:before_update", markStart),
		cb.Update().After("gorm:update").Register("telemetry:after_update", after("update")),
		cb.Delete().Before("gorm:delete").Register("telemetry:before_delete", markStart),
		cb.Delete().After("gorm:delete").Register("telemetry:after_delete", after("delete")),
		cb.Row().Before("gorm:row").Register("telemetry:before_row", markStart),
		cb.Row().After("gorm:row").Register("telemetry:after_row", after("row")),
		cb.Raw().Before("gorm:raw").Register("telemetry:before_raw", markStart),
		cb.Raw().After("gorm:raw").Register("telemetry:after_raw", after("raw")),
	}
	for _, err := range steps {
		if err != nil {
			return err
		}
	}
	return nil
}

func markStart(tx *gorm.DB) {
	tx.InstanceSet(startedAtKey, time.Now())
}

func (d *DBInstrumentation) observe(tx *gorm.DB, op string) {
	v, ok := tx.InstanceGet(startedAtKey)
	if !ok {
		return
	}
	started, ok := v.(time.Time)
	if !ok {
		return
	}
	elapsed := time.Since(started)

	attrs := []attribute.KeyValue{
		attribute.String("db.operation.name", op),
		attribute.String("db.collection.name", tx.Statement.Table),
		attribute.Bool("error", tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound)),
	}
	if d.duration != nil {
		d.duration.Record(tx.Statement.Context, elapsed.Seconds(), metric.WithAttributes(attrs...))
	}

	if elapsed >= d.slowThreshold {
		d.logger.Warn("Slow query",
			zap.String("operation", op),
			zap.String("table", tx.Statement.Table),
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", tx.RowsAffected),
		)
	}
}
