package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/koperasi/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type queryStartKey struct{}

// DBPlugin times every gorm statement. It records a duration histogram,
// annotates the active span, and warns about statements slower than the
// configured threshold.
type DBPlugin struct {
	slowThreshold time.Duration
	logFullSQL    bool
	duration      *Histogram
	errors        *Counter
	logger        *zap.Logger
}

// NewDBPlugin builds the timing plugin on meter
func NewDBPlugin(cfg config.TelemetryConfig, meter metric.Meter, logger *zap.Logger) (*DBPlugin, error) {
	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        "koperasi.db.query.duration",
		Description: "Duration of database statements",
		Unit:        "s",
		Buckets:     DBDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	errCounter, err := NewCounter(meter, "koperasi.db.query.errors", "Failed database statements", "{statement}")
	if err != nil {
		return nil, err
	}
	return &DBPlugin{
		slowThreshold: cfg.DBSlowQueryThresh,
		logFullSQL:    cfg.DBLogFullSQL,
		duration:      duration,
		errors:        errCounter,
		logger:        logger,
	}, nil
}

// Name implements gorm.Plugin
func (p *DBPlugin) Name() string {
	return "koperasi:db_timing"
}

// Initialize implements gorm.Plugin. The after hooks run ahead of
// otelgorm's so the statement span is still recording.
func (p *DBPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("timing:before_create", p.before),
		cb.Create().After("gorm:create").Before("otel:after_create").Register("timing:after_create", p.after("insert")),
		cb.Query().Before("gorm:query").Register("timing:before_query", p.before),
		cb.Query().After("gorm:query").Before("otel:after_query").Register("timing:after_query", p.after("select")),
		cb.Update().Before("gorm:update").Register("timing:before_update", p.before),
		cb.Update().After("gorm:update").Before("otel:after_update").Register("timing:after_update", p.after("update")),
		cb.Delete().Before("gorm:delete").Register("timing:before_delete", p.before),
		cb.Delete().After("gorm:delete").Before("otel:after_delete").Register("timing:after_delete", p.after("delete")),
		cb.Row().Before("gorm:row").Register("timing:before_row", p.before),
		cb.Row().After("gorm:row").Before("otel:after_row").Register("timing:after_row", p.after("row")),
		cb.Raw().Before("gorm:raw").Register("timing:before_raw", p.before),
		cb.Raw().After("gorm:raw").Before("otel:after_raw").Register("timing:after_raw", p.after("raw")),
	)
}

func (p *DBPlugin) before(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

func (p *DBPlugin) after(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}
		start, ok := ctx.Value(queryStartKey{}).(time.Time)
		if !ok {
			return
		}
		elapsed := time.Since(start)
		table := db.Statement.Table
		attrs := []attribute.KeyValue{AttrDBOperation.String(operation), AttrDBTable.String(table)}

		p.duration.RecordDuration(ctx, elapsed, attrs...)
		failed := db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound)
		if failed {
			p.errors.Inc(ctx, attrs...)
		}

		span := trace.SpanFromContext(ctx)
		if span.IsRecording() {
			span.SetAttributes(
				attribute.Int64("db.rows_affected", db.Statement.RowsAffected),
				attribute.String("db.sql.table", table),
			)
			if failed {
				span.RecordError(db.Error)
				span.SetStatus(codes.Error, db.Error.Error())
			}
		}

		if p.slowThreshold > 0 && elapsed > p.slowThreshold {
			fields := []zap.Field{
				zap.String("operation", operation),
				zap.String("table", table),
				zap.Duration("elapsed", elapsed),
				zap.Duration("threshold", p.slowThreshold),
			}
			if p.logFullSQL {
				fields = append(fields, zap.String("sql", db.Statement.SQL.String()))
			}
			if traceID := GetTraceID(ctx); traceID != "" {
				fields = append(fields, zap.String("trace_id", traceID))
			}
			p.logger.Warn("slow query", fields...)
			if span.IsRecording() {
				span.AddEvent("slow_query", trace.WithAttributes(
					attribute.Int64("duration_ms", elapsed.Milliseconds()),
					attribute.Int64("threshold_ms", p.slowThreshold.Milliseconds()),
				))
			}
		}
	}
}

// RegisterDBInstrumentation installs otelgorm (when DB tracing is on) and
// the timing plugin on db.
func RegisterDBInstrumentation(db *gorm.DB, cfg config.TelemetryConfig, meter metric.Meter, logger *zap.Logger) error {
	if cfg.DBTraceEnabled {
		opts := []otelgorm.Option{otelgorm.WithDBName("postgres")}
		if !cfg.DBLogFullSQL {
			opts = append(opts, otelgorm.WithoutQueryVariables())
		}
		if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
			return err
		}
	}
	plugin, err := NewDBPlugin(cfg, meter, logger)
	if err != nil {
		return err
	}
	if err := db.Use(plugin); err != nil {
		return err
	}
	logger.Info("Database instrumentation registered",
		zap.Bool("tracing", cfg.DBTraceEnabled),
		zap.Duration("slow_query_threshold", cfg.DBSlowQueryThresh),
	)
	return nil
}
