package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/koperasi/backend/internal/infrastructure/config"
	"github.com/koperasi/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type widget struct {
	ID   uint
	Name string
}

func newInstrumentedDB(t *testing.T, cfg config.TelemetryConfig) (*gorm.DB, *observer.ObservedLogs, func() metricdata.ResourceMetrics) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&widget{}))

	mp, reader := newTestMeter(t)
	core, logs := observer.New(zapcore.DebugLevel)
	require.NoError(t, telemetry.RegisterDBInstrumentation(db, cfg, mp.Meter(), zap.New(core)))

	reg, err := telemetry.RegisterPoolMetrics(mp.Meter(), sqlDB)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Unregister() })

	collect := func() metricdata.ResourceMetrics {
		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(context.Background(), &rm))
		return rm
	}
	return db, logs, collect
}

func findMetric(rm metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

func TestDBPlugin_RecordsDurationsAndPoolStats(t *testing.T) {
	db, logs, collect := newInstrumentedDB(t, config.TelemetryConfig{DBSlowQueryThresh: time.Hour})
	ctx := context.Background()

	require.NoError(t, db.WithContext(ctx).Create(&widget{Name: "beras"}).Error)
	var found widget
	require.NoError(t, db.WithContext(ctx).First(&found).Error)

	rm := collect()
	m, ok := findMetric(rm, "koperasi.db.query.duration")
	require.True(t, ok)
	hist, ok := m.Data.(metricdata.Histogram[float64])
	require.True(t, ok)

	ops := map[string]uint64{}
	for _, dp := range hist.DataPoints {
		op, _ := dp.Attributes.Value(telemetry.AttrDBOperation)
		ops[op.AsString()] += dp.Count
	}
	assert.Equal(t, uint64(1), ops["insert"])
	assert.Equal(t, uint64(1), ops["select"])

	_, ok = findMetric(rm, "koperasi.db.pool.connections")
	assert.True(t, ok)
	assert.Zero(t, logs.FilterMessage("slow query").Len())
}

func TestDBPlugin_SlowQueryAnnotatesSpan(t *testing.T) {
	sr := setupTestTracer(t)
	db, logs, _ := newInstrumentedDB(t, config.TelemetryConfig{DBSlowQueryThresh: time.Nanosecond})

	ctx, span := telemetry.StartSpan(context.Background(), "report.generate")
	require.NoError(t, db.WithContext(ctx).Create(&widget{Name: "gula"}).Error)
	span.End()

	slow := logs.FilterMessage("slow query").All()
	require.NotEmpty(t, slow)
	fields := slow[0].ContextMap()
	assert.Equal(t, "insert", fields["operation"])
	assert.Equal(t, "widgets", fields["table"])
	assert.NotEmpty(t, fields["trace_id"])
	assert.NotContains(t, fields, "sql")

	spans := sr.Ended()
	require.Len(t, spans, 1)
	var events []string
	for _, e := range spans[0].Events() {
		events = append(events, e.Name)
	}
	assert.Contains(t, events, "slow_query")
	assert.Equal(t, "widgets", attrMap(spans[0].Attributes())["db.sql.table"].AsString())
}
