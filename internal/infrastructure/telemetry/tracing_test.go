package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/koperasi/backend/internal/infrastructure/config"
	"github.com/koperasi/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// setupTestTracer installs an in-memory span recorder as the global provider
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func attrMap(kvs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(kvs))
	for _, kv := range kvs {
		m[string(kv.Key)] = kv.Value
	}
	return m
}

func TestStartServiceSpan(t *testing.T) {
	sr := setupTestTracer(t)

	ctx, span := telemetry.StartServiceSpan(context.Background(), "sale", "create",
		telemetry.WithAttribute("sale.line_count", 3),
		telemetry.WithAttribute("sale.credit", true),
	)
	telemetry.SetAttribute(span, "sale.total", int64(15000))
	assert.NotEmpty(t, telemetry.GetTraceID(ctx))
	assert.NotEmpty(t, telemetry.GetSpanID(ctx))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "sale.create", spans[0].Name())
	assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind())

	attrs := attrMap(spans[0].Attributes())
	assert.Equal(t, "sale", attrs["service.component"].AsString())
	assert.Equal(t, "create", attrs["service.operation"].AsString())
	assert.Equal(t, int64(3), attrs["sale.line_count"].AsInt64())
	assert.True(t, attrs["sale.credit"].AsBool())
	assert.Equal(t, int64(15000), attrs["sale.total"].AsInt64())
}

func TestRecordError(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "purchase.verify",
		telemetry.WithSpanKind(trace.SpanKindServer))
	telemetry.RecordError(span, errors.New("stok tidak mencukupi"))
	telemetry.AddEvent(span, "rollback", attribute.String("reason", "stock"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, trace.SpanKindServer, spans[0].SpanKind())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "stok tidak mencukupi", spans[0].Status().Description)

	names := make([]string, 0, len(spans[0].Events()))
	for _, e := range spans[0].Events() {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "exception")
	assert.Contains(t, names, "rollback")
}

func TestHelpersTolerateNonRecordingSpans(t *testing.T) {
	span := trace.SpanFromContext(context.Background())

	assert.NotPanics(t, func() {
		telemetry.SetAttribute(span, "k", "v")
		telemetry.SetAttributes(span, attribute.Int("n", 1))
		telemetry.RecordError(span, errors.New("x"))
		telemetry.RecordError(nil, errors.New("x"))
		telemetry.AddEvent(span, "event")
	})
	assert.Empty(t, telemetry.GetTraceID(context.Background()))
	assert.Empty(t, telemetry.GetSpanID(context.Background()))
}

func TestProvidersDisabled(t *testing.T) {
	ctx := context.Background()
	cfg := config.TelemetryConfig{ServiceName: "koperasi-test"}
	log := zap.NewNop()

	tp, err := telemetry.NewTracerProvider(ctx, cfg, log)
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	tp.EnableSpanProfiles()
	assert.NoError(t, tp.Shutdown(ctx))

	mp, err := telemetry.NewMeterProvider(ctx, cfg, log)
	require.NoError(t, err)
	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter())
	assert.NoError(t, mp.Shutdown(ctx))

	lp, err := telemetry.NewLoggerProvider(ctx, cfg, log)
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())
	assert.False(t, lp.Core(zap.InfoLevel).Enabled(zap.ErrorLevel))
	assert.NoError(t, lp.Shutdown(ctx))

	p, err := telemetry.NewProfiler(cfg, log)
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_RequiresServer(t *testing.T) {
	_, err := telemetry.NewProfiler(config.TelemetryConfig{ProfilingEnabled: true}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pyroscope server url")
}

func TestWithProfilingLabels(t *testing.T) {
	called := false
	telemetry.WithProfilingLabels(context.Background(), map[string]string{
		telemetry.ProfilingLabelRoute:  "/api/v1/sales",
		telemetry.ProfilingLabelMethod: "",
	}, func(ctx context.Context) {
		called = true
		assert.NotNil(t, ctx)
	})
	assert.True(t, called)

	called = false
	telemetry.WithProfilingLabels(context.Background(), nil, func(context.Context) { called = true })
	assert.True(t, called)
}

func TestOperationLabels(t *testing.T) {
	labels := telemetry.OperationLabels("create_sale", map[string]string{telemetry.ProfilingLabelRoute: "/api/v1/sales"})
	assert.Equal(t, map[string]string{
		telemetry.ProfilingLabelOperation: "create_sale",
		telemetry.ProfilingLabelRoute:     "/api/v1/sales",
	}, labels)
}
