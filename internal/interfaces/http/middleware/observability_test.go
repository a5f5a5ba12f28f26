package middleware

import (
	"context"
	"net/http"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestSpanErrorMarker(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	startSpan := func(c *gin.Context) {
		ctx, span := tp.Tracer("test").Start(c.Request.Context(), c.FullPath())
		defer span.End()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}

	r := gin.New()
	r.Use(RequestID(), startSpan, SpanErrorMarker(), TracingAttributeInjector())
	r.GET("/ok", okHandler)
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	perform(r, http.MethodGet, "/ok", map[string]string{RequestIDHeader: "req-1"})
	perform(r, http.MethodGet, "/missing", nil)
	perform(r, http.MethodGet, "/boom", nil)

	spans := recorder.Ended()
	require.Len(t, spans, 3)

	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("request_id", "req-1"))

	assert.Equal(t, codes.Unset, spans[1].Status().Code)
	assert.Contains(t, spans[1].Attributes(), attribute.Int("http.status_code", http.StatusNotFound))

	assert.Equal(t, codes.Error, spans[2].Status().Code)
}

func TestTracing_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(Tracing("koperasi", false))
	r.GET("/x", func(c *gin.Context) {
		assert.False(t, trace.SpanFromContext(c.Request.Context()).SpanContext().IsValid())
		c.Status(http.StatusOK)
	})
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/x", nil).Code)
}

func TestHTTPMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	mw, err := HTTPMetrics(mp.Meter("test"))
	require.NoError(t, err)

	r := gin.New()
	r.Use(mw)
	r.GET("/api/v1/sales/:id", okHandler)

	perform(r, http.MethodGet, "/api/v1/sales/abc", nil)
	perform(r, http.MethodGet, "/api/v1/sales/def", nil)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	found := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			found[m.Name] = true
			if m.Name != "koperasi.http.server.requests" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			require.Len(t, sum.DataPoints, 1)
			assert.Equal(t, int64(2), sum.DataPoints[0].Value)
			route, _ := sum.DataPoints[0].Attributes.Value("http.route")
			assert.Equal(t, "/api/v1/sales/:id", route.AsString())
		}
	}
	assert.True(t, found["koperasi.http.server.requests"])
	assert.True(t, found["koperasi.http.server.duration"])
	assert.True(t, found["koperasi.http.server.active_requests"])
}

func TestProfiling_LabelsRoute(t *testing.T) {
	var route, method string
	var healthLabelled bool

	r := gin.New()
	r.Use(Profiling(true))
	r.GET("/api/v1/products/:id", func(c *gin.Context) {
		route, _ = pprof.Label(c.Request.Context(), "route")
		method, _ = pprof.Label(c.Request.Context(), "method")
		c.Status(http.StatusOK)
	})
	r.GET("/health", func(c *gin.Context) {
		_, healthLabelled = pprof.Label(c.Request.Context(), "route")
		c.Status(http.StatusOK)
	})

	perform(r, http.MethodGet, "/api/v1/products/1", nil)
	perform(r, http.MethodGet, "/health", nil)

	assert.Equal(t, "/api/v1/products/:id", route)
	assert.Equal(t, http.MethodGet, method)
	assert.False(t, healthLabelled)
}
