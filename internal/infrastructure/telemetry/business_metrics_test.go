package telemetry_test

import (
	"context"
	"testing"

	"github.com/koperasi/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func newTestMeter(t *testing.T) (*telemetry.MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := telemetry.NewMeterProviderWithReader(reader, zap.NewNop())
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return mp, reader
}

// sumByAttr collects an int64 sum keyed by the value of attrKey ("" when
// the data point carries no such attribute).
func sumByAttr(t *testing.T, reader *sdkmetric.ManualReader, name, attrKey string) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is not an int64 sum", name)
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value(attribute.Key(attrKey))
				out[v.AsString()] += dp.Value
			}
		}
	}
	return out
}

func TestBusinessMetrics_Sales(t *testing.T) {
	mp, reader := newTestMeter(t)
	bm, err := telemetry.NewBusinessMetrics(mp.Meter(), zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordSaleCreated(ctx, "CASH", 12000)
	bm.RecordSaleCreated(ctx, "CASH", 3000)
	bm.RecordSaleCreated(ctx, "CREDIT", 50000)
	bm.RecordSaleDeleted(ctx)

	created := sumByAttr(t, reader, "koperasi.sales.created", "sale.payment_method")
	assert.Equal(t, int64(2), created["CASH"])
	assert.Equal(t, int64(1), created["CREDIT"])

	revenue := sumByAttr(t, reader, "koperasi.sales.revenue", "sale.payment_method")
	assert.Equal(t, int64(15000), revenue["CASH"])
	assert.Equal(t, int64(50000), revenue["CREDIT"])

	assert.Equal(t, int64(1), sumByAttr(t, reader, "koperasi.sales.deleted", "")[""])
}

func TestBusinessMetrics_CreditPayments(t *testing.T) {
	mp, reader := newTestMeter(t)
	bm, err := telemetry.NewBusinessMetrics(mp.Meter(), zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordCreditPayment(ctx, "add", 2000)
	bm.RecordCreditPayment(ctx, "update", -500)
	bm.RecordCreditPayment(ctx, "delete", -1500)

	actions := sumByAttr(t, reader, "koperasi.credit_payments", "credit_payment.action")
	assert.Equal(t, map[string]int64{"add": 1, "update": 1, "delete": 1}, actions)
	assert.Equal(t, int64(2000), sumByAttr(t, reader, "koperasi.credit_payments.amount", "")[""])
}

func TestBusinessMetrics_PurchasesAndStock(t *testing.T) {
	mp, reader := newTestMeter(t)
	bm, err := telemetry.NewBusinessMetrics(mp.Meter(), zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordPurchaseVerified(ctx, 54000)
	bm.RecordStockRejection(ctx, "check")
	bm.RecordStockRejection(ctx, "commit")
	bm.RecordStockRejection(ctx, "commit")

	assert.Equal(t, int64(1), sumByAttr(t, reader, "koperasi.purchases.verified", "")[""])
	assert.Equal(t, int64(54000), sumByAttr(t, reader, "koperasi.purchases.spending", "")[""])
	assert.Equal(t, map[string]int64{"check": 1, "commit": 2},
		sumByAttr(t, reader, "koperasi.stock.rejections", "stock.stage"))
}
