package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics counts checkout, credit settlement, purchasing and stock
// events. It satisfies the metrics ports of the sale, purchase and
// inventory application services.
type BusinessMetrics struct {
	salesCreated      *Counter
	salesDeleted      *Counter
	revenue           *Counter
	saleAmount        *Histogram
	creditPayments    *Counter
	creditAmount      *Counter
	purchasesVerified *Counter
	purchaseSpending  *Counter
	stockRejections   *Counter
	logger            *zap.Logger
}

// NewBusinessMetrics registers the business instruments on meter
func NewBusinessMetrics(meter metric.Meter, logger *zap.Logger) (*BusinessMetrics, error) {
	m := &BusinessMetrics{logger: logger}
	var err error

	counters := []struct {
		dst              **Counter
		name, desc, unit string
	}{
		{&m.salesCreated, "koperasi.sales.created", "Sales recorded at checkout", "{sale}"},
		{&m.salesDeleted, "koperasi.sales.deleted", "Sales removed with stock restored", "{sale}"},
		{&m.revenue, "koperasi.sales.revenue", "Gross sale totals", "IDR"},
		{&m.creditPayments, "koperasi.credit_payments", "Credit payment mutations", "{payment}"},
		{&m.creditAmount, "koperasi.credit_payments.amount", "Rupiah received on credit sales", "IDR"},
		{&m.purchasesVerified, "koperasi.purchases.verified", "Purchases verified into stock", "{purchase}"},
		{&m.purchaseSpending, "koperasi.purchases.spending", "Verified purchase totals", "IDR"},
		{&m.stockRejections, "koperasi.stock.rejections", "Requests refused for insufficient stock", "{request}"},
	}
	for _, c := range counters {
		if *c.dst, err = NewCounter(meter, c.name, c.desc, c.unit); err != nil {
			return nil, err
		}
	}

	m.saleAmount, err = NewHistogram(meter, HistogramOpts{
		Name:        "koperasi.sales.amount",
		Description: "Distribution of sale totals",
		Unit:        "IDR",
		Buckets:     AmountBuckets,
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// RecordSaleCreated counts a committed sale
func (m *BusinessMetrics) RecordSaleCreated(ctx context.Context, method string, total int64) {
	attr := AttrPaymentMethod.String(method)
	m.salesCreated.Inc(ctx, attr)
	m.revenue.Add(ctx, total, attr)
	m.saleAmount.Record(ctx, float64(total), attr)
}

// RecordSaleDeleted counts a deleted sale
func (m *BusinessMetrics) RecordSaleDeleted(ctx context.Context) {
	m.salesDeleted.Inc(ctx)
}

// RecordCreditPayment counts a credit payment mutation. Only positive
// amounts are added to the received total.
func (m *BusinessMetrics) RecordCreditPayment(ctx context.Context, action string, amount int64) {
	m.creditPayments.Inc(ctx, AttrPaymentAction.String(action))
	if amount > 0 {
		m.creditAmount.Add(ctx, amount)
	}
}

// RecordPurchaseVerified counts a purchase whose items entered stock
func (m *BusinessMetrics) RecordPurchaseVerified(ctx context.Context, total int64) {
	m.purchasesVerified.Inc(ctx)
	m.purchaseSpending.Add(ctx, total)
}

// RecordStockRejection counts a request refused for insufficient stock.
// stage is "check" for the pre-check or "commit" for the guarded write.
func (m *BusinessMetrics) RecordStockRejection(ctx context.Context, stage string) {
	m.stockRejections.Inc(ctx, AttrStockStage.String(stage))
	m.logger.Debug("stock rejection", zap.String("stage", stage))
}
