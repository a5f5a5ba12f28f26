// Package report holds the read models behind the dashboard and the
// exported sales report.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MonthlyAmount is one month's total of sale or purchase amounts
type MonthlyAmount struct {
	Month  int // 1-12
	Amount int64
	Count  int64
}

// SaleRecord is a flattened sale for export
type SaleRecord struct {
	ID            uuid.UUID
	CreatedAt     time.Time
	CustomerName  string
	CashierName   string
	PaymentMethod string
	Status        string
	Total         int64
	PaidAmount    int64
	DueDate       *time.Time
}

// Repository reads yearly aggregates. Months without activity are omitted.
type Repository interface {
	SaleTotalsByMonth(ctx context.Context, year int) ([]MonthlyAmount, error)
	PurchaseTotalsByMonth(ctx context.Context, year int) ([]MonthlyAmount, error)
	SalesForYear(ctx context.Context, year int) ([]SaleRecord, error)
}

// YearRange returns the half-open [start, end) interval of a calendar year
func YearRange(year int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(1, 0, 0)
}
