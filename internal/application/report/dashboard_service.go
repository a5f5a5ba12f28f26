// Package report builds the yearly dashboard and the downloadable sales report.
package report

import (
	"context"
	"time"

	"github.com/koperasi/backend/internal/domain/report"
	"github.com/koperasi/backend/internal/domain/shared"
	"github.com/koperasi/backend/internal/domain/shared/valueobject"
	"github.com/koperasi/backend/internal/infrastructure/telemetry"
)

const (
	minYear = 2000
	maxYear = 2100
)

// ErrInvalidYear is returned for a year outside the supported range
var ErrInvalidYear = shared.NewValidationError("Tahun tidak valid")

// DashboardService aggregates sales and purchases per month
type DashboardService struct {
	repo report.Repository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(repo report.Repository) *DashboardService {
	return &DashboardService{repo: repo}
}

// Yearly returns twelve rows, one per month, including months with no activity
func (s *DashboardService) Yearly(ctx context.Context, year int) ([]MonthlySummaryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "dashboard", "yearly",
		telemetry.WithAttribute("report.year", year),
	)
	defer span.End()

	if year < minYear || year > maxYear {
		return nil, ErrInvalidYear
	}

	sales, err := s.repo.SaleTotalsByMonth(ctx, year)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	purchases, err := s.repo.PurchaseTotalsByMonth(ctx, year)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return mergeMonths(sales, purchases), nil
}

func mergeMonths(sales, purchases []report.MonthlyAmount) []MonthlySummaryResponse {
	rows := make([]MonthlySummaryResponse, 12)
	for i := range rows {
		rows[i].Month = i + 1
	}
	for _, m := range sales {
		if m.Month < 1 || m.Month > 12 {
			continue
		}
		rows[m.Month-1].Revenue += m.Amount
		rows[m.Month-1].SalesCount += m.Count
	}
	for _, m := range purchases {
		if m.Month < 1 || m.Month > 12 {
			continue
		}
		rows[m.Month-1].Spending += m.Amount
	}
	for i := range rows {
		rows[i].AverageSale = valueobject.Average(valueobject.NewMoney(rows[i].Revenue), rows[i].SalesCount, 2)
	}
	return rows
}

var monthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthName returns the Indonesian name of a month
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}
