package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/report"
	"gorm.io/gorm"
)

// GormReportRepository implements report.Repository with aggregate SQL.
// Years are bounded in the configured location so a sale made just after
// midnight on New Year lands in the right year.
type GormReportRepository struct {
	db  *gorm.DB
	loc *time.Location
}

// NewGormReportRepository creates a new GormReportRepository. A nil loc means UTC.
func NewGormReportRepository(db *gorm.DB, loc *time.Location) *GormReportRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &GormReportRepository{db: db, loc: loc}
}

// SaleTotalsByMonth sums sale totals per month of the year
func (r *GormReportRepository) SaleTotalsByMonth(ctx context.Context, year int) ([]report.MonthlyAmount, error) {
	return r.totalsByMonth(ctx, "sales", year)
}

// PurchaseTotalsByMonth sums purchase totals per month of the year
func (r *GormReportRepository) PurchaseTotalsByMonth(ctx context.Context, year int) ([]report.MonthlyAmount, error) {
	return r.totalsByMonth(ctx, "purchases", year)
}

type monthlyRow struct {
	Month  int
	Amount int64
	Count  int64
}

func (r *GormReportRepository) totalsByMonth(ctx context.Context, table string, year int) ([]report.MonthlyAmount, error) {
	start, end := report.YearRange(year, r.loc)

	month, args := r.monthExpr()
	var rows []monthlyRow
	err := r.db.WithContext(ctx).Table(table).
		Select(month+" AS month, COALESCE(SUM(total), 0) AS amount, COUNT(*) AS count", args...).
		Where("created_at >= ? AND created_at < ?", start, end).
		Group("month").
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]report.MonthlyAmount, len(rows))
	for i, row := range rows {
		result[i] = report.MonthlyAmount{Month: row.Month, Amount: row.Amount, Count: row.Count}
	}
	return result, nil
}

type saleRecordRow struct {
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

// SalesForYear returns every sale of the year, oldest first
func (r *GormReportRepository) SalesForYear(ctx context.Context, year int) ([]report.SaleRecord, error) {
	start, end := report.YearRange(year, r.loc)

	var rows []saleRecordRow
	err := r.db.WithContext(ctx).Table("sales").
		Select(`sales.id, sales.created_at,
			COALESCE(members.name, sales.customer_name, '') AS customer_name,
			COALESCE(users.name, '') AS cashier_name,
			sales.payment_method, sales.status, sales.total, sales.paid_amount, sales.due_date`).
		Joins("LEFT JOIN members ON members.id = sales.member_id").
		Joins("LEFT JOIN users ON users.id = sales.cashier_id").
		Where("sales.created_at >= ? AND sales.created_at < ?", start, end).
		Order("sales.created_at ASC, sales.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]report.SaleRecord, len(rows))
	for i, row := range rows {
		records[i] = report.SaleRecord(row)
	}
	return records, nil
}

// monthExpr extracts the calendar month in the report location
func (r *GormReportRepository) monthExpr() (string, []any) {
	if isPostgres(r.db) {
		return "CAST(EXTRACT(MONTH FROM created_at AT TIME ZONE ?) AS INTEGER)", []any{r.loc.String()}
	}
	// SQLite keeps no zone information; months are taken as stored.
	return "CAST(strftime('%m', substr(created_at, 1, 19)) AS INTEGER)", nil
}

var _ report.Repository = (*GormReportRepository)(nil)
