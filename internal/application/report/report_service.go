package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/report"
	"github.com/koperasi/backend/internal/infrastructure/telemetry"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Archive stores generated report files and hands out time-limited links
type Archive interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}

// ReportService renders the yearly sales workbook
type ReportService struct {
	repo      report.Repository
	dashboard *DashboardService
	archive   Archive
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(repo report.Repository, archive Archive, logger *zap.Logger) *ReportService {
	return &ReportService{
		repo:      repo,
		dashboard: NewDashboardService(repo),
		archive:   archive,
		logger:    logger,
		now:       time.Now,
	}
}

// SalesWorkbook renders the monthly summary and every sale of the year
func (s *ReportService) SalesWorkbook(ctx context.Context, year int) (*Workbook, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "report", "sales_workbook",
		telemetry.WithAttribute("report.year", year),
	)
	defer span.End()

	summary, err := s.dashboard.Yearly(ctx, year)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	sales, err := s.repo.SalesForYear(ctx, year)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	data, err := renderSalesWorkbook(year, summary, sales)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, "report.sale_count", len(sales))

	return &Workbook{
		Filename:    fmt.Sprintf("laporan_penjualan_%d.xlsx", year),
		ContentType: xlsxContentType,
		Data:        data,
	}, nil
}

// ArchiveSalesReport renders the workbook, stores it and returns a download link
func (s *ReportService) ArchiveSalesReport(ctx context.Context, year int) (*ArchiveResponse, error) {
	wb, err := s.SalesWorkbook(ctx, year)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("reports/sales/%d/%s_%s.xlsx", year, s.now().Format("20060102T150405"), uuid.NewString()[:8])
	if err := s.archive.Upload(ctx, key, wb.Data, wb.ContentType); err != nil {
		s.logger.Error("Failed to archive sales report", zap.Int("year", year), zap.Error(err))
		return nil, err
	}

	url, expiresAt, err := s.archive.GenerateDownloadURL(ctx, key, 0)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Sales report archived", zap.Int("year", year), zap.String("key", key))
	return &ArchiveResponse{Key: key, URL: url, ExpiresAt: expiresAt}, nil
}

func renderSalesWorkbook(year int, summary []MonthlySummaryResponse, sales []report.SaleRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const summarySheet = "Ringkasan"
	const salesSheet = "Penjualan"

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(salesSheet); err != nil {
		return nil, err
	}

	setRow := func(sheet string, row int, values []any) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		return f.SetSheetRow(sheet, cell, &values)
	}

	if err := f.SetCellValue(summarySheet, "A1", fmt.Sprintf("Laporan Penjualan %d", year)); err != nil {
		return nil, err
	}
	if err := setRow(summarySheet, 3, []any{"Bulan", "Pendapatan", "Pengeluaran", "Jumlah Penjualan", "Rata-rata Penjualan"}); err != nil {
		return nil, err
	}
	var revenue, spending, count int64
	for i, m := range summary {
		row := []any{
			MonthName(time.Month(m.Month)),
			m.Revenue,
			m.Spending,
			m.SalesCount,
			m.AverageSale.InexactFloat64(),
		}
		if err := setRow(summarySheet, i+4, row); err != nil {
			return nil, err
		}
		revenue += m.Revenue
		spending += m.Spending
		count += m.SalesCount
	}
	if err := setRow(summarySheet, len(summary)+4, []any{"Total", revenue, spending, count}); err != nil {
		return nil, err
	}

	if err := setRow(salesSheet, 1, []any{"Tanggal", "ID", "Pelanggan", "Kasir", "Metode", "Status", "Total", "Dibayar", "Jatuh Tempo"}); err != nil {
		return nil, err
	}
	for i, sale := range sales {
		due := ""
		if sale.DueDate != nil {
			due = sale.DueDate.Format("2006-01-02")
		}
		row := []any{
			sale.CreatedAt.Format("2006-01-02 15:04"),
			sale.ID.String(),
			sale.CustomerName,
			sale.CashierName,
			sale.PaymentMethod,
			sale.Status,
			sale.Total,
			sale.PaidAmount,
			due,
		}
		if err := setRow(salesSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(summarySheet, "A", "E", 20); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(salesSheet, "A", "A", 18); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(salesSheet, "B", "B", 38); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(salesSheet, "C", "I", 16); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
