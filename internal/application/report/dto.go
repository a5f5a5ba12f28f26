package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlySummaryResponse is one dashboard row
type MonthlySummaryResponse struct {
	Month       int             `json:"month"`
	Revenue     int64           `json:"revenue"`
	Spending    int64           `json:"spending"`
	SalesCount  int64           `json:"salesCount"`
	AverageSale decimal.Decimal `json:"averageSale"`
}

// ArchiveResponse points at an archived report
type ArchiveResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Workbook is a rendered spreadsheet ready for download
type Workbook struct {
	Filename    string
	ContentType string
	Data        []byte
}
