// Package receipt renders printable receipts for recorded sales.
package receipt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/sale"
	"github.com/koperasi/backend/internal/domain/shared"
	"github.com/koperasi/backend/internal/infrastructure/printing"
	"github.com/koperasi/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Output formats
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

var (
	ErrUnsupportedFormat = shared.NewValidationError("Format struk tidak didukung")
	ErrPDFDisabled       = shared.NewDomainError(shared.CodeInvalidState, "Cetak struk PDF tidak diaktifkan")
)

// SaleFinder loads the sale a receipt is printed for
type SaleFinder interface {
	FindSale(ctx context.Context, id uuid.UUID) (*sale.Sale, error)
}

// StoreInfo is the header printed on every receipt
type StoreInfo struct {
	Name    string
	Address string
}

// Receipt is a rendered document ready to be sent to the client
type Receipt struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReceiptService renders receipts as HTML or, when a converter is set, PDF
type ReceiptService struct {
	sales     SaleFinder
	renderer  *printing.ReceiptRenderer
	converter printing.PDFConverter
	store     StoreInfo
	location  *time.Location
	logger    *zap.Logger
}

// NewReceiptService creates a new ReceiptService. converter may be nil, in
// which case only HTML receipts are available.
func NewReceiptService(
	sales SaleFinder,
	renderer *printing.ReceiptRenderer,
	converter printing.PDFConverter,
	store StoreInfo,
	location *time.Location,
	logger *zap.Logger,
) *ReceiptService {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReceiptService{
		sales:     sales,
		renderer:  renderer,
		converter: converter,
		store:     store,
		location:  location,
		logger:    logger,
	}
}

// PDFEnabled reports whether PDF receipts can be produced
func (s *ReceiptService) PDFEnabled() bool {
	return s.converter != nil
}

// Render produces the receipt of sale id in the requested format. An empty
// format means HTML.
func (s *ReceiptService) Render(ctx context.Context, id uuid.UUID, format string) (*Receipt, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatHTML
	}
	if format != FormatHTML && format != FormatPDF {
		return nil, ErrUnsupportedFormat
	}
	if format == FormatPDF && s.converter == nil {
		return nil, ErrPDFDisabled
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "receipt", "render",
		telemetry.WithAttribute("sale.id", id.String()),
		telemetry.WithAttribute("receipt.format", format),
	)
	defer span.End()

	found, err := s.sales.FindSale(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	html, err := s.renderer.RenderHTML(s.receiptData(found))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("render receipt %s: %w", id, err)
	}

	base := "struk-" + shortID(id)
	if format == FormatHTML {
		return &Receipt{
			Filename:    base + ".html",
			ContentType: "text/html; charset=utf-8",
			Data:        []byte(html),
		}, nil
	}

	pdf, err := s.converter.HTMLToPDF(ctx, html)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to convert receipt to PDF",
			zap.String("sale_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("convert receipt %s: %w", id, err)
	}
	telemetry.SetAttribute(span, "receipt.bytes", len(pdf))
	return &Receipt{
		Filename:    base + ".pdf",
		ContentType: "application/pdf",
		Data:        pdf,
	}, nil
}

func (s *ReceiptService) receiptData(found *sale.Sale) printing.ReceiptData {
	lines := make([]printing.ReceiptLine, len(found.Lines))
	for i, l := range found.Lines {
		lines[i] = printing.ReceiptLine{
			Name:      l.ProductName,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Total:     l.Total,
		}
	}

	customer := found.MemberName
	if customer == "" {
		customer = found.CustomerName
	}
	var due *time.Time
	if found.DueDate != nil {
		d := found.DueDate.In(s.location)
		due = &d
	}

	return printing.ReceiptData{
		StoreName:     s.store.Name,
		StoreAddress:  s.store.Address,
		SaleID:        shortID(found.ID),
		CreatedAt:     found.CreatedAt.In(s.location),
		Cashier:       found.CashierName,
		Customer:      customer,
		PaymentMethod: found.PaymentMethod.String(),
		Status:        found.Status.String(),
		Lines:         lines,
		Total:         found.Total,
		PaidAmount:    found.PaidAmount,
		Cash:          found.Cash,
		Change:        found.Change,
		DueDate:       due,
	}
}

// shortID is the first block of a UUID, upper-cased for the printout
func shortID(id uuid.UUID) string {
	return strings.ToUpper(id.String()[:8])
}
