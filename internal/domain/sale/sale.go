// Package sale models point-of-sale checkouts and the credit installments
// paid against them.
package sale

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/inventory"
	"github.com/koperasi/backend/internal/domain/shared"
)

// PaymentMethod is how the customer settles the sale
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodCredit PaymentMethod = "CREDIT"
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCash || m == PaymentMethodCredit
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// Status is the settlement status of a sale
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusComplete   Status = "COMPLETE"
)

// IsValid checks if the status is known
func (s Status) IsValid() bool {
	return s == StatusInProgress || s == StatusComplete
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CustomerType distinguishes registered members from walk-in buyers
type CustomerType string

const (
	CustomerTypeMember  CustomerType = "MEMBER"
	CustomerTypeGeneral CustomerType = "GENERAL"
)

// IsValid checks if the customer type is known
func (t CustomerType) IsValid() bool {
	return t == CustomerTypeMember || t == CustomerTypeGeneral
}

// Line is one product row of a sale. Total is frozen at the unit price in
// effect when the sale was created.
type Line struct {
	ID          uuid.UUID
	SaleID      uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   int64
	Total       int64
}

// Sale is the aggregate root for a checkout. Lines are immutable once the
// sale is created; only credit installments move PaidAmount and Status.
type Sale struct {
	shared.BaseEntity
	CashierID     uuid.UUID
	MemberID      *uuid.UUID
	CustomerType  CustomerType
	CustomerName  string
	PaymentMethod PaymentMethod
	Status        Status
	Total         int64
	PaidAmount    int64
	Cash          *int64
	Change        *int64
	DueDate       *time.Time
	Lines         []Line

	// Filled by the repository on read; never written back.
	CashierName string
	MemberName  string
}

// NewSale starts a sale for a cashier. Lines are added with AddLine and the
// sale is closed with Finalize.
func NewSale(cashierID uuid.UUID, method PaymentMethod, customerType CustomerType) (*Sale, error) {
	if cashierID == uuid.Nil {
		return nil, ErrIncompleteSale
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("Metode pembayaran tidak valid")
	}
	if customerType == "" {
		customerType = CustomerTypeGeneral
	}
	if !customerType.IsValid() {
		return nil, shared.NewValidationError("Tipe customer tidak valid")
	}

	return &Sale{
		BaseEntity:    shared.NewBaseEntity(),
		CashierID:     cashierID,
		CustomerType:  customerType,
		PaymentMethod: method,
		Status:        StatusInProgress,
		Lines:         make([]Line, 0),
	}, nil
}

// SetCustomer links a member or records a walk-in customer name
func (s *Sale) SetCustomer(memberID *uuid.UUID, customerName string) {
	s.MemberID = memberID
	s.CustomerName = strings.TrimSpace(customerName)
}

// SetDueDate sets when a credit sale should be settled
func (s *Sale) SetDueDate(due *time.Time) {
	s.DueDate = due
}

// AddLine appends a product row priced at unitPrice
func (s *Sale) AddLine(productID uuid.UUID, productName string, unitPrice int64, qty int) error {
	if productID == uuid.Nil {
		return ErrIncompleteSale
	}
	if qty < 1 {
		return shared.NewValidationError("Jumlah produk minimal 1")
	}
	if unitPrice <= 0 {
		return shared.NewValidationError("Harga produk tidak valid")
	}

	s.Lines = append(s.Lines, Line{
		ID:          uuid.New(),
		SaleID:      s.ID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    qty,
		UnitPrice:   unitPrice,
		Total:       unitPrice * int64(qty),
	})
	return nil
}

// LinesTotal sums the line totals
func (s *Sale) LinesTotal() int64 {
	var total int64
	for _, l := range s.Lines {
		total += l.Total
	}
	return total
}

// StockRequests returns the quantities this sale takes out of stock
func (s *Sale) StockRequests() []inventory.StockRequest {
	requests := make([]inventory.StockRequest, len(s.Lines))
	for i, l := range s.Lines {
		requests[i] = inventory.StockRequest{ProductID: l.ProductID, Quantity: l.Quantity}
	}
	return requests
}

// Finalize computes the total and settles the opening status. A cash sale
// is complete at once; when cash is given it must cover the total. A credit
// sale starts unpaid.
func (s *Sale) Finalize(cash *int64) error {
	if len(s.Lines) == 0 {
		return ErrIncompleteSale
	}
	s.Total = s.LinesTotal()

	switch s.PaymentMethod {
	case PaymentMethodCash:
		if cash != nil {
			if *cash < s.Total {
				return shared.ErrInsufficientPayment
			}
			change := *cash - s.Total
			s.Cash = cash
			s.Change = &change
		}
		s.PaidAmount = s.Total
		s.Status = StatusComplete
	case PaymentMethodCredit:
		s.PaidAmount = 0
		s.Status = StatusInProgress
	}
	s.UpdatedAt = time.Now()
	return nil
}

// IsCredit returns true for sales paid in installments
func (s *Sale) IsCredit() bool {
	return s.PaymentMethod == PaymentMethodCredit
}

// IsComplete returns true once the sale is fully paid
func (s *Sale) IsComplete() bool {
	return s.Status == StatusComplete
}

// ApplyPayment records a new installment
func (s *Sale) ApplyPayment(amount int64) error {
	if !s.IsCredit() {
		return shared.ErrNotCredit
	}
	if amount <= 0 {
		return ErrEmptyPaymentAmount
	}
	if s.IsComplete() {
		return shared.ErrAlreadyPaid
	}

	s.PaidAmount += amount
	s.refreshStatus()
	return nil
}

// AdjustPayment replaces a previously applied installment of oldAmount with
// newAmount. A newAmount of zero removes the installment. The status may move
// back to IN_PROGRESS when the correction leaves the sale underpaid.
func (s *Sale) AdjustPayment(oldAmount, newAmount int64) error {
	if !s.IsCredit() {
		return shared.ErrNotCredit
	}
	candidate := s.PaidAmount - oldAmount + newAmount
	if candidate < 0 {
		return ErrInvalidPaymentAmount
	}

	s.PaidAmount = candidate
	s.refreshStatus()
	return nil
}

func (s *Sale) refreshStatus() {
	if s.PaidAmount >= s.Total {
		s.Status = StatusComplete
	} else {
		s.Status = StatusInProgress
	}
	s.UpdatedAt = time.Now()
}

// Sale errors
var (
	ErrIncompleteSale       = shared.NewValidationError("Data kurang lengkap")
	ErrSaleNotFound         = shared.NewNotFoundError("Penjualan tidak ditemukan")
	ErrPaymentNotFound      = shared.NewNotFoundError("Pembayaran tidak ditemukan")
	ErrEmptyPaymentAmount   = shared.NewValidationError("Jumlah pembayaran tidak boleh kosong")
	ErrInvalidPaymentAmount = shared.NewValidationError("Jumlah pembayaran tidak valid")
)
