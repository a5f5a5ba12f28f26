package sale

import (
	"time"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/sale"
)

// ==================== Sale DTOs ====================

// SaleProductInput is one product row of a checkout
type SaleProductInput struct {
	ID       uuid.UUID `json:"id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

// CreateSaleRequest represents a checkout request
type CreateSaleRequest struct {
	MemberID      *uuid.UUID         `json:"memberId"`
	CustomerType  string             `json:"customerType" binding:"omitempty,oneof=MEMBER GENERAL"`
	CustomerName  string             `json:"customerName" binding:"max=100"`
	Products      []SaleProductInput `json:"products" binding:"required,min=1,dive"`
	Cash          *int64             `json:"cash" binding:"omitempty,min=0"`
	CashierID     uuid.UUID          `json:"cashierId"`
	PaymentMethod string             `json:"paymentMethod" binding:"required,oneof=CASH CREDIT"`
	DueDate       *time.Time         `json:"dueDate"`
}

// SaleListFilter represents filter options for the sale list
type SaleListFilter struct {
	Status        string     `form:"status" binding:"omitempty,oneof=IN_PROGRESS COMPLETE"`
	PaymentMethod string     `form:"payment_method" binding:"omitempty,oneof=CASH CREDIT"`
	MemberID      *uuid.UUID `form:"-"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// PersonRef is an id/name pair for cashier and member references
type PersonRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// SaleLineResponse is one product row in the sale detail
type SaleLineResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice int64     `json:"unitPrice"`
	Total     int64     `json:"total"`
}

// SaleResponse represents a sale with its lines
type SaleResponse struct {
	ID            uuid.UUID          `json:"id"`
	Customer      *PersonRef         `json:"member,omitempty"`
	CustomerType  string             `json:"customerType"`
	CustomerName  string             `json:"customerName,omitempty"`
	Total         int64              `json:"total"`
	PaidAmount    int64              `json:"paidAmount"`
	Cash          *int64             `json:"cash,omitempty"`
	Change        *int64             `json:"change,omitempty"`
	PaymentMethod string             `json:"paymentMethod"`
	Status        string             `json:"status"`
	DueDate       *time.Time         `json:"dueDate,omitempty"`
	Products      []SaleLineResponse `json:"products"`
	Cashier       PersonRef          `json:"cashier"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// SaleListItemResponse represents a sale in list views
type SaleListItemResponse struct {
	ID            uuid.UUID  `json:"id"`
	Total         int64      `json:"total"`
	PaidAmount    int64      `json:"paidAmount"`
	PaymentMethod string     `json:"paymentMethod"`
	Status        string     `json:"status"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	Cashier       PersonRef  `json:"cashier"`
	Member        *PersonRef `json:"member,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// DeleteSalesRequest lists the sales to delete
type DeleteSalesRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// DeleteResult is the outcome of deleting one sale in a batch
type DeleteResult struct {
	ID      uuid.UUID `json:"id"`
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
}

// ==================== Credit Payment DTOs ====================

// AddPaymentRequest represents a new installment
type AddPaymentRequest struct {
	SaleID uuid.UUID `json:"saleId" binding:"required"`
	Amount int64     `json:"amount" binding:"required"`
	Note   string    `json:"note" binding:"max=255"`
}

// UpdatePaymentRequest corrects an installment
type UpdatePaymentRequest struct {
	Amount int64   `json:"amount" binding:"required"`
	Note   *string `json:"note" binding:"omitempty,max=255"`
}

// PaymentSaleSummary is the owning sale as shown next to an installment
type PaymentSaleSummary struct {
	ID            uuid.UUID  `json:"id"`
	CustomerName  string     `json:"customerName,omitempty"`
	Member        *PersonRef `json:"member,omitempty"`
	Total         int64      `json:"total"`
	PaidAmount    int64      `json:"paidAmount"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"paymentMethod"`
}

// CreditPaymentResponse represents an installment
type CreditPaymentResponse struct {
	ID        uuid.UUID           `json:"id"`
	Amount    int64               `json:"amount"`
	Note      string              `json:"note,omitempty"`
	Sale      *PaymentSaleSummary `json:"sale,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// PaymentListFilter represents filter options for the installment list
type PaymentListFilter struct {
	SaleID   *uuid.UUID `form:"-"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ==================== Conversions ====================

// ToSaleResponse converts a domain Sale to its detail response
func ToSaleResponse(s *sale.Sale) SaleResponse {
	lines := make([]SaleLineResponse, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = SaleLineResponse{
			ID:        l.ProductID,
			Name:      l.ProductName,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Total:     l.Total,
		}
	}
	return SaleResponse{
		ID:            s.ID,
		Customer:      memberRef(s),
		CustomerType:  string(s.CustomerType),
		CustomerName:  s.CustomerName,
		Total:         s.Total,
		PaidAmount:    s.PaidAmount,
		Cash:          s.Cash,
		Change:        s.Change,
		PaymentMethod: s.PaymentMethod.String(),
		Status:        s.Status.String(),
		DueDate:       s.DueDate,
		Products:      lines,
		Cashier:       PersonRef{ID: s.CashierID, Name: s.CashierName},
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToSaleListItemResponses converts domain sales to list responses
func ToSaleListItemResponses(sales []sale.Sale) []SaleListItemResponse {
	out := make([]SaleListItemResponse, len(sales))
	for i := range sales {
		s := &sales[i]
		out[i] = SaleListItemResponse{
			ID:            s.ID,
			Total:         s.Total,
			PaidAmount:    s.PaidAmount,
			PaymentMethod: s.PaymentMethod.String(),
			Status:        s.Status.String(),
			DueDate:       s.DueDate,
			Cashier:       PersonRef{ID: s.CashierID, Name: s.CashierName},
			Member:        memberRef(s),
			CreatedAt:     s.CreatedAt,
			UpdatedAt:     s.UpdatedAt,
		}
	}
	return out
}

// ToCreditPaymentResponse converts an installment; owner may be nil
func ToCreditPaymentResponse(p *sale.CreditPayment, owner *sale.Sale) CreditPaymentResponse {
	resp := CreditPaymentResponse{
		ID:        p.ID,
		Amount:    p.Amount,
		Note:      p.Note,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if owner != nil {
		resp.Sale = &PaymentSaleSummary{
			ID:            owner.ID,
			CustomerName:  owner.CustomerName,
			Member:        memberRef(owner),
			Total:         owner.Total,
			PaidAmount:    owner.PaidAmount,
			Status:        owner.Status.String(),
			PaymentMethod: owner.PaymentMethod.String(),
		}
	}
	return resp
}

func memberRef(s *sale.Sale) *PersonRef {
	if s.MemberID == nil {
		return nil
	}
	return &PersonRef{ID: *s.MemberID, Name: s.MemberName}
}
