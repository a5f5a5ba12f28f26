package sale

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/shared"
)

// CreditPayment is one installment paid against a credit sale
type CreditPayment struct {
	shared.BaseEntity
	SaleID uuid.UUID
	Amount int64
	Note   string
}

// NewCreditPayment creates an installment for a sale
func NewCreditPayment(saleID uuid.UUID, amount int64, note string) (*CreditPayment, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewValidationError("Data kurang lengkap")
	}
	if amount <= 0 {
		return nil, ErrEmptyPaymentAmount
	}
	return &CreditPayment{
		BaseEntity: shared.NewBaseEntity(),
		SaleID:     saleID,
		Amount:     amount,
		Note:       strings.TrimSpace(note),
	}, nil
}

// Correct changes the installment amount. A nil note keeps the current one.
func (p *CreditPayment) Correct(amount int64, note *string) error {
	if amount <= 0 {
		return ErrEmptyPaymentAmount
	}
	p.Amount = amount
	if note != nil {
		p.Note = strings.TrimSpace(*note)
	}
	p.UpdatedAt = time.Now()
	return nil
}
