package sale

import (
	"context"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/shared"
)

// Repository defines the interface for sale persistence
type Repository interface {
	// FindByID loads a sale with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindByIDForUpdate loads a sale with its lines and locks the sale row
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindAll lists sales without lines
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, int64, error)

	// Create inserts a sale together with its lines
	Create(ctx context.Context, s *Sale) error

	// UpdateSettlement persists PaidAmount and Status only
	UpdateSettlement(ctx context.Context, s *Sale) error

	// Delete removes the sale and its lines
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreditPaymentRepository defines the interface for installment persistence
type CreditPaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CreditPayment, error)
	FindBySaleID(ctx context.Context, saleID uuid.UUID) ([]CreditPayment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]CreditPayment, int64, error)
	Create(ctx context.Context, p *CreditPayment) error
	Update(ctx context.Context, p *CreditPayment) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySaleID(ctx context.Context, saleID uuid.UUID) error
}
