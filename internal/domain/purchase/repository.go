package purchase

import (
	"context"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/shared"
)

// Repository defines the interface for purchase persistence
type Repository interface {
	// FindByID loads a purchase with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)

	// FindByIDForUpdate loads a purchase with its items and locks the purchase row
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Purchase, error)

	// FindAll lists purchases with their items
	FindAll(ctx context.Context, filter shared.Filter) ([]Purchase, int64, error)

	// Create inserts a purchase together with its items
	Create(ctx context.Context, p *Purchase) error

	// UpdateHeader persists supplier, total and verification fields
	UpdateHeader(ctx context.Context, p *Purchase) error

	// ApplyItemDiff inserts, updates and deletes item rows
	ApplyItemDiff(ctx context.Context, purchaseID uuid.UUID, diff ItemDiff) error

	// Delete removes the purchase and its items
	Delete(ctx context.Context, id uuid.UUID) error
}
