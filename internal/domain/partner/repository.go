package partner

import (
	"context"

	"github.com/google/uuid"
)

// MemberRepository defines the interface for member persistence
type MemberRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Member, error)
	FindAll(ctx context.Context) ([]Member, error)
	FindActive(ctx context.Context) ([]Member, error)
	Save(ctx context.Context, member *Member) error
}

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	// FindByName finds a supplier by exact name regardless of active flag
	FindByName(ctx context.Context, name string) (*Supplier, error)
	FindAll(ctx context.Context) ([]Supplier, error)
	FindActive(ctx context.Context) ([]Supplier, error)
	Save(ctx context.Context, supplier *Supplier) error
}
