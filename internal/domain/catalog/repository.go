package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByName finds a product by exact name regardless of active flag
	FindByName(ctx context.Context, name string) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, int64, error)

	// FindActive finds all active products
	FindActive(ctx context.Context) ([]Product, error)

	// Save creates or updates a product, stock included
	Save(ctx context.Context, product *Product) error

	// UpdateDetails writes name, barcode, category, price and active flag.
	// Stock is left as stored.
	UpdateDetails(ctx context.Context, product *Product) error

	// Delete hard-deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// IsReferenced reports whether any sale line or purchase item points at the product
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}
