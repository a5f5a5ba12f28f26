// Package inventory holds the stock ledger model: availability requests,
// the stock levels they are checked against, and the repository contract
// that adjusts stock inside a unit of work.
package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/shared"
)

// StockRequest asks for a quantity of one product
type StockRequest struct {
	ProductID uuid.UUID
	Quantity  int
}

// StockLevel is a consistent snapshot of a product's price and stock taken
// at the start of a sale or verification.
type StockLevel struct {
	ProductID uuid.UUID
	Name      string
	Price     int64
	Stock     int
	Active    bool
}

// StockRepository reads and adjusts product stock. Implementations must run
// against the caller's transaction.
type StockRepository interface {
	// LockStockLevels reads price and stock for the given products, taking row
	// locks where the store supports them. Missing ids are simply absent.
	LockStockLevels(ctx context.Context, productIDs []uuid.UUID) ([]StockLevel, error)

	// DecrementStock subtracts qty only if the current stock covers it.
	// It returns false when the guard rejected the update.
	DecrementStock(ctx context.Context, productID uuid.UUID, qty int) (bool, error)

	// IncrementStock adds qty. It returns false when the product does not exist.
	IncrementStock(ctx context.Context, productID uuid.UUID, qty int) (bool, error)
}

// MergeRequests folds requests for the same product into one and returns
// them ordered by product id, so row locks are always taken in the same order.
func MergeRequests(requests []StockRequest) []StockRequest {
	totals := make(map[uuid.UUID]int, len(requests))
	for _, r := range requests {
		totals[r.ProductID] += r.Quantity
	}

	merged := make([]StockRequest, 0, len(totals))
	for id, qty := range totals {
		merged = append(merged, StockRequest{ProductID: id, Quantity: qty})
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].ProductID.String() < merged[j].ProductID.String()
	})
	return merged
}

// ProductIDs returns the ids of the requests in order
func ProductIDs(requests []StockRequest) []uuid.UUID {
	ids := make([]uuid.UUID, len(requests))
	for i, r := range requests {
		ids[i] = r.ProductID
	}
	return ids
}

// InsufficientStockError reports which product could not cover a request.
// It unwraps to shared.ErrInsufficientStock.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return shared.ErrInsufficientStock
}

// ErrProductNotFound is returned when a requested product does not exist
var ErrProductNotFound = shared.NewNotFoundError("Produk tidak ditemukan")
