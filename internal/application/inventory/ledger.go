// Package inventory implements the stock ledger: availability checks and
// guarded stock adjustments that run inside the caller's unit of work.
package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/inventory"
	"github.com/koperasi/backend/internal/infrastructure/telemetry"
)

// RejectionRecorder is notified when a stock guard turns a request down
type RejectionRecorder interface {
	RecordStockRejection(ctx context.Context, stage string)
}

// Ledger is stateless; every call takes the transaction-bound repository.
type Ledger struct {
	rejections RejectionRecorder
}

// NewLedger creates a Ledger
func NewLedger() *Ledger {
	return &Ledger{}
}

// SetRejectionRecorder sets the metrics hook for rejected requests
func (l *Ledger) SetRejectionRecorder(r RejectionRecorder) {
	l.rejections = r
}

// CheckAvailability reads every requested product once and verifies stock
// covers the merged request. The returned levels carry the prices to use
// for line totals.
func (l *Ledger) CheckAvailability(
	ctx context.Context,
	repo inventory.StockRepository,
	requests []inventory.StockRequest,
) (map[uuid.UUID]inventory.StockLevel, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory", "check_availability")
	defer span.End()

	levels, err := l.Snapshot(ctx, repo, inventory.ProductIDs(inventory.MergeRequests(requests)))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := l.EnsureAvailable(ctx, levels, requests); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return levels, nil
}

// EnsureAvailable compares merged requests against levels read by Snapshot
func (l *Ledger) EnsureAvailable(ctx context.Context, levels map[uuid.UUID]inventory.StockLevel, requests []inventory.StockRequest) error {
	for _, req := range inventory.MergeRequests(requests) {
		level := levels[req.ProductID]
		if level.Stock < req.Quantity {
			l.reject(ctx, "check")
			return &inventory.InsufficientStockError{
				ProductID: req.ProductID,
				Requested: req.Quantity,
				Available: level.Stock,
			}
		}
	}
	return nil
}

// Snapshot reads price and stock for products and fails with NotFound if
// any of them does not exist.
func (l *Ledger) Snapshot(
	ctx context.Context,
	repo inventory.StockRepository,
	productIDs []uuid.UUID,
) (map[uuid.UUID]inventory.StockLevel, error) {
	rows, err := repo.LockStockLevels(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("read stock levels: %w", err)
	}

	levels := make(map[uuid.UUID]inventory.StockLevel, len(rows))
	for _, row := range rows {
		levels[row.ProductID] = row
	}
	for _, id := range productIDs {
		if _, ok := levels[id]; !ok {
			return nil, inventory.ErrProductNotFound
		}
	}
	return levels, nil
}

// Decrement takes qty out of stock. The repository's guarded update is the
// commit-time guarantee: a concurrent sale that drained the stock after
// CheckAvailability makes this fail with InsufficientStock.
func (l *Ledger) Decrement(ctx context.Context, repo inventory.StockRepository, productID uuid.UUID, qty int) error {
	ok, err := repo.DecrementStock(ctx, productID, qty)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if !ok {
		l.reject(ctx, "commit")
		return &inventory.InsufficientStockError{ProductID: productID, Requested: qty}
	}
	return nil
}

// Increment puts qty back into stock
func (l *Ledger) Increment(ctx context.Context, repo inventory.StockRepository, productID uuid.UUID, qty int) error {
	ok, err := repo.IncrementStock(ctx, productID, qty)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if !ok {
		return inventory.ErrProductNotFound
	}
	return nil
}

// DecrementAll applies Decrement for every merged request
func (l *Ledger) DecrementAll(ctx context.Context, repo inventory.StockRepository, requests []inventory.StockRequest) error {
	for _, req := range inventory.MergeRequests(requests) {
		if err := l.Decrement(ctx, repo, req.ProductID, req.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// IncrementAll applies Increment for every merged request
func (l *Ledger) IncrementAll(ctx context.Context, repo inventory.StockRepository, requests []inventory.StockRequest) error {
	for _, req := range inventory.MergeRequests(requests) {
		if err := l.Increment(ctx, repo, req.ProductID, req.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (l *Ledger) reject(ctx context.Context, stage string) {
	if l.rejections != nil {
		l.rejections.RecordStockRejection(ctx, stage)
	}
}
