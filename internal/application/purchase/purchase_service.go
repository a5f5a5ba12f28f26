// Package purchase implements supplier purchases. Drafts can be edited
// freely; verification is the one point where purchased quantities are
// added to stock.
package purchase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/application/inventory"
	"github.com/koperasi/backend/internal/domain/catalog"
	stock "github.com/koperasi/backend/internal/domain/inventory"
	"github.com/koperasi/backend/internal/domain/partner"
	"github.com/koperasi/backend/internal/domain/purchase"
	"github.com/koperasi/backend/internal/domain/shared"
	"github.com/koperasi/backend/internal/infrastructure/telemetry"
)

// Metrics receives business events from the purchase service
type Metrics interface {
	RecordPurchaseVerified(ctx context.Context, total int64)
}

// PurchaseService handles purchase recording and verification
type PurchaseService struct {
	purchaseRepo purchase.Repository
	supplierRepo partner.SupplierRepository
	productRepo  catalog.ProductRepository
	scope        inventory.TransactionScope
	ledger       *inventory.Ledger
	metrics      Metrics
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	purchaseRepo purchase.Repository,
	supplierRepo partner.SupplierRepository,
	productRepo catalog.ProductRepository,
	scope inventory.TransactionScope,
	ledger *inventory.Ledger,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		scope:        scope,
		ledger:       ledger,
	}
}

// SetMetrics sets the business metrics recorder
func (s *PurchaseService) SetMetrics(m Metrics) {
	s.metrics = m
}

// CreatePurchase records a purchase. When verified is set the items are
// added to stock in the same transaction.
func (s *PurchaseService) CreatePurchase(ctx context.Context, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase", "create",
		telemetry.WithAttribute("purchase.verified", req.Verified),
		telemetry.WithAttribute("purchase.item_count", len(req.Items)),
	)
	defer span.End()

	p, err := purchase.NewPurchase(req.SupplierID, toDomainInputs(req.Items))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
		supplier, err := repos.SupplierRepo().FindByID(ctx, req.SupplierID)
		if err != nil {
			return notFoundAs(err, partner.ErrSupplierNotFound)
		}
		p.SupplierName = supplier.Name

		levels, err := s.ledger.Snapshot(ctx, repos.StockRepo(), p.ProductIDs())
		if err != nil {
			return err
		}
		nameItems(p, levels)

		if req.Verified {
			if err := p.Verify(); err != nil {
				return err
			}
		}
		if err := repos.PurchaseRepo().Create(ctx, p); err != nil {
			return err
		}
		if req.Verified {
			return s.ledger.IncrementAll(ctx, repos.StockRepo(), p.StockRequests())
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttribute(span, "purchase.id", p.ID.String())
	if p.Verified && s.metrics != nil {
		s.metrics.RecordPurchaseVerified(ctx, p.Total)
	}

	resp := ToPurchaseResponse(p)
	return &resp, nil
}

// UpdatePurchase changes the supplier and items of a draft, and verifies it
// when requested. Stock is only touched on the false→true transition, using
// the final item set.
func (s *PurchaseService) UpdatePurchase(ctx context.Context, id uuid.UUID, req UpdatePurchaseRequest) (*PurchaseResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase", "update",
		telemetry.WithAttribute("purchase.id", id.String()),
	)
	defer span.End()

	if req.SupplierID == nil && req.Items == nil && req.Verified == nil {
		return nil, purchase.ErrNothingToUpdate
	}

	var p *purchase.Purchase
	err := s.scope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
		var err error
		p, err = repos.PurchaseRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFoundAs(err, purchase.ErrPurchaseNotFound)
		}
		if err := p.EnsureMutable(); err != nil {
			return err
		}

		if req.SupplierID != nil && *req.SupplierID != p.SupplierID {
			supplier, err := repos.SupplierRepo().FindByID(ctx, *req.SupplierID)
			if err != nil {
				return notFoundAs(err, partner.ErrSupplierNotFound)
			}
			if err := p.ChangeSupplier(supplier.ID); err != nil {
				return err
			}
			p.SupplierName = supplier.Name
		}

		productIDs := p.ProductIDs()
		var diff purchase.ItemDiff
		if req.Items != nil {
			inputs := toDomainInputs(req.Items)
			diff, err = p.DiffItems(inputs)
			if err != nil {
				return err
			}
			productIDs = inputProductIDs(inputs)
		}

		// every product of the final item set must exist before items are written
		levels, err := s.ledger.Snapshot(ctx, repos.StockRepo(), productIDs)
		if err != nil {
			return err
		}
		if !diff.IsEmpty() {
			if err := repos.PurchaseRepo().ApplyItemDiff(ctx, p.ID, diff); err != nil {
				return err
			}
			p.ApplyDiff(diff)
		}
		nameItems(p, levels)

		verifying := req.Verified != nil && *req.Verified
		if verifying {
			if err := p.Verify(); err != nil {
				return err
			}
		}
		if err := repos.PurchaseRepo().UpdateHeader(ctx, p); err != nil {
			return err
		}
		if verifying {
			return s.ledger.IncrementAll(ctx, repos.StockRepo(), p.StockRequests())
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if p.Verified && s.metrics != nil {
		s.metrics.RecordPurchaseVerified(ctx, p.Total)
	}

	resp := ToPurchaseResponse(p)
	return &resp, nil
}

// DeletePurchase removes a draft purchase and its items
func (s *PurchaseService) DeletePurchase(ctx context.Context, id uuid.UUID) error {
	return s.DeletePurchases(ctx, []uuid.UUID{id})
}

// DeletePurchases removes drafts in one transaction. If any target is
// missing or verified nothing is deleted.
func (s *PurchaseService) DeletePurchases(ctx context.Context, ids []uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase", "delete",
		telemetry.WithAttribute("purchase.count", len(ids)),
	)
	defer span.End()

	if len(ids) == 0 {
		return shared.NewValidationError("Data tidak lengkap")
	}

	err := s.scope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
		for _, id := range ids {
			p, err := repos.PurchaseRepo().FindByIDForUpdate(ctx, id)
			if err != nil {
				return notFoundAs(err, purchase.ErrPurchaseNotFound)
			}
			if err := p.EnsureMutable(); err != nil {
				return err
			}
		}
		for _, id := range ids {
			if err := repos.PurchaseRepo().Delete(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
	}
	return err
}

// GetPurchase retrieves a purchase with its items
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	p, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, purchase.ErrPurchaseNotFound)
	}
	resp := ToPurchaseResponse(p)
	return &resp, nil
}

// ListPurchases retrieves a page of purchases with supplier and items
func (s *PurchaseService) ListPurchases(ctx context.Context, filter PurchaseListFilter) ([]PurchaseResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}
	if filter.Verified != nil {
		domainFilter.Filters["verified"] = *filter.Verified
	}

	purchases, total, err := s.purchaseRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToPurchaseResponses(purchases), total, nil
}

// FormData returns the active suppliers and products a purchase can use
func (s *PurchaseService) FormData(ctx context.Context) (*FormDataResponse, error) {
	suppliers, err := s.supplierRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	data := toFormData(suppliers, products)
	return &data, nil
}

func inputProductIDs(inputs []purchase.ItemInput) []uuid.UUID {
	ids := make([]uuid.UUID, len(inputs))
	for i, in := range inputs {
		ids[i] = in.ProductID
	}
	return ids
}

func nameItems(p *purchase.Purchase, levels map[uuid.UUID]stock.StockLevel) {
	for i := range p.Items {
		if level, ok := levels[p.Items[i].ProductID]; ok {
			p.Items[i].ProductName = level.Name
		}
	}
}

func notFoundAs(err error, notFound error) error {
	if errors.Is(err, shared.ErrNotFound) {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return notFound
	}
	return err
}
