// Package sale implements checkout and the credit installment ledger on top
// of the inventory unit of work.
package sale

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/application/inventory"
	"github.com/koperasi/backend/internal/domain/catalog"
	stock "github.com/koperasi/backend/internal/domain/inventory"
	"github.com/koperasi/backend/internal/domain/partner"
	"github.com/koperasi/backend/internal/domain/sale"
	"github.com/koperasi/backend/internal/domain/shared"
	"github.com/koperasi/backend/internal/infrastructure/telemetry"
)

// Metrics receives business events from the sale services
type Metrics interface {
	RecordSaleCreated(ctx context.Context, method string, total int64)
	RecordSaleDeleted(ctx context.Context)
	RecordCreditPayment(ctx context.Context, action string, amount int64)
}

// SaleService creates and cancels point-of-sale sales
type SaleService struct {
	saleRepo sale.Repository
	scope    inventory.TransactionScope
	ledger   *inventory.Ledger
	metrics  Metrics
}

// NewSaleService creates a new SaleService
func NewSaleService(
	saleRepo sale.Repository,
	scope inventory.TransactionScope,
	ledger *inventory.Ledger,
) *SaleService {
	return &SaleService{
		saleRepo: saleRepo,
		scope:    scope,
		ledger:   ledger,
	}
}

// SetMetrics sets the business metrics recorder
func (s *SaleService) SetMetrics(m Metrics) {
	s.metrics = m
}

// CreateSale checks stock, prices the lines at current product prices and
// writes the sale together with the stock decrements in one transaction.
func (s *SaleService) CreateSale(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "create",
		telemetry.WithAttribute("sale.payment_method", req.PaymentMethod),
		telemetry.WithAttribute("sale.line_count", len(req.Products)),
	)
	defer span.End()

	var (
		created *sale.Sale
		err     error
	)
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels("create_sale", nil), func(c context.Context) {
		created, err = s.createSale(c, req)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttribute(span, "sale.id", created.ID.String())
	telemetry.SetAttribute(span, "sale.total", created.Total)
	if s.metrics != nil {
		s.metrics.RecordSaleCreated(ctx, created.PaymentMethod.String(), created.Total)
	}

	resp := ToSaleResponse(created)
	return &resp, nil
}

func (s *SaleService) createSale(ctx context.Context, req CreateSaleRequest) (*sale.Sale, error) {
	if len(req.Products) == 0 {
		return nil, sale.ErrIncompleteSale
	}
	for _, p := range req.Products {
		if p.ID == uuid.Nil || p.Quantity < 1 {
			return nil, sale.ErrIncompleteSale
		}
	}

	customerType := sale.CustomerType(req.CustomerType)
	if customerType == "" && req.MemberID != nil {
		customerType = sale.CustomerTypeMember
	}
	newSale, err := sale.NewSale(req.CashierID, sale.PaymentMethod(req.PaymentMethod), customerType)
	if err != nil {
		return nil, err
	}
	if newSale.CustomerType == sale.CustomerTypeMember && req.MemberID == nil {
		return nil, shared.NewValidationError("Customer wajib dipilih")
	}
	newSale.SetCustomer(req.MemberID, req.CustomerName)
	if newSale.IsCredit() {
		newSale.SetDueDate(req.DueDate)
	}

	requests := make([]stock.StockRequest, len(req.Products))
	for i, p := range req.Products {
		requests[i] = stock.StockRequest{ProductID: p.ID, Quantity: p.Quantity}
	}

	err = s.scope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
		if req.MemberID != nil {
			member, err := repos.MemberRepo().FindByID(ctx, *req.MemberID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return partner.ErrMemberNotFound
				}
				return err
			}
			newSale.MemberName = member.Name
		}

		levels, err := s.ledger.Snapshot(ctx, repos.StockRepo(), stock.ProductIDs(stock.MergeRequests(requests)))
		if err != nil {
			return err
		}
		for _, level := range levels {
			if !level.Active {
				return catalog.ErrProductInactive
			}
		}
		if err := s.ledger.EnsureAvailable(ctx, levels, requests); err != nil {
			return err
		}

		for _, p := range req.Products {
			level := levels[p.ID]
			if err := newSale.AddLine(level.ProductID, level.Name, level.Price, p.Quantity); err != nil {
				return err
			}
		}
		if err := newSale.Finalize(req.Cash); err != nil {
			return err
		}

		if err := repos.SaleRepo().Create(ctx, newSale); err != nil {
			return err
		}
		return s.ledger.DecrementAll(ctx, repos.StockRepo(), newSale.StockRequests())
	})
	if err != nil {
		return nil, err
	}
	return newSale, nil
}

// DeleteSale removes a sale with its lines and installments and puts the
// sold quantities back into stock.
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "delete",
		telemetry.WithAttribute("sale.id", id.String()),
	)
	defer span.End()

	err := s.scope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
		existing, err := repos.SaleRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return notFoundAs(err, sale.ErrSaleNotFound)
		}
		if err := repos.CreditPaymentRepo().DeleteBySaleID(ctx, id); err != nil {
			return err
		}
		if err := repos.SaleRepo().Delete(ctx, id); err != nil {
			return err
		}
		return s.ledger.IncrementAll(ctx, repos.StockRepo(), existing.StockRequests())
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordSaleDeleted(ctx)
	}
	return nil
}

// DeleteSales deletes each sale in its own transaction and reports the
// outcome per id. A failure for one id does not affect the others.
func (s *SaleService) DeleteSales(ctx context.Context, ids []uuid.UUID) []DeleteResult {
	results := make([]DeleteResult, 0, len(ids))
	for _, id := range ids {
		result := DeleteResult{ID: id, Success: true}
		if err := s.DeleteSale(ctx, id); err != nil {
			result.Success = false
			result.Error = publicMessage(err)
		}
		results = append(results, result)
	}
	return results
}

// GetSale retrieves a sale with its lines
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	found, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, sale.ErrSaleNotFound)
	}
	resp := ToSaleResponse(found)
	return &resp, nil
}

// FindSale returns the domain sale, used by the receipt renderer
func (s *SaleService) FindSale(ctx context.Context, id uuid.UUID) (*sale.Sale, error) {
	found, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, sale.ErrSaleNotFound)
	}
	return found, nil
}

// ListSales retrieves a page of sales, newest first
func (s *SaleService) ListSales(ctx context.Context, filter SaleListFilter) ([]SaleListItemResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.PaymentMethod != "" {
		domainFilter.Filters["payment_method"] = filter.PaymentMethod
	}
	if filter.MemberID != nil {
		domainFilter.Filters["member_id"] = *filter.MemberID
	}

	sales, total, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToSaleListItemResponses(sales), total, nil
}

// notFoundAs replaces a generic storage NotFound with a message naming the entity
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

// publicMessage returns a message safe to show to the operator
func publicMessage(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return "Terjadi kesalahan pada server"
}
