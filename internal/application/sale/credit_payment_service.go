package sale

import (
	"context"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/application/inventory"
	"github.com/koperasi/backend/internal/domain/sale"
	"github.com/koperasi/backend/internal/domain/shared"
	"github.com/koperasi/backend/internal/infrastructure/telemetry"
)

// CreditPaymentService records installments against credit sales. Every
// mutation writes the payment row and the sale's paid amount and status in
// the same transaction, so the sum of a sale's installments always equals
// its paid amount.
type CreditPaymentService struct {
	saleRepo    sale.Repository
	paymentRepo sale.CreditPaymentRepository
	scope       inventory.TransactionScope
	metrics     Metrics
}

// NewCreditPaymentService creates a new CreditPaymentService
func NewCreditPaymentService(
	saleRepo sale.Repository,
	paymentRepo sale.CreditPaymentRepository,
	scope inventory.TransactionScope,
) *CreditPaymentService {
	return &CreditPaymentService{
		saleRepo:    saleRepo,
		paymentRepo: paymentRepo,
		scope:       scope,
	}
}

// SetMetrics sets the business metrics recorder
func (s *CreditPaymentService) SetMetrics(m Metrics) {
	s.metrics = m
}

// AddPayment records a new installment for a credit sale
func (s *CreditPaymentService) AddPayment(ctx context.Context, saleID uuid.UUID, amount int64, note string) (*CreditPaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "credit_payment", "add",
		telemetry.WithAttribute("sale.id", saleID.String()),
		telemetry.WithAttribute("payment.amount", amount),
	)
	defer span.End()

	if amount <= 0 {
		return nil, sale.ErrEmptyPaymentAmount
	}

	var (
		payment *sale.CreditPayment
		owner   *sale.Sale
	)
	err := s.scope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
		var err error
		owner, err = repos.SaleRepo().FindByIDForUpdate(ctx, saleID)
		if err != nil {
			return notFoundAs(err, sale.ErrSaleNotFound)
		}
		if err := owner.ApplyPayment(amount); err != nil {
			return err
		}

		payment, err = sale.NewCreditPayment(saleID, amount, note)
		if err != nil {
			return err
		}
		if err := repos.CreditPaymentRepo().Create(ctx, payment); err != nil {
			return err
		}
		return repos.SaleRepo().UpdateSettlement(ctx, owner)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttribute(span, "sale.status", owner.Status.String())
	if s.metrics != nil {
		s.metrics.RecordCreditPayment(ctx, "add", amount)
	}

	resp := ToCreditPaymentResponse(payment, owner)
	return &resp, nil
}

// UpdatePayment corrects the amount of an installment, and its note when one
// is given, then re-evaluates the owning sale. The sale may move back to
// IN_PROGRESS.
func (s *CreditPaymentService) UpdatePayment(ctx context.Context, paymentID uuid.UUID, amount int64, note *string) (*CreditPaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "credit_payment", "update",
		telemetry.WithAttribute("payment.id", paymentID.String()),
		telemetry.WithAttribute("payment.amount", amount),
	)
	defer span.End()

	if amount <= 0 {
		return nil, sale.ErrEmptyPaymentAmount
	}

	var (
		payment *sale.CreditPayment
		owner   *sale.Sale
		delta   int64
	)
	err := s.scope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
		var err error
		payment, err = repos.CreditPaymentRepo().FindByID(ctx, paymentID)
		if err != nil {
			return notFoundAs(err, sale.ErrPaymentNotFound)
		}
		owner, err = repos.SaleRepo().FindByIDForUpdate(ctx, payment.SaleID)
		if err != nil {
			return notFoundAs(err, sale.ErrSaleNotFound)
		}

		oldAmount := payment.Amount
		if err := owner.AdjustPayment(oldAmount, amount); err != nil {
			return err
		}
		if err := payment.Correct(amount, note); err != nil {
			return err
		}
		delta = amount - oldAmount

		if err := repos.CreditPaymentRepo().Update(ctx, payment); err != nil {
			return err
		}
		return repos.SaleRepo().UpdateSettlement(ctx, owner)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordCreditPayment(ctx, "update", delta)
	}

	resp := ToCreditPaymentResponse(payment, owner)
	return &resp, nil
}

// DeletePayment removes an installment and takes its amount off the sale
func (s *CreditPaymentService) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "credit_payment", "delete",
		telemetry.WithAttribute("payment.id", paymentID.String()),
	)
	defer span.End()

	var removed int64
	err := s.scope.Execute(ctx, func(repos inventory.TransactionalRepositories) error {
		payment, err := repos.CreditPaymentRepo().FindByID(ctx, paymentID)
		if err != nil {
			return notFoundAs(err, sale.ErrPaymentNotFound)
		}
		owner, err := repos.SaleRepo().FindByIDForUpdate(ctx, payment.SaleID)
		if err != nil {
			return notFoundAs(err, sale.ErrSaleNotFound)
		}

		if err := owner.AdjustPayment(payment.Amount, 0); err != nil {
			return err
		}
		removed = payment.Amount

		if err := repos.CreditPaymentRepo().Delete(ctx, paymentID); err != nil {
			return err
		}
		return repos.SaleRepo().UpdateSettlement(ctx, owner)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordCreditPayment(ctx, "delete", -removed)
	}
	return nil
}

// GetPayment retrieves an installment with its sale summary
func (s *CreditPaymentService) GetPayment(ctx context.Context, paymentID uuid.UUID) (*CreditPaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, notFoundAs(err, sale.ErrPaymentNotFound)
	}
	owner, err := s.saleRepo.FindByID(ctx, payment.SaleID)
	if err != nil {
		return nil, notFoundAs(err, sale.ErrSaleNotFound)
	}
	resp := ToCreditPaymentResponse(payment, owner)
	return &resp, nil
}

// ListPayments retrieves a page of installments, newest first
func (s *CreditPaymentService) ListPayments(ctx context.Context, filter PaymentListFilter) ([]CreditPaymentResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.SaleID != nil {
		domainFilter.Filters["sale_id"] = *filter.SaleID
	}

	payments, total, err := s.paymentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	owners := make(map[uuid.UUID]*sale.Sale)
	out := make([]CreditPaymentResponse, 0, len(payments))
	for i := range payments {
		p := &payments[i]
		owner, ok := owners[p.SaleID]
		if !ok {
			owner, err = s.saleRepo.FindByID(ctx, p.SaleID)
			if err != nil {
				return nil, 0, err
			}
			owners[p.SaleID] = owner
		}
		out = append(out, ToCreditPaymentResponse(p, owner))
	}
	return out, total, nil
}
