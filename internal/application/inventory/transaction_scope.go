package inventory

import (
	"context"

	"github.com/koperasi/backend/internal/domain/catalog"
	"github.com/koperasi/backend/internal/domain/inventory"
	"github.com/koperasi/backend/internal/domain/partner"
	"github.com/koperasi/backend/internal/domain/purchase"
	"github.com/koperasi/backend/internal/domain/sale"
)

// TransactionScope is the unit of work for every multi-row mutation.
// All repositories handed to fn share one database transaction: if fn returns
// an error (or panics) everything is rolled back, otherwise it is committed.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to repositories bound to the
// current transaction.
type TransactionalRepositories interface {
	// StockRepo adjusts product stock; the only writer of products.stock
	StockRepo() inventory.StockRepository
	ProductRepo() catalog.ProductRepository
	SaleRepo() sale.Repository
	CreditPaymentRepo() sale.CreditPaymentRepository
	PurchaseRepo() purchase.Repository
	MemberRepo() partner.MemberRepository
	SupplierRepo() partner.SupplierRepository
}

// NoOpTransactionScope runs fn against plain repositories without a
// transaction. Useful for unit tests with mocked repositories.
type NoOpTransactionScope struct {
	Stock          inventory.StockRepository
	Products       catalog.ProductRepository
	Sales          sale.Repository
	CreditPayments sale.CreditPaymentRepository
	Purchases      purchase.Repository
	Members        partner.MemberRepository
	Suppliers      partner.SupplierRepository
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) StockRepo() inventory.StockRepository   { return s.Stock }
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.Products }
func (s *NoOpTransactionScope) SaleRepo() sale.Repository              { return s.Sales }
func (s *NoOpTransactionScope) CreditPaymentRepo() sale.CreditPaymentRepository {
	return s.CreditPayments
}
func (s *NoOpTransactionScope) PurchaseRepo() purchase.Repository        { return s.Purchases }
func (s *NoOpTransactionScope) MemberRepo() partner.MemberRepository     { return s.Members }
func (s *NoOpTransactionScope) SupplierRepo() partner.SupplierRepository { return s.Suppliers }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
