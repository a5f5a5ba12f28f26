package sale

import (
	"context"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/inventory"
	"github.com/koperasi/backend/internal/domain/partner"
	"github.com/koperasi/backend/internal/domain/sale"
	"github.com/koperasi/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockSaleRepository is a mock implementation of sale.Repository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sale.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sale.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*sale.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sale.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sale.Sale, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]sale.Sale), args.Get(1).(int64), args.Error(2)
}

func (m *MockSaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSaleRepository) UpdateSettlement(ctx context.Context, s *sale.Sale) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCreditPaymentRepository is a mock implementation of sale.CreditPaymentRepository
type MockCreditPaymentRepository struct {
	mock.Mock
}

func (m *MockCreditPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*sale.CreditPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sale.CreditPayment), args.Error(1)
}

func (m *MockCreditPaymentRepository) FindBySaleID(ctx context.Context, saleID uuid.UUID) ([]sale.CreditPayment, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sale.CreditPayment), args.Error(1)
}

func (m *MockCreditPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sale.CreditPayment, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]sale.CreditPayment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCreditPaymentRepository) Create(ctx context.Context, p *sale.CreditPayment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockCreditPaymentRepository) Update(ctx context.Context, p *sale.CreditPayment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockCreditPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCreditPaymentRepository) DeleteBySaleID(ctx context.Context, saleID uuid.UUID) error {
	args := m.Called(ctx, saleID)
	return args.Error(0)
}

// MockStockRepository is a mock implementation of inventory.StockRepository
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) LockStockLevels(ctx context.Context, ids []uuid.UUID) ([]inventory.StockLevel, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockLevel), args.Error(1)
}

func (m *MockStockRepository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	args := m.Called(ctx, id, qty)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockRepository) IncrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	args := m.Called(ctx, id, qty)
	return args.Bool(0), args.Error(1)
}

// MockMemberRepository is a mock implementation of partner.MemberRepository
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Member), args.Error(1)
}

func (m *MockMemberRepository) FindAll(ctx context.Context) ([]partner.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Member), args.Error(1)
}

func (m *MockMemberRepository) FindActive(ctx context.Context) ([]partner.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Member), args.Error(1)
}

func (m *MockMemberRepository) Save(ctx context.Context, member *partner.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

type metricsRecorder struct {
	created  []string
	deleted  int
	payments []int64
}

func (r *metricsRecorder) RecordSaleCreated(_ context.Context, method string, _ int64) {
	r.created = append(r.created, method)
}

func (r *metricsRecorder) RecordSaleDeleted(_ context.Context) {
	r.deleted++
}

func (r *metricsRecorder) RecordCreditPayment(_ context.Context, _ string, amount int64) {
	r.payments = append(r.payments, amount)
}
