package sale

import (
	"testing"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func newCreditSale(t *testing.T, total int64) *Sale {
	t.Helper()
	s, err := NewSale(uuid.New(), PaymentMethodCredit, CustomerTypeMember)
	require.NoError(t, err)
	require.NoError(t, s.AddLine(uuid.New(), "Beras", total, 1))
	require.NoError(t, s.Finalize(nil))
	return s
}

func TestNewSale(t *testing.T) {
	t.Run("requires cashier", func(t *testing.T) {
		_, err := NewSale(uuid.Nil, PaymentMethodCash, CustomerTypeGeneral)
		assert.ErrorIs(t, err, ErrIncompleteSale)
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		_, err := NewSale(uuid.New(), PaymentMethod("TRANSFER"), CustomerTypeGeneral)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("defaults to general customer", func(t *testing.T) {
		s, err := NewSale(uuid.New(), PaymentMethodCash, "")
		require.NoError(t, err)
		assert.Equal(t, CustomerTypeGeneral, s.CustomerType)
	})

	t.Run("rejects unknown customer type", func(t *testing.T) {
		_, err := NewSale(uuid.New(), PaymentMethodCash, CustomerType("VIP"))
		assert.Error(t, err)
	})
}

func TestSale_Finalize(t *testing.T) {
	productID := uuid.New()

	t.Run("cash sale completes immediately", func(t *testing.T) {
		s, _ := NewSale(uuid.New(), PaymentMethodCash, CustomerTypeGeneral)
		require.NoError(t, s.AddLine(productID, "Gula", 1000, 3))
		require.NoError(t, s.Finalize(int64Ptr(5000)))

		assert.Equal(t, int64(3000), s.Total)
		assert.Equal(t, int64(3000), s.PaidAmount)
		assert.Equal(t, StatusComplete, s.Status)
		assert.Equal(t, int64(2000), *s.Change)
	})

	t.Run("cash below total is rejected", func(t *testing.T) {
		s, _ := NewSale(uuid.New(), PaymentMethodCash, CustomerTypeGeneral)
		require.NoError(t, s.AddLine(productID, "Gula", 1000, 3))
		err := s.Finalize(int64Ptr(2999))
		assert.ErrorIs(t, err, shared.ErrInsufficientPayment)
	})

	t.Run("cash is optional", func(t *testing.T) {
		s, _ := NewSale(uuid.New(), PaymentMethodCash, CustomerTypeGeneral)
		require.NoError(t, s.AddLine(productID, "Gula", 1000, 1))
		require.NoError(t, s.Finalize(nil))
		assert.Nil(t, s.Change)
		assert.Equal(t, StatusComplete, s.Status)
	})

	t.Run("credit sale starts unpaid", func(t *testing.T) {
		s := newCreditSale(t, 5000)
		assert.Equal(t, int64(5000), s.Total)
		assert.Zero(t, s.PaidAmount)
		assert.Equal(t, StatusInProgress, s.Status)
	})

	t.Run("empty sale is rejected", func(t *testing.T) {
		s, _ := NewSale(uuid.New(), PaymentMethodCash, CustomerTypeGeneral)
		assert.ErrorIs(t, s.Finalize(nil), ErrIncompleteSale)
	})

	t.Run("line totals add up", func(t *testing.T) {
		s, _ := NewSale(uuid.New(), PaymentMethodCash, CustomerTypeGeneral)
		require.NoError(t, s.AddLine(uuid.New(), "A", 1500, 2))
		require.NoError(t, s.AddLine(uuid.New(), "B", 700, 3))
		require.NoError(t, s.Finalize(nil))
		assert.Equal(t, s.LinesTotal(), s.Total)
		assert.Equal(t, int64(5100), s.Total)
		assert.Len(t, s.StockRequests(), 2)
	})
}

func TestSale_AddLine(t *testing.T) {
	s, _ := NewSale(uuid.New(), PaymentMethodCash, CustomerTypeGeneral)
	assert.Error(t, s.AddLine(uuid.New(), "A", 1000, 0))
	assert.Error(t, s.AddLine(uuid.Nil, "A", 1000, 1))
	assert.Error(t, s.AddLine(uuid.New(), "A", 0, 1))
	assert.Empty(t, s.Lines)
}

func TestSale_ApplyPayment(t *testing.T) {
	t.Run("installments complete the sale", func(t *testing.T) {
		s := newCreditSale(t, 5000)
		require.NoError(t, s.ApplyPayment(2000))
		assert.Equal(t, StatusInProgress, s.Status)
		require.NoError(t, s.ApplyPayment(3000))
		assert.Equal(t, int64(5000), s.PaidAmount)
		assert.Equal(t, StatusComplete, s.Status)
	})

	t.Run("completed sale rejects further payments", func(t *testing.T) {
		s := newCreditSale(t, 5000)
		require.NoError(t, s.ApplyPayment(6000))
		assert.ErrorIs(t, s.ApplyPayment(1), shared.ErrAlreadyPaid)
	})

	t.Run("cash sale rejects installments", func(t *testing.T) {
		s, _ := NewSale(uuid.New(), PaymentMethodCash, CustomerTypeGeneral)
		require.NoError(t, s.AddLine(uuid.New(), "A", 1000, 1))
		require.NoError(t, s.Finalize(nil))
		assert.ErrorIs(t, s.ApplyPayment(1000), shared.ErrNotCredit)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		s := newCreditSale(t, 5000)
		assert.ErrorIs(t, s.ApplyPayment(0), ErrEmptyPaymentAmount)
	})
}

func TestSale_AdjustPayment(t *testing.T) {
	t.Run("reduction moves status back", func(t *testing.T) {
		s := newCreditSale(t, 5000)
		require.NoError(t, s.ApplyPayment(5000))
		require.True(t, s.IsComplete())

		require.NoError(t, s.AdjustPayment(5000, 4000))
		assert.Equal(t, int64(4000), s.PaidAmount)
		assert.Equal(t, StatusInProgress, s.Status)
	})

	t.Run("removal", func(t *testing.T) {
		s := newCreditSale(t, 5000)
		require.NoError(t, s.ApplyPayment(5000))
		require.NoError(t, s.AdjustPayment(5000, 0))
		assert.Zero(t, s.PaidAmount)
		assert.Equal(t, StatusInProgress, s.Status)
	})

	t.Run("negative candidate is rejected", func(t *testing.T) {
		s := newCreditSale(t, 5000)
		require.NoError(t, s.ApplyPayment(1000))
		assert.ErrorIs(t, s.AdjustPayment(3000, 0), ErrInvalidPaymentAmount)
		assert.Equal(t, int64(1000), s.PaidAmount)
	})
}

func TestCreditPayment(t *testing.T) {
	p, err := NewCreditPayment(uuid.New(), 2500, " cicilan 1 ")
	require.NoError(t, err)
	assert.Equal(t, "cicilan 1", p.Note)

	_, err = NewCreditPayment(uuid.New(), 0, "")
	assert.ErrorIs(t, err, ErrEmptyPaymentAmount)

	require.NoError(t, p.Correct(3000, nil))
	assert.Equal(t, int64(3000), p.Amount)
	assert.Equal(t, "cicilan 1", p.Note)

	note := "koreksi"
	require.NoError(t, p.Correct(3000, &note))
	assert.Equal(t, "koreksi", p.Note)
	assert.Error(t, p.Correct(-1, nil))
}
