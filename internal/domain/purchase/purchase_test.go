package purchase

import (
	"testing"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPurchase(t *testing.T) {
	p1, p2 := uuid.New(), uuid.New()

	t.Run("computes total as draft", func(t *testing.T) {
		p, err := NewPurchase(uuid.New(), []ItemInput{
			{ProductID: p1, Quantity: 5, PurchasePrice: 800},
			{ProductID: p2, Quantity: 2, PurchasePrice: 1500},
		})
		require.NoError(t, err)
		assert.False(t, p.Verified)
		assert.Equal(t, int64(7000), p.Total)
		require.Len(t, p.Items, 2)
		assert.Equal(t, p.ID, p.Items[0].PurchaseID)
		assert.Equal(t, int64(4000), p.Items[0].Total)
	})

	tests := []struct {
		name   string
		supp   uuid.UUID
		inputs []ItemInput
		want   error
	}{
		{"missing supplier", uuid.Nil, []ItemInput{{ProductID: p1, Quantity: 1, PurchasePrice: 1}}, ErrIncompletePurchase},
		{"no items", uuid.New(), nil, ErrIncompletePurchase},
		{"zero quantity", uuid.New(), []ItemInput{{ProductID: p1, Quantity: 0, PurchasePrice: 1}}, ErrInvalidItem},
		{"zero price", uuid.New(), []ItemInput{{ProductID: p1, Quantity: 1, PurchasePrice: 0}}, ErrInvalidItem},
		{"duplicate product", uuid.New(), []ItemInput{
			{ProductID: p1, Quantity: 1, PurchasePrice: 1},
			{ProductID: p1, Quantity: 2, PurchasePrice: 1},
		}, ErrDuplicateItem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPurchase(tt.supp, tt.inputs)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPurchase_DiffItems(t *testing.T) {
	keep, change, drop, add := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	p, err := NewPurchase(uuid.New(), []ItemInput{
		{ProductID: keep, Quantity: 1, PurchasePrice: 100},
		{ProductID: change, Quantity: 2, PurchasePrice: 200},
		{ProductID: drop, Quantity: 3, PurchasePrice: 300},
	})
	require.NoError(t, err)

	diff, err := p.DiffItems([]ItemInput{
		{ProductID: keep, Quantity: 1, PurchasePrice: 100},
		{ProductID: change, Quantity: 4, PurchasePrice: 250},
		{ProductID: add, Quantity: 1, PurchasePrice: 50},
	})
	require.NoError(t, err)

	require.Len(t, diff.Create, 1)
	assert.Equal(t, add, diff.Create[0].ProductID)
	require.Len(t, diff.Update, 1)
	assert.Equal(t, change, diff.Update[0].ProductID)
	assert.Equal(t, int64(1000), diff.Update[0].Total)
	require.Len(t, diff.Delete, 1)
	assert.Equal(t, drop, diff.Delete[0].ProductID)

	p.ApplyDiff(diff)
	require.Len(t, p.Items, 3)
	assert.Equal(t, int64(100+1000+50), p.Total)
}

func TestPurchase_DiffItems_NoChange(t *testing.T) {
	pid := uuid.New()
	p, _ := NewPurchase(uuid.New(), []ItemInput{{ProductID: pid, Quantity: 1, PurchasePrice: 100}})

	diff, err := p.DiffItems([]ItemInput{{ProductID: pid, Quantity: 1, PurchasePrice: 100}})
	require.NoError(t, err)
	assert.True(t, diff.IsEmpty())
}

func TestPurchase_Verify(t *testing.T) {
	pid := uuid.New()
	p, _ := NewPurchase(uuid.New(), []ItemInput{{ProductID: pid, Quantity: 5, PurchasePrice: 100}})

	require.NoError(t, p.Verify())
	assert.True(t, p.Verified)
	assert.NotNil(t, p.VerifiedAt)

	assert.ErrorIs(t, p.Verify(), shared.ErrAlreadyVerified)
	assert.ErrorIs(t, p.EnsureMutable(), shared.ErrAlreadyVerified)
	assert.ErrorIs(t, p.ChangeSupplier(uuid.New()), shared.ErrAlreadyVerified)

	_, err := p.DiffItems([]ItemInput{{ProductID: pid, Quantity: 6, PurchasePrice: 100}})
	assert.ErrorIs(t, err, shared.ErrAlreadyVerified)

	requests := p.StockRequests()
	require.Len(t, requests, 1)
	assert.Equal(t, 5, requests[0].Quantity)
}
