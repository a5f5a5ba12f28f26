package inventory

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeRequests(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")

	merged := MergeRequests([]StockRequest{
		{ProductID: b, Quantity: 1},
		{ProductID: a, Quantity: 2},
		{ProductID: b, Quantity: 3},
	})

	require.Len(t, merged, 2)
	assert.Equal(t, StockRequest{ProductID: a, Quantity: 2}, merged[0])
	assert.Equal(t, StockRequest{ProductID: b, Quantity: 4}, merged[1])
	assert.Equal(t, []uuid.UUID{a, b}, ProductIDs(merged))
}

func TestInsufficientStockError(t *testing.T) {
	err := error(&InsufficientStockError{ProductID: uuid.New(), Requested: 10, Available: 7})

	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeInsufficientStock, domainErr.Code)
	assert.Equal(t, "Stok tidak cukup", domainErr.Message)
	assert.Contains(t, err.Error(), "requested 10, available 7")
}
