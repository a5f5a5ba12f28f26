package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/sale"
	"github.com/koperasi/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCashSale(t *testing.T, cashierID, productID uuid.UUID, price int64, qty int) *sale.Sale {
	t.Helper()
	s, err := sale.NewSale(cashierID, sale.PaymentMethodCash, sale.CustomerTypeGeneral)
	require.NoError(t, err)
	require.NoError(t, s.AddLine(productID, "", price, qty))
	require.NoError(t, s.Finalize(nil))
	return s
}

func TestGormSaleRepository_LinesKeepCheckoutOrder(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewGormSaleRepository(db)
	cashierID := seedUser(t, db, "kasir3")

	names := []string{"Zaitun", "Apel", "Mangga"}
	s, err := sale.NewSale(cashierID, sale.PaymentMethodCash, sale.CustomerTypeGeneral)
	require.NoError(t, err)
	for i, name := range names {
		productID := seedProduct(t, db, name, int64(1000*(i+1)), 10)
		require.NoError(t, s.AddLine(productID, name, int64(1000*(i+1)), 1))
	}
	require.NoError(t, s.Finalize(nil))
	require.NoError(t, repo.Create(ctx, s))

	loaded, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 3)
	for i, name := range names {
		assert.Equal(t, name, loaded.Lines[i].ProductName)
	}
	assert.Equal(t, int64(6000), loaded.Total)
	assert.Equal(t, "Kasir kasir3", loaded.CashierName)
}

func TestGormSaleRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewGormSaleRepository(db)
	cashierID := seedUser(t, db, "kasir4")
	productID := seedProduct(t, db, "Roti", 5000, 100)

	require.NoError(t, repo.Create(ctx, newCashSale(t, cashierID, productID, 5000, 1)))
	credit, err := sale.NewSale(cashierID, sale.PaymentMethodCredit, sale.CustomerTypeGeneral)
	require.NoError(t, err)
	require.NoError(t, credit.AddLine(productID, "Roti", 5000, 2))
	require.NoError(t, credit.Finalize(nil))
	require.NoError(t, repo.Create(ctx, credit))

	filter := shared.DefaultFilter()
	filter.Filters["status"] = string(sale.StatusInProgress)
	sales, total, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, sales, 1)
	assert.Equal(t, credit.ID, sales[0].ID)

	credit.PaidAmount = credit.Total
	credit.Status = sale.StatusComplete
	require.NoError(t, repo.UpdateSettlement(ctx, credit))

	_, total, err = repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestGormSaleRepository_NotFound(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormSaleRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	_, err = repo.FindByIDForUpdate(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestGormSaleRepository_FindByIDForUpdate_LocksOnPostgres(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormSaleRepository(db)
	saleID := uuid.New()

	mock.ExpectQuery(`SELECT "id" FROM "sales" WHERE id = \$1 FOR UPDATE`).
		WithArgs(saleID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByIDForUpdate(context.Background(), saleID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
