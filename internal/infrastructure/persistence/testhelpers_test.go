package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newSQLiteDB opens an in-memory database with the full schema
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openSQLite(t, ":memory:")
}

// newSQLiteDBWithForeignKeys enforces foreign keys the way PostgreSQL does
func newSQLiteDBWithForeignKeys(t *testing.T) *gorm.DB {
	t.Helper()
	return openSQLite(t, ":memory:?_foreign_keys=on")
}

func openSQLite(t *testing.T, dsn string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), GormConfig(logger.Discard))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// newMockGormDB opens a postgres-dialect gorm handle on top of sqlmock
func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func seedUser(t *testing.T, db *gorm.DB, username string) uuid.UUID {
	t.Helper()
	now := time.Now()
	m := &models.UserModel{
		BaseModel:    models.BaseModel{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         "Kasir " + username,
		Username:     username,
		PasswordHash: "x",
		Role:         "CASHIER",
		Active:       true,
	}
	require.NoError(t, db.Create(m).Error)
	return m.ID
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) uuid.UUID {
	t.Helper()
	now := time.Now()
	m := &models.ProductModel{
		BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:      name,
		Price:     price,
		Stock:     stock,
		Active:    true,
	}
	require.NoError(t, db.Create(m).Error)
	return m.ID
}

func seedMember(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	now := time.Now()
	m := &models.MemberModel{
		BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:      name,
		Active:    true,
	}
	require.NoError(t, db.Create(m).Error)
	return m.ID
}

func seedSupplier(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	now := time.Now()
	m := &models.SupplierModel{
		BaseModel: models.BaseModel{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:      name,
		Active:    true,
	}
	require.NoError(t, db.Create(m).Error)
	return m.ID
}

func stockOf(t *testing.T, db *gorm.DB, productID uuid.UUID) int {
	t.Helper()
	var m models.ProductModel
	require.NoError(t, db.WithContext(context.Background()).First(&m, "id = ?", productID).Error)
	return m.Stock
}
