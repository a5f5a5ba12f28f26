//go:build integration

// Package integration runs the services and the HTTP API against a real
// PostgreSQL started with testcontainers.
package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/koperasi/backend/internal/domain/catalog"
	"github.com/koperasi/backend/internal/domain/identity"
	"github.com/koperasi/backend/internal/domain/partner"
	"github.com/koperasi/backend/internal/infrastructure/migration"
	"github.com/koperasi/backend/internal/infrastructure/persistence"
	"github.com/koperasi/backend/migrations"
)

// TestDB is a migrated database in its own container
type TestDB struct {
	DB *gorm.DB
	t  *testing.T
}

// NewTestDB starts PostgreSQL, applies the embedded migrations and
// terminates the container when the test ends
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("koperasi_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("rahasia"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	gormConfig := persistence.GormConfig(gormlogger.Default.LogMode(gormlogger.Silent))
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}
	db, err := gorm.Open(gormpostgres.Open(dsn), gormConfig)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(20)
	t.Cleanup(func() { _ = sqlDB.Close() })

	migrator, err := migration.NewFromFS(sqlDB, migrations.FS, zaptest.NewLogger(t))
	require.NoError(t, err, "Failed to open migrations")
	require.NoError(t, migrator.Up(), "Failed to run migrations")

	return &TestDB{DB: db, t: t}
}

// CreateUser stores a user with the given role and password
func (tdb *TestDB) CreateUser(username, password string, role identity.Role) *identity.User {
	tdb.t.Helper()

	user, err := identity.NewUser("Pengguna "+username, username, password, role)
	require.NoError(tdb.t, err)
	require.NoError(tdb.t, persistence.NewGormUserRepository(tdb.DB).Save(context.Background(), user))
	return user
}

// CreateProduct stores an active product
func (tdb *TestDB) CreateProduct(name string, price int64, stock int) *catalog.Product {
	tdb.t.Helper()

	product, err := catalog.NewProduct(name, price, stock)
	require.NoError(tdb.t, err)
	require.NoError(tdb.t, persistence.NewGormProductRepository(tdb.DB).Save(context.Background(), product))
	return product
}

// CreateMember stores an active member
func (tdb *TestDB) CreateMember(name string) *partner.Member {
	tdb.t.Helper()

	member, err := partner.NewMember(name, "0812", "Jl. Melati")
	require.NoError(tdb.t, err)
	require.NoError(tdb.t, persistence.NewGormMemberRepository(tdb.DB).Save(context.Background(), member))
	return member
}

// CreateSupplier stores an active supplier
func (tdb *TestDB) CreateSupplier(name string) *partner.Supplier {
	tdb.t.Helper()

	supplier, err := partner.NewSupplier(name, "0813", "Jl. Mawar")
	require.NoError(tdb.t, err)
	require.NoError(tdb.t, persistence.NewGormSupplierRepository(tdb.DB).Save(context.Background(), supplier))
	return supplier
}

// Stock reads the current stock of a product
func (tdb *TestDB) Stock(productID uuid.UUID) int {
	tdb.t.Helper()

	product, err := persistence.NewGormProductRepository(tdb.DB).FindByID(context.Background(), productID)
	require.NoError(tdb.t, err)
	return product.Stock
}
