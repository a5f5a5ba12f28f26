package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/inventory"
	"github.com/koperasi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRepository adjusts product stock. It must be built on the
// transaction handle of the unit of work it takes part in.
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// LockStockLevels reads price and stock for the products in primary key
// order. On PostgreSQL the rows are locked FOR UPDATE until the transaction
// ends, so concurrent checkouts of the same product serialize.
func (r *GormStockRepository) LockStockLevels(ctx context.Context, productIDs []uuid.UUID) ([]inventory.StockLevel, error) {
	if len(productIDs) == 0 {
		return []inventory.StockLevel{}, nil
	}

	query := r.db.WithContext(ctx).
		Select("id", "name", "price", "stock", "active").
		Where("id IN ?", productIDs).
		Order("id ASC")
	if isPostgres(r.db) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rows []models.ProductModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	levels := make([]inventory.StockLevel, len(rows))
	for i, row := range rows {
		levels[i] = inventory.StockLevel{
			ProductID: row.ID,
			Name:      row.Name,
			Price:     row.Price,
			Stock:     row.Stock,
			Active:    row.Active,
		}
	}
	return levels, nil
}

// DecrementStock subtracts qty only while the current stock covers it. The
// guard lives in the UPDATE itself so it holds even without row locks.
func (r *GormStockRepository) DecrementStock(ctx context.Context, productID uuid.UUID, qty int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumns(map[string]any{
			"stock":      gorm.Expr("stock - ?", qty),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// IncrementStock adds qty to the product's stock
func (r *GormStockRepository) IncrementStock(ctx context.Context, productID uuid.UUID, qty int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("id = ?", productID).
		UpdateColumns(map[string]any{
			"stock":      gorm.Expr("stock + ?", qty),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

var _ inventory.StockRepository = (*GormStockRepository)(nil)
