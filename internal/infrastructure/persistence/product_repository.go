package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/catalog"
	"github.com/koperasi/backend/internal/domain/shared"
	"github.com/koperasi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var m models.ProductModel
	if err := r.db.WithContext(ctx).Joins("Category").
		Where("products.id = ?", id).
		First(&m).Error; err != nil {
		return nil, translateError(err, "product", id.String())
	}
	return m.ToDomain(), nil
}

// FindByName finds a product by exact name. An active product wins over
// deactivated ones with the same name.
func (r *GormProductRepository) FindByName(ctx context.Context, name string) (*catalog.Product, error) {
	var m models.ProductModel
	if err := r.db.WithContext(ctx).Joins("Category").
		Where("products.name = ?", strings.TrimSpace(name)).
		Order("products.active DESC, products.updated_at DESC").
		First(&m).Error; err != nil {
		return nil, translateError(err, "product", name)
	}
	return m.ToDomain(), nil
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Joins("Category").
		Where("products.id IN ?", ids).
		Order("products.id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// FindAll finds products matching the filter together with the total count
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ProductModel
	err := query.Joins("Category").
		Order(orderClause("products", filter, ProductSortFields, "name")).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return toProducts(rows), total, nil
}

// FindActive finds all active products ordered by name
func (r *GormProductRepository) FindActive(ctx context.Context) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Joins("Category").
		Where("products.active = ?", true).
		Order("products.name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	m := models.ProductModelFromDomain(product)
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error
	return translateError(err, "product", product.ID.String())
}

// UpdateDetails writes the catalogue columns of a product. Stock is only
// moved by the inventory ledger, so it is never part of this update.
func (r *GormProductRepository) UpdateDetails(ctx context.Context, product *catalog.Product) error {
	result := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"barcode":     product.Barcode,
			"category_id": product.CategoryID,
			"price":       product.Price,
			"active":      product.Active,
			"updated_at":  product.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error, "product", product.ID.String())
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("product", product.ID.String())
	}
	return nil
}

// Delete hard-deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, "product", id.String())
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("product", id.String())
	}
	return nil
}

// IsReferenced reports whether any sale line or purchase item points at the product
func (r *GormProductRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	var referenced bool
	err := r.db.WithContext(ctx).Raw(
		`SELECT EXISTS (SELECT 1 FROM sale_lines WHERE product_id = ?)
			OR EXISTS (SELECT 1 FROM purchase_items WHERE product_id = ?)`,
		id, id,
	).Scan(&referenced).Error
	if err != nil {
		return false, err
	}
	return referenced, nil
}

// applyFilter applies search and column filters without pagination or ordering
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(products.name) LIKE ? OR products.barcode = ?", pattern, filter.Search)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category_id":
			if value == nil {
				query = query.Where("products.category_id IS NULL")
			} else {
				query = query.Where("products.category_id = ?", value)
			}
		case "active":
			query = query.Where("products.active = ?", value)
		}
	}
	return query
}

func toProducts(rows []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
