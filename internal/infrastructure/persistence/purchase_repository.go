package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/purchase"
	"github.com/koperasi/backend/internal/domain/shared"
	"github.com/koperasi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPurchaseRepository implements purchase.Repository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID loads a purchase with its supplier name and items
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.Purchase, error) {
	var m models.PurchaseModel
	err := r.withItems(r.db.WithContext(ctx)).
		Joins("Supplier").
		Where("purchases.id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, translateError(err, "purchase", id.String())
	}
	return m.ToDomain(), nil
}

// FindByIDForUpdate locks the purchase row and then loads it
func (r *GormPurchaseRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*purchase.Purchase, error) {
	if err := lockRow(ctx, r.db, "purchases", id); err != nil {
		return nil, translateError(err, "purchase", id.String())
	}
	return r.FindByID(ctx, id)
}

// FindAll lists purchases with supplier names and items
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchase.Purchase, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PurchaseModel{})
	for key, value := range filter.Filters {
		switch key {
		case "supplier_id", "verified":
			query = query.Where("purchases."+key+" = ?", value)
		}
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PurchaseModel
	err := r.withItems(query).
		Joins("Supplier").
		Order(orderClause("purchases", filter, PurchaseSortFields, "created_at")).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	purchases := make([]purchase.Purchase, len(rows))
	for i := range rows {
		purchases[i] = *rows[i].ToDomain()
	}
	return purchases, total, nil
}

// Create inserts the purchase header followed by its items
func (r *GormPurchaseRepository) Create(ctx context.Context, p *purchase.Purchase) error {
	m := models.PurchaseModelFromDomain(p)
	db := r.db.WithContext(ctx)

	if err := db.Omit(clause.Associations).Create(m).Error; err != nil {
		return translateError(err, "purchase", p.ID.String())
	}
	if len(m.Items) == 0 {
		return nil
	}
	if err := db.Omit(clause.Associations).Create(&m.Items).Error; err != nil {
		return translateError(err, "purchase_item", p.ID.String())
	}
	return nil
}

// UpdateHeader persists supplier, total and verification fields
func (r *GormPurchaseRepository) UpdateHeader(ctx context.Context, p *purchase.Purchase) error {
	result := r.db.WithContext(ctx).Model(&models.PurchaseModel{}).
		Where("id = ?", p.ID).
		UpdateColumns(map[string]any{
			"supplier_id": p.SupplierID,
			"total":       p.Total,
			"verified":    p.Verified,
			"verified_at": p.VerifiedAt,
			"updated_at":  p.UpdatedAt,
		})
	if result.Error != nil {
		return translateError(result.Error, "purchase", p.ID.String())
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("purchase", p.ID.String())
	}
	return nil
}

// ApplyItemDiff inserts, updates and deletes item rows of one purchase
func (r *GormPurchaseRepository) ApplyItemDiff(ctx context.Context, purchaseID uuid.UUID, diff purchase.ItemDiff) error {
	db := r.db.WithContext(ctx)

	if len(diff.Delete) > 0 {
		ids := make([]uuid.UUID, len(diff.Delete))
		for i, it := range diff.Delete {
			ids[i] = it.ID
		}
		if err := db.Where("purchase_id = ? AND id IN ?", purchaseID, ids).
			Delete(&models.PurchaseItemModel{}).Error; err != nil {
			return err
		}
	}

	for _, it := range diff.Update {
		result := db.Model(&models.PurchaseItemModel{}).
			Where("id = ? AND purchase_id = ?", it.ID, purchaseID).
			UpdateColumns(map[string]any{
				"quantity":       it.Quantity,
				"purchase_price": it.PurchasePrice,
				"total":          it.Total,
				"updated_at":     it.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFound("purchase_item", it.ID.String())
		}
	}

	if len(diff.Create) > 0 {
		rows := make([]models.PurchaseItemModel, len(diff.Create))
		for i := range diff.Create {
			rows[i].FromDomain(&diff.Create[i])
			rows[i].PurchaseID = purchaseID
		}
		if err := db.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return translateError(err, "purchase_item", purchaseID.String())
		}
	}
	return nil
}

// Delete removes the purchase items and then the purchase
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("purchase_id = ?", id).Delete(&models.PurchaseItemModel{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.PurchaseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("purchase", id.String())
	}
	return nil
}

func (r *GormPurchaseRepository) withItems(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("purchase_items.created_at ASC, purchase_items.id ASC")
		}).
		Preload("Items.Product")
}

var _ purchase.Repository = (*GormPurchaseRepository)(nil)
