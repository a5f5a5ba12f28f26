package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/sale"
	"github.com/koperasi/backend/internal/domain/shared"
	"github.com/koperasi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSaleRepository implements sale.Repository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID loads a sale with cashier and member names and its lines
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sale.Sale, error) {
	var m models.SaleModel
	err := r.db.WithContext(ctx).
		Joins("Cashier").
		Joins("Member").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("sale_lines.position ASC")
		}).
		Preload("Lines.Product").
		Where("sales.id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, translateError(err, "sale", id.String())
	}
	return m.ToDomain(), nil
}

// FindByIDForUpdate locks the sale row and then loads it
func (r *GormSaleRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*sale.Sale, error) {
	if err := lockRow(ctx, r.db, "sales", id); err != nil {
		return nil, translateError(err, "sale", id.String())
	}
	return r.FindByID(ctx, id)
}

// FindAll lists sales with cashier and member names but without lines
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sale.Sale, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SaleModel{})
	for key, value := range filter.Filters {
		switch key {
		case "status", "payment_method", "member_id", "cashier_id":
			query = query.Where("sales."+key+" = ?", value)
		}
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.SaleModel
	err := query.
		Joins("Cashier").
		Joins("Member").
		Order(orderClause("sales", filter, SaleSortFields, "created_at")).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	sales := make([]sale.Sale, len(rows))
	for i := range rows {
		sales[i] = *rows[i].ToDomain()
	}
	return sales, total, nil
}

// Create inserts the sale header followed by its lines
func (r *GormSaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	m := models.SaleModelFromDomain(s)
	db := r.db.WithContext(ctx)

	if err := db.Omit(clause.Associations).Create(m).Error; err != nil {
		return translateError(err, "sale", s.ID.String())
	}
	if len(m.Lines) == 0 {
		return nil
	}
	if err := db.Omit(clause.Associations).Create(&m.Lines).Error; err != nil {
		return translateError(err, "sale_line", s.ID.String())
	}
	return nil
}

// UpdateSettlement persists PaidAmount and Status only
func (r *GormSaleRepository) UpdateSettlement(ctx context.Context, s *sale.Sale) error {
	result := r.db.WithContext(ctx).Model(&models.SaleModel{}).
		Where("id = ?", s.ID).
		UpdateColumns(map[string]any{
			"paid_amount": s.PaidAmount,
			"status":      s.Status,
			"updated_at":  s.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("sale", s.ID.String())
	}
	return nil
}

// Delete removes the sale lines and then the sale
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("sale_id = ?", id).Delete(&models.SaleLineModel{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.SaleModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, "sale", id.String())
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("sale", id.String())
	}
	return nil
}

var _ sale.Repository = (*GormSaleRepository)(nil)
