package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/partner"
	"github.com/koperasi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSupplierRepository implements SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	var m models.SupplierModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "supplier", id.String())
	}
	return m.ToDomain(), nil
}

// FindByName finds a supplier by exact name, preferring the active one
func (r *GormSupplierRepository) FindByName(ctx context.Context, name string) (*partner.Supplier, error) {
	name = strings.TrimSpace(name)
	var m models.SupplierModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("active DESC, updated_at DESC").
		First(&m).Error; err != nil {
		return nil, translateError(err, "supplier", name)
	}
	return m.ToDomain(), nil
}

// FindAll returns every supplier ordered by name
func (r *GormSupplierRepository) FindAll(ctx context.Context) ([]partner.Supplier, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindActive returns the active suppliers ordered by name
func (r *GormSupplierRepository) FindActive(ctx context.Context) ([]partner.Supplier, error) {
	return r.find(r.db.WithContext(ctx).Where("active = ?", true))
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	m := models.SupplierModelFromDomain(supplier)
	return translateError(r.db.WithContext(ctx).Save(m).Error, "supplier", supplier.Name)
}

func (r *GormSupplierRepository) find(query *gorm.DB) ([]partner.Supplier, error) {
	var rows []models.SupplierModel
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	suppliers := make([]partner.Supplier, len(rows))
	for i := range rows {
		suppliers[i] = *rows[i].ToDomain()
	}
	return suppliers, nil
}

var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)
