package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/sale"
	"github.com/koperasi/backend/internal/domain/shared"
	"github.com/koperasi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCreditPaymentRepository implements sale.CreditPaymentRepository using GORM
type GormCreditPaymentRepository struct {
	db *gorm.DB
}

// NewGormCreditPaymentRepository creates a new GormCreditPaymentRepository
func NewGormCreditPaymentRepository(db *gorm.DB) *GormCreditPaymentRepository {
	return &GormCreditPaymentRepository{db: db}
}

// FindByID finds an installment by its ID
func (r *GormCreditPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*sale.CreditPayment, error) {
	var m models.CreditPaymentModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "credit_payment", id.String())
	}
	return m.ToDomain(), nil
}

// FindBySaleID returns the installments of a sale, oldest first
func (r *GormCreditPaymentRepository) FindBySaleID(ctx context.Context, saleID uuid.UUID) ([]sale.CreditPayment, error) {
	var rows []models.CreditPaymentModel
	if err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toCreditPayments(rows), nil
}

// FindAll lists installments matching the filter with the total count
func (r *GormCreditPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sale.CreditPayment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CreditPaymentModel{})
	if saleID, ok := filter.Filters["sale_id"]; ok {
		query = query.Where("credit_payments.sale_id = ?", saleID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.CreditPaymentModel
	err := query.
		Order(orderClause("credit_payments", filter, CreditPaymentSortFields, "created_at")).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return toCreditPayments(rows), total, nil
}

// Create inserts an installment
func (r *GormCreditPaymentRepository) Create(ctx context.Context, p *sale.CreditPayment) error {
	m := models.CreditPaymentModelFromDomain(p)
	return translateError(r.db.WithContext(ctx).Create(m).Error, "credit_payment", p.ID.String())
}

// Update persists a corrected amount and note
func (r *GormCreditPaymentRepository) Update(ctx context.Context, p *sale.CreditPayment) error {
	result := r.db.WithContext(ctx).Model(&models.CreditPaymentModel{}).
		Where("id = ?", p.ID).
		UpdateColumns(map[string]any{
			"amount":     p.Amount,
			"note":       p.Note,
			"updated_at": p.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("credit_payment", p.ID.String())
	}
	return nil
}

// Delete removes one installment
func (r *GormCreditPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CreditPaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("credit_payment", id.String())
	}
	return nil
}

// DeleteBySaleID removes every installment of a sale
func (r *GormCreditPaymentRepository) DeleteBySaleID(ctx context.Context, saleID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("sale_id = ?", saleID).Delete(&models.CreditPaymentModel{}).Error
}

func toCreditPayments(rows []models.CreditPaymentModel) []sale.CreditPayment {
	payments := make([]sale.CreditPayment, len(rows))
	for i := range rows {
		payments[i] = *rows[i].ToDomain()
	}
	return payments
}

var _ sale.CreditPaymentRepository = (*GormCreditPaymentRepository)(nil)
