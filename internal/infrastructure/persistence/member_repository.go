package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/partner"
	"github.com/koperasi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMemberRepository implements MemberRepository using GORM
type GormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository creates a new GormMemberRepository
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// FindByID finds a member by its ID
func (r *GormMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Member, error) {
	var m models.MemberModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "member", id.String())
	}
	return m.ToDomain(), nil
}

// FindAll returns every member ordered by name
func (r *GormMemberRepository) FindAll(ctx context.Context) ([]partner.Member, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindActive returns the active members ordered by name
func (r *GormMemberRepository) FindActive(ctx context.Context) ([]partner.Member, error) {
	return r.find(r.db.WithContext(ctx).Where("active = ?", true))
}

// Save creates or updates a member
func (r *GormMemberRepository) Save(ctx context.Context, member *partner.Member) error {
	m := models.MemberModelFromDomain(member)
	return translateError(r.db.WithContext(ctx).Save(m).Error, "member", member.ID.String())
}

func (r *GormMemberRepository) find(query *gorm.DB) ([]partner.Member, error) {
	var rows []models.MemberModel
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	members := make([]partner.Member, len(rows))
	for i := range rows {
		members[i] = *rows[i].ToDomain()
	}
	return members, nil
}

var _ partner.MemberRepository = (*GormMemberRepository)(nil)
