package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/identity"
	"github.com/koperasi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "user", id.String())
	}
	return model.ToDomain(), nil
}

// FindByUsername finds a user by username. The active account wins when an
// inactive one shares the name.
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("active DESC, updated_at DESC").
		First(&model).Error; err != nil {
		return nil, translateError(err, "user", username)
	}
	return model.ToDomain(), nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	return translateError(r.db.WithContext(ctx).Save(model).Error, "user", user.Username)
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
