package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/koperasi/backend/internal/domain/identity"
	"github.com/koperasi/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService manages operator accounts
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// CreateUser inserts an account, or revives a deactivated one with the same username
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserInfo, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	role := identity.Role(strings.ToUpper(req.Role))

	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	var user *identity.User
	if existing != nil {
		if err := existing.Reactivate(req.Name, req.Password, role); err != nil {
			return nil, err
		}
		user = existing
		s.logger.Info("Reactivated user", zap.String("username", username))
	} else {
		user, err = identity.NewUser(req.Name, username, req.Password, role)
		if err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	info := ToUserInfo(user)
	return &info, nil
}
