// Package identity implements login and operator account management.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/identity"
	"github.com/koperasi/backend/internal/domain/shared"
	"github.com/koperasi/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// TokenIssuer signs access tokens
type TokenIssuer interface {
	GenerateAccessToken(input auth.GenerateTokenInput) (*auth.AccessToken, error)
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	tokens     TokenIssuer
	revocation auth.RevocationList
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	tokens TokenIssuer,
	revocation auth.RevocationList,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		revocation: revocation,
		logger:     logger,
	}
}

// Login authenticates a user and returns an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login for unknown username", zap.String("username", username))
			return nil, identity.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", username))
		return nil, identity.ErrInvalidCredentials
	}
	if !user.CanLogin() {
		s.logger.Warn("Login attempt for inactive account", zap.String("username", username))
		return nil, identity.ErrAccountInactive
	}

	token, err := s.tokens.GenerateAccessToken(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Name:     user.Name,
		Role:     user.Role.String(),
	})
	if err != nil {
		s.logger.Error("Failed to generate access token", zap.Error(err))
		return nil, err
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Don't fail the login, just log the error
		s.logger.Error("Failed to record login", zap.Error(err))
	}

	s.logger.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()))

	return &LoginResult{
		AccessToken: token.Token,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        ToUserInfo(user),
	}, nil
}

// Logout revokes the presented token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI == "" {
		return nil
	}
	if err := s.revocation.Revoke(ctx, input.TokenJTI, input.TTL); err != nil {
		s.logger.Error("Failed to revoke token", zap.Error(err))
		return err
	}
	s.logger.Info("User logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

// GetCurrentUser returns the logged-in user's information
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, identity.ErrUserNotFound
		}
		return nil, err
	}
	if !user.CanLogin() {
		return nil, identity.ErrAccountInactive
	}
	info := ToUserInfo(user)
	return &info, nil
}
