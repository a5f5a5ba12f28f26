package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/identity"
	"github.com/koperasi/backend/internal/domain/shared"
	"github.com/koperasi/backend/internal/infrastructure/auth"
	"github.com/koperasi/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: time.Hour,
		Issuer:                "koperasi-test",
	})
}

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("Siti", "siti", "rahasia123", identity.RoleCashier)
	require.NoError(t, err)
	return user
}

func setupAuthService() (*AuthService, *MockUserRepository, *auth.JWTService, *auth.InMemoryRevocationList) {
	repo := new(MockUserRepository)
	jwtSvc := newTestJWTService()
	revocation := auth.NewInMemoryRevocationList()
	return NewAuthService(repo, jwtSvc, revocation, zap.NewNop()), repo, jwtSvc, revocation
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token carrying the user role", func(t *testing.T) {
		svc, repo, jwtSvc, _ := setupAuthService()
		user := newTestUser(t)
		repo.On("FindByUsername", ctx, "siti").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		result, err := svc.Login(ctx, LoginRequest{Username: " Siti ", Password: "rahasia123"})
		require.NoError(t, err)

		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, user.ID, result.User.ID)
		assert.Equal(t, "CASHIER", result.User.Role)
		assert.NotNil(t, user.LastLoginAt)

		claims, err := jwtSvc.ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.Equal(t, "CASHIER", claims.Role)
		repo.AssertExpectations(t)
	})

	t.Run("unknown username is reported as bad credentials", func(t *testing.T) {
		svc, repo, _, _ := setupAuthService()
		repo.On("FindByUsername", ctx, "ghost").Return(nil, shared.NewNotFound("user", "ghost"))

		_, err := svc.Login(ctx, LoginRequest{Username: "ghost", Password: "rahasia123"})
		require.Error(t, err)
		assert.Equal(t, identity.ErrInvalidCredentials.Message, err.(*shared.DomainError).Message)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, repo, _, _ := setupAuthService()
		repo.On("FindByUsername", ctx, "siti").Return(newTestUser(t), nil)

		_, err := svc.Login(ctx, LoginRequest{Username: "siti", Password: "salah12345"})
		require.Error(t, err)
		assert.Equal(t, identity.ErrInvalidCredentials.Message, err.(*shared.DomainError).Message)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("inactive account", func(t *testing.T) {
		svc, repo, _, _ := setupAuthService()
		user := newTestUser(t)
		user.Deactivate()
		repo.On("FindByUsername", ctx, "siti").Return(user, nil)

		_, err := svc.Login(ctx, LoginRequest{Username: "siti", Password: "rahasia123"})
		require.Error(t, err)
		assert.Equal(t, identity.ErrAccountInactive.Message, err.(*shared.DomainError).Message)
	})

	t.Run("storage failure is returned as is", func(t *testing.T) {
		svc, repo, _, _ := setupAuthService()
		repo.On("FindByUsername", ctx, "siti").Return(nil, errors.New("connection refused"))

		_, err := svc.Login(ctx, LoginRequest{Username: "siti", Password: "rahasia123"})
		require.Error(t, err)
		var domainErr *shared.DomainError
		assert.False(t, errors.As(err, &domainErr))
	})

	t.Run("failing to record the login does not fail it", func(t *testing.T) {
		svc, repo, _, _ := setupAuthService()
		user := newTestUser(t)
		repo.On("FindByUsername", ctx, "siti").Return(user, nil)
		repo.On("Save", ctx, user).Return(errors.New("write failed"))

		result, err := svc.Login(ctx, LoginRequest{Username: "siti", Password: "rahasia123"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, _, _, revocation := setupAuthService()

	require.NoError(t, svc.Logout(ctx, LogoutInput{UserID: uuid.New(), TokenJTI: "jti-1", TTL: time.Minute}))

	revoked, err := revocation.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, svc.Logout(ctx, LogoutInput{UserID: uuid.New()}))
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the user", func(t *testing.T) {
		svc, repo, _, _ := setupAuthService()
		user := newTestUser(t)
		repo.On("FindByID", ctx, user.ID).Return(user, nil)

		info, err := svc.GetCurrentUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "siti", info.Username)
		assert.Equal(t, "Siti", info.Name)
	})

	t.Run("missing user", func(t *testing.T) {
		svc, repo, _, _ := setupAuthService()
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.NewNotFound("user", id.String()))

		_, err := svc.GetCurrentUser(ctx, id)
		assert.ErrorIs(t, err, identity.ErrUserNotFound)
	})
}
