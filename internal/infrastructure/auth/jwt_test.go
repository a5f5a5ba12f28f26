package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test-issuer",
	})
}

func newTestInput() GenerateTokenInput {
	return GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "kasir1",
		Name:     "Siti",
		Role:     "CASHIER",
	}
}

func TestNewJWTService(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:                "test-secret",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test-issuer",
	}

	svc := NewJWTService(cfg)

	assert.NotNil(t, svc)
	assert.Equal(t, []byte(cfg.Secret), svc.secret)
	assert.Equal(t, cfg.AccessTokenExpiration, svc.Expiration())
	assert.Equal(t, cfg.Issuer, svc.issuer)
}

func TestGenerateAccessToken(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateAccessToken(newTestInput())
	require.NoError(t, err)

	assert.NotEmpty(t, token.Token)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), token.ExpiresAt, 5*time.Second)
}

func TestValidateAccessToken_Success(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	token, err := svc.GenerateAccessToken(input)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token.Token)
	require.NoError(t, err)

	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, input.Username, claims.Username)
	assert.Equal(t, input.Name, claims.Name)
	assert.Equal(t, input.Role, claims.Role)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	userID, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, input.UserID, userID)
}

func TestGenerateAccessToken_UniqueIDs(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	first, err := svc.GenerateAccessToken(input)
	require.NoError(t, err)
	second, err := svc.GenerateAccessToken(input)
	require.NoError(t, err)

	c1, err := svc.ValidateAccessToken(first.Token)
	require.NoError(t, err)
	c2, err := svc.ValidateAccessToken(second.Token)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestValidateAccessToken_ExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: -1 * time.Minute,
		Issuer:                "test-issuer",
	})

	token, err := svc.GenerateAccessToken(newTestInput())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token.Token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateAccessToken_InvalidToken(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_DifferentSecret(t *testing.T) {
	token, err := newTestJWTService().GenerateAccessToken(newTestInput())
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:                "another-secret-key-at-least-32-ch",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test-issuer",
	})
	_, err = other.ValidateAccessToken(token.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_WrongIssuer(t *testing.T) {
	token, err := newTestJWTService().GenerateAccessToken(newTestInput())
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "someone-else",
	})
	_, err = other.ValidateAccessToken(token.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			Audience:  jwt.ClaimStrings{"test-issuer"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: uuid.New().String(),
		Role:   "ADMIN",
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestJWTService().ValidateAccessToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_MissingUserID(t *testing.T) {
	svc := newTestJWTService()
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			Audience:  jwt.ClaimStrings{"test-issuer"},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: "ghost",
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(signed)
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestClaims_GetRemainingTTL(t *testing.T) {
	t.Run("future expiry", func(t *testing.T) {
		c := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(10 * time.Minute)),
		}}
		ttl := c.GetRemainingTTL()
		assert.Greater(t, ttl, 9*time.Minute)
		assert.LessOrEqual(t, ttl, 10*time.Minute)
	})

	t.Run("past expiry", func(t *testing.T) {
		c := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}}
		assert.Equal(t, time.Duration(0), c.GetRemainingTTL())
	})

	t.Run("no expiry", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), (&Claims{}).GetRemainingTTL())
	})
}
