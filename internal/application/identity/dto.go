package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/koperasi/backend/internal/domain/identity"
)

// LoginRequest contains the credentials for login
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,max=72"`
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        UserInfo  `json:"user"`
}

// UserInfo contains the public view of a user
type UserInfo struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Username    string     `json:"username"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// LogoutInput identifies the token being given up
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	TTL      time.Duration
}

// CreateUserRequest contains the fields for a new operator account
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"required,oneof=ADMIN CASHIER PURCHASING"`
}

// ToUserInfo converts a domain user to its public view
func ToUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:          u.ID,
		Name:        u.Name,
		Username:    u.Username,
		Role:        u.Role.String(),
		LastLoginAt: u.LastLoginAt,
	}
}
