// Package identity holds the users that operate the till and the roles
// that gate what they may do.
package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/koperasi/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role names a user's job in the cooperative
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleCashier    Role = "CASHIER"
	RolePurchasing Role = "PURCHASING"
)

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCashier, RolePurchasing:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Password cost for bcrypt
const bcryptCost = 12

var (
	usernamePattern = regexp.MustCompile(`^[a-z0-9_.-]{3,50}$`)
	hasLetter       = regexp.MustCompile(`[a-zA-Z]`)
	hasNumber       = regexp.MustCompile(`[0-9]`)
)

// User is an operator account. Username is unique while the account is active.
type User struct {
	shared.BaseEntity
	Name         string
	Username     string
	PasswordHash string
	Role         Role
	Active       bool
	LastLoginAt  *time.Time
}

// NewUser creates an active user with a hashed password
func NewUser(name, username, password string, role Role) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("Nama tidak boleh kosong")
	}
	if !role.IsValid() {
		return nil, shared.NewValidationError("Role tidak valid")
	}

	user := &User{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Username:   username,
		Role:       role,
		Active:     true,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	return user, nil
}

// SetPassword validates and hashes a new password
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Gagal memproses password")
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Reactivate revives a deactivated account with fresh credentials
func (u *User) Reactivate(name, password string, role Role) error {
	if u.Active {
		return ErrUsernameTaken
	}
	if !role.IsValid() {
		return shared.NewValidationError("Role tidak valid")
	}
	if err := u.SetPassword(password); err != nil {
		return err
	}
	u.Name = strings.TrimSpace(name)
	u.Role = role
	u.Active = true
	return nil
}

// Deactivate disables login
func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now()
}

// RecordLogin stamps the last successful login
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
}

// CanLogin returns true if the account is enabled
func (u *User) CanLogin() bool {
	return u.Active
}

func validateUsername(username string) error {
	if username == "" {
		return shared.NewValidationError("Username tidak boleh kosong")
	}
	if !usernamePattern.MatchString(username) {
		return shared.NewValidationError("Username hanya boleh huruf kecil, angka, titik, garis bawah, dan strip (3-50 karakter)")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewValidationError("Password minimal 8 karakter")
	}
	if len(password) > 72 {
		return shared.NewValidationError("Password maksimal 72 karakter")
	}
	if !hasLetter.MatchString(password) || !hasNumber.MatchString(password) {
		return shared.NewValidationError("Password harus mengandung huruf dan angka")
	}
	return nil
}

// Identity errors
var (
	ErrUserNotFound       = shared.NewNotFoundError("User tidak ditemukan")
	ErrUsernameTaken      = shared.NewDomainError(shared.CodeAlreadyExists, "Username sudah digunakan")
	ErrInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Username atau password salah")
	ErrAccountInactive    = shared.NewDomainError(shared.CodeUnauthorized, "Akun tidak aktif")
)
