package identity

import (
	"strings"
	"time"

	"github.com/storefront/core/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 10

// User is a self-registered account. The stored record carries a bcrypt
// hash, never the password itself.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	Name         string    `json:"name,omitempty"`
	Role         Role      `json:"role"`
	JoinedDate   time.Time `json:"joinedDate"`
}

// NewUser creates a registered user with a creation-time-derived id.
// The id must already be unique among stored users; the caller owns that.
func NewUser(id int64, email, password string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if !role.SelfRegisterable() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role cannot be self-registered")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		JoinedDate:   time.Now(),
	}, nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// DisplayName is first+last when both are present, else the generic name
// field, else empty.
func (u *User) DisplayName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Name
}

// Sanitized returns a copy safe to hand to callers: the credential hash is
// stripped.
func (u *User) Sanitized() *User {
	c := *u
	c.PasswordHash = ""
	return &c
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
