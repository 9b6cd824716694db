package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
)

// User never carries the plain-text password. PasswordHash stays inside the
// server and is not part of any response type.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail applies the case-insensitive email policy: surrounding
// whitespace is dropped and the address is lower-cased before it is stored or
// looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
