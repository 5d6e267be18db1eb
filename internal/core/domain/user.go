package domain

import (
	"errors"
	"time"
)

// Roles assignable to a user. Role is authoritative only when read from the
// profile store; request payloads and token claims never decide it.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account statuses.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrEmailTaken = errors.New("email already in use")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidInput = errors.New("invalid input")

// User models an account in the profile store: the authenticated identity
// plus its resolved role and profile fields.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether role is one of the assignable roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// ValidStatus reports whether status is a known account status.
func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusSuspended
}

// IsAdmin reports whether u carries a resolved admin role. A nil user or an
// unresolved (empty) role is never admin.
func IsAdmin(u *User) bool {
	return u != nil && u.Role == RoleAdmin
}
