package ports

import (
	"context"

	"github.com/sitedesk/admin-api/internal/core/domain"
)

// UserUpdate carries the mutable profile fields for a directory update.
// Empty fields are left untouched.
type UserUpdate struct {
	Email        string
	Name         string
	Phone        string
	Role         string
	PasswordHash string
}

// UserRepository defines persistence for the profile store.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns users ordered by creation time, newest first. An empty
	// roleFilter returns all roles.
	List(ctx context.Context, roleFilter string) ([]*domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	UpdateEmail(ctx context.Context, id string, newEmail string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context) (map[string]int64, error)
}
