package ports

import (
	"context"

	"github.com/sitedesk/admin-api/internal/core/domain"
)

// UpdateUserInput carries an admin-driven partial profile update. Empty
// fields are no-ops; NewPassword, when set, replaces the stored hash.
type UpdateUserInput struct {
	Email       string
	Name        string
	Phone       string
	Role        string
	NewPassword string
}

// UserService is the user directory: list, update, suspend, and remove
// accounts. Callers are expected to have passed the admin gate; the backing
// store still rejects unauthorized writers at its own boundary.
type UserService interface {
	List(ctx context.Context, roleFilter string) ([]*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	UpdateEmail(ctx context.Context, id string, newEmail string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
