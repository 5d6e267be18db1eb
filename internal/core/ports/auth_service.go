package ports

import (
	"context"

	"github.com/sitedesk/admin-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, name, phone string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
