package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sitedesk/admin-api/internal/core/domain"
	"github.com/sitedesk/admin-api/internal/core/ports"
)

type userService struct {
	repo  ports.UserRepository
	sites ports.SiteRepository
	log   zerolog.Logger
}

// NewUserService returns the directory service used by admin tooling. It
// carries no authorization of its own; callers go through the admin gate and
// the store enforces its own boundary.
func NewUserService(repo ports.UserRepository, sites ports.SiteRepository, log zerolog.Logger) ports.UserService {
	return &userService{repo: repo, sites: sites, log: log}
}

func (s *userService) List(ctx context.Context, roleFilter string) ([]*domain.User, error) {
	if roleFilter != "" && !domain.ValidRole(roleFilter) {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.List(ctx, roleFilter)
}

func (s *userService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Role != "" && !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidInput
	}

	update := ports.UserUpdate{
		Email: input.Email,
		Name:  input.Name,
		Phone: input.Phone,
		Role:  input.Role,
	}

	if input.NewPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = string(hash)
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("directory update failed")
		return nil, err
	}

	s.log.Info().Str("user_id", id).Msg("directory update applied")
	return updated, nil
}

func (s *userService) UpdateStatus(ctx context.Context, id string, status string) error {
	if id == "" || !domain.ValidStatus(status) {
		return domain.ErrInvalidInput
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Str("status", status).Msg("account status changed")
	return nil
}

func (s *userService) UpdateEmail(ctx context.Context, id string, newEmail string) (*domain.User, error) {
	if id == "" || newEmail == "" {
		return nil, domain.ErrInvalidInput
	}
	updated, err := s.repo.UpdateEmail(ctx, id, newEmail)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("email update failed")
		return nil, err
	}
	s.log.Info().Str("user_id", id).Msg("email updated")
	return updated, nil
}

// Delete removes the identity and cascades to its site submissions. The
// cascade is referential cleanup: a failure there is logged, not surfaced,
// because the identity row is already gone.
func (s *userService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.sites.DeleteByOwner(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("user_id", id).Msg("site cleanup after user delete failed")
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
