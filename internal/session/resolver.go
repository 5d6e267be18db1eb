package session

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sitedesk/admin-api/internal/api/metrics"
	"github.com/sitedesk/admin-api/internal/core/domain"
	"github.com/sitedesk/admin-api/internal/core/ports"
)

// RoleResolver merges the authoritative role from the profile store into an
// authenticated identity.
type RoleResolver struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewRoleResolver(repo ports.UserRepository, log zerolog.Logger) *RoleResolver {
	return &RoleResolver{repo: repo, log: log}
}

// Resolve looks up the profile row for the given identity and returns the
// fully merged principal. Fail-closed: when the lookup fails or no row
// matches, the returned principal carries an empty role and is never admin.
// Safe for concurrent use.
func (r *RoleResolver) Resolve(ctx context.Context, id, email string) *domain.User {
	user, err := r.repo.FindByID(ctx, id)
	if err != nil {
		r.log.Warn().Err(err).Str("user_id", id).Msg("role resolution failed, leaving role unresolved")
		metrics.RoleResolutionsTotal.WithLabelValues("unresolved").Inc()
		return &domain.User{ID: id, Email: email}
	}

	metrics.RoleResolutionsTotal.WithLabelValues("ok").Inc()

	merged := *user
	merged.PasswordHash = ""
	return &merged
}
