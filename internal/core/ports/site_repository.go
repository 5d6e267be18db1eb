package ports

import (
	"context"

	"github.com/sitedesk/admin-api/internal/core/domain"
)

// SiteFilter narrows a site listing. Empty fields match everything.
type SiteFilter struct {
	OwnerID string
	Status  domain.SiteStatus
}

// SiteRepository defines persistence for website submissions.
type SiteRepository interface {
	Create(ctx context.Context, site *domain.Site) (*domain.Site, error)
	FindByID(ctx context.Context, id string) (*domain.Site, error)
	// List returns sites ordered by creation time, newest first.
	List(ctx context.Context, filter SiteFilter) ([]*domain.Site, error)
	UpdateStatus(ctx context.Context, id string, status domain.SiteStatus, notes string) error
	SetVerified(ctx context.Context, id string, verified bool) error
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
