package ports

import (
	"context"

	"github.com/sitedesk/admin-api/internal/core/domain"
)

// SubmitSiteInput carries a new website submission.
type SubmitSiteInput struct {
	OwnerID     string
	URL         string
	Name        string
	Description string
}

// SubmitSiteResult reports the stored submission. AlreadyExisted is true
// when the same owner submitted the same URL recently and the original
// submission was replayed instead of creating a duplicate.
type SubmitSiteResult struct {
	Site           *domain.Site
	AlreadyExisted bool
}

// ReviewSiteInput carries an admin review decision.
type ReviewSiteInput struct {
	SiteID string
	Status domain.SiteStatus
	Notes  string
}

type SiteService interface {
	Submit(ctx context.Context, input SubmitSiteInput) (*SubmitSiteResult, error)
	List(ctx context.Context, filter SiteFilter) ([]*domain.Site, error)
	Review(ctx context.Context, input ReviewSiteInput) (*domain.Site, error)
	// Delete removes a submission. A non-empty ownerID restricts the delete
	// to sites owned by that user.
	Delete(ctx context.Context, id string, ownerID string) error
}

// VerifyInput identifies a submission whose URL should be probed.
type VerifyInput struct {
	SiteID string
	URL    string
}

// VerifyService checks whether a submitted site is reachable.
type VerifyService interface {
	Verify(ctx context.Context, in VerifyInput) error
}
