package service

import (
	"context"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/sitedesk/admin-api/internal/core/domain"
	"github.com/sitedesk/admin-api/internal/core/ports"
)

// SubmissionGuard abstracts the duplicate-submission store (Redis). It maps
// an (owner, url) pair to the site id of a recent submission.
type SubmissionGuard interface {
	Recent(ctx context.Context, ownerID, rawURL string) (string, error)
	Remember(ctx context.Context, ownerID, rawURL, siteID string) error
}

// VerifyEnqueuer hands a reachability check to the background dispatcher.
type VerifyEnqueuer interface {
	Enqueue(in ports.VerifyInput)
}

type siteService struct {
	repo     ports.SiteRepository
	guard    SubmissionGuard
	verifier VerifyEnqueuer
	log      zerolog.Logger
}

// NewSiteService returns a SiteService implementation.
func NewSiteService(repo ports.SiteRepository, guard SubmissionGuard, verifier VerifyEnqueuer, log zerolog.Logger) ports.SiteService {
	return &siteService{repo: repo, guard: guard, verifier: verifier, log: log}
}

// Submit stores a new website submission. A repeated submission of the same
// URL by the same owner within the guard window replays the original
// submission without side effects.
func (s *siteService) Submit(ctx context.Context, input ports.SubmitSiteInput) (*ports.SubmitSiteResult, error) {
	if input.OwnerID == "" || input.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	parsed, err := url.Parse(input.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, domain.ErrInvalidInput
	}

	if s.guard != nil {
		existingID, guardErr := s.guard.Recent(ctx, input.OwnerID, input.URL)
		if guardErr != nil {
			s.log.Warn().Err(guardErr).Str("url", input.URL).Msg("duplicate check failed, submitting anyway")
		} else if existingID != "" {
			existing, findErr := s.repo.FindByID(ctx, existingID)
			if findErr == nil {
				s.log.Info().Str("site_id", existingID).Str("url", input.URL).Msg("duplicate submission replayed")
				return &ports.SubmitSiteResult{Site: existing, AlreadyExisted: true}, nil
			}
		}
	}

	now := time.Now().UTC()
	site := &domain.Site{
		OwnerID:     input.OwnerID,
		URL:         input.URL,
		Name:        input.Name,
		Description: input.Description,
		Status:      domain.SitePending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, site)
	if err != nil {
		s.log.Error().Err(err).Str("url", input.URL).Msg("failed to store submission")
		return nil, err
	}

	if s.guard != nil {
		if markErr := s.guard.Remember(ctx, input.OwnerID, input.URL, created.ID); markErr != nil {
			s.log.Warn().Err(markErr).Str("site_id", created.ID).Msg("failed to set duplicate guard key")
		}
	}

	if s.verifier != nil {
		s.verifier.Enqueue(ports.VerifyInput{SiteID: created.ID, URL: created.URL})
	}

	s.log.Info().Str("site_id", created.ID).Str("owner_id", input.OwnerID).Msg("site submitted")
	return &ports.SubmitSiteResult{Site: created}, nil
}

func (s *siteService) List(ctx context.Context, filter ports.SiteFilter) ([]*domain.Site, error) {
	return s.repo.List(ctx, filter)
}

// Review applies an admin decision, enforcing the review state machine.
func (s *siteService) Review(ctx context.Context, input ports.ReviewSiteInput) (*domain.Site, error) {
	if input.SiteID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Status != domain.SiteApproved && input.Status != domain.SiteRejected {
		return nil, domain.ErrInvalidInput
	}

	site, err := s.repo.FindByID(ctx, input.SiteID)
	if err != nil {
		return nil, err
	}
	if !site.Status.CanTransitionTo(input.Status) {
		return nil, domain.ErrInvalidReview
	}

	if err := s.repo.UpdateStatus(ctx, input.SiteID, input.Status, input.Notes); err != nil {
		s.log.Error().Err(err).Str("site_id", input.SiteID).Msg("review update failed")
		return nil, err
	}

	s.log.Info().
		Str("site_id", input.SiteID).
		Str("status", string(input.Status)).
		Msg("site reviewed")

	return s.repo.FindByID(ctx, input.SiteID)
}

func (s *siteService) Delete(ctx context.Context, id string, ownerID string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	site, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if ownerID != "" && site.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
