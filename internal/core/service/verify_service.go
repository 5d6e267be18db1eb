package service

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/sitedesk/admin-api/internal/api/metrics"
	"github.com/sitedesk/admin-api/internal/core/ports"
)

const verifyTimeout = 10 * time.Second

type verifyService struct {
	repo   ports.SiteRepository
	client *http.Client
	log    zerolog.Logger
}

// NewVerifyService returns a VerifyService that probes submitted URLs with a
// HEAD request. A nil client falls back to a default with verifyTimeout.
func NewVerifyService(repo ports.SiteRepository, client *http.Client, log zerolog.Logger) ports.VerifyService {
	if client == nil {
		client = &http.Client{Timeout: verifyTimeout}
	}
	return &verifyService{repo: repo, client: client, log: log}
}

// Verify probes the submission URL and records the result on the site row.
// An unreachable site is not an error: the flag is simply left false.
func (s *verifyService) Verify(ctx context.Context, in ports.VerifyInput) error {
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	reachable := s.probe(ctx, in.URL)

	result := "unreachable"
	if reachable {
		result = "reachable"
	}
	metrics.SiteVerificationsTotal.WithLabelValues(result).Inc()

	if err := s.repo.SetVerified(ctx, in.SiteID, reachable); err != nil {
		s.log.Error().Err(err).Str("site_id", in.SiteID).Msg("failed to record verification result")
		return err
	}

	s.log.Info().
		Str("site_id", in.SiteID).
		Bool("reachable", reachable).
		Msg("site verified")
	return nil
}

func (s *verifyService) probe(ctx context.Context, rawURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < http.StatusBadRequest
}
