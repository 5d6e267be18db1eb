package service

import (
	"context"

	"github.com/sitedesk/admin-api/internal/core/ports"
)

type statsService struct {
	users ports.UserRepository
	sites ports.SiteRepository
}

// NewStatsService returns the dashboard overview aggregator.
func NewStatsService(users ports.UserRepository, sites ports.SiteRepository) ports.StatsService {
	return &statsService{users: users, sites: sites}
}

func (s *statsService) Overview(ctx context.Context) (*ports.StatsOverview, error) {
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.sites.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	overview := &ports.StatsOverview{
		UsersByRole:  byRole,
		SitesByState: byStatus,
	}
	for _, n := range byRole {
		overview.TotalUsers += n
	}
	for _, n := range byStatus {
		overview.TotalSites += n
	}
	return overview, nil
}
