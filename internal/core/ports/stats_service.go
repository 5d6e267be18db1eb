package ports

import "context"

// StatsOverview aggregates the dashboard landing-page counters.
type StatsOverview struct {
	TotalUsers   int64            `json:"total_users"`
	UsersByRole  map[string]int64 `json:"users_by_role"`
	TotalSites   int64            `json:"total_sites"`
	SitesByState map[string]int64 `json:"sites_by_status"`
}

type StatsService interface {
	Overview(ctx context.Context) (*StatsOverview, error)
}
