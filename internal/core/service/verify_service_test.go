package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sitedesk/admin-api/internal/core/domain"
	"github.com/sitedesk/admin-api/internal/core/ports"
)

func TestVerifyService_Reachable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	sites := newStubSiteRepo()
	created, _ := sites.Create(context.Background(), &domain.Site{OwnerID: "u1", URL: upstream.URL, Status: domain.SitePending})

	svc := NewVerifyService(sites, upstream.Client(), zerolog.Nop())
	if err := svc.Verify(context.Background(), ports.VerifyInput{SiteID: created.ID, URL: upstream.URL}); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	stored, _ := sites.FindByID(context.Background(), created.ID)
	if !stored.Verified {
		t.Fatalf("expected site marked verified")
	}
}

func TestVerifyService_Unreachable(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	sites := newStubSiteRepo()
	created, _ := sites.Create(context.Background(), &domain.Site{OwnerID: "u1", URL: upstream.URL, Status: domain.SitePending, Verified: true})

	svc := NewVerifyService(sites, upstream.Client(), zerolog.Nop())
	if err := svc.Verify(context.Background(), ports.VerifyInput{SiteID: created.ID, URL: upstream.URL}); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	stored, _ := sites.FindByID(context.Background(), created.ID)
	if stored.Verified {
		t.Fatalf("expected site marked unverified after a failing probe")
	}
}

func TestVerifyService_BadURL(t *testing.T) {
	sites := newStubSiteRepo()
	created, _ := sites.Create(context.Background(), &domain.Site{OwnerID: "u1", URL: "http://0.0.0.0:0", Status: domain.SitePending})

	svc := NewVerifyService(sites, nil, zerolog.Nop())
	if err := svc.Verify(context.Background(), ports.VerifyInput{SiteID: created.ID, URL: "http://0.0.0.0:0"}); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	stored, _ := sites.FindByID(context.Background(), created.ID)
	if stored.Verified {
		t.Fatalf("unreachable host must not verify")
	}
}

func TestStatsService_Overview(t *testing.T) {
	users := newStubUserRepo()
	sites := newStubSiteRepo()

	seedUser(t, users, "a@example.com", domain.RoleUser)
	seedUser(t, users, "b@example.com", domain.RoleUser)
	seedUser(t, users, "c@example.com", domain.RoleAdmin)
	_, _ = sites.Create(context.Background(), &domain.Site{OwnerID: "u1", Status: domain.SitePending})
	_, _ = sites.Create(context.Background(), &domain.Site{OwnerID: "u1", Status: domain.SiteApproved})

	svc := NewStatsService(users, sites)
	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if overview.TotalUsers != 3 || overview.UsersByRole[domain.RoleAdmin] != 1 {
		t.Fatalf("unexpected user counts: %+v", overview)
	}
	if overview.TotalSites != 2 || overview.SitesByState[string(domain.SitePending)] != 1 {
		t.Fatalf("unexpected site counts: %+v", overview)
	}
}
