package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sitedesk/admin-api/internal/core/domain"
	"github.com/sitedesk/admin-api/internal/core/ports"
)

type stubGuard struct {
	remembered map[string]string // owner+url -> site id
	err        error
}

func newStubGuard() *stubGuard {
	return &stubGuard{remembered: make(map[string]string)}
}

func (g *stubGuard) Recent(_ context.Context, ownerID, rawURL string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.remembered[ownerID+"|"+rawURL], nil
}

func (g *stubGuard) Remember(_ context.Context, ownerID, rawURL, siteID string) error {
	if g.err != nil {
		return g.err
	}
	g.remembered[ownerID+"|"+rawURL] = siteID
	return nil
}

type stubEnqueuer struct {
	enqueued []ports.VerifyInput
}

func (e *stubEnqueuer) Enqueue(in ports.VerifyInput) {
	e.enqueued = append(e.enqueued, in)
}

func TestSiteService_Submit_Success(t *testing.T) {
	sites := newStubSiteRepo()
	enq := &stubEnqueuer{}
	svc := NewSiteService(sites, newStubGuard(), enq, zerolog.Nop())

	result, err := svc.Submit(context.Background(), ports.SubmitSiteInput{
		OwnerID: "u1",
		URL:     "https://blog.example.com",
		Name:    "My blog",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.AlreadyExisted {
		t.Fatalf("first submission must not be a replay")
	}
	if result.Site.Status != domain.SitePending {
		t.Fatalf("new submissions start pending, got %s", result.Site.Status)
	}
	if len(enq.enqueued) != 1 || enq.enqueued[0].SiteID != result.Site.ID {
		t.Fatalf("expected one verification enqueued for the new site, got %+v", enq.enqueued)
	}
}

func TestSiteService_Submit_InvalidURL(t *testing.T) {
	svc := NewSiteService(newStubSiteRepo(), newStubGuard(), &stubEnqueuer{}, zerolog.Nop())

	for _, raw := range []string{"", "not a url", "example.com", "https://"} {
		if _, err := svc.Submit(context.Background(), ports.SubmitSiteInput{
			OwnerID: "u1",
			URL:     raw,
			Name:    "x",
		}); err != domain.ErrInvalidInput {
			t.Fatalf("URL %q: expected ErrInvalidInput, got %v", raw, err)
		}
	}
}

func TestSiteService_Submit_DuplicateReplayed(t *testing.T) {
	sites := newStubSiteRepo()
	guard := newStubGuard()
	enq := &stubEnqueuer{}
	svc := NewSiteService(sites, guard, enq, zerolog.Nop())

	first, err := svc.Submit(context.Background(), ports.SubmitSiteInput{
		OwnerID: "u1",
		URL:     "https://blog.example.com",
		Name:    "My blog",
	})
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	second, err := svc.Submit(context.Background(), ports.SubmitSiteInput{
		OwnerID: "u1",
		URL:     "https://blog.example.com",
		Name:    "My blog again",
	})
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}
	if !second.AlreadyExisted {
		t.Fatalf("expected replay of the original submission")
	}
	if second.Site.ID != first.Site.ID {
		t.Fatalf("replay returned a different site: %s vs %s", second.Site.ID, first.Site.ID)
	}
	if len(enq.enqueued) != 1 {
		t.Fatalf("replay must not enqueue another verification, got %d", len(enq.enqueued))
	}

	all, _ := sites.List(context.Background(), ports.SiteFilter{})
	if len(all) != 1 {
		t.Fatalf("replay must not create a second row, got %d", len(all))
	}
}

func TestSiteService_Submit_GuardFailureProceeds(t *testing.T) {
	sites := newStubSiteRepo()
	guard := newStubGuard()
	guard.err = context.DeadlineExceeded
	svc := NewSiteService(sites, guard, &stubEnqueuer{}, zerolog.Nop())

	result, err := svc.Submit(context.Background(), ports.SubmitSiteInput{
		OwnerID: "u1",
		URL:     "https://blog.example.com",
		Name:    "My blog",
	})
	if err != nil {
		t.Fatalf("guard failure must not block submission: %v", err)
	}
	if result.AlreadyExisted {
		t.Fatalf("unexpected replay")
	}
}

func TestSiteService_Review_Transitions(t *testing.T) {
	sites := newStubSiteRepo()
	svc := NewSiteService(sites, newStubGuard(), &stubEnqueuer{}, zerolog.Nop())

	created, _ := sites.Create(context.Background(), &domain.Site{
		OwnerID: "u1",
		URL:     "https://blog.example.com",
		Status:  domain.SitePending,
	})

	reviewed, err := svc.Review(context.Background(), ports.ReviewSiteInput{
		SiteID: created.ID,
		Status: domain.SiteApproved,
		Notes:  "looks good",
	})
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if reviewed.Status != domain.SiteApproved || reviewed.ReviewNotes != "looks good" {
		t.Fatalf("review not applied: %+v", reviewed)
	}

	// Approved sites cannot be re-reviewed.
	if _, err := svc.Review(context.Background(), ports.ReviewSiteInput{
		SiteID: created.ID,
		Status: domain.SiteRejected,
	}); err != domain.ErrInvalidReview {
		t.Fatalf("expected ErrInvalidReview, got %v", err)
	}
}

func TestSiteService_Review_Validation(t *testing.T) {
	svc := NewSiteService(newStubSiteRepo(), newStubGuard(), &stubEnqueuer{}, zerolog.Nop())

	if _, err := svc.Review(context.Background(), ports.ReviewSiteInput{
		SiteID: "s1",
		Status: domain.SitePending,
	}); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for pending decision, got %v", err)
	}

	if _, err := svc.Review(context.Background(), ports.ReviewSiteInput{
		SiteID: "missing",
		Status: domain.SiteApproved,
	}); err != domain.ErrSiteNotFound {
		t.Fatalf("expected ErrSiteNotFound, got %v", err)
	}
}

func TestSiteService_Delete_OwnerScoped(t *testing.T) {
	sites := newStubSiteRepo()
	svc := NewSiteService(sites, newStubGuard(), &stubEnqueuer{}, zerolog.Nop())

	created, _ := sites.Create(context.Background(), &domain.Site{
		OwnerID: "u1",
		URL:     "https://blog.example.com",
		Status:  domain.SitePending,
	})

	if err := svc.Delete(context.Background(), created.ID, "intruder"); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID, "u1"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	// An empty owner id is the admin path.
	recreated, _ := sites.Create(context.Background(), &domain.Site{OwnerID: "u1", URL: "https://x.example.com", Status: domain.SitePending})
	if err := svc.Delete(context.Background(), recreated.ID, ""); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
}
