package domain

import "testing"

func TestSiteStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from SiteStatus
		to   SiteStatus
		want bool
	}{
		{SitePending, SiteApproved, true},
		{SitePending, SiteRejected, true},
		{SiteRejected, SitePending, true},
		{SiteApproved, SiteRejected, false},
		{SiteApproved, SitePending, false},
		{SiteRejected, SiteApproved, false},
		{SitePending, SitePending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Fatalf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
