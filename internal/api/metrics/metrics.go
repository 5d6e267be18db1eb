// Package metrics defines and registers all custom Prometheus metrics for
// the sitedesk admin API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sitedesk"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", "suspended", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RoleResolutionsTotal counts role lookups against the profile store.
// Label:
//   - result: "ok" (role merged) or "unresolved" (lookup failed, fail-closed)
var RoleResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_resolutions_total",
		Help:      "Total number of role resolutions, by result.",
	},
	[]string{"result"},
)

// ── Directory metrics ─────────────────────────────────────────────────────────

// DirectoryMutationsTotal counts admin mutations of the user directory.
// Labels:
//   - operation: "update", "update_status", "update_email", "delete"
//   - result: "ok" or "error"
var DirectoryMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "directory_mutations_total",
		Help:      "Total number of user directory mutations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ── Proxy metrics ─────────────────────────────────────────────────────────────

// EmailUpdatesTotal counts email mutations performed by the privileged proxy.
// Label:
//   - result: "ok", "invalid_request", or "store_error"
var EmailUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "email_updates_total",
		Help:      "Total number of privileged email updates, by result.",
	},
	[]string{"result"},
)

// DownloadsTotal counts files streamed through the download proxy.
// Label:
//   - result: "ok", "bad_request", "upstream_error", or "error"
var DownloadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "downloads_total",
		Help:      "Total number of proxied downloads, by result.",
	},
	[]string{"result"},
)

// ── Site metrics ──────────────────────────────────────────────────────────────

// SitesSubmittedTotal counts website submissions.
// Label:
//   - result: "created" or "replayed" (duplicate within the guard window)
var SitesSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sites_submitted_total",
		Help:      "Total number of website submissions, by result.",
	},
	[]string{"result"},
)

// SiteReviewsTotal counts admin review decisions.
// Label:
//   - status: "approved" or "rejected"
var SiteReviewsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "site_reviews_total",
		Help:      "Total number of site review decisions, by resulting status.",
	},
	[]string{"status"},
)

// SiteVerificationsTotal counts background reachability probes.
// Label:
//   - result: "reachable" or "unreachable"
var SiteVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "site_verifications_total",
		Help:      "Total number of site reachability probes, by result.",
	},
	[]string{"result"},
)

// VerifyQueueDepth tracks pending reachability checks per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var VerifyQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "verify_queue_depth",
		Help:      "Current number of reachability checks pending per worker channel.",
	},
	[]string{"worker_id"},
)
