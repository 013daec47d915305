// Package metrics defines the custom Prometheus metrics of the SkillSwap web
// app. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "skillswap"

// ── API client ────────────────────────────────────────────────────────────────

// APIRequestsTotal counts attempts made against the SkillSwap API.
// Labels:
//   - op: catalog operation (e.g. "users.get_me")
//   - status: HTTP status code, or "network" when no response arrived
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Total number of SkillSwap API attempts, by operation and status.",
	},
	[]string{"op", "status"},
)

// APIRequestDuration measures a single attempt, retries counted separately.
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Duration of a single SkillSwap API attempt.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"op"},
)

// SessionRefreshTotal counts session refreshes triggered by a 401.
// Label:
//   - result: "success" or "failure"
var SessionRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "session_refresh_total",
		Help:      "Total number of session refreshes, by result.",
	},
	[]string{"result"},
)

// ── Auth state ────────────────────────────────────────────────────────────────

// AuthStateFetchTotal counts identity fetches made by the auth state.
// Label:
//   - result: "authenticated", "unauthenticated", "discarded" or "error"
var AuthStateFetchTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "identity_fetch_total",
		Help:      "Total number of current-user fetches, by result.",
	},
	[]string{"result"},
)

// ── Sign-in ───────────────────────────────────────────────────────────────────

// SignInTotal counts completed OAuth callbacks.
// Labels:
//   - provider: "google" or "github"
//   - result: "success" or a short failure reason
var SignInTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "sign_in_total",
		Help:      "Total number of OAuth sign-in callbacks, by provider and result.",
	},
	[]string{"provider", "result"},
)

// ── Read receipts ─────────────────────────────────────────────────────────────

// ReadReceiptsTotal counts background mark-read calls.
// Label:
//   - result: "ok", "error" or "dropped" (queue full)
var ReadReceiptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "messages",
		Name:      "read_receipts_total",
		Help:      "Total number of read receipts, by result.",
	},
	[]string{"result"},
)

// ReadReceiptQueueDepth tracks the receipts waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ReadReceiptQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "messages",
		Name:      "read_receipt_queue_depth",
		Help:      "Current number of read receipts pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
