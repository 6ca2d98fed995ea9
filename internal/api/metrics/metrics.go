// Package metrics defines the custom Prometheus metrics of the reservation
// service. Metrics register with the default registry on package init, which
// is the registry served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crms"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthFailuresTotal counts requests rejected by the auth middleware.
// Label:
//   - reason: the error message key (e.g. "exception.unauthorized.expired_access_token")
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected while resolving the session token.",
	},
	[]string{"reason"},
)

// PermissionDeniedTotal counts operations rejected with UserHasNoPermission.
// Label:
//   - route: the echo route path
var PermissionDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "permission_denied_total",
		Help:      "Total number of operations denied for lack of permission.",
	},
	[]string{"route"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or the failure message key
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Reminder metrics ──────────────────────────────────────────────────────────

// RemindersTotal counts reminder dispatch outcomes.
// Label:
//   - result: "sent", "skipped" or "failed"
var RemindersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_total",
		Help:      "Total number of reminder deliveries, by result.",
	},
	[]string{"result"},
)

// RemindersQueueDepth tracks pending reminders in each dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var RemindersQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "reminders_queue_depth",
		Help:      "Current number of reminders pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NextDayScanSize records how many reservations each next-day scan found.
var NextDayScanSize = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "next_day_scan_size",
		Help:      "Number of reservations returned by a next-day scan.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	},
)
