// Package metrics defines and registers all custom Prometheus metrics for the
// workshop admin API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "workshop"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// GuardRejectionsTotal counts requests short-circuited by the authorization gate.
// Label:
//   - guard: "auth", "rbac", "csrf" or "ratelimit"
var GuardRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_rejections_total",
		Help:      "Total number of requests rejected before reaching a handler, by guard.",
	},
	[]string{"guard"},
)

// RateLimitRejectionsTotal counts requests dropped by the rate limiter.
// Label:
//   - scope: the limiter scope ("login", "general")
var RateLimitRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratelimit_rejections_total",
		Help:      "Total number of rate-limited requests, by limiter scope.",
	},
	[]string{"scope"},
)

// AuditWritesTotal counts audit sink writes.
// Label:
//   - result: "ok" or "error"
var AuditWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_writes_total",
		Help:      "Total number of audit log writes, by result.",
	},
	[]string{"result"},
)
