// Package metrics defines the custom Prometheus metrics of the back-office
// API. Metrics are registered with the default registry on import; HTTP
// request metrics come from the echoprometheus middleware instead.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// ── Login ─────────────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts by how they ended.
// Label:
//   - outcome: "success", "not_found", "invalid_password", "invalid_payload", "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// LoginThrottledTotal counts login requests rejected by the rate limiter.
var LoginThrottledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_throttled_total",
		Help:      "Total number of login requests rejected for exceeding the attempt limit.",
	},
)

// ── Authorization ─────────────────────────────────────────────────────────────

// AuthorizationDecisionsTotal counts gate decisions on protected routes.
// Label:
//   - decision: "admitted", "no_token", "invalid_token", "role_denied"
var AuthorizationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_decisions_total",
		Help:      "Total number of authorization gate decisions, by decision.",
	},
	[]string{"decision"},
)
