// Package metrics defines and registers the Prometheus metrics exported by the
// hotel application. Metrics register with the default registry on package init
// and are served from /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hotel"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts processed login submissions.
// Label:
//   - outcome: "success", "invalid_email", "invalid_credentials", "invalid_role" or "store_error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login submissions, by outcome.",
	},
	[]string{"outcome"},
)

// AuthDeniedTotal counts requests turned away by the auth guard.
// Label:
//   - reason: "no_session" or "wrong_role"
var AuthDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denied_total",
		Help:      "Total number of requests redirected by the auth guard.",
	},
	[]string{"reason"},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// RequestDuration measures handler latency.
// Labels:
//   - method: HTTP method
//   - route: matched ServeMux pattern, or "unmatched"
//   - status: response status code
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)

// SlowRequestsTotal counts requests above the slow-request threshold.
var SlowRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_slow_requests_total",
		Help:      "Total number of requests slower than the configured threshold.",
	},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// QueriesTotal counts database calls.
// Label:
//   - op: "exec", "query", "query_row" or "begin_tx"
var QueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "db_queries_total",
		Help:      "Total number of database calls, by operation.",
	},
	[]string{"op"},
)

// QueryDuration measures database call latency.
// Label:
//   - op: same values as QueriesTotal
var QueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "db_query_duration_seconds",
		Help:      "Duration of database calls.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	},
	[]string{"op"},
)

// SlowQueriesTotal counts database calls above the slow-query threshold.
var SlowQueriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "db_slow_queries_total",
		Help:      "Total number of database calls slower than the configured threshold.",
	},
)
