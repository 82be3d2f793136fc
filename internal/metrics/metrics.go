// Package metrics provides Prometheus metrics for admin-hub.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gate outcomes.
const (
	OutcomeAnonymous    = "anonymous"
	OutcomeValid        = "valid"
	OutcomeRefreshed    = "refreshed"
	OutcomeRefreshFail  = "refresh_failed"
	OutcomeUnauthorized = "unauthenticated_protected"
)

var (
	// GateOutcomesTotal counts request gate decisions.
	GateOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "adminhub",
			Name:      "gate_outcomes_total",
			Help:      "Total number of request gate decisions by outcome",
		},
		[]string{"outcome"},
	)

	// BackendRequestsTotal counts calls to the backend API.
	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "adminhub",
			Name:      "backend_requests_total",
			Help:      "Total number of backend API calls",
		},
		[]string{"operation", "outcome"},
	)

	// BackendRequestDuration measures backend API call duration.
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "adminhub",
			Name:      "backend_request_duration_seconds",
			Help:      "Duration of backend API calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// AccessDeniedTotal counts permission failures by permission name.
	AccessDeniedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "adminhub",
			Name:      "access_denied_total",
			Help:      "Total number of requests rejected by a permission check",
		},
		[]string{"permission"},
	)

	// OrganizationLookupsTotal counts organization resolutions.
	OrganizationLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "adminhub",
			Name:      "organization_lookups_total",
			Help:      "Total number of organization lookups by result",
		},
		[]string{"result"},
	)
)

// RecordGateOutcome records a request gate decision.
func RecordGateOutcome(outcome string) {
	GateOutcomesTotal.WithLabelValues(outcome).Inc()
}

// RecordBackendCall records a backend API call.
func RecordBackendCall(operation, outcome string, seconds float64) {
	BackendRequestsTotal.WithLabelValues(operation, outcome).Inc()
	BackendRequestDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordAccessDenied records a failed permission check.
func RecordAccessDenied(permission string) {
	AccessDeniedTotal.WithLabelValues(permission).Inc()
}

// RecordOrganizationLookup records an organization lookup ("hit", "miss", "error").
func RecordOrganizationLookup(result string) {
	OrganizationLookupsTotal.WithLabelValues(result).Inc()
}
