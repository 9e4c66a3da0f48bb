package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalidInput = "invalid_input"
	OutcomeConflict     = "conflict"
	OutcomeUnauthorized = "unauthorized"
	OutcomeError        = "error"
)

var (
	// Signups counts signup attempts by outcome.
	Signups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campusai",
		Name:      "signups_total",
		Help:      "Signup attempts by outcome.",
	}, []string{"outcome"})

	// Logins counts login attempts by outcome.
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campusai",
		Name:      "logins_total",
		Help:      "Login attempts by outcome.",
	}, []string{"outcome"})

	// AIRequests counts ask-ai requests by outcome. Provider failures use the
	// provider error kind as outcome.
	AIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campusai",
		Name:      "ai_requests_total",
		Help:      "Ask-AI requests by outcome.",
	}, []string{"outcome"})
)

// OutcomeForStatus maps an HTTP status to an outcome label.
func OutcomeForStatus(status int) string {
	switch {
	case status < 300:
		return OutcomeSuccess
	case status == 401:
		return OutcomeUnauthorized
	case status == 409:
		return OutcomeConflict
	case status < 500:
		return OutcomeInvalidInput
	default:
		return OutcomeError
	}
}
