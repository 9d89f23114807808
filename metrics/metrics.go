package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	searchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "search_queries_total",
			Help:      "Search queries by resulting state",
		},
		[]string{"state"},
	)

	completionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "completion_requests_total",
			Help:      "Completion endpoint calls by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	completionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portfolio",
			Name:      "completion_duration_seconds",
			Help:      "Completion endpoint latency in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider"},
	)

	activeSessions = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "portfolio",
			Name:      "chat_sessions",
			Help:      "Conversations currently held in memory, by front-end",
		},
		[]string{"frontend"},
	)
)

// Completion outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

func init() {
	prometheus.MustRegister(
		searchQueriesTotal,
		completionRequestsTotal,
		completionDuration,
		activeSessions,
	)
}

// ObserveSearch counts one search by its state (idle, results, no_results).
func ObserveSearch(state string) {
	searchQueriesTotal.WithLabelValues(state).Inc()
}

// ObserveCompletion records one completion call.
func ObserveCompletion(provider, outcome string, d time.Duration) {
	completionRequestsTotal.WithLabelValues(provider, outcome).Inc()
	completionDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// SetActiveSessions publishes the number of live conversations of one front-end.
func SetActiveSessions(frontend string, n int) {
	activeSessions.WithLabelValues(frontend).Set(float64(n))
}
