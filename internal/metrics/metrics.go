package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "yefeconsole"
)

var (
	apiDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

	// Upstream API metrics
	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Time taken for a Yefe API call to complete.",
		Buckets:   apiDurationBuckets,
	}, []string{"operation"})

	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Count of Yefe API calls.",
	}, []string{"operation", "status"})

	// Session metrics
	TokenRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Count of refresh-token exchanges.",
	}, []string{"outcome"})

	SessionsEndedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_ended_total",
		Help:      "Count of console sessions ended.",
	}, []string{"reason"})

	// List screen metrics
	ListRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_refreshes_total",
		Help:      "Count of held-collection refreshes per screen.",
	}, []string{"screen", "outcome"})

	RowMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "row_mutations_total",
		Help:      "Count of row-level mutations per screen.",
	}, []string{"screen", "action", "outcome"})
)
