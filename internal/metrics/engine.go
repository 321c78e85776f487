package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval engine metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fuse",
			Name:      "searches_total",
			Help:      "Total number of search requests by mode",
		},
		[]string{"mode", "status"},
	)

	FeedbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fuse",
			Name:      "feedback_total",
			Help:      "Total number of recorded feedback events",
		},
		[]string{"action", "outcome"},
	)

	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fuse",
			Name:      "recommendations_total",
			Help:      "Total number of recommendation requests",
		},
		[]string{"profile"}, // "present" / "absent"
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers retrieval engine metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(FeedbackTotal)
	prometheus.MustRegister(RecommendationsTotal)
	engineMetricsRegistered = true
}
