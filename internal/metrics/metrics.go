package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ExecutionsTotal counts sandbox runs by outcome. The "passed" label is
	// "true"/"false"; transport failures count as "false".
	ExecutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "code_executions_total",
			Help: "Total number of code executions",
		},
		[]string{"passed"},
	)

	// ExecutionDuration observes the wall-clock sandbox round trip.
	ExecutionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "code_execution_duration_seconds",
			Help:    "Duration of sandbox execution round trips",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 15},
		},
	)

	// SubmissionLogFailures counts submission rows that could not be written.
	// These runs still return a result to the user, so the counter is the
	// only place the loss shows up besides the error log.
	SubmissionLogFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "submission_log_failures_total",
			Help: "Total number of code submissions that failed to persist",
		},
	)
)

// Init registers the collectors with the default registry. Call once at boot.
func Init() {
	prometheus.MustRegister(ExecutionsTotal)
	prometheus.MustRegister(ExecutionDuration)
	prometheus.MustRegister(SubmissionLogFailures)
}

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
