package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bryansgue/scanela-sub001/pkg/config"
)

var (
	// HTTP request metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Save reconciliation outcomes (created/updated/skipped/conflict/error)
	saveOutcomesCounter *prometheus.CounterVec

	// Slug allocation and personalization metrics
	slugConflictsCounter    prometheus.Counter
	personalizationsCounter prometheus.Counter

	// Database operation metrics
	dbOperationDuration *prometheus.HistogramVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	saveOutcomesCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_save_outcomes_total",
			Help: "Total number of menu save reconciliations by outcome",
		},
		[]string{"outcome"},
	)

	slugConflictsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_slug_conflicts_total",
			Help: "Total number of slug uniqueness conflicts surfaced to callers",
		},
	)

	personalizationsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_slug_personalizations_total",
			Help: "Total number of successful slug personalizations",
		},
	)

	dbOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)
}

// RecordHTTPRequest records one completed HTTP request
func RecordHTTPRequest(method, path, status string, duration float64) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
}

// RecordSaveOutcome increments the counter for save reconciliation outcomes
func RecordSaveOutcome(outcome string) {
	if saveOutcomesCounter == nil {
		return
	}
	saveOutcomesCounter.WithLabelValues(outcome).Inc()
}

// RecordSlugConflict increments the counter for slug conflicts
func RecordSlugConflict() {
	if slugConflictsCounter == nil {
		return
	}
	slugConflictsCounter.Inc()
}

// RecordPersonalization increments the counter for successful personalizations
func RecordPersonalization() {
	if personalizationsCounter == nil {
		return
	}
	personalizationsCounter.Inc()
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if dbOperationDuration == nil {
			return
		}
		duration := time.Since(startTime).Seconds()
		dbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}
