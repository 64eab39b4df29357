// Package metrics provides Prometheus metrics for the introscore service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Score outcomes recorded by RecordScoreRequest.
const (
	OutcomeScored     = "scored"
	OutcomeRejected   = "rejected"
	OutcomeOverloaded = "overloaded"
	OutcomeFailed     = "failed"
)

// Manager owns every metric the service exports.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	registry       prometheus.Registerer

	// Scoring
	scoreRequests   *prometheus.CounterVec
	overallScore    prometheus.Histogram
	criterionScore  *prometheus.HistogramVec
	scoringLatency  prometheus.Histogram
	transcriptWords prometheus.Histogram

	// Collaborators
	collaboratorLatency   *prometheus.HistogramVec
	collaboratorErrors    *prometheus.CounterVec
	collaboratorAvailable *prometheus.GaugeVec
	poolQueueDepth        *prometheus.GaugeVec
	poolRejected          *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry without default Go collectors

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager. Without WithPrometheusRegistry the
// metrics are registered on prometheus.DefaultRegisterer.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "introscore",
		subsystem:      "rubric",
		latencyBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of metric definitions
	auto := promauto.With(m.registry)
	scoreBuckets := prometheus.LinearBuckets(0, 10, 11)

	m.scoreRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_requests_total",
		Help:      "Scoring requests by outcome (scored, rejected, overloaded, failed)",
	}, []string{"outcome"})

	m.overallScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "overall_score",
		Help:      "Distribution of overall transcript scores",
		Buckets:   scoreBuckets,
	})

	m.criterionScore = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "criterion_score",
		Help:      "Distribution of per-criterion scores",
		Buckets:   scoreBuckets,
	}, []string{"criterion"})

	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_latency_milliseconds",
		Help:      "End-to-end scoring latency in milliseconds",
		Buckets:   m.latencyBuckets,
	})

	m.transcriptWords = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "transcript_words",
		Help:      "Word count of submitted transcripts",
		Buckets:   prometheus.ExponentialBuckets(10, 2, 8),
	})

	m.collaboratorLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "collaborator_latency_milliseconds",
		Help:      "Latency of embedding and grammar collaborator calls",
		Buckets:   m.latencyBuckets,
	}, []string{"collaborator"})

	m.collaboratorErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "collaborator_errors_total",
		Help:      "Failed collaborator calls",
	}, []string{"collaborator"})

	m.collaboratorAvailable = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "collaborator_available",
		Help:      "1 when the collaborator passed its startup probe, 0 when running degraded",
	}, []string{"collaborator"})

	m.poolQueueDepth = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_queue_depth",
		Help:      "Collaborator calls waiting for a pool worker",
	}, []string{"pool"})

	m.poolRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pool_rejected_total",
		Help:      "Collaborator calls rejected because the pool queue was full",
	}, []string{"pool"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.latencyBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRateLimited = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_rate_limited_total",
		Help:      "Requests rejected by the rate limiter",
	}, []string{"endpoint"})
}

// RecordScoreRequest counts a scoring request by outcome.
func RecordScoreRequest(outcome string) {
	globalManager.scoreRequests.WithLabelValues(outcome).Inc()
}

// ObserveOverallScore records an overall score.
func ObserveOverallScore(score int) {
	globalManager.overallScore.Observe(float64(score))
}

// ObserveCriterionScore records one criterion score.
func ObserveCriterionScore(criterion string, score int) {
	globalManager.criterionScore.WithLabelValues(criterion).Observe(float64(score))
}

// RecordScoringLatency records end-to-end scoring latency.
func RecordScoringLatency(latencyMs float64) {
	globalManager.scoringLatency.Observe(latencyMs)
}

// ObserveTranscriptWords records the word count of a transcript.
func ObserveTranscriptWords(words int) {
	globalManager.transcriptWords.Observe(float64(words))
}

// RecordCollaboratorLatency records the latency of one collaborator call.
func RecordCollaboratorLatency(collaborator string, latencyMs float64) {
	globalManager.collaboratorLatency.WithLabelValues(collaborator).Observe(latencyMs)
}

// RecordCollaboratorError counts a failed collaborator call.
func RecordCollaboratorError(collaborator string) {
	globalManager.collaboratorErrors.WithLabelValues(collaborator).Inc()
}

// SetCollaboratorAvailable publishes the startup availability of a collaborator.
func SetCollaboratorAvailable(collaborator string, available bool) {
	v := 0.0
	if available {
		v = 1
	}
	globalManager.collaboratorAvailable.WithLabelValues(collaborator).Set(v)
}

// UpdatePoolQueueDepth sets the number of waiting calls in a pool.
func UpdatePoolQueueDepth(pool string, depth int) {
	globalManager.poolQueueDepth.WithLabelValues(pool).Set(float64(depth))
}

// RecordPoolRejected counts a call rejected by a full pool.
func RecordPoolRejected(pool string) {
	globalManager.poolRejected.WithLabelValues(pool).Inc()
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordRateLimited counts a request rejected by the rate limiter.
func RecordRateLimited(endpoint string) {
	globalManager.httpRateLimited.WithLabelValues(endpoint).Inc()
}

// GetRegistry returns the registry the global metrics live on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
