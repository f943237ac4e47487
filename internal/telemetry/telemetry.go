// Package telemetry provides OpenTelemetry instrumentation for the tipline
// verification service. It exports Prometheus metrics and provides tracing
// capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "tipline"

// Metrics holds all verification Prometheus metrics
type Metrics struct {
	// Verification metrics
	TipsVerified         *prometheus.CounterVec
	VerificationFailed   *prometheus.CounterVec
	VerificationDuration prometheus.Histogram
	BatchSize            prometheus.Histogram

	// Triage outcome metrics
	PriorityBucketTotal *prometheus.CounterVec
	HoaxIndicatorTotal  *prometheus.CounterVec
	DuplicatesDetected  prometheus.Counter
	SpamScore           prometheus.Histogram

	// Scam pattern catalog metrics
	PatternMatchDuration prometheus.Histogram
	PatternsEvaluated    prometheus.Counter
	PatternsMatched      prometheus.Counter
	PatternReloads       prometheus.Counter

	// Batch worker metrics
	ActiveWorkers prometheus.Gauge
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initVerificationMetrics(m)
	initTriageMetrics(m)
	initPatternMetrics(m)
	initWorkerMetrics(m)
	return m
}

func initVerificationMetrics(m *Metrics) {
	m.TipsVerified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tipline_tips_verified_total",
		Help: "Total tips scored by the credibility engine",
	}, []string{"case_priority"})

	m.VerificationFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tipline_verification_failed_total",
		Help: "Total verifications that failed before scoring",
	}, []string{"error_code"})

	m.VerificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tipline_verification_duration_seconds",
		Help:    "Time to score a single tip",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	})

	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tipline_batch_size",
		Help:    "Number of tips per batch verification",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 200, 500},
	})
}

func initTriageMetrics(m *Metrics) {
	m.PriorityBucketTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tipline_priority_bucket_total",
		Help: "Tips routed per priority bucket (spam, low, medium, high, critical)",
	}, []string{"bucket"})

	m.HoaxIndicatorTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tipline_hoax_indicator_total",
		Help: "Hoax indicators surfaced, by indicator tag",
	}, []string{"indicator"})

	m.DuplicatesDetected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tipline_duplicates_detected_total",
		Help: "Tips flagged as duplicates of earlier tips",
	})

	m.SpamScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tipline_spam_score",
		Help:    "Distribution of spam scores across verified tips",
		Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})
}

func initPatternMetrics(m *Metrics) {
	m.PatternMatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tipline_pattern_match_duration_seconds",
		Help:    "Time spent matching scam patterns (Aho-Corasick)",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
	})

	m.PatternsEvaluated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tipline_patterns_evaluated_total",
		Help: "Total scam pattern evaluations",
	})

	m.PatternsMatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tipline_patterns_matched_total",
		Help: "Total scam patterns that matched",
	})

	m.PatternReloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tipline_pattern_reloads_total",
		Help: "Scam pattern catalog hot reloads",
	})
}

func initWorkerMetrics(m *Metrics) {
	m.ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tipline_active_workers",
		Help: "Currently active batch worker goroutines",
	})
}

// RecordVerification records metrics for a single scored tip
func (p *Provider) RecordVerification(ctx context.Context, casePriority string, duration time.Duration) {
	p.Metrics.TipsVerified.WithLabelValues(casePriority).Inc()
	p.Metrics.VerificationDuration.Observe(duration.Seconds())
}

// RecordVerificationFailure records a verification rejected before scoring
func (p *Provider) RecordVerificationFailure(ctx context.Context, errorCode string) {
	p.Metrics.VerificationFailed.WithLabelValues(errorCode).Inc()
}

// RecordTriage records the triage outcome of a verification
func (p *Provider) RecordTriage(ctx context.Context, bucket string, hoaxIndicators []string, isDuplicate bool, spamScore float64) {
	p.Metrics.PriorityBucketTotal.WithLabelValues(bucket).Inc()
	for _, indicator := range hoaxIndicators {
		p.Metrics.HoaxIndicatorTotal.WithLabelValues(indicator).Inc()
	}
	if isDuplicate {
		p.Metrics.DuplicatesDetected.Inc()
	}
	p.Metrics.SpamScore.Observe(spamScore)
}

// RecordPatternMatch records scam pattern matching metrics
func (p *Provider) RecordPatternMatch(ctx context.Context, duration time.Duration, patternsEvaluated, patternsMatched int) {
	p.Metrics.PatternMatchDuration.Observe(duration.Seconds())
	p.Metrics.PatternsEvaluated.Add(float64(patternsEvaluated))
	p.Metrics.PatternsMatched.Add(float64(patternsMatched))
}

// RecordPatternReload records a scam pattern catalog reload
func (p *Provider) RecordPatternReload(ctx context.Context) {
	p.Metrics.PatternReloads.Inc()
}

// RecordBatchSize records the size of a batch verification
func (p *Provider) RecordBatchSize(size int) {
	p.Metrics.BatchSize.Observe(float64(size))
}

// SetActiveWorkers sets the current active worker count
func (p *Provider) SetActiveWorkers(count int) {
	p.Metrics.ActiveWorkers.Set(float64(count))
}
