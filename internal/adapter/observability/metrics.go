package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cv_analyses_total",
			Help: "Total number of CV analyses by role and extraction quality level",
		},
		[]string{"role", "extraction_level"},
	)
	AnalysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cv_analysis_duration_seconds",
			Help:    "Time spent in the scoring pipeline",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
	)
	OverallScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cv_overall_score",
			Help:    "Distribution of overall scores ([0,100])",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
	IssuesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cv_issues_total",
			Help: "Total number of fired issues by rule id and severity",
		},
		[]string{"id", "severity"},
	)
	RulePanicsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cv_rule_panics_total",
			Help: "Total number of rule evaluations that panicked",
		},
		[]string{"rule"},
	)
	NonCVTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cv_likely_non_cv_total",
			Help: "Total number of documents classified as likely not a CV",
		},
	)

	TikaRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tika_requests_total",
			Help: "Total number of Tika extraction requests by status",
		},
		[]string{"status"},
	)
	TikaRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tika_request_duration_seconds",
			Help:    "Tika extraction duration in seconds, retries included",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		},
	)
	ExtractionStatusTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cv_extraction_status_total",
			Help: "Total number of uploads by extraction status",
		},
		[]string{"status"},
	)

	RateLimitedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"route"},
	)
	CircuitBreakerGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)
)

var initOnce sync.Once

// InitMetrics registers the collectors with the default registry. It is safe
// to call more than once.
func InitMetrics() {
	initOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(AnalysesTotal)
		prometheus.MustRegister(AnalysisDuration)
		prometheus.MustRegister(OverallScoreHistogram)
		prometheus.MustRegister(IssuesTotal)
		prometheus.MustRegister(RulePanicsTotal)
		prometheus.MustRegister(NonCVTotal)
		prometheus.MustRegister(TikaRequestsTotal)
		prometheus.MustRegister(TikaRequestDuration)
		prometheus.MustRegister(ExtractionStatusTotal)
		prometheus.MustRegister(RateLimitedTotal)
		prometheus.MustRegister(CircuitBreakerGauge)
	})
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, http.StatusText(ww.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(dur)
	})
}

// ObserveAnalysis records one completed analysis.
func ObserveAnalysis(role, level string, overall int, dur time.Duration, likelyNonCV bool) {
	AnalysesTotal.WithLabelValues(role, level).Inc()
	AnalysisDuration.Observe(dur.Seconds())
	if overall >= 0 && overall <= 100 {
		OverallScoreHistogram.Observe(float64(overall))
	}
	if likelyNonCV {
		NonCVTotal.Inc()
	}
}

// ObserveIssue counts one fired issue.
func ObserveIssue(ruleID, severity string) {
	IssuesTotal.WithLabelValues(ruleID, severity).Inc()
}

// RecordRulePanic counts a rule evaluation that panicked.
func RecordRulePanic(ruleID string) {
	RulePanicsTotal.WithLabelValues(ruleID).Inc()
}

// ObserveTika records the outcome and duration of one extraction call.
func ObserveTika(status string, dur time.Duration) {
	TikaRequestsTotal.WithLabelValues(status).Inc()
	TikaRequestDuration.Observe(dur.Seconds())
}

// RecordExtractionStatus counts an upload by its extraction status.
func RecordExtractionStatus(status string) {
	ExtractionStatusTotal.WithLabelValues(status).Inc()
}

// RecordRateLimited counts a request rejected by the limiter.
func RecordRateLimited(route string) {
	RateLimitedTotal.WithLabelValues(route).Inc()
}

// RecordCircuitBreakerState publishes the state of a named breaker.
func RecordCircuitBreakerState(name string, state BreakerState) {
	CircuitBreakerGauge.WithLabelValues(name).Set(float64(state))
}
