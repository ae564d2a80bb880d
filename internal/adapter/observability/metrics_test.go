package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetricsMiddleware_RoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(HTTPMetricsMiddleware)
	r.Get("/v1/roles/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/v1/roles/{id}", http.MethodGet, "No Content"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/roles/react", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/v1/roles/{id}", http.MethodGet, "No Content"))
	assert.Equal(t, before+1, after)
}

func TestHTTPMetricsMiddleware_WithoutRouter(t *testing.T) {
	rec := httptest.NewRecorder()
	mw := HTTPMetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) }))
	mw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestAnalysisMetricsHelpers(t *testing.T) {
	InitMetrics()
	InitMetrics()

	before := testutil.ToFloat64(AnalysesTotal.WithLabelValues("frontend_react", "medium"))
	ObserveAnalysis("frontend_react", "medium", 72, 3*time.Millisecond, true)
	assert.Equal(t, before+1, testutil.ToFloat64(AnalysesTotal.WithLabelValues("frontend_react", "medium")))

	ObserveIssue("missing_email", "critical")
	RecordRulePanic("boom")
	assert.GreaterOrEqual(t, testutil.ToFloat64(RulePanicsTotal.WithLabelValues("boom")), 1.0)

	ObserveTika("ok", 40*time.Millisecond)
	RecordExtractionStatus("low_text")
	RecordRateLimited("/v1/analyze")
	RecordCircuitBreakerState("tika-test", StateOpen)
	assert.Equal(t, 1.0, testutil.ToFloat64(CircuitBreakerGauge.WithLabelValues("tika-test")))
}
