package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMetric(t *testing.T, m prometheus.Metric) *dto.Metric {
	t.Helper()
	out := &dto.Metric{}
	require.NoError(t, m.Write(out))
	return out
}

func counterValue(t *testing.T, labels ...string) float64 {
	t.Helper()
	return readMetric(t, httpRequestsTotal.WithLabelValues(labels...)).GetCounter().GetValue()
}

func TestPrometheusMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics("metrics-test"))
	r.Get("/api/v1/brands/{id}", statusHandler(http.StatusNotFound).ServeHTTP)

	before := counterValue(t, "metrics-test", http.MethodGet, "/api/v1/brands/{id}", "404")

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/brands/"+id, nil))
	}

	assert.Equal(t, before+3, counterValue(t, "metrics-test", http.MethodGet, "/api/v1/brands/{id}", "404"))

	inFlight := readMetric(t, httpRequestsInFlight.WithLabelValues("metrics-test"))
	assert.Equal(t, 0.0, inFlight.GetGauge().GetValue())
}

func TestPrometheusMetrics_UnmatchedRoute(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics("metrics-unmatched"))
	r.Get("/known", statusHandler(http.StatusOK).ServeHTTP)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 1.0, counterValue(t, "metrics-unmatched", http.MethodGet, "unmatched", "404"))
}

func TestPrometheusMetrics_ObservesDuration(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics("metrics-duration"))
	r.Get("/api/v1/printers", statusHandler(http.StatusOK).ServeHTTP)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/printers", nil))

	obs := httpRequestDuration.WithLabelValues("metrics-duration", http.MethodGet, "/api/v1/printers")
	m, ok := obs.(prometheus.Metric)
	require.True(t, ok)
	assert.Equal(t, uint64(1), readMetric(t, m).GetHistogram().GetSampleCount())
}
