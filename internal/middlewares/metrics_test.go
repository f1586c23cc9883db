package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/saulo-duarte/atarax-lambda/internal/metrics"
	"github.com/saulo-duarte/atarax-lambda/internal/middlewares"
	"github.com/stretchr/testify/assert"
)

func TestRequestMetrics(t *testing.T) {
	m := metrics.NewTestManager()

	r := chi.NewRouter()
	r.Use(middlewares.RequestMetrics(m))
	r.Get("/goals/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/goals/1", "/goals/2", "/healthz"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterRequests.WithLabelValues(http.MethodGet, "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterRequests.WithLabelValues(http.MethodGet, "200")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.HistogramRequestDuration))
}
