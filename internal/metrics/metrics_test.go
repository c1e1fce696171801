package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()
	m.Calculation("life", "goodman")
	m.Calculation("life", "goodman")
	m.Failure("damage")
	m.InfiniteLife("gerber")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.calculations.WithLabelValues("life", "goodman")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("damage")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.infiniteLife.WithLabelValues("gerber")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Calculation("life", "goodman")
		m.Failure("life")
		m.InfiniteLife("goodman")
	})
}

func TestMiddleware(t *testing.T) {
	m := New()
	r := mux.NewRouter()
	r.Use(m.Middleware)
	r.HandleFunc("/tools/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tools/life", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	count, err := testutil.GatherAndCount(m.Registry(), "http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	rec = httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `route="/tools/{name}"`)
}
