package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	failures     *prometheus.CounterVec
	infiniteLife *prometheus.CounterVec
	requests     *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fatigue_calculations_total",
			Help: "Fatigue calculations performed, by tool and correction method.",
		}, []string{"tool", "method"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fatigue_calculation_errors_total",
			Help: "Rejected fatigue calculations, by tool.",
		}, []string{"tool"}),
		infiniteLife: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fatigue_infinite_life_total",
			Help: "Life predictions at or above the infinite life threshold.",
		}, []string{"method"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "code"}),
	}
	m.registry.MustRegister(m.calculations, m.failures, m.infiniteLife, m.requests)
	return m
}

// The recording methods accept a nil receiver so handlers can run without metrics.

func (m *Metrics) Calculation(tool, method string) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(tool, method).Inc()
}

func (m *Metrics) Failure(tool string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(tool).Inc()
}

func (m *Metrics) InfiniteLife(method string) {
	if m == nil {
		return
	}
	m.infiniteLife.WithLabelValues(method).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware observes request latency labelled with the mux route template.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		m.requests.WithLabelValues(route, strconv.Itoa(sw.code)).Observe(time.Since(start).Seconds())
	})
}
