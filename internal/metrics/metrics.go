package metrics

import (
	"net/http"
	"strconv"
	"time"

	"pdf-summarizer/pkg/httputil"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pdfsum"

// Metrics owns a private registry so tests can build as many as they need
type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	extractionsTotal *prometheus.CounterVec
	extractedPages   *prometheus.HistogramVec
	summariesTotal   *prometheus.CounterVec
	upstreamDuration prometheus.Histogram
}

// New registers every collector on a fresh registry
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests processed.",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		requestInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "in_flight_requests",
				Help:      "Number of in-flight HTTP requests.",
			},
		),
		extractionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "extractor",
				Name:      "documents_total",
				Help:      "PDF extractions by backend and status.",
			},
			[]string{"backend", "status"},
		),
		extractedPages: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "extractor",
				Name:      "pages",
				Help:      "Pages per successfully extracted document.",
				Buckets:   []float64{1, 2, 5, 10, 20, 50, 100, 250, 500},
			},
			[]string{"backend"},
		),
		summariesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "summarizer",
				Name:      "requests_total",
				Help:      "Summarization attempts by outcome.",
			},
			[]string{"outcome"},
		),
		upstreamDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "summarizer",
				Name:      "upstream_duration_seconds",
				Help:      "Latency of the remote summarization call.",
				Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
			},
		),
	}

	registry.MustRegister(
		m.requestTotal,
		m.requestDuration,
		m.requestInFlight,
		m.extractionsTotal,
		m.extractedPages,
		m.summariesTotal,
		m.upstreamDuration,
	)
	return m
}

// Handler serves the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per route template
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := httputil.NewStatusRecorder(w)

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		route := routeTemplate(r)
		m.requestTotal.WithLabelValues(r.Method, route, strconv.Itoa(recorder.StatusCode)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// ObserveExtraction records one extraction attempt
func (m *Metrics) ObserveExtraction(backend string, pages int, err error) {
	if err != nil {
		m.extractionsTotal.WithLabelValues(backend, "error").Inc()
		return
	}
	m.extractionsTotal.WithLabelValues(backend, "ok").Inc()
	m.extractedPages.WithLabelValues(backend).Observe(float64(pages))
}

// ObserveSummary records one summarization outcome ("ok", "remote_error", "unexpected")
func (m *Metrics) ObserveSummary(outcome string, upstream time.Duration) {
	m.summariesTotal.WithLabelValues(outcome).Inc()
	if upstream > 0 {
		m.upstreamDuration.Observe(upstream.Seconds())
	}
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}
