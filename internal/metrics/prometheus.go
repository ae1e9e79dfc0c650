// Package metrics provides Prometheus metrics for the API.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kingrain94/tenant-items-api/internal/repository"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	registry         *prometheus.Registry
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
	scopesTotal      *prometheus.CounterVec
	scopeDuration    prometheus.Histogram
}

// New creates the metrics on a registry of their own.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tenant_items_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tenant_items_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path", "status"},
		),
		requestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tenant_items_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),
		scopesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tenant_items_scopes_total",
				Help: "Tenant scopes opened, by outcome",
			},
			[]string{"outcome"},
		),
		scopeDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tenant_items_scope_duration_seconds",
				Help:    "Time spent inside a tenant scope",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request count, latency and in-flight requests.
// The path label is the matched route template, never the raw URL.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.requestsInFlight.Inc()
		defer m.requestsInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.requestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

type instrumentedRepository struct {
	repository.Repository
	metrics *Metrics
}

// InstrumentRepository counts and times every tenant scope opened through repo.
func (m *Metrics) InstrumentRepository(repo repository.Repository) repository.Repository {
	return &instrumentedRepository{Repository: repo, metrics: m}
}

func (r *instrumentedRepository) WithTenantScope(ctx context.Context, schema string, op func(ctx context.Context) error) (err error) {
	start := time.Now()
	outcome := "panic"
	defer func() {
		r.metrics.scopesTotal.WithLabelValues(outcome).Inc()
		r.metrics.scopeDuration.Observe(time.Since(start).Seconds())
	}()

	err = r.Repository.WithTenantScope(ctx, schema, op)
	outcome = "ok"
	if err != nil {
		outcome = "error"
	}
	return err
}
