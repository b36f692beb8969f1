// Package metrics exposes the service's Prometheus instruments.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"increa_invoicing/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "invoicing"

// Metrics owns a private registry with the domain counters and the HTTP
// request histogram. A nil *Metrics records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	projectsSaved *prometheus.CounterVec
	reports       *prometheus.CounterVec
	settlements   *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

var _ interfaces.IBillingMetrics = (*Metrics)(nil)

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		projectsSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projects_saved_total",
			Help:      "Projects created or updated, by operation and department.",
		}, []string{"operation", "department"}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Billing reports served, by report kind.",
		}, []string{"report"}),
		settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_total",
			Help:      "Invoice settlements recorded, by payment status.",
		}, []string{"status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route, method and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status_code"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.projectsSaved,
		m.reports,
		m.settlements,
		m.httpDuration,
	)
	return m
}

func (m *Metrics) RecordProjectSaved(_ context.Context, operation, department string) {
	if m == nil {
		return
	}
	m.projectsSaved.WithLabelValues(strings.TrimSpace(operation), strings.TrimSpace(department)).Inc()
}

func (m *Metrics) RecordReport(_ context.Context, report string) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(strings.TrimSpace(report)).Inc()
}

func (m *Metrics) RecordSettlement(_ context.Context, status string) {
	if m == nil {
		return
	}
	m.settlements.WithLabelValues(strings.TrimSpace(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// GinMiddleware observes the latency of every routed request.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpDuration.
			WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
