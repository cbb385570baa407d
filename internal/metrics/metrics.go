package metrics

import (
	"context"
	"net/http"

	"github.com/frahmantamala/employee-management/internal/core/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors exported on the metrics endpoint.
type Metrics struct {
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	HTTPInflight   prometheus.Gauge
	EmployeeEvents *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics registers every collector on reg and serves reg from Handler.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "employee_api_http_requests_total",
			Help: "Total HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "employee_api_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPInflight: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "employee_api_http_inflight_requests",
			Help: "Requests currently being served.",
		}),
		EmployeeEvents: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "employee_api_employee_events_total",
			Help: "Employee lifecycle events by type.",
		}, []string{"type"}),
		gatherer: reg,
	}

	for _, t := range events.EmployeeEventTypes {
		m.EmployeeEvents.WithLabelValues(t)
	}

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished request.
func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(seconds)
}

// SubscribeEmployeeEvents counts every employee event published on bus.
func (m *Metrics) SubscribeEmployeeEvents(bus *events.EventBus) {
	for _, t := range events.EmployeeEventTypes {
		bus.Subscribe(t, func(_ context.Context, event events.Event) error {
			m.EmployeeEvents.WithLabelValues(event.EventType()).Inc()
			return nil
		})
	}
}
