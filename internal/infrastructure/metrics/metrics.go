// Package metrics expone contadores Prometheus del inventario.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics registry propio con las métricas de la aplicación.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	movements       *prometheus.CounterVec
	auditFailures   prometheus.Counter
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New inicializa el registry con las métricas de la aplicación y las del runtime.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	movements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventario_movements_recorded_total",
		Help: "Movimientos registrados por tipo.",
	}, []string{"type"})
	auditFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inventario_audit_failures_total",
		Help: "Escrituras de bitácora fallidas.",
	})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventario_http_requests_total",
		Help: "Requests HTTP por método, ruta y status.",
	}, []string{"method", "route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inventario_http_request_duration_seconds",
		Help:    "Duración de requests HTTP por ruta.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	registry.MustRegister(
		movements, auditFailures, requests, duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		movements:       movements,
		auditFailures:   auditFailures,
		requestsTotal:   requests,
		requestDuration: duration,
	}
}

// Handler http.Handler para /metrics.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// MovementRecorded cuenta un movimiento confirmado.
func (m *Metrics) MovementRecorded(kind string) {
	m.movements.WithLabelValues(kind).Inc()
}

// AuditFailed cuenta una escritura de bitácora fallida.
func (m *Metrics) AuditFailed() {
	m.auditFailures.Inc()
}

// ObserveRequest registra un request HTTP. route es el patrón (/api/products/:id), no la URL.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
