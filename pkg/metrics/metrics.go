// Package metrics expone métricas Prometheus del API: peticiones HTTP y denegaciones del gate.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores sobre un registry propio (evita colisiones con el global en tests).
type Metrics struct {
	service  string
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	denials  *prometheus.CounterVec
}

// New registra los colectores del servicio.
func New(service string) *Metrics {
	m := &Metrics{
		service:  service,
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total de peticiones HTTP",
			},
			[]string{"service", "method", "path", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duración de las peticiones HTTP en segundos",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "path"},
		),
		denials: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authorization_denials_total",
				Help: "Peticiones rechazadas por el gate de autorización, por motivo",
			},
			[]string{"service", "reason"},
		),
	}
	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.denials,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware mide cada petición. Usa la ruta registrada (no la URL cruda) para acotar la cardinalidad.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		path := c.Route().Path
		m.requests.WithLabelValues(m.service, c.Method(), path, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(m.service, c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}

// RecordDenial contabiliza una denegación del gate.
func (m *Metrics) RecordDenial(reason string) {
	m.denials.WithLabelValues(m.service, reason).Inc()
}

// Handler sirve el registry en formato de exposición Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Registry expone el registry (tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
