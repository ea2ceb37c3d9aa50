package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/safealert/safealert-api/internal/application/alertas"
)

var _ alertas.Metrics = (*Collector)(nil)

// Collector métricas Prometheus de la API. Se registra en el Registerer que se le pase
// (prometheus.DefaultRegisterer en main, un registro nuevo en los tests).
type Collector struct {
	alertsGenerated     *prometheus.CounterVec
	statusChanges       *prometheus.CounterVec
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	gatherer            prometheus.Gatherer
}

// NewCollector crea y registra las métricas.
func NewCollector(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		alertsGenerated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "safealert_alertas_generadas_total",
			Help: "Alertas de vencimiento creadas por el generador, por nivel de prioridad.",
		}, []string{"prioridad"}),
		statusChanges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "safealert_alertas_cambios_estado_total",
			Help: "Cambios de estado de alertas solicitados, por estado destino y resultado.",
		}, []string{"estado", "resultado"}),
		httpRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "safealert_http_requests_total",
			Help: "Total de peticiones HTTP.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "safealert_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		}, []string{"method", "route", "status"}),
		gatherer: gatherer,
	}
}

// AlertGenerated incrementa el contador de alertas creadas para el nivel dado.
func (c *Collector) AlertGenerated(priorityLevel int) {
	c.alertsGenerated.WithLabelValues(strconv.Itoa(priorityLevel)).Inc()
}

// StatusChanged registra un intento de cambio de estado.
func (c *Collector) StatusChanged(status string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	c.statusChanges.WithLabelValues(status, result).Inc()
}

// RecordRequest registra una petición HTTP. route es el patrón de la ruta, no el path crudo.
func (c *Collector) RecordRequest(method, route string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	c.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	c.httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// Handler expone /metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

func classifyStatus(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500 && statusCode < 600:
		return "5xx"
	}
	return "unknown"
}
