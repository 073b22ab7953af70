// Package metrics contadores Prometheus de la API sobre un registro propio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "estatedesk"

// Metrics agrupa los colectores. Un *Metrics nil es válido y no registra nada.
type Metrics struct {
	registry *prometheus.Registry

	requests          *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	uploads           *prometheus.CounterVec
	tenantTransitions *prometheus.CounterVec
	portalActions     *prometheus.CounterVec
}

// New registra los colectores de la aplicación y los del proceso/runtime.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		uploads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_uploads_total",
			Help:      "Document uploads by owner kind and result.",
		}, []string{"owner", "result"}),
		tenantTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tenant_status_transitions_total",
			Help:      "Tenant status changes by previous and new status.",
		}, []string{"from", "to"}),
		portalActions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "portal_access_actions_total",
			Help:      "Portal access grants and removals.",
		}, []string{"action"}),
	}
}

// ObserveHTTP registra una petición terminada.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// UploadResult cuenta una carga de documento (ok | rejected | failed).
func (m *Metrics) UploadResult(owner, result string) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(owner, result).Inc()
}

// TenantTransition cuenta un cambio de estado de inquilino; "none" como origen en altas.
func (m *Metrics) TenantTransition(from, to string) {
	if m == nil {
		return
	}
	m.tenantTransitions.WithLabelValues(from, to).Inc()
}

// PortalAction cuenta una alta o baja de acceso al portal.
func (m *Metrics) PortalAction(action string) {
	if m == nil {
		return
	}
	m.portalActions.WithLabelValues(action).Inc()
}

// Registry registro subyacente (para pruebas y exportadores adicionales).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler expone el registro en formato de texto de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
