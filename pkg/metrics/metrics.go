package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration latencia de peticiones HTTP (segundos).
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crm_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms a ~4s
		},
		[]string{"method", "route", "status"},
	)

	// DBQueryDuration latencia de consultas por operación y tabla (segundos).
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crm_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "table"},
	)

	// LeadStatusChanges transiciones de pipeline aplicadas.
	LeadStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_lead_status_changes_total",
			Help: "Total number of lead pipeline transitions",
		},
		[]string{"from", "to"},
	)

	// OrdersCreated pedidos creados por resultado (created, insufficient_stock, replay, error).
	OrdersCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_orders_created_total",
			Help: "Total number of order creation attempts by result",
		},
		[]string{"result"},
	)
)

// RecordHTTPRequestDuration registra la latencia de una petición HTTP.
func RecordHTTPRequestDuration(method, route, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// RecordDBQueryDuration registra la latencia de una consulta.
func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// IncLeadStatusChange cuenta una transición aplicada.
func IncLeadStatusChange(from, to string) {
	LeadStatusChanges.WithLabelValues(from, to).Inc()
}

// IncOrderCreated cuenta un intento de creación de pedido.
func IncOrderCreated(result string) {
	OrdersCreated.WithLabelValues(result).Inc()
}
