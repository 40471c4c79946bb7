package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "energy_invoices_"

// Valores de la etiqueta result de las exportaciones.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	invoicesReturned *prometheus.HistogramVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec
)

// Init registra las métricas y, si pool no es nil, los gauges del pool de conexiones.
func Init(pool *pgxpool.Pool) {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)

		invoicesReturned = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "invoices_returned",
				Help:    "Invoices returned per query",
				Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
			},
			[]string{"operation"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total invoice exports by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Invoice export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			httpRequests,
			httpLatency,
			invoicesReturned,
			exportTotal,
			exportLatency,
		)

		if pool != nil {
			registerPoolMetrics(pool)
		}
	})
}

func registerPoolMetrics(pool *pgxpool.Pool) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "db_pool_acquired_conns",
			Help: "Connections currently acquired from the pool",
		},
		func() float64 { return float64(pool.Stat().AcquiredConns()) },
	))
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "db_pool_total_conns",
			Help: "Total connections in the pool",
		},
		func() float64 { return float64(pool.Stat().TotalConns()) },
	))
}

// ObserveHTTPRequest registra una request terminada. route es el patrón (/api/invoices/filter), no la URL.
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unknown"
	}
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
	}
}

// ObserveInvoicesReturned registra cuántas facturas devolvió una consulta.
func ObserveInvoicesReturned(operation string, n int) {
	if n < 0 {
		n = 0
	}
	if invoicesReturned != nil {
		invoicesReturned.WithLabelValues(operation).Observe(float64(n))
	}
}

// ObserveExport registra latencia y resultado de una exportación.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = ResultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}
