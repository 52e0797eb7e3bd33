package telemetry

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP metrics
var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests received, partitioned by method, route and status class.",
		},
		[]string{"method", "route", "status_class"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds, partitioned by method, route and status class.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5},
		},
		[]string{"method", "route", "status_class"},
	)
)

// Domain metrics
var (
	transactionsRecordedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transactions_recorded_total",
			Help: "Total number of transactions recorded by the ledger, partitioned by kind.",
		},
		[]string{"kind"}, // kinds: deposit | withdrawal | transfer_out | transfer_in
	)

	operationsDeclinedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "operations_declined_total",
			Help: "Total number of balance operations declined, partitioned by reason.",
		},
		[]string{"reason"}, // reasons: validation | not_found | insufficient_funds
	)

	eventsPublishedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of transaction events successfully published by the worker.",
		},
	)

	eventsFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_failed_total",
			Help: "Total number of transaction events that failed, partitioned by reason.",
		},
		[]string{"reason"}, // reasons: schema | kafka | dropped
	)

	workerQueueCurrent = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_current",
			Help: "Current number of items in the in-process event queue (approximate).",
		},
	)
)

// Customer metrics
var (
	customersCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "customers_created_total",
			Help: "Total number of customers successfully created.",
		},
	)

	customersCreateFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customers_create_failed_total",
			Help: "Total number of failed customer creation attempts, partitioned by reason.",
		},
		[]string{"reason"}, // reasons: validation | conflict | unknown
	)

	customersGetTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customers_get_total",
			Help: "Total number of GET /customers/{id} requests, partitioned by found (true/false).",
		},
		[]string{"found"}, // "true" | "false"
	)

	// Gauge that tracks how many customers exist
	customersTotalCurrent = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "customers_total_current",
			Help: "Current number of customers known to the service.",
		},
	)
)

// InitMetrics called on startup
func InitMetrics() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDurationSeconds,
		transactionsRecordedTotal,
		operationsDeclinedTotal,
		eventsPublishedTotal,
		eventsFailedTotal,
		workerQueueCurrent,
		customersCreatedTotal,
		customersCreateFailedTotal,
		customersGetTotal,
		customersTotalCurrent,
	)
}

// PrometheusMiddleware measures one HTTP request: increments counter and observes latency.
// It uses gin.Context.FullPath() to record the *route template* (e.g., /v1/customers/:id).
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next() // execute handler chain

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		method := c.Request.Method
		status := c.Writer.Status()
		statusClass := fmt.Sprintf("%dxx", status/100)

		httpRequestsTotal.WithLabelValues(method, route, statusClass).Inc()
		httpRequestDurationSeconds.WithLabelValues(method, route, statusClass).Observe(time.Since(start).Seconds())
	}
}

// MetricsHandler exposes /metrics in Prometheus text exposition format.
func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
