// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks HTTP requests by route and status.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// OrdersTotal tracks checkout outcomes.
	OrdersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_total",
			Help: "Total number of checkout requests by outcome",
		},
		[]string{"status"},
	)

	// PrintJobsTotal tracks print dispatch outcomes.
	PrintJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "print_jobs_total",
			Help: "Total number of print jobs by outcome",
		},
		[]string{"outcome"},
	)

	// ReceiptBytes tracks the size of encoded receipt payloads.
	ReceiptBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "receipt_payload_bytes",
			Help:    "Size of encoded receipt payloads in bytes",
			Buckets: []float64{256, 512, 1024, 2048, 4096, 8192},
		},
	)
)

// Middleware records request counts and latencies for every route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		RequestsTotal.WithLabelValues(c.Request.Method, c.FullPath(), status).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, c.FullPath()).Observe(time.Since(start).Seconds())
	}
}
