package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trulytravels",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "trulytravels",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "path"})

	// EstimatesTotal counts produced estimates by flight price provenance.
	EstimatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trulytravels",
		Subsystem: "pricing",
		Name:      "estimates_total",
		Help:      "Total trip estimates produced",
	}, []string{"flight_source"})

	QuoteFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trulytravels",
		Subsystem: "pricing",
		Name:      "quote_fallbacks_total",
		Help:      "Quotes served from the fallback price, by reason",
	}, []string{"reason"})

	// TripsSaved counts append attempts; outcome is inserted or duplicate.
	TripsSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trulytravels",
		Subsystem: "store",
		Name:      "trips_saved_total",
		Help:      "Trip append attempts by outcome",
	}, []string{"outcome"})

	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trulytravels",
		Subsystem: "store",
		Name:      "errors_total",
		Help:      "Trip store failures by operation",
	}, []string{"operation"})
)

// Middleware records request metrics.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus exposition format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
