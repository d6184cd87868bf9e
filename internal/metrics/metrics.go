// Package metrics provides Prometheus instrumentation for the slot ledger.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// BookingsTotal counts booking attempts by outcome ("success", "already_processed" or an error code).
	BookingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slotledger_bookings_total",
		Help: "Booking attempts by outcome",
	}, []string{"outcome"})

	CommitLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "slotledger_commit_latency_seconds",
		Help:    "Booking commit latency in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
	})

	// PositionsBooked counts seats sold.
	PositionsBooked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slotledger_positions_booked_total",
		Help: "Tournament positions booked",
	})

	IntentsReaped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slotledger_intents_reaped_total",
		Help: "Stale booking intents rejected by the reaper",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slotledger_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "slotledger_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request metrics labelled by route pattern.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
