package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "csi",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "csi",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	EmailsSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "csi",
		Name:      "emails_total",
		Help:      "Emails handed to the SMTP server by outcome.",
	}, []string{"status"})

	SchedulerRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "csi",
		Name:      "scheduler_runs_total",
		Help:      "Scheduler ticks by outcome (processed, skipped, error).",
	}, []string{"outcome"})

	OperationsProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "csi",
		Name:      "scheduled_operations_total",
		Help:      "Scheduled operations executed by resulting status.",
	}, []string{"status"})

	TakeoutTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "csi",
		Name:      "takeout_transitions_total",
		Help:      "Takeout workflow transitions by target status.",
	}, []string{"to"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequests,
		HTTPDuration,
		EmailsSent,
		SchedulerRuns,
		OperationsProcessed,
		TakeoutTransitions,
	)
}

// Middleware records request count and latency labelled by the matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
