package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/types"
)

var (
	registerOnce sync.Once

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ora",
			Subsystem: "dashboard",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests grouped by route and status code.",
		},
		[]string{"method", "route", "code"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ora",
			Subsystem: "dashboard",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency grouped by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	projectsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ora",
			Subsystem: "dashboard",
			Name:      "projects_created_total",
			Help:      "Total number of projects appended to the store grouped by status.",
		},
		[]string{"status"},
	)
	formEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ora",
			Subsystem: "dashboard",
			Name:      "form_events_total",
			Help:      "Creation form lifecycle events grouped by event.",
		},
		[]string{"event"},
	)
	viewCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ora",
			Subsystem: "dashboard",
			Name:      "view_cache_requests_total",
			Help:      "Derived view cache lookups grouped by result.",
		},
		[]string{"result"},
	)

	projectStatusGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "ora",
			Subsystem: "dashboard",
			Name:      "projects_status",
			Help:      "Current number of projects grouped by status.",
		},
		[]string{"status"},
	)
	websocketClientsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ora",
			Subsystem: "dashboard",
			Name:      "websocket_clients",
			Help:      "Currently connected dashboard websocket clients.",
		},
	)
)

var formEvents = []string{"opened", "submitted", "cancelled", "expired"}

func init() {
	Register()
}

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestsTotal,
			httpRequestDuration,
			projectsCreatedTotal,
			formEventsTotal,
			viewCacheTotal,
			projectStatusGauge,
			websocketClientsGauge,
		)

		for _, s := range types.ValidStatuses {
			projectStatusGauge.WithLabelValues(string(s)).Set(0)
			projectsCreatedTotal.WithLabelValues(string(s))
		}
		for _, e := range formEvents {
			formEventsTotal.WithLabelValues(e)
		}
	})
}

// GinMiddleware records request counts and latency per matched route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		code := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, code).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func ObserveProjectCreated(status types.Status) {
	projectsCreatedTotal.WithLabelValues(string(status)).Inc()
}

func ObserveForm(event string) {
	formEventsTotal.WithLabelValues(event).Inc()
}

func ObserveViewCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	viewCacheTotal.WithLabelValues(result).Inc()
}

func SetProjectStatusCounts(counts map[types.Status]int) {
	for _, s := range types.ValidStatuses {
		projectStatusGauge.WithLabelValues(string(s)).Set(float64(counts[s]))
	}
}

func SetWebsocketClients(n int) {
	websocketClientsGauge.Set(float64(n))
}
