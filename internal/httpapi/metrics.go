package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"raind/internal/manager"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "raind",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "raind",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)

	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "raind",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "In-flight HTTP requests",
		},
	)

	managerEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "raind",
			Subsystem: "manager",
			Name:      "events_total",
			Help:      "Manager lifecycle events by name",
		},
		[]string{"event"},
	)

	managerOpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "raind",
			Subsystem: "manager",
			Name:      "operation_duration_seconds",
			Help:      "Duration of model loads and generations in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"op"},
	)

	modelLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "raind",
			Subsystem: "manager",
			Name:      "model_loaded",
			Help:      "1 when a model is loaded, 0 otherwise",
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, httpInflight,
		managerEventsTotal, managerOpDuration, modelLoaded)
}

// MetricsMiddleware instruments requests for Prometheus
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInflight.Inc()
		defer httpInflight.Dec()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		// The route pattern is only complete once chi has routed the request.
		path := routePatternOrPath(r)
		statusLabel := strconv.Itoa(status)
		httpRequestsTotal.WithLabelValues(path, r.Method, statusLabel).Inc()
		httpRequestDuration.WithLabelValues(path, r.Method, statusLabel).Observe(time.Since(start).Seconds())
	})
}

// routePatternOrPath returns the chi route pattern if available, otherwise
// falls back to URL path. This avoids high-cardinality label values.
func routePatternOrPath(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// MetricsPublisher turns manager events into Prometheus series.
type MetricsPublisher struct{}

func (MetricsPublisher) Publish(e manager.Event) {
	managerEventsTotal.WithLabelValues(e.Name).Inc()
	switch e.Name {
	case manager.EventLoadDone:
		modelLoaded.Set(1)
		observeMillis("load", e.Fields["duration_ms"])
	case manager.EventUnloadDone, manager.EventLoadError:
		modelLoaded.Set(0)
	case manager.EventGenerateDone:
		observeMillis("generate", e.Fields["duration_ms"])
	}
}

func observeMillis(op string, v any) {
	if ms, ok := v.(int64); ok {
		managerOpDuration.WithLabelValues(op).Observe(float64(ms) / 1000)
	}
}
