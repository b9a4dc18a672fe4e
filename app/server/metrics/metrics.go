package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HttpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by route, method and status code",
	}, []string{"route", "method", "status"})

	HttpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by route and method",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	Tasks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tasks_total",
		Help: "Background tasks by name and outcome",
	}, []string{"task", "status"})

	// Histogram since we mostly care about the latency spread of cache hits.
	FeedCacheDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "redis_feed_cache_duration_seconds",
		Help:    "Latency of Redis feed cache operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

func init() {
	prometheus.MustRegister(HttpRequests, HttpDuration, Tasks, FeedCacheDuration)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware records request counts and latency keyed by the mux route
// template so path params don't explode label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		HttpRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		HttpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
