package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pricechart",
			Subsystem: "series",
			Name:      "cache_lookups_total",
			Help:      "Price series lookups by period and cache result.",
		},
		[]string{"period", "result"},
	)

	cachedSeries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pricechart",
			Subsystem: "series",
			Name:      "cached",
			Help:      "Number of price series held in the cache.",
		},
	)

	generatedPoints = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pricechart",
			Subsystem: "series",
			Name:      "generated_points_total",
			Help:      "Total number of synthetic price points generated.",
		},
	)

	feedTicks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pricechart",
			Subsystem: "feed",
			Name:      "ticks_total",
			Help:      "Live ticks produced per pair.",
		},
		[]string{"pair"},
	)

	feedDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pricechart",
			Subsystem: "feed",
			Name:      "ticks_dropped_total",
			Help:      "Live ticks dropped because a listener channel was full.",
		},
		[]string{"pair"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pricechart",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pricechart",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"method", "route"},
	)
)

func init() {
	Registry.MustRegister(
		cacheLookups,
		cachedSeries,
		generatedPoints,
		feedTicks,
		feedDropped,
		httpRequests,
		httpDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordCacheLookup(period string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(period, result).Inc()
}

func RecordGenerated(points int) {
	generatedPoints.Add(float64(points))
}

func SetCachedSeries(n int) {
	cachedSeries.Set(float64(n))
}

func RecordTick(pair string) {
	feedTicks.WithLabelValues(pair).Inc()
}

func RecordDroppedTick(pair string) {
	feedDropped.WithLabelValues(pair).Inc()
}

// ObserveHTTP records one finished request against its route pattern.
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
