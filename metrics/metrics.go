// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "keiba"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	StatisticsBuildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "statistics_build_duration_seconds",
		Help:      "Time to load and reduce a statistics report",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
	})
	StatisticsCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "statistics_cache_hits_total",
		Help:      "Statistics reports served from cache",
	})
	StatisticsCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "statistics_cache_misses_total",
		Help:      "Statistics reports built from the database",
	})
	RacesEvaluated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "races_evaluated_total",
		Help:      "Races evaluated per statistics report build; overlapping periods count a race again",
	})
	BetsMatched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bets_matched_total",
		Help:      "Recommended bets evaluated per statistics report build by bet type and outcome; overlapping periods count a bet again",
	}, []string{"bet_type", "outcome"})
)

var registry = newRegistry()

func newRegistry() *prometheus.Registry {
	r := prometheus.NewRegistry()
	r.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequestsTotal,
		HTTPRequestDuration,
		StatisticsBuildDuration,
		StatisticsCacheHits,
		StatisticsCacheMisses,
		RacesEvaluated,
		BetsMatched,
	)
	return r
}

// Registry returns the application registry.
func Registry() *prometheus.Registry {
	return registry
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

// ObserveBets records the hit and miss counts of one bet type in a report build.
func ObserveBets(betType string, hits, total int) {
	if hits > 0 {
		BetsMatched.WithLabelValues(betType, "hit").Add(float64(hits))
	}
	if misses := total - hits; misses > 0 {
		BetsMatched.WithLabelValues(betType, "miss").Add(float64(misses))
	}
}

// Middleware records request counts and latency. The route label is the
// registered path pattern, so ids do not explode cardinality.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
