// Package metrics exposes prometheus collectors for upstream calls, fallback
// synthesis and HTTP traffic. Recorders are no-ops until Register succeeds.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OutcomeSuccess labels upstream calls that produced a payload; failures use their kind.
const OutcomeSuccess = "success"

var (
	once sync.Once

	upstreamRequests    *prometheus.CounterVec
	cacheHits           *prometheus.CounterVec
	upstreamDuration    *prometheus.HistogramVec
	statsResponses      *prometheus.CounterVec
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
)

// Register registers the collectors on reg (the default registerer when nil) and
// returns the handler for /metrics. The collectors are created once per process;
// every registerer passed in receives the same set.
func Register(reg prometheus.Registerer) (http.Handler, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	once.Do(func() {
		upstreamRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Upstream platform calls by outcome (success or failure kind)",
		}, []string{"platform", "outcome"})

		upstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Latency of upstream platform fetches",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"platform"})

		cacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Stats lookups answered from the cache without an upstream call",
		}, []string{"platform"})

		statsResponses = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stats_responses_total",
			Help: "Stats records served by data source",
		}, []string{"platform", "source"})

		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests processed",
		}, []string{"method", "route", "status"})

		httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"})
	})

	for _, c := range []prometheus.Collector{
		upstreamRequests, upstreamDuration, cacheHits, statsResponses, httpRequestsTotal, httpRequestDuration,
	} {
		if err := registerCollector(reg, c); err != nil {
			return nil, err
		}
	}

	if g, ok := reg.(prometheus.Gatherer); ok {
		return promhttp.HandlerFor(g, promhttp.HandlerOpts{}), nil
	}
	return promhttp.Handler(), nil
}

func registerCollector(reg prometheus.Registerer, c prometheus.Collector) error {
	if err := reg.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}

// RecordUpstream counts one fetch and observes its latency.
func RecordUpstream(platform, outcome string, d time.Duration) {
	if upstreamRequests != nil {
		upstreamRequests.WithLabelValues(platform, outcome).Inc()
	}
	if upstreamDuration != nil {
		upstreamDuration.WithLabelValues(platform).Observe(d.Seconds())
	}
}

// RecordCacheHit counts one lookup served from the cache.
func RecordCacheHit(platform string) {
	if cacheHits != nil {
		cacheHits.WithLabelValues(platform).Inc()
	}
}

// RecordStats counts one served record.
func RecordStats(platform, source string) {
	if statsResponses != nil {
		statsResponses.WithLabelValues(platform, source).Inc()
	}
}

// RecordHTTP counts one HTTP request.
func RecordHTTP(method, route, status string, d time.Duration) {
	if httpRequestsTotal != nil {
		httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	}
	if httpRequestDuration != nil {
		httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
	}
}
