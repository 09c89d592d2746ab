package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchAttempts counts provider attempts by provider and outcome (ok, network, status, timeout)
	FetchAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freenight_fetch_attempts_total",
		Help: "Total number of provider fetch attempts",
	}, []string{"provider", "outcome"})

	// FetchDuration tracks provider latency, including failed attempts
	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "freenight_fetch_duration_seconds",
		Help:    "Provider fetch latency in seconds",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 15, 20, 30, 45, 60, 90},
	}, []string{"provider"})

	// Classifications counts classifier outcomes by provider and status
	Classifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freenight_classifications_total",
		Help: "Total number of classified pages",
	}, []string{"provider", "status"})

	// FastPathHits counts dates settled by the lightweight fetch alone
	FastPathHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "freenight_fast_path_hits_total",
		Help: "Total number of dates answered without a JS renderer",
	})

	// BatchDuration tracks whole date-range probes
	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "freenight_batch_duration_seconds",
		Help:    "Date-range probe duration in seconds",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	// ResultCache counts result cache lookups by outcome (hit, miss, error)
	ResultCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freenight_result_cache_total",
		Help: "Total number of result cache lookups",
	}, []string{"outcome"})

	// HTTPRequests counts served requests by route pattern, method and status class
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freenight_http_requests_total",
		Help: "Total number of HTTP requests served",
	}, []string{"route", "method", "code"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "freenight_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
	}, []string{"route"})

	// CatalogHotels tracks the number of enabled hotels in the catalog
	CatalogHotels = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "freenight_catalog_hotels",
		Help: "Number of enabled hotels in the catalog",
	})
)

// RecordFetch records one provider attempt
func RecordFetch(provider, outcome string, elapsed time.Duration) {
	FetchAttempts.WithLabelValues(provider, outcome).Inc()
	FetchDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// RecordClassification increments the classifier outcome counter
func RecordClassification(provider, status string) {
	Classifications.WithLabelValues(provider, status).Inc()
}

func RecordFastPath() {
	FastPathHits.Inc()
}

func ObserveBatch(elapsed time.Duration) {
	BatchDuration.Observe(elapsed.Seconds())
}

// RecordCacheLookup increments the cache counter; outcome is hit, miss or error
func RecordCacheLookup(outcome string, n int) {
	ResultCache.WithLabelValues(outcome).Add(float64(n))
}

func SetCatalogHotels(count int) {
	CatalogHotels.Set(float64(count))
}

// RecordHTTP records one served request. status is reduced to its class (2xx, 4xx...).
func RecordHTTP(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(route, method, statusClass(status)).Inc()
	HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "unknown"
	}
	return strconv.Itoa(status/100) + "xx"
}
