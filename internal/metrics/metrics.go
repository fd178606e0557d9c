// Package metrics provides Prometheus metrics for the RSS proxy.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts proxy requests by outcome.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rssproxy",
			Name:      "requests_total",
			Help:      "Total number of RSS proxy requests",
		},
		[]string{"outcome"},
	)

	// FetchDuration measures upstream fetch duration.
	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rssproxy",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of upstream feed fetches in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"outcome"},
	)

	// FetchedBytes observes the size of fetched documents.
	FetchedBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rssproxy",
			Name:      "fetched_bytes",
			Help:      "Size of fetched feed documents in bytes",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		},
	)

	// ItemsParsed observes the number of items returned per feed.
	ItemsParsed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rssproxy",
			Name:      "items_parsed",
			Help:      "Distribution of item counts per parsed feed",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)
)

// RecordRequest records the final outcome of a proxy request.
func RecordRequest(outcome string) {
	RequestsTotal.WithLabelValues(outcome).Inc()
}

// RecordFetch records an upstream fetch.
func RecordFetch(outcome string, duration float64, bytes int) {
	FetchDuration.WithLabelValues(outcome).Observe(duration)

	if bytes > 0 {
		FetchedBytes.Observe(float64(bytes))
	}
}

// RecordParse records the number of items parsed from a feed.
func RecordParse(items int) {
	ItemsParsed.Observe(float64(items))
}
