// Package metrics provides Prometheus metrics for the HTTP server and the
// sheet ingestion pipeline:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//   - kits_records_loaded: Gauge with the size of the current snapshot
//   - kits_rows_discarded_total: Counter of body rows dropped, by reason
//   - kits_reload_total: Counter of reloads, by result
//   - kits_reload_duration_seconds: Histogram of reload latency
//   - kits_payload_bytes: Gauge with the size of the last CSV payload
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Number of rate limiter buckets currently tracked",
		},
	)

	RecordsLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "kits_records_loaded",
			Help: "Records in the current snapshot",
		},
	)

	RowsDiscarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kits_rows_discarded_total",
			Help: "Sheet rows dropped while building records",
		},
		[]string{"reason"},
	)

	ReloadTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kits_reload_total",
			Help: "Sheet reloads by result",
		},
		[]string{"result"},
	)

	ReloadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kits_reload_duration_seconds",
			Help:    "Time spent fetching and parsing the sheet",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	PayloadBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "kits_payload_bytes",
			Help: "Size of the last downloaded CSV payload",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(RecordsLoaded)
	prometheus.MustRegister(RowsDiscarded)
	prometheus.MustRegister(ReloadTotal)
	prometheus.MustRegister(ReloadDuration)
	prometheus.MustRegister(PayloadBytes)
}
