// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Scrape metrics
	RecordsScraped *prometheus.CounterVec
	ScrapeFailures *prometheus.CounterVec
	ScrapeDuration *prometheus.HistogramVec

	// Pipeline metrics
	RecordsProcessed prometheus.Counter
	IngestResults    *prometheus.CounterVec
	IngestDuration   prometheus.Histogram

	// Health metrics
	LastSuccessfulRun prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "ev_price_tracker"
	}

	return &Metrics{
		RecordsScraped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scrape",
			Name:      "records_total",
			Help:      "Total number of candidate records produced by brand",
		}, []string{"brand"}),
		ScrapeFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scrape",
			Name:      "failures_total",
			Help:      "Total number of failed scrape runs by brand",
		}, []string{"brand"}),
		ScrapeDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scrape",
			Name:      "duration_seconds",
			Help:      "Duration of scrape runs by brand",
			Buckets:   prometheus.DefBuckets,
		}, []string{"brand"}),

		RecordsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "records_processed_total",
			Help:      "Total number of candidate records handed to the pipeline",
		}),
		IngestResults: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "ingest_results_total",
			Help:      "Total number of per-record ingest outcomes by status",
		}, []string{"status"}),
		IngestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "ingest_duration_seconds",
			Help:      "Duration of single-record ingestion including store access",
			Buckets:   prometheus.DefBuckets,
		}),

		LastSuccessfulRun: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_run_timestamp",
			Help:      "Unix timestamp of the last fully successful run",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
