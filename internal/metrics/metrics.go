// Package metrics provides Prometheus metrics for the dictionary
// translation mediator, following the teacher's promauto-based shape
// (internal/metrics in seavey-org-tcg-tracker) but renamed to this
// domain's concerns: HTTP traffic, translate requests by backend, and
// placeholder decode errors. Scraped at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "termmt_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "termmt_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// TranslationRequestsTotal counts successful /translate calls by
	// backend name and requested target language.
	TranslationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "termmt_translation_requests_total",
			Help: "Total translate requests completed, by backend and target language",
		},
		[]string{"backend", "target_lang"},
	)

	// TranslationDuration measures one Dictionary Engine Translate
	// call end to end, including the backend's network round trip.
	TranslationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "termmt_translation_duration_seconds",
			Help:    "Dictionary engine Translate call latency, by backend",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"backend"},
	)

	TranslationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "termmt_translation_errors_total",
			Help: "Translate requests that failed, by backend",
		},
		[]string{"backend"},
	)

	// PlaceholderDecodeErrorsTotal counts out-of-range placeholder
	// indices dropped during decode (spec.md §7's "log and drop").
	PlaceholderDecodeErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "termmt_placeholder_decode_errors_total",
			Help: "Placeholder indices that referenced no slot and were dropped on decode",
		},
	)

	// TermCatalogueSize tracks the current number of terms in the
	// catalogue, refreshed by the catalogue store on mutation.
	TermCatalogueSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "termmt_term_catalogue_size",
			Help: "Number of terms currently in the catalogue",
		},
	)
)

// HTTPMetrics is Gin middleware recording request count and latency,
// matching the teacher's metrics.HTTPMetrics() wiring in routes.go.
func HTTPMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
