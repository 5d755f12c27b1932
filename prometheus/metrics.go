package prometheus

import (
	"net/http"
	"sync"
	"time"

	"catalog-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	LoginCounter     prometheus.Counter
	RegisterCounter  prometheus.Counter
	AuthErrorCounter prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Catalog entity metrics
	ProductOperationsCounter    prometheus.CounterVec
	IngredientOperationsCounter prometheus.CounterVec

	// Import/export metrics
	ImportRowsCounter prometheus.CounterVec
	ExportsCounter    prometheus.CounterVec

	initOnce sync.Once
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(appConfig *config.Config) {
	initOnce.Do(func() {
		prefix := appConfig.Metrics.Prefix

		HttpRequestsTotal = *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		)

		HttpRequestDuration = *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		)

		LoginCounter = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_login_attempts_total",
				Help: "Total number of login attempts",
			},
		)

		RegisterCounter = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_register_attempts_total",
				Help: "Total number of registration attempts",
			},
		)

		AuthErrorCounter = *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_auth_errors_total",
				Help: "Total number of authentication errors by reason",
			},
			[]string{"reason"},
		)

		DbOperationDuration = *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_db_operation_duration_seconds",
				Help:    "Duration of database operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation_type"},
		)

		ProductOperationsCounter = *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_product_operations_total",
				Help: "Total number of product operations",
			},
			[]string{"operation"},
		)

		IngredientOperationsCounter = *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_ingredient_operations_total",
				Help: "Total number of ingredient operations",
			},
			[]string{"operation"},
		)

		ImportRowsCounter = *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_import_rows_total",
				Help: "Total number of imported spreadsheet rows by outcome",
			},
			[]string{"entity", "outcome"},
		)

		ExportsCounter = *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_exports_total",
				Help: "Total number of spreadsheet exports",
			},
			[]string{"entity"},
		)
	})
}

// RecordAuthError increments the counter for a failed authentication step
func RecordAuthError(reason string) {
	AuthErrorCounter.WithLabelValues(reason).Inc()
}

// RecordProductOperation increments the counter for product operations
func RecordProductOperation(operation string) {
	ProductOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordIngredientOperation increments the counter for ingredient operations
func RecordIngredientOperation(operation string) {
	IngredientOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordImportRow increments the counter for one processed import row
func RecordImportRow(entity, outcome string) {
	ImportRowsCounter.WithLabelValues(entity, outcome).Inc()
}

// RecordExport increments the counter for one export download
func RecordExport(entity string) {
	ExportsCounter.WithLabelValues(entity).Inc()
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// GetPrometheusHandler returns an HTTP handler for exposing Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}
