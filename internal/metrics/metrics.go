package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_indexer_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_indexer_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_indexer_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Database metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_indexer_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_indexer_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	DBTransactionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_indexer_db_transaction_duration_seconds",
			Help:    "Database transaction duration in seconds by outcome",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"outcome"},
	)

	DBRowsAffected = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_indexer_db_rows_affected",
			Help:    "Rows affected by write operations",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
		},
		[]string{"operation"},
	)

	DBConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_indexer_db_connections_open",
			Help: "Number of open database connections",
		},
	)
)

// Indexing scan metrics
var (
	IndexScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_indexer_index_scans_total",
			Help: "Total number of indexing scans by terminal status",
		},
		[]string{"status"},
	)

	IndexScanRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_indexer_index_scan_running",
			Help: "Whether an indexing scan is currently running (1 = running, 0 = idle)",
		},
	)

	IndexScanLastDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_indexer_index_scan_last_duration_seconds",
			Help: "Duration of the last indexing scan in seconds",
		},
	)

	IndexScanLastTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_indexer_index_scan_last_timestamp",
			Help: "Unix timestamp of the last completed indexing scan",
		},
	)

	IndexEntriesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_indexer_index_entries_processed_total",
			Help: "Total number of entries written to the index by kind",
		},
		[]string{"kind"},
	)

	IndexScanEntryErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_indexer_index_scan_entry_errors_total",
			Help: "Total number of per-entry errors collected during indexing scans",
		},
	)
)

// Metadata scan and resolver metrics
var (
	MetadataScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_indexer_metadata_scans_total",
			Help: "Total number of metadata scans by terminal status",
		},
		[]string{"status"},
	)

	MetadataScanRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_indexer_metadata_scan_running",
			Help: "Whether a metadata scan is currently running (1 = running, 0 = idle)",
		},
	)

	MetadataResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_indexer_metadata_resolutions_total",
			Help: "Total number of metadata resolutions by resulting source tag",
		},
		[]string{"source"},
	)

	MetadataCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_indexer_metadata_cache_hits_total",
			Help: "Total number of fresh cache hits served without network calls",
		},
	)

	MetadataCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_indexer_metadata_cache_misses_total",
			Help: "Total number of cache misses requiring provider resolution",
		},
	)
)

// Provider client metrics
var (
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_indexer_provider_requests_total",
			Help: "Total number of outbound provider requests",
		},
		[]string{"provider", "status"},
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_indexer_provider_request_duration_seconds",
			Help:    "Provider request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
		[]string{"provider"},
	)

	RateLimiterWaitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_indexer_rate_limiter_wait_seconds",
			Help:    "Time spent waiting for rate limiter admission",
			Buckets: []float64{0.001, 0.01, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider"},
	)
)

// Poster fetcher metrics
var (
	PosterFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_indexer_poster_fetches_total",
			Help: "Total number of poster download attempts",
		},
		[]string{"status"},
	)

	PosterCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_indexer_poster_cache_size_bytes",
			Help: "Total size of the poster cache in bytes",
		},
	)
)

// Library metrics
var (
	LibraryEntriesTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_indexer_library_entries_total",
			Help: "Total number of indexed entries by kind",
		},
		[]string{"kind"},
	)

	LibraryMetadataRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_indexer_metadata_records_total",
			Help: "Total number of cached metadata records by source tag",
		},
		[]string{"source"},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_indexer_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
