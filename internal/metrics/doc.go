// Package metrics provides Prometheus instrumentation for the media indexing
// service.
//
// This package defines and exposes the metrics that can be scraped by
// Prometheus to monitor the health, performance, and behavior of the service.
// All metrics are prefixed with "media_indexer_" to avoid naming collisions
// with other applications.
//
// # Metric Categories
//
// The metrics are organized into the following categories:
//
// ## HTTP Metrics
//
// Track HTTP request performance and error rates:
//   - HTTPRequestsTotal: Counter of total requests by method, path, and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of currently processing requests
//
// ## Database Metrics
//
// Monitor database query performance:
//   - DBQueryTotal: Counter of queries by operation and status
//   - DBQueryDuration: Histogram of query duration by operation
//   - DBTransactionDuration: Histogram of transaction duration by outcome
//   - DBRowsAffected: Histogram of rows affected by write operations
//   - DBConnectionsOpen: Gauge of open database connections
//
// ## Indexing Scan Metrics
//
// Track filesystem indexing scans:
//   - IndexScansTotal: Counter of scans by terminal status
//   - IndexScanRunning: Gauge indicating a scan is in flight
//   - IndexScanLastDuration / IndexScanLastTimestamp: last run gauges
//   - IndexEntriesProcessed: Counter of indexed entries by kind
//   - IndexScanEntryErrors: Counter of per-entry walk errors
//
// ## Metadata Metrics
//
// Track metadata scans and resolution:
//   - MetadataScansTotal / MetadataScanRunning: scan lifecycle
//   - MetadataResolutionsTotal: Counter of resolutions by source tag
//   - MetadataCacheHits / MetadataCacheMisses: cache effectiveness
//
// ## Provider Metrics
//
// Track outbound provider calls:
//   - ProviderRequestsTotal: Counter by provider and status
//   - ProviderRequestDuration: Histogram by provider
//   - RateLimiterWaitDuration: Histogram of admission wait time by provider
//
// ## Poster Metrics
//
//   - PosterFetchesTotal: Counter of poster downloads by status
//   - PosterCacheSize: Gauge of the poster cache size in bytes
//
// # Usage
//
// Metrics are automatically registered with the default Prometheus registry
// using promauto. To expose them, mount the promhttp.Handler() on your
// metrics endpoint:
//
//	import "github.com/prometheus/client_golang/prometheus/promhttp"
//
//	mux.Handle("/metrics", promhttp.Handler())
//
// # Collector
//
// The package provides a [Collector] type that periodically gathers library
// statistics from a [StatsProvider] and updates the corresponding gauges:
//
//	collector := metrics.NewCollector(statsProvider, 1*time.Minute)
//	collector.Start()
//	defer collector.Stop()
//
// # Prometheus Queries
//
// Example PromQL queries for common use cases:
//
// Request rate by endpoint:
//
//	sum(rate(media_indexer_http_requests_total[5m])) by (path)
//
// Metadata cache hit rate:
//
//	rate(media_indexer_metadata_cache_hits_total[5m]) /
//	(rate(media_indexer_metadata_cache_hits_total[5m]) + rate(media_indexer_metadata_cache_misses_total[5m]))
//
// Provider error rate:
//
//	sum(rate(media_indexer_provider_requests_total{status="error"}[5m])) by (provider)
//
// P95 rate-limiter wait:
//
//	histogram_quantile(0.95, sum(rate(media_indexer_rate_limiter_wait_seconds_bucket[5m])) by (le, provider))
package metrics
