// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// This package centralizes all application configuration and provides consistent
// logging throughout the application lifecycle.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig].
// The following environment variables are supported:
//
//   - MEDIA_DIR: Path to media directory (default: /media)
//   - CACHE_DIR: Path to cache directory for poster artwork (default: /cache)
//   - DATABASE_DIR: Path to database directory (default: /database)
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable metrics server (default: true)
//   - INDEX_INTERVAL: Full re-index interval as Go duration (default: 30m)
//   - METADATA_FRESHNESS: Age at which resolved metadata goes stale (default: 168h)
//   - OMDB_API_KEY: OMDb API key; structured lookups are skipped without it
//   - OMDB_BASE_URL, TVMAZE_BASE_URL, WIKIDATA_BASE_URL: Provider endpoint overrides
//   - OMDB_MAX_REQUESTS, OMDB_WINDOW, OMDB_MIN_DELAY: OMDb rate limits
//   - TVMAZE_MAX_REQUESTS, TVMAZE_WINDOW, TVMAZE_MIN_DELAY: TVMaze rate limits
//   - WIKIDATA_MAX_REQUESTS, WIKIDATA_WINDOW, WIKIDATA_MIN_DELAY: Wikidata rate limits
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - LOG_STATIC_FILES: Log poster asset requests (default: false)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//
// # Directory Setup
//
// The package validates and creates required directories:
//   - Database directory: Required, must be writable
//   - Cache directory: Optional, enables poster downloads if writable
//   - Media directory: Checked but not created (should be mounted)
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//   - Version: Application version
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go compiler version
//
// # Lifecycle Logging
//
// The package provides structured logging functions for consistent output:
//   - [LogDatabaseInit]: Database initialization timing
//   - [LogResolverInit]: Metadata resolver configuration
//   - [LogIndexerInit]: Indexer configuration and intervals
//   - [LogHTTPRoutes]: Registered HTTP routes (debug level)
//   - [LogServerStarted]: Server endpoints and startup duration
//   - [LogShutdownInitiated]: Graceful shutdown start
//   - [LogShutdownComplete]: Shutdown completion
package startup
