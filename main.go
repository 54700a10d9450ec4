package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-indexer/internal/database"
	"media-indexer/internal/handlers"
	"media-indexer/internal/indexer"
	"media-indexer/internal/logging"
	"media-indexer/internal/media"
	"media-indexer/internal/metadata"
	"media-indexer/internal/metrics"
	"media-indexer/internal/middleware"
	"media-indexer/internal/providers"
	"media-indexer/internal/ratelimit"
	"media-indexer/internal/startup"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
)

func main() {
	startTime := time.Now()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	metrics.InitializeMetrics()
	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)

	// Initialize database
	dbStart := time.Now()
	db, err := database.New(context.Background(), config.DatabasePath)
	if err != nil {
		startup.LogFatal("Failed to initialize database: %v", err)
	}
	defer db.Close()
	startup.LogDatabaseInit(time.Since(dbStart))

	// Build the metadata resolution chain
	startup.LogResolverInit(config.MetadataFreshness, config.OMDbEnabled)
	resolver := buildResolver(db, config)
	scanner := metadata.NewScanner(db, resolver)

	// Initialize indexer
	startup.LogIndexerInit(config.IndexInterval)
	idx := indexer.New(db, config.MediaDir)
	idx.Start()
	startup.LogIndexerStarted()

	// Periodic re-index and database metrics refresh
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every "+config.IndexInterval.String(), func() {
		if _, already, err := idx.StartScan(config.MediaDir, indexer.TriggerScheduled); err != nil {
			logging.Error("Scheduled index scan failed to start: %v", err)
		} else if already {
			logging.Debug("Scheduled index scan skipped, scan already running")
		}
	}); err != nil {
		startup.LogFatal("Failed to schedule index scans: %v", err)
	}
	if _, err := scheduler.AddFunc("@every 1m", db.UpdateDBMetrics); err != nil {
		startup.LogFatal("Failed to schedule database metrics: %v", err)
	}
	scheduler.Start()

	// Library gauges
	collector := metrics.NewCollector(&dbStatsAdapter{db: db}, time.Minute)
	collector.Start()

	// Initialize handlers
	h := handlers.New(db, idx, scanner, resolver, config)

	// Setup router
	router := setupRouter(h, config)

	// Log routes dynamically
	startup.LogHTTPRoutes(router, config.LogStaticFiles, config.LogHealthChecks)

	// Apply metrics middleware
	measured := middleware.Metrics(middleware.DefaultMetricsConfig())(router)

	// Apply logging middleware
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogStaticFiles = config.LogStaticFiles
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler := middleware.Logger(loggingConfig)(measured)

	// Create server
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Metrics server on its own port
	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", h.MetricsHandler())
		metricsSrv = &http.Server{
			Addr:         ":" + config.MetricsPort,
			Handler:      metricsMux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != http.ErrServerClosed {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, metricsSrv, scheduler, collector)

	// Start server
	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

// buildResolver wires the provider clients, their rate limiters, and the
// poster fetcher into a metadata resolver.
func buildResolver(db *database.Database, config *startup.Config) *metadata.Resolver {
	var omdb metadata.StructuredProvider
	if config.OMDbEnabled {
		omdbLimiter := ratelimit.New("omdb",
			config.OMDbLimits.MaxRequests, config.OMDbLimits.Window, config.OMDbLimits.MinDelay)
		omdb = providers.NewOMDbClient(config.OMDbBaseURL, config.OMDbAPIKey, omdbLimiter)
	}

	tvmazeLimiter := ratelimit.New("tvmaze",
		config.TVMazeLimits.MaxRequests, config.TVMazeLimits.Window, config.TVMazeLimits.MinDelay)
	tvmaze := providers.NewTVMazeClient(config.TVMazeBaseURL, tvmazeLimiter)

	wikidataLimiter := ratelimit.New("wikidata",
		config.WikidataLimits.MaxRequests, config.WikidataLimits.Window, config.WikidataLimits.MinDelay)
	wikidata := providers.NewWikidataClient(config.WikidataBaseURL, wikidataLimiter)

	var posters metadata.PosterFetcher
	if config.PostersEnabled {
		posters = media.NewPosterFetcher(config.PosterDir, "/posters")
	}

	return metadata.NewResolver(db, omdb, tvmaze, wikidata, posters, config.MetadataFreshness)
}

// dbStatsAdapter converts database statistics into collector statistics
type dbStatsAdapter struct {
	db *database.Database
}

// GetStats implements metrics.StatsProvider
func (a *dbStatsAdapter) GetStats() metrics.Stats {
	dbStats := a.db.GetStats()
	return metrics.Stats{
		TotalVideos:      dbStats.TotalVideos,
		TotalAudio:       dbStats.TotalAudio,
		TotalFolders:     dbStats.TotalFolders,
		MetadataBySource: dbStats.MetadataBySource,
	}
}

func setupRouter(h *handlers.Handlers, config *startup.Config) *mux.Router {
	r := mux.NewRouter()

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	// Index routes
	index := r.PathPrefix("/api/index").Subrouter()
	index.HandleFunc("/scan", h.StartIndexScan).Methods("POST")
	index.HandleFunc("/status", h.GetIndexStatus).Methods("GET")
	index.HandleFunc("/stats", h.GetIndexStats).Methods("GET")

	// Metadata routes
	meta := r.PathPrefix("/api/metadata").Subrouter()
	meta.HandleFunc("/scan", h.StartMetadataScan).Methods("POST")
	meta.HandleFunc("/progress", h.GetMetadataProgress).Methods("GET")
	meta.HandleFunc("/resolve", h.ResolveMetadata).Methods("POST")
	meta.HandleFunc("", h.GetMetadata).Methods("GET")

	// Poster artwork
	r.PathPrefix("/posters/").Handler(
		http.StripPrefix("/posters/", http.FileServer(http.Dir(config.PosterDir))))

	return r
}

func handleShutdown(srv, metricsSrv *http.Server, scheduler *cron.Cron, collector *metrics.Collector) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Stopping scheduler")
	scheduler.Stop()
	startup.LogShutdownStepComplete("Scheduler stopped")

	startup.LogShutdownStep("Stopping metrics collector")
	collector.Stop()
	startup.LogShutdownStepComplete("Metrics collector stopped")

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
}
