package metrics

// InitializeMetrics pre-populates the expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	// --- DB query operations ---
	for _, op := range []string{"initialize_schema", "upsert_file", "delete_by_prefix",
		"get_file_by_path", "get_metadata", "upsert_metadata", "insert_scan_log",
		"update_scan_log", "latest_scan_log", "count_entries", "vacuum"} {
		DBQueryTotal.WithLabelValues(op, "success")
		DBQueryTotal.WithLabelValues(op, "error")
		DBQueryDuration.WithLabelValues(op)
	}

	for _, outcome := range []string{"commit", "rollback"} {
		DBTransactionDuration.WithLabelValues(outcome)
	}

	// --- Scan terminal statuses ---
	for _, status := range []string{"completed", "failed"} {
		IndexScansTotal.WithLabelValues(status)
	}
	for _, status := range []string{"completed", "error"} {
		MetadataScansTotal.WithLabelValues(status)
	}

	// --- Index entry kinds ---
	for _, kind := range []string{"folder", "video", "audio"} {
		IndexEntriesProcessed.WithLabelValues(kind)
		LibraryEntriesTotal.WithLabelValues(kind)
	}

	// --- Provider requests and limiter waits ---
	for _, provider := range []string{"omdb", "tvmaze", "wikidata"} {
		ProviderRequestsTotal.WithLabelValues(provider, "success")
		ProviderRequestsTotal.WithLabelValues(provider, "miss")
		ProviderRequestsTotal.WithLabelValues(provider, "error")
		ProviderRequestDuration.WithLabelValues(provider)
		RateLimiterWaitDuration.WithLabelValues(provider)
	}

	// --- Resolution source tags ---
	for _, source := range []string{"filename", "omdb", "omdb+tvmaze", "tvmaze", "wikidata"} {
		MetadataResolutionsTotal.WithLabelValues(source)
		LibraryMetadataRecords.WithLabelValues(source)
	}

	// --- Poster fetches ---
	for _, status := range []string{"success", "skipped", "error"} {
		PosterFetchesTotal.WithLabelValues(status)
	}
}
