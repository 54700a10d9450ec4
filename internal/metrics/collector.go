package metrics

import (
	"time"

	"media-indexer/internal/logging"
)

// StatsProvider supplies library statistics for the collector.
type StatsProvider interface {
	GetStats() Stats
}

// Stats holds the current library statistics.
type Stats struct {
	TotalVideos      int
	TotalAudio       int
	TotalFolders     int
	MetadataBySource map[string]int
}

// Collector periodically collects and updates library gauges.
type Collector struct {
	statsProvider StatsProvider
	interval      time.Duration
	stopChan      chan struct{}
}

// NewCollector creates a new metrics collector.
func NewCollector(provider StatsProvider, interval time.Duration) *Collector {
	return &Collector{
		statsProvider: provider,
		interval:      interval,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the metrics collection loop.
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the metrics collection.
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	// Collect immediately on start
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.statsProvider == nil {
		return
	}

	stats := c.statsProvider.GetStats()

	LibraryEntriesTotal.WithLabelValues("video").Set(float64(stats.TotalVideos))
	LibraryEntriesTotal.WithLabelValues("audio").Set(float64(stats.TotalAudio))
	LibraryEntriesTotal.WithLabelValues("folder").Set(float64(stats.TotalFolders))

	for source, count := range stats.MetadataBySource {
		LibraryMetadataRecords.WithLabelValues(source).Set(float64(count))
	}

	logging.Debug("Metrics collected: videos=%d, audio=%d, folders=%d",
		stats.TotalVideos, stats.TotalAudio, stats.TotalFolders)
}
