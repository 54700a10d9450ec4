package providers

import (
	"time"

	"media-indexer/internal/metrics"
)

// Record is the structured metadata returned by the OMDb lookup.
type Record struct {
	Title     string
	Year      int
	Plot      string
	Rating    string
	Genre     string
	Director  string
	Actors    string
	Runtime   string
	PosterURL string
	ImdbID    string
}

// Show is the show-level result of a TVMaze lookup.
type Show struct {
	ID        int
	Name      string
	Premiered string
	PosterURL string
}

// Episode is the episode-level result of a TVMaze lookup.
type Episode struct {
	Season  int
	Number  int
	Name    string
	Summary string
}

// ShowResult pairs a show with an optional episode.
type ShowResult struct {
	Show    Show
	Episode *Episode
}

// LinkedResult is the result of the Wikidata fallback query.
type LinkedResult struct {
	Title    string
	ImageURL string
	EntityID string
}

func observeRequest(provider string, start time.Time, status string) {
	metrics.ProviderRequestsTotal.WithLabelValues(provider, status).Inc()
	metrics.ProviderRequestDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}
