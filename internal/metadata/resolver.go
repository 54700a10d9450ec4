package metadata

import (
	"context"
	"path/filepath"
	"time"

	"media-indexer/internal/database"
	"media-indexer/internal/filename"
	"media-indexer/internal/logging"
	"media-indexer/internal/mediatypes"
	"media-indexer/internal/metrics"
	"media-indexer/internal/providers"
)

// DefaultFreshness is how long a successfully-resolved record is served
// from cache before it is re-resolved.
const DefaultFreshness = 7 * 24 * time.Hour

// StructuredProvider is the OMDb-shaped lookup capability.
type StructuredProvider interface {
	Lookup(ctx context.Context, title string, year int, kind mediatypes.MediaKind) (*providers.Record, error)
}

// EpisodicProvider is the TVMaze-shaped lookup capability.
type EpisodicProvider interface {
	Lookup(ctx context.Context, title string, season, episode int) (*providers.ShowResult, error)
}

// LinkedDataProvider is the Wikidata-shaped fallback lookup capability.
type LinkedDataProvider interface {
	Lookup(ctx context.Context, title string, year int) (*providers.LinkedResult, error)
}

// PosterFetcher downloads artwork and returns its site-relative path, or
// "" on failure.
type PosterFetcher interface {
	Fetch(imageURL, key string) string
}

// Resolver runs the resolution chain for single files and serves cached
// records while they are fresh.
type Resolver struct {
	db        *database.Database
	omdb      StructuredProvider
	tvmaze    EpisodicProvider
	wikidata  LinkedDataProvider
	posters   PosterFetcher
	freshness time.Duration
}

// NewResolver creates a resolver. freshness <= 0 selects DefaultFreshness.
// Any provider may be nil, in which case its step is skipped.
func NewResolver(db *database.Database, omdb StructuredProvider, tvmaze EpisodicProvider, wikidata LinkedDataProvider, posters PosterFetcher, freshness time.Duration) *Resolver {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	return &Resolver{
		db:        db,
		omdb:      omdb,
		tvmaze:    tvmaze,
		wikidata:  wikidata,
		posters:   posters,
		freshness: freshness,
	}
}

// Fresh reports whether a cached record can be served without
// re-resolution. Records that never matched a provider are always
// re-resolved so a file gets another chance on each access.
func (r *Resolver) Fresh(rec *database.MetadataRecord) bool {
	if rec == nil || rec.Source == database.SourceFilename {
		return false
	}
	return time.Since(rec.FetchedAt) < r.freshness
}

// Resolve returns the metadata record for a file path, resolving it
// through the provider chain when the cache is missing or stale. Provider
// failures are logged and treated as "no match"; Resolve always produces
// at least the filename-derived draft. The returned error is non-nil only
// when persisting the record fails, and the record is still valid then.
func (r *Resolver) Resolve(ctx context.Context, path string) (*database.MetadataRecord, error) {
	cached, err := r.db.GetMetadata(ctx, path)
	if err != nil {
		logging.Warn("Metadata cache read failed for %s: %v", path, err)
	}
	if r.Fresh(cached) {
		metrics.MetadataCacheHits.Inc()
		return cached, nil
	}
	metrics.MetadataCacheMisses.Inc()

	parsed := filename.Parse(filepath.Base(path))
	rec := &database.MetadataRecord{
		Path:    path,
		Title:   parsed.Title,
		Year:    parsed.Year,
		Kind:    parsed.Kind,
		Season:  parsed.Season,
		Episode: parsed.Episode,
		Source:  database.SourceFilename,
	}

	r.resolveStructured(ctx, rec)
	if rec.Kind == mediatypes.KindSeries && rec.Season > 0 && rec.Episode > 0 {
		r.resolveEpisodic(ctx, rec, parsed.Title)
	}
	if rec.Source == database.SourceFilename {
		r.resolveLinkedData(ctx, rec)
	}

	now := time.Now()
	rec.FetchedAt = now
	rec.UpdatedAt = now

	metrics.MetadataResolutionsTotal.WithLabelValues(rec.Source).Inc()

	if err := r.db.UpsertMetadata(ctx, rec); err != nil {
		logging.Error("Failed to persist metadata for %s: %v", path, err)
		return rec, err
	}
	logging.Debug("Resolved %s: title=%q source=%s", path, rec.Title, rec.Source)
	return rec, nil
}

func (r *Resolver) resolveStructured(ctx context.Context, rec *database.MetadataRecord) {
	if r.omdb == nil {
		return
	}
	match, err := r.omdb.Lookup(ctx, rec.Title, rec.Year, rec.Kind)
	if err != nil {
		logging.Warn("OMDb lookup failed for %q: %v", rec.Title, err)
		return
	}
	if match == nil {
		return
	}

	rec.Title = match.Title
	if match.Year > 0 {
		rec.Year = match.Year
	}
	rec.Plot = match.Plot
	rec.Rating = match.Rating
	rec.Genre = match.Genre
	rec.Director = match.Director
	rec.Actors = match.Actors
	rec.Runtime = match.Runtime
	rec.ExternalID = match.ImdbID
	rec.Source = database.SourceOMDb

	if match.PosterURL != "" {
		rec.PosterPath = r.fetchPoster(match.PosterURL, rec)
	}
}

func (r *Resolver) resolveEpisodic(ctx context.Context, rec *database.MetadataRecord, parsedTitle string) {
	if r.tvmaze == nil {
		return
	}
	result, err := r.tvmaze.Lookup(ctx, parsedTitle, rec.Season, rec.Episode)
	if err != nil {
		logging.Warn("TVMaze lookup failed for %q: %v", parsedTitle, err)
		return
	}
	if result == nil {
		return
	}

	rec.TVMazeID = result.Show.ID
	if rec.Source == database.SourceFilename && result.Show.Name != "" {
		rec.Title = result.Show.Name
	}
	if rec.PosterPath == "" && result.Show.PosterURL != "" {
		rec.PosterPath = r.fetchPoster(result.Show.PosterURL, rec)
	}
	if result.Episode != nil {
		rec.EpisodeTitle = result.Episode.Name
		if rec.Plot == "" {
			rec.Plot = stripHTML(result.Episode.Summary)
		}
	}

	if rec.Source == database.SourceOMDb {
		rec.Source = database.SourceOMDbTVMaze
	} else {
		rec.Source = database.SourceTVMaze
	}
}

func (r *Resolver) resolveLinkedData(ctx context.Context, rec *database.MetadataRecord) {
	if r.wikidata == nil {
		return
	}
	result, err := r.wikidata.Lookup(ctx, rec.Title, rec.Year)
	if err != nil {
		logging.Warn("Wikidata lookup failed for %q: %v", rec.Title, err)
		return
	}
	if result == nil {
		return
	}

	if result.Title != "" {
		rec.Title = result.Title
	}
	rec.ExternalID = result.EntityID
	rec.Source = database.SourceWikidata

	if rec.PosterPath == "" && result.ImageURL != "" {
		rec.PosterPath = r.fetchPoster(result.ImageURL, rec)
	}
}

func (r *Resolver) fetchPoster(imageURL string, rec *database.MetadataRecord) string {
	if r.posters == nil {
		return ""
	}
	key := rec.ExternalID
	if key == "" {
		key = rec.Title
	}
	return r.posters.Fetch(imageURL, key)
}
