package database

import (
	"context"
	"database/sql"
	"time"
)

// GetMetadata returns the cached metadata record for a file path, or
// (nil, nil) when no record exists.
func (d *Database) GetMetadata(ctx context.Context, path string) (*MetadataRecord, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_metadata", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
	SELECT path, title, year, kind, poster_path, plot, rating, genre, director,
	       actors, runtime, external_id, tvmaze_id, season, episode,
	       episode_title, source, fetched_at, updated_at
	FROM metadata WHERE path = ?
	`

	var rec MetadataRecord
	var fetchedAt, updatedAt int64

	err = d.db.QueryRowContext(ctx, query, path).Scan(
		&rec.Path, &rec.Title, &rec.Year, &rec.Kind, &rec.PosterPath,
		&rec.Plot, &rec.Rating, &rec.Genre, &rec.Director,
		&rec.Actors, &rec.Runtime, &rec.ExternalID, &rec.TVMazeID,
		&rec.Season, &rec.Episode, &rec.EpisodeTitle, &rec.Source,
		&fetchedAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		err = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec.FetchedAt = time.Unix(fetchedAt, 0)
	rec.UpdatedAt = time.Unix(updatedAt, 0)
	return &rec, nil
}

// UpsertMetadata inserts or replaces the metadata record for a file path.
func (d *Database) UpsertMetadata(ctx context.Context, rec *MetadataRecord) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("upsert_metadata", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
	INSERT INTO metadata (path, title, year, kind, poster_path, plot, rating,
		genre, director, actors, runtime, external_id, tvmaze_id, season,
		episode, episode_title, source, fetched_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(path) DO UPDATE SET
		title = excluded.title,
		year = excluded.year,
		kind = excluded.kind,
		poster_path = excluded.poster_path,
		plot = excluded.plot,
		rating = excluded.rating,
		genre = excluded.genre,
		director = excluded.director,
		actors = excluded.actors,
		runtime = excluded.runtime,
		external_id = excluded.external_id,
		tvmaze_id = excluded.tvmaze_id,
		season = excluded.season,
		episode = excluded.episode,
		episode_title = excluded.episode_title,
		source = excluded.source,
		fetched_at = excluded.fetched_at,
		updated_at = excluded.updated_at
	`

	_, err = d.db.ExecContext(ctx, query,
		rec.Path, rec.Title, rec.Year, rec.Kind, rec.PosterPath, rec.Plot,
		rec.Rating, rec.Genre, rec.Director, rec.Actors, rec.Runtime,
		rec.ExternalID, rec.TVMazeID, rec.Season, rec.Episode,
		rec.EpisodeTitle, rec.Source, rec.FetchedAt.Unix(), rec.UpdatedAt.Unix(),
	)
	return err
}

// DeleteAllMetadata clears the metadata cache. Used by whole-index rebuilds.
func (d *Database) DeleteAllMetadata(ctx context.Context) (int64, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("delete_metadata", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := d.db.ExecContext(ctx, "DELETE FROM metadata")
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
