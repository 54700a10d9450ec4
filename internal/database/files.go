package database

import (
	"context"
	"database/sql"
	"time"

	"media-indexer/internal/metrics"
)

// UpsertFile inserts or updates a file index row within a transaction.
// The transaction's context controls the operation timeout.
func (d *Database) UpsertFile(tx *sql.Tx, file *FileEntry) error {
	query := `
	INSERT INTO files (name, path, parent_path, kind, ext, size, mod_time, mime_type, library, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, strftime('%s', 'now'))
	ON CONFLICT(path) DO UPDATE SET
		name = excluded.name,
		parent_path = excluded.parent_path,
		kind = excluded.kind,
		ext = excluded.ext,
		size = excluded.size,
		mod_time = excluded.mod_time,
		mime_type = excluded.mime_type,
		library = excluded.library,
		updated_at = strftime('%s', 'now')
	`

	// Use background context since we're within a transaction.
	// The transaction itself controls the operation's lifecycle.
	result, err := tx.ExecContext(context.Background(), query,
		file.Name,
		file.Path,
		file.ParentPath,
		file.Kind,
		file.Ext,
		file.Size,
		file.ModTime.Unix(),
		file.MimeType,
		file.Library,
	)
	if err == nil {
		if rows, _ := result.RowsAffected(); rows > 0 {
			metrics.DBRowsAffected.WithLabelValues("upsert_file").Observe(float64(rows))
		}
	}
	return err
}

// DeleteByPrefix removes every file row at or below root within a
// transaction. Used to purge a subtree before a scan's bulk insert so the
// purge and the insert commit together.
func (d *Database) DeleteByPrefix(tx *sql.Tx, root string) (int64, error) {
	result, err := tx.ExecContext(context.Background(),
		"DELETE FROM files WHERE path = ? OR path LIKE ? || '/%'",
		root, root,
	)
	if err != nil {
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err == nil && rowsAffected > 0 {
		metrics.DBRowsAffected.WithLabelValues("delete_by_prefix").Observe(float64(rowsAffected))
	}
	return rowsAffected, err
}

// GetFileByPath retrieves a single file index row by path. Returns
// (nil, nil) when no row exists.
func (d *Database) GetFileByPath(ctx context.Context, path string) (*FileEntry, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_file_by_path", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
	SELECT id, name, path, parent_path, kind, ext, size, mod_time, mime_type, library
	FROM files WHERE path = ?
	`

	var file FileEntry
	var modTime int64
	var mimeType sql.NullString

	err = d.db.QueryRowContext(ctx, query, path).Scan(
		&file.ID, &file.Name, &file.Path, &file.ParentPath,
		&file.Kind, &file.Ext, &file.Size, &modTime, &mimeType, &file.Library,
	)
	if err == sql.ErrNoRows {
		err = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	file.ModTime = time.Unix(modTime, 0)
	file.MimeType = mimeType.String
	return &file, nil
}

// CountByPrefix counts indexed files and folders at or below root.
func (d *Database) CountByPrefix(ctx context.Context, root string) (files, folders int, err error) {
	start := time.Now()
	defer func() { recordQuery("count_by_prefix", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, `
		SELECT kind, COUNT(*) FROM files
		WHERE path = ? OR path LIKE ? || '/%'
		GROUP BY kind`, root, root)
	if err != nil {
		return 0, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var count int
		if err = rows.Scan(&kind, &count); err != nil {
			return 0, 0, err
		}
		if kind == "folder" {
			folders += count
		} else {
			files += count
		}
	}
	err = rows.Err()
	return files, folders, err
}
