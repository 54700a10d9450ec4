package database

import (
	"context"
	"database/sql"
	"time"
)

// InsertScanLog creates a new scan log row in the running state and
// returns its id.
func (d *Database) InsertScanLog(ctx context.Context, rootPath, triggeredBy string, startedAt time.Time) (int64, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("insert_scan_log", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := d.db.ExecContext(ctx,
		"INSERT INTO scan_logs (root_path, triggered_by, status, started_at) VALUES (?, ?, ?, ?)",
		rootPath, triggeredBy, ScanStatusRunning, startedAt.Unix(),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// FinishScanLog moves a scan log row to its terminal state. The status
// transition is monotonic: a completed or failed row is never moved back
// to running.
func (d *Database) FinishScanLog(ctx context.Context, id int64, status ScanStatus, result ScanResult) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("update_scan_log", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = d.db.ExecContext(ctx, `
		UPDATE scan_logs
		SET status = ?, finished_at = ?, files_found = ?, files_indexed = ?,
		    folders_indexed = ?, error_count = ?, error_detail = ?
		WHERE id = ? AND status = ?`,
		status, time.Now().Unix(), result.FilesFound, result.FilesIndexed,
		result.FoldersIndexed, result.ErrorCount, result.ErrorDetail,
		id, ScanStatusRunning,
	)
	return err
}

// LatestScanLog returns the most recently started scan log, or (nil, nil)
// when no scan has ever run.
func (d *Database) LatestScanLog(ctx context.Context) (*ScanLog, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("latest_scan_log", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := d.db.QueryRowContext(ctx, `
		SELECT id, root_path, triggered_by, status, started_at, finished_at,
		       files_found, files_indexed, folders_indexed, error_count, error_detail
		FROM scan_logs ORDER BY id DESC LIMIT 1`)

	log, scanErr := scanLogFromRow(row)
	if scanErr == sql.ErrNoRows {
		return nil, nil
	}
	err = scanErr
	if err != nil {
		return nil, err
	}
	return log, nil
}

// GetScanLog returns the scan log with the given id, or (nil, nil) when it
// does not exist.
func (d *Database) GetScanLog(ctx context.Context, id int64) (*ScanLog, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_scan_log", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := d.db.QueryRowContext(ctx, `
		SELECT id, root_path, triggered_by, status, started_at, finished_at,
		       files_found, files_indexed, folders_indexed, error_count, error_detail
		FROM scan_logs WHERE id = ?`, id)

	log, scanErr := scanLogFromRow(row)
	if scanErr == sql.ErrNoRows {
		return nil, nil
	}
	err = scanErr
	if err != nil {
		return nil, err
	}
	return log, nil
}

func scanLogFromRow(row *sql.Row) (*ScanLog, error) {
	var log ScanLog
	var startedAt int64
	var finishedAt sql.NullInt64
	var errorDetail sql.NullString

	err := row.Scan(&log.ID, &log.RootPath, &log.TriggeredBy, &log.Status, &startedAt,
		&finishedAt, &log.FilesFound, &log.FilesIndexed, &log.FoldersIndexed,
		&log.ErrorCount, &errorDetail)
	if err != nil {
		return nil, err
	}

	log.StartedAt = time.Unix(startedAt, 0)
	if finishedAt.Valid {
		t := time.Unix(finishedAt.Int64, 0)
		log.FinishedAt = &t
	}
	log.ErrorDetail = errorDetail.String
	return &log, nil
}
