package indexer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"media-indexer/internal/database"
	"media-indexer/internal/logging"
	"media-indexer/internal/mediatypes"
	"media-indexer/internal/metrics"
)

// maxEntryErrors caps how many per-entry walk errors are kept in a scan's
// error detail. The persisted error count is not capped.
const maxEntryErrors = 100

// Scan trigger actors recorded on each scan log.
const (
	TriggerStartup   = "startup"
	TriggerScheduled = "scheduled"
	TriggerAPI       = "api"
)

// Indexer builds the browsable file index. At most one scan runs at a
// time; each scan fully replaces the indexed subtree in one transaction.
type Indexer struct {
	db       *database.Database
	mediaDir string

	scanMu         sync.Mutex
	isScanning     bool
	runningScanID  int64
	runningRoot    string
	runningTrigger string
	startedAt      time.Time

	// Progress counters for the running scan
	filesFound     atomic.Int64
	filesIndexed   atomic.Int64
	foldersIndexed atomic.Int64

	lastScanMu   sync.Mutex
	lastScanTime time.Time
}

// New creates a new Indexer. mediaDir is the default scan root used by
// Start and periodic re-scans.
func New(db *database.Database, mediaDir string) *Indexer {
	return &Indexer{
		db:       db,
		mediaDir: mediaDir,
	}
}

// Start launches the initial index of the media directory in the
// background.
func (idx *Indexer) Start() {
	go func() {
		logging.Info("Starting initial index in background...")
		if _, already, err := idx.StartScan(idx.mediaDir, TriggerStartup); err != nil {
			logging.Error("Initial index error: %v", err)
		} else if already {
			logging.Info("Initial index skipped, scan already in progress")
		}
	}()
}

// StartScan begins an asynchronous scan rooted at root, recorded as
// triggered by the given actor. When a scan is already running it returns
// the running scan's id and true, and no new scan (and no new scan log
// row) is created. Otherwise it persists a running scan log, launches the
// walk, and returns the new id.
func (idx *Indexer) StartScan(root, triggeredBy string) (int64, bool, error) {
	idx.scanMu.Lock()
	if idx.isScanning {
		id := idx.runningScanID
		idx.scanMu.Unlock()
		logging.Info("Scan already in progress (id %d), rejecting new scan", id)
		return id, true, nil
	}
	idx.isScanning = true
	idx.scanMu.Unlock()

	startedAt := time.Now()
	scanID, err := idx.db.InsertScanLog(context.Background(), root, triggeredBy, startedAt)
	if err != nil {
		idx.scanMu.Lock()
		idx.isScanning = false
		idx.scanMu.Unlock()
		return 0, false, fmt.Errorf("failed to create scan log: %w", err)
	}

	idx.scanMu.Lock()
	idx.runningScanID = scanID
	idx.runningRoot = root
	idx.runningTrigger = triggeredBy
	idx.startedAt = startedAt
	idx.scanMu.Unlock()

	idx.filesFound.Store(0)
	idx.filesIndexed.Store(0)
	idx.foldersIndexed.Store(0)
	metrics.IndexScanRunning.Set(1)
	logging.Info("Index scan %d starting: %s", scanID, root)

	go idx.run(scanID, root, startedAt)
	return scanID, false, nil
}

// IsScanning reports whether a scan is currently running.
func (idx *Indexer) IsScanning() bool {
	idx.scanMu.Lock()
	defer idx.scanMu.Unlock()
	return idx.isScanning
}

// LastScanTime returns the completion time of the most recent scan in
// this process.
func (idx *Indexer) LastScanTime() time.Time {
	idx.lastScanMu.Lock()
	defer idx.lastScanMu.Unlock()
	return idx.lastScanTime
}

// GetScanStatus returns the state of the running scan, or the most recent
// persisted scan log when nothing is running. Returns (nil, nil) when no
// scan has ever run.
func (idx *Indexer) GetScanStatus(ctx context.Context) (*database.ScanLog, error) {
	idx.scanMu.Lock()
	if idx.isScanning {
		snapshot := &database.ScanLog{
			ID:             idx.runningScanID,
			RootPath:       idx.runningRoot,
			TriggeredBy:    idx.runningTrigger,
			Status:         database.ScanStatusRunning,
			StartedAt:      idx.startedAt,
			FilesFound:     int(idx.filesFound.Load()),
			FilesIndexed:   int(idx.filesIndexed.Load()),
			FoldersIndexed: int(idx.foldersIndexed.Load()),
		}
		idx.scanMu.Unlock()
		return snapshot, nil
	}
	idx.scanMu.Unlock()

	return idx.db.LatestScanLog(ctx)
}

func (idx *Indexer) run(scanID int64, root string, startedAt time.Time) {
	defer func() {
		idx.scanMu.Lock()
		idx.isScanning = false
		idx.scanMu.Unlock()
		metrics.IndexScanRunning.Set(0)
	}()

	ctx := context.Background()

	entries, entryErrors, fatalErr := idx.walk(root)
	if fatalErr == nil {
		fatalErr = idx.replaceSubtree(root, entries)
	}

	if fatalErr != nil {
		logging.Error("Index scan %d failed: %v", scanID, fatalErr)
		metrics.IndexScansTotal.WithLabelValues("failed").Inc()
		result := database.ScanResult{ErrorCount: 1, ErrorDetail: fatalErr.Error()}
		if err := idx.db.FinishScanLog(ctx, scanID, database.ScanStatusFailed, result); err != nil {
			logging.Error("Failed to finalize scan log %d: %v", scanID, err)
		}
		return
	}

	detail := entryErrors
	if len(detail) > maxEntryErrors {
		detail = detail[:maxEntryErrors]
	}
	result := database.ScanResult{
		FilesFound:     int(idx.filesFound.Load()),
		FilesIndexed:   int(idx.filesIndexed.Load()),
		FoldersIndexed: int(idx.foldersIndexed.Load()),
		ErrorCount:     len(entryErrors),
		ErrorDetail:    strings.Join(detail, "\n"),
	}

	duration := time.Since(startedAt)
	if err := idx.db.FinishScanLog(ctx, scanID, database.ScanStatusCompleted, result); err != nil {
		logging.Error("Failed to finalize scan log %d: %v", scanID, err)
	}

	idx.lastScanMu.Lock()
	idx.lastScanTime = time.Now()
	idx.lastScanMu.Unlock()

	metrics.IndexScansTotal.WithLabelValues("completed").Inc()
	metrics.IndexScanLastDuration.Set(duration.Seconds())
	metrics.IndexScanLastTimestamp.Set(float64(time.Now().Unix()))

	idx.refreshStats(ctx, duration)

	logging.Info("Index scan %d complete: %d files, %d folders in %v (%d entry errors)",
		scanID, result.FilesIndexed, result.FoldersIndexed, duration, result.ErrorCount)
}

// walk enumerates root iteratively with an explicit directory stack.
// Per-entry errors are collected without aborting the walk; only a
// failure to read the root itself is fatal.
func (idx *Indexer) walk(root string) ([]database.FileEntry, []string, error) {
	var entries []database.FileEntry
	var entryErrors []string

	addError := func(path string, err error) {
		metrics.IndexScanEntryErrors.Inc()
		entryErrors = append(entryErrors, fmt.Sprintf("%s: %v", path, err))
	}

	if _, err := os.Stat(root); err != nil {
		return nil, nil, fmt.Errorf("cannot access scan root: %w", err)
	}

	stack := []string{root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		dirEntries, err := os.ReadDir(dir)
		if err != nil {
			if dir == root {
				return nil, nil, fmt.Errorf("cannot read scan root: %w", err)
			}
			addError(dir, err)
			continue
		}

		for _, entry := range dirEntries {
			name := entry.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}
			path := filepath.Join(dir, name)

			if entry.IsDir() {
				info, err := entry.Info()
				if err != nil {
					addError(path, err)
					continue
				}
				entries = append(entries, database.FileEntry{
					Name:       name,
					Path:       path,
					ParentPath: dir,
					Kind:       mediatypes.KindFolder,
					ModTime:    info.ModTime(),
					Library:    libraryLabel(root, path, true),
				})
				idx.foldersIndexed.Add(1)
				metrics.IndexEntriesProcessed.WithLabelValues("folder").Inc()
				stack = append(stack, path)
				continue
			}

			idx.filesFound.Add(1)

			ext := strings.ToLower(filepath.Ext(name))
			kind := mediatypes.GetEntryKind(ext)
			if kind == mediatypes.KindOther {
				continue
			}

			info, err := entry.Info()
			if err != nil {
				addError(path, err)
				continue
			}

			entries = append(entries, database.FileEntry{
				Name:       name,
				Path:       path,
				ParentPath: dir,
				Kind:       kind,
				Ext:        ext,
				Size:       info.Size(),
				ModTime:    info.ModTime(),
				MimeType:   mediatypes.GetMimeType(ext),
				Library:    libraryLabel(root, path, false),
			})
			idx.filesIndexed.Add(1)
			metrics.IndexEntriesProcessed.WithLabelValues(string(kind)).Inc()
		}
	}

	return entries, entryErrors, nil
}

// libraryLabel derives the owning library of an entry: the name of the
// top-level directory under the scan root containing it. A top-level
// folder is its own library; files directly under the root have none.
func libraryLabel(root, path string, isDir bool) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return ""
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) == 1 && !isDir {
		return ""
	}
	return parts[0]
}

// replaceSubtree swaps the indexed subtree for the freshly walked entries.
// The purge and the bulk insert share one transaction so a failure leaves
// the previous index intact.
func (idx *Indexer) replaceSubtree(root string, entries []database.FileEntry) error {
	tx, err := idx.db.BeginBatch()
	if err != nil {
		return fmt.Errorf("failed to begin replacement transaction: %w", err)
	}

	if _, err = idx.db.DeleteByPrefix(tx, root); err != nil {
		err = fmt.Errorf("failed to purge subtree: %w", err)
	} else {
		for i := range entries {
			if upsertErr := idx.db.UpsertFile(tx, &entries[i]); upsertErr != nil {
				err = fmt.Errorf("failed to insert %s: %w", entries[i].Path, upsertErr)
				break
			}
		}
	}

	if endErr := idx.db.EndBatch(tx, err); endErr != nil {
		return endErr
	}
	return nil
}

func (idx *Indexer) refreshStats(ctx context.Context, duration time.Duration) {
	stats, err := idx.db.CalculateStats(ctx)
	if err != nil {
		logging.Warn("Failed to refresh index stats: %v", err)
		return
	}
	stats.LastIndexed = idx.LastScanTime()
	stats.IndexDuration = duration.String()
	idx.db.UpdateStats(stats)
}
