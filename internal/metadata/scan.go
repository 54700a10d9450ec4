package metadata

import (
	"context"
	"fmt"
	"io/fs"
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

// ScanState is the lifecycle state of a metadata scan.
type ScanState string

const (
	ScanIdle      ScanState = "idle"
	ScanRunning   ScanState = "running"
	ScanCompleted ScanState = "completed"
	ScanError     ScanState = "error"
)

// Progress is a snapshot of a metadata scan. Reading it never blocks the
// scan worker.
type Progress struct {
	State       ScanState  `json:"state"`
	Root        string     `json:"root,omitempty"`
	CurrentFile string     `json:"currentFile,omitempty"`
	TotalFiles  int        `json:"totalFiles"`
	Processed   int        `json:"processed"`
	Resolved    int        `json:"resolved"`
	Errors      int        `json:"errors"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// Scanner walks a directory tree and resolves metadata for every media
// file whose cached record is missing or stale. At most one scan runs at a
// time; a second start request is rejected with the current snapshot.
type Scanner struct {
	db       *database.Database
	resolver *Resolver

	mu       sync.Mutex
	running  bool
	progress atomic.Value // Progress
}

// NewScanner creates a metadata scanner.
func NewScanner(db *database.Database, resolver *Resolver) *Scanner {
	s := &Scanner{
		db:       db,
		resolver: resolver,
	}
	s.progress.Store(Progress{State: ScanIdle})
	return s
}

// Start launches a background scan rooted at root. When a scan is already
// running it returns the running scan's snapshot and true, and no new scan
// starts.
func (s *Scanner) Start(root string) (Progress, bool) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return s.Progress(), true
	}
	s.running = true
	s.mu.Unlock()

	now := time.Now()
	s.progress.Store(Progress{
		State:     ScanRunning,
		Root:      root,
		StartedAt: &now,
	})
	metrics.MetadataScanRunning.Set(1)
	logging.Info("Metadata scan starting: %s", root)

	go s.run(root, now)
	return s.Progress(), false
}

// Progress returns the latest scan snapshot.
func (s *Scanner) Progress() Progress {
	return s.progress.Load().(Progress)
}

func (s *Scanner) run(root string, startedAt time.Time) {
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		metrics.MetadataScanRunning.Set(0)
	}()

	ctx := context.Background()
	progress := Progress{
		State:     ScanRunning,
		Root:      root,
		StartedAt: &startedAt,
	}

	// Count eligible files first so Processed/TotalFiles is meaningful
	// from the start of the resolution pass.
	total, err := countMediaFiles(root)
	if err != nil {
		s.finish(progress, ScanError, fmt.Sprintf("failed to enumerate %s: %v", root, err))
		return
	}
	progress.TotalFiles = total
	s.progress.Store(progress)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Warn("Metadata scan: cannot access %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if isHidden(d.Name()) && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if isHidden(d.Name()) || !mediatypes.IsMediaFile(strings.ToLower(filepath.Ext(d.Name()))) {
			return nil
		}

		progress.Processed++
		progress.CurrentFile = path
		s.progress.Store(progress)

		cached, cacheErr := s.db.GetMetadata(ctx, path)
		if cacheErr == nil && s.resolver.Fresh(cached) {
			s.progress.Store(progress)
			return nil
		}

		if _, resolveErr := s.resolver.Resolve(ctx, path); resolveErr != nil {
			progress.Errors++
		} else {
			progress.Resolved++
		}
		s.progress.Store(progress)
		return nil
	})

	if walkErr != nil {
		s.finish(progress, ScanError, fmt.Sprintf("walk failed: %v", walkErr))
		return
	}

	logging.Info("Metadata scan finished: %d/%d files processed, %d resolved, %d errors",
		progress.Processed, progress.TotalFiles, progress.Resolved, progress.Errors)
	s.finish(progress, ScanCompleted, "")
}

func (s *Scanner) finish(progress Progress, state ScanState, errDetail string) {
	now := time.Now()
	progress.State = state
	progress.CurrentFile = ""
	progress.FinishedAt = &now
	progress.Error = errDetail
	s.progress.Store(progress)

	switch state {
	case ScanCompleted:
		metrics.MetadataScansTotal.WithLabelValues("completed").Inc()
	case ScanError:
		metrics.MetadataScansTotal.WithLabelValues("error").Inc()
		logging.Error("Metadata scan failed: %s", errDetail)
	}
}

func countMediaFiles(root string) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if isHidden(d.Name()) && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !isHidden(d.Name()) && mediatypes.IsMediaFile(strings.ToLower(filepath.Ext(d.Name()))) {
			count++
		}
		return nil
	})
	return count, err
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
