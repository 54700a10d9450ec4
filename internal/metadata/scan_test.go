package metadata

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"media-indexer/internal/mediatypes"
	"media-indexer/internal/providers"
)

type blockingStructured struct {
	calls   atomic.Int32
	release chan struct{}
}

func (b *blockingStructured) Lookup(_ context.Context, _ string, _ int, _ mediatypes.MediaKind) (*providers.Record, error) {
	b.calls.Add(1)
	if b.release != nil {
		<-b.release
	}
	return nil, nil
}

func makeMediaTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := []string{
		"Movie.One.2020.mkv",
		"Movie.Two.2021.mp4",
		"song.mp3",
		"notes.txt",
		".hidden.mkv",
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatalf("failed to create subdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", "Episode.S01E01.mkv"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create nested file: %v", err)
	}
	return root
}

func waitForScan(t *testing.T, s *Scanner) Progress {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		p := s.Progress()
		if p.State == ScanCompleted || p.State == ScanError {
			return p
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("scan did not finish, state: %+v", s.Progress())
	return Progress{}
}

func TestScannerResolvesMediaFiles(t *testing.T) {
	db := newTestDB(t)
	root := makeMediaTree(t)
	resolver := NewResolver(db, &fakeStructured{}, &fakeEpisodic{}, &fakeLinked{}, &fakePosters{}, 0)
	scanner := NewScanner(db, resolver)

	if _, running := scanner.Start(root); running {
		t.Fatal("fresh scanner reported already running")
	}
	p := waitForScan(t, scanner)

	if p.State != ScanCompleted {
		t.Fatalf("State = %q, error = %q", p.State, p.Error)
	}
	// Two movies, one song, one nested episode; text and hidden skipped
	if p.TotalFiles != 4 {
		t.Errorf("TotalFiles = %d, want 4", p.TotalFiles)
	}
	if p.Processed != 4 {
		t.Errorf("Processed = %d, want 4", p.Processed)
	}
	if p.Resolved != 4 {
		t.Errorf("Resolved = %d, want 4", p.Resolved)
	}
	if p.Errors != 0 {
		t.Errorf("Errors = %d", p.Errors)
	}
	if p.FinishedAt == nil {
		t.Error("FinishedAt not set")
	}
	if p.CurrentFile != "" {
		t.Errorf("CurrentFile = %q after completion", p.CurrentFile)
	}

	rec, err := db.GetMetadata(context.Background(), filepath.Join(root, "sub", "Episode.S01E01.mkv"))
	if err != nil || rec == nil {
		t.Errorf("nested file not resolved: rec=%v err=%v", rec, err)
	}
}

func TestScannerSkipsFreshRecords(t *testing.T) {
	db := newTestDB(t)
	root := makeMediaTree(t)
	omdb := &fakeStructured{rec: &providers.Record{Title: "Matched", Year: 2020, ImdbID: "tt1"}}
	resolver := NewResolver(db, omdb, &fakeEpisodic{}, &fakeLinked{}, &fakePosters{}, 0)
	scanner := NewScanner(db, resolver)

	scanner.Start(root)
	waitForScan(t, scanner)
	firstCalls := omdb.calls.Load()

	scanner.Start(root)
	p := waitForScan(t, scanner)

	if got := omdb.calls.Load(); got != firstCalls {
		t.Errorf("provider calls grew from %d to %d on fresh re-scan", firstCalls, got)
	}
	if p.Resolved != 0 {
		t.Errorf("Resolved = %d, want 0 on fresh re-scan", p.Resolved)
	}
	if p.Processed != 4 {
		t.Errorf("Processed = %d, want 4", p.Processed)
	}
}

func TestScannerSingleFlight(t *testing.T) {
	db := newTestDB(t)
	root := makeMediaTree(t)
	blocking := &blockingStructured{release: make(chan struct{})}
	resolver := NewResolver(db, blocking, &fakeEpisodic{}, &fakeLinked{}, &fakePosters{}, 0)
	scanner := NewScanner(db, resolver)

	if _, running := scanner.Start(root); running {
		t.Fatal("first scan rejected")
	}

	// Wait until the worker is inside a provider call
	deadline := time.Now().Add(2 * time.Second)
	for blocking.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	snapshot, running := scanner.Start(root)
	if !running {
		t.Error("second scan was not rejected")
	}
	if snapshot.State != ScanRunning {
		t.Errorf("snapshot state = %q, want running", snapshot.State)
	}
	if snapshot.CurrentFile == "" {
		t.Error("running snapshot has no current file")
	}

	close(blocking.release)
	p := waitForScan(t, scanner)
	if p.State != ScanCompleted {
		t.Errorf("State = %q after release", p.State)
	}

	// A new scan is accepted once the previous one finished
	if _, running := scanner.Start(root); running {
		t.Error("scan rejected after previous completed")
	}
	waitForScan(t, scanner)
}

func TestScannerResolvesUppercaseExtensions(t *testing.T) {
	db := newTestDB(t)
	root := t.TempDir()
	path := filepath.Join(root, "MOVIE.ONE.2020.MKV")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	resolver := NewResolver(db, &fakeStructured{}, &fakeEpisodic{}, &fakeLinked{}, &fakePosters{}, 0)
	scanner := NewScanner(db, resolver)

	scanner.Start(root)
	p := waitForScan(t, scanner)

	if p.State != ScanCompleted {
		t.Fatalf("State = %q, error = %q", p.State, p.Error)
	}
	if p.TotalFiles != 1 || p.Processed != 1 {
		t.Errorf("progress = %d/%d, want 1/1", p.Processed, p.TotalFiles)
	}

	rec, err := db.GetMetadata(context.Background(), path)
	if err != nil || rec == nil {
		t.Fatalf("uppercase-extension file not resolved: rec=%v err=%v", rec, err)
	}
}

func TestScannerMissingRoot(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(db, &fakeStructured{}, &fakeEpisodic{}, &fakeLinked{}, &fakePosters{}, 0)
	scanner := NewScanner(db, resolver)

	scanner.Start(filepath.Join(t.TempDir(), "does-not-exist"))
	p := waitForScan(t, scanner)

	if p.State != ScanError {
		t.Errorf("State = %q, want error", p.State)
	}
	if p.Error == "" {
		t.Error("Error detail empty")
	}
}

func TestScannerInitialState(t *testing.T) {
	db := newTestDB(t)
	resolver := NewResolver(db, nil, nil, nil, nil, 0)
	scanner := NewScanner(db, resolver)

	if p := scanner.Progress(); p.State != ScanIdle {
		t.Errorf("initial state = %q, want idle", p.State)
	}
}
