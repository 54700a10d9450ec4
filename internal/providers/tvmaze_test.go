package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newTVMazeTestServer(t *testing.T, requests *atomic.Int32, episodeStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/singlesearch/shows", func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			requests.Add(1)
		}
		if r.URL.Query().Get("q") == "" {
			t.Error("missing q param on show search")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 42,
			"name": "Sample Show",
			"premiered": "2019-04-01",
			"image": {"original": "https://example.com/show.jpg"}
		}`))
	})
	mux.HandleFunc("/shows/42/episodebynumber", func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			requests.Add(1)
		}
		if episodeStatus != http.StatusOK {
			w.WriteHeader(episodeStatus)
			return
		}
		if r.URL.Query().Get("season") != "1" || r.URL.Query().Get("number") != "2" {
			t.Errorf("unexpected episode params: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"season": 1,
			"number": 2,
			"name": "The Second One",
			"summary": "<p>Something happens.</p>"
		}`))
	})
	return httptest.NewServer(mux)
}

func TestTVMazeShowAndEpisode(t *testing.T) {
	var requests atomic.Int32
	server := newTVMazeTestServer(t, &requests, http.StatusOK)
	defer server.Close()

	client := NewTVMazeClient(server.URL, testLimiter())
	result, err := client.Lookup(context.Background(), "Sample Show", 1, 2)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if result == nil {
		t.Fatal("Lookup returned nil result")
	}
	if result.Show.ID != 42 {
		t.Errorf("Show.ID = %d, want 42", result.Show.ID)
	}
	if result.Show.Name != "Sample Show" {
		t.Errorf("Show.Name = %q", result.Show.Name)
	}
	if result.Show.PosterURL != "https://example.com/show.jpg" {
		t.Errorf("Show.PosterURL = %q", result.Show.PosterURL)
	}
	if result.Episode == nil {
		t.Fatal("expected episode result")
	}
	if result.Episode.Name != "The Second One" {
		t.Errorf("Episode.Name = %q", result.Episode.Name)
	}
	if result.Episode.Summary != "<p>Something happens.</p>" {
		t.Errorf("Episode.Summary = %q", result.Episode.Summary)
	}
	if got := requests.Load(); got != 2 {
		t.Errorf("request count = %d, want 2", got)
	}
}

func TestTVMazeShowOnly(t *testing.T) {
	var requests atomic.Int32
	server := newTVMazeTestServer(t, &requests, http.StatusOK)
	defer server.Close()

	client := NewTVMazeClient(server.URL, testLimiter())
	result, err := client.Lookup(context.Background(), "Sample Show", 0, 0)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if result == nil || result.Episode != nil {
		t.Errorf("expected show without episode, got %+v", result)
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("request count = %d, want 1 (no episode call)", got)
	}
}

func TestTVMazeEpisodeMiss(t *testing.T) {
	server := newTVMazeTestServer(t, nil, http.StatusNotFound)
	defer server.Close()

	client := NewTVMazeClient(server.URL, testLimiter())
	result, err := client.Lookup(context.Background(), "Sample Show", 1, 2)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if result == nil {
		t.Fatal("show match should survive an episode miss")
	}
	if result.Episode != nil {
		t.Errorf("expected nil episode, got %+v", result.Episode)
	}
}

func TestTVMazeShowNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewTVMazeClient(server.URL, testLimiter())
	result, err := client.Lookup(context.Background(), "No Such Show", 1, 1)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result, got %+v", result)
	}
}

func TestTVMazeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewTVMazeClient(server.URL, testLimiter())
	if _, err := client.Lookup(context.Background(), "Broken", 0, 0); err == nil {
		t.Error("expected error for 500 response")
	}
}
