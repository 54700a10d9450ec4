package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"media-indexer/internal/logging"
)

// StartMetadataScan triggers a metadata resolution pass over the media
// directory. A running scan rejects the request with 409 and its snapshot.
func (h *Handlers) StartMetadataScan(w http.ResponseWriter, _ *http.Request) {
	progress, alreadyRunning := h.scanner.Start(h.mediaDir)

	w.Header().Set("Content-Type", "application/json")
	if alreadyRunning {
		w.WriteHeader(http.StatusConflict)
	} else {
		w.WriteHeader(http.StatusAccepted)
	}
	writeJSON(w, progress)
}

// GetMetadataProgress returns the current metadata scan snapshot.
func (h *Handlers) GetMetadataProgress(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, h.scanner.Progress())
}

// ResolveMetadata resolves metadata for a single file immediately. Fresh
// cached records are returned as-is; stale or missing records trigger
// provider lookups.
func (h *Handlers) ResolveMetadata(w http.ResponseWriter, r *http.Request) {
	path, ok := h.mediaPath(w, r)
	if !ok {
		return
	}

	record, err := h.resolver.Resolve(r.Context(), path)
	if err != nil {
		logging.Error("Failed to resolve metadata for %s: %v", path, err)
		writeJSONError(w, "failed to resolve metadata", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, record)
}

// GetMetadata returns the cached metadata record for a file, or 404 when
// none exists.
func (h *Handlers) GetMetadata(w http.ResponseWriter, r *http.Request) {
	path, ok := h.mediaPath(w, r)
	if !ok {
		return
	}

	record, err := h.db.GetMetadata(r.Context(), path)
	if err != nil {
		logging.Error("Failed to read metadata for %s: %v", path, err)
		writeJSONError(w, "failed to read metadata", http.StatusInternalServerError)
		return
	}
	if record == nil {
		writeJSONError(w, "no metadata for path", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, record)
}

// mediaPath extracts and validates the path query parameter. The path must
// resolve inside the media directory.
func (h *Handlers) mediaPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSONError(w, "path parameter is required", http.StatusBadRequest)
		return "", false
	}

	abs, ok := h.insideMediaDir(path)
	if !ok {
		writeJSONError(w, "path is outside the media directory", http.StatusBadRequest)
		return "", false
	}

	return abs, true
}

// insideMediaDir resolves path to an absolute path and reports whether it
// falls inside the media directory.
func (h *Handlers) insideMediaDir(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	if abs != h.mediaDir && !strings.HasPrefix(abs, h.mediaDir+string(filepath.Separator)) {
		return "", false
	}
	return abs, true
}
