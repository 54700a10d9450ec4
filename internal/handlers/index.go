package handlers

import (
	"net/http"

	"media-indexer/internal/indexer"
	"media-indexer/internal/logging"
)

// ScanResponse reports the outcome of an index scan request.
type ScanResponse struct {
	Status string `json:"status"`
	ScanID int64  `json:"scanId"`
}

// StartIndexScan triggers a full index scan of the media directory, or of
// a subtree given by the root query parameter. When a scan is already
// running the request is rejected with 409 and the running scan's id.
func (h *Handlers) StartIndexScan(w http.ResponseWriter, r *http.Request) {
	root := r.URL.Query().Get("root")
	if root == "" {
		root = h.mediaDir
	} else {
		abs, ok := h.insideMediaDir(root)
		if !ok {
			writeJSONError(w, "root is outside the media directory", http.StatusBadRequest)
			return
		}
		root = abs
	}

	scanID, alreadyRunning, err := h.indexer.StartScan(root, indexer.TriggerAPI)
	if err != nil {
		logging.Error("Failed to start index scan: %v", err)
		writeJSONError(w, "failed to start scan", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if alreadyRunning {
		w.WriteHeader(http.StatusConflict)
		writeJSON(w, ScanResponse{Status: "already_running", ScanID: scanID})
		return
	}

	w.WriteHeader(http.StatusAccepted)
	writeJSON(w, ScanResponse{Status: "started", ScanID: scanID})
}

// GetIndexStatus returns the running scan's live counters, or the most
// recent persisted scan log when nothing is running.
func (h *Handlers) GetIndexStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.indexer.GetScanStatus(r.Context())
	if err != nil {
		logging.Error("Failed to read scan status: %v", err)
		writeJSONError(w, "failed to read scan status", http.StatusInternalServerError)
		return
	}
	if status == nil {
		writeJSONError(w, "no scans recorded", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, status)
}

// SubtreeStats counts indexed entries under one path prefix.
type SubtreeStats struct {
	Path    string `json:"path"`
	Files   int    `json:"files"`
	Folders int    `json:"folders"`
}

// GetIndexStats returns aggregate index statistics, or the counts under a
// single subtree when a path query parameter is given.
func (h *Handlers) GetIndexStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if path := r.URL.Query().Get("path"); path != "" {
		files, folders, err := h.db.CountByPrefix(r.Context(), path)
		if err != nil {
			logging.Error("Failed to count subtree %s: %v", path, err)
			writeJSONError(w, "failed to count subtree", http.StatusInternalServerError)
			return
		}
		writeJSON(w, SubtreeStats{Path: path, Files: files, Folders: folders})
		return
	}

	writeJSON(w, h.db.GetStats())
}
