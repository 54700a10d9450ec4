package database

import (
	"time"

	"media-indexer/internal/mediatypes"
)

// ScanStatus is the lifecycle state of a persisted indexing scan.
type ScanStatus string

const (
	ScanStatusRunning   ScanStatus = "running"
	ScanStatusCompleted ScanStatus = "completed"
	ScanStatusFailed    ScanStatus = "failed"
)

// Metadata source tags. A record tagged SourceFilename carries only the
// filename-derived draft and is re-resolved on next access.
const (
	SourceFilename   = "filename"
	SourceOMDb       = "omdb"
	SourceOMDbTVMaze = "omdb+tvmaze"
	SourceTVMaze     = "tvmaze"
	SourceWikidata   = "wikidata"
)

// FileEntry is one row of the browsable file index. Library is the
// top-level directory under the scan root that owns the entry.
type FileEntry struct {
	ID         int64                `json:"id"`
	Name       string               `json:"name"`
	Path       string               `json:"path"`
	ParentPath string               `json:"parentPath"`
	Kind       mediatypes.EntryKind `json:"kind"`
	Ext        string               `json:"ext,omitempty"`
	Size       int64                `json:"size"`
	ModTime    time.Time            `json:"modTime"`
	MimeType   string               `json:"mimeType,omitempty"`
	Library    string               `json:"library,omitempty"`
}

// ScanLog is one persisted indexing scan.
type ScanLog struct {
	ID             int64      `json:"id"`
	RootPath       string     `json:"rootPath"`
	TriggeredBy    string     `json:"triggeredBy,omitempty"`
	Status         ScanStatus `json:"status"`
	StartedAt      time.Time  `json:"startedAt"`
	FinishedAt     *time.Time `json:"finishedAt,omitempty"`
	FilesFound     int        `json:"filesFound"`
	FilesIndexed   int        `json:"filesIndexed"`
	FoldersIndexed int        `json:"foldersIndexed"`
	ErrorCount     int        `json:"errorCount"`
	ErrorDetail    string     `json:"errorDetail,omitempty"`
}

// ScanResult carries the terminal counters of a finished scan.
type ScanResult struct {
	FilesFound     int
	FilesIndexed   int
	FoldersIndexed int
	ErrorCount     int
	ErrorDetail    string
}

// MetadataRecord is one cached metadata row, keyed by absolute file path.
type MetadataRecord struct {
	Path         string               `json:"path"`
	Title        string               `json:"title"`
	Year         int                  `json:"year,omitempty"`
	Kind         mediatypes.MediaKind `json:"kind"`
	PosterPath   string               `json:"posterPath,omitempty"`
	Plot         string               `json:"plot,omitempty"`
	Rating       string               `json:"rating,omitempty"`
	Genre        string               `json:"genre,omitempty"`
	Director     string               `json:"director,omitempty"`
	Actors       string               `json:"actors,omitempty"`
	Runtime      string               `json:"runtime,omitempty"`
	ExternalID   string               `json:"externalId,omitempty"`
	TVMazeID     int                  `json:"tvmazeId,omitempty"`
	Season       int                  `json:"season,omitempty"`
	Episode      int                  `json:"episode,omitempty"`
	EpisodeTitle string               `json:"episodeTitle,omitempty"`
	Source       string               `json:"source"`
	FetchedAt    time.Time            `json:"fetchedAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// IndexStats summarizes the current state of the file index.
type IndexStats struct {
	TotalFiles       int            `json:"totalFiles"`
	TotalFolders     int            `json:"totalFolders"`
	TotalVideos      int            `json:"totalVideos"`
	TotalAudio       int            `json:"totalAudio"`
	MetadataRecords  int            `json:"metadataRecords"`
	MetadataBySource map[string]int `json:"metadataBySource,omitempty"`
	LastIndexed      time.Time      `json:"lastIndexed,omitempty"`
	IndexDuration    string         `json:"indexDuration,omitempty"`
}
