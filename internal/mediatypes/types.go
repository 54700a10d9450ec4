package mediatypes

// EntryKind classifies a filesystem entry in the index.
type EntryKind string

const (
	// KindFolder represents a directory.
	KindFolder EntryKind = "folder"
	// KindVideo represents a video file.
	KindVideo EntryKind = "video"
	// KindAudio represents an audio file.
	KindAudio EntryKind = "audio"
	// KindOther represents a file outside the allow-list. Never indexed.
	KindOther EntryKind = "other"
)

// MediaKind classifies a resolved title.
type MediaKind string

const (
	// KindMovie is a standalone feature.
	KindMovie MediaKind = "movie"
	// KindSeries is episodic content.
	KindSeries MediaKind = "series"
)

// VideoExtensions maps file extensions to whether they are indexed as video.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".m4v":  true,
	".mpeg": true,
	".mpg":  true,
	".3gp":  true,
	".ts":   true,
}

// AudioExtensions maps file extensions to whether they are indexed as audio.
var AudioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".m4a":  true,
	".aac":  true,
	".ogg":  true,
	".opus": true,
	".wav":  true,
	".wma":  true,
	".alac": true,
}

// MimeTypes maps file extensions to their MIME types.
var MimeTypes = map[string]string{
	// Video
	".mp4":  "video/mp4",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".webm": "video/webm",
	".m4v":  "video/x-m4v",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".3gp":  "video/3gpp",
	".ts":   "video/mp2t",

	// Audio
	".mp3":  "audio/mpeg",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".wav":  "audio/wav",
	".wma":  "audio/x-ms-wma",
	".alac": "audio/mp4",
}

// GetEntryKind returns the EntryKind for a given file extension.
// The extension should be lowercase and include the leading dot (e.g., ".mkv").
// Returns KindOther if the extension is not on the allow-list.
func GetEntryKind(ext string) EntryKind {
	if VideoExtensions[ext] {
		return KindVideo
	}
	if AudioExtensions[ext] {
		return KindAudio
	}
	return KindOther
}

// GetMimeType returns the MIME type for a given file extension.
// Returns "application/octet-stream" if the extension is not recognized.
func GetMimeType(ext string) string {
	if mime, ok := MimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}

// IsMediaFile returns true if the extension is on the video or audio allow-list.
func IsMediaFile(ext string) bool {
	return GetEntryKind(ext) != KindOther
}
