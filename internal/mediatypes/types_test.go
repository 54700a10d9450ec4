package mediatypes

import (
	"testing"
)

func TestGetEntryKind(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want EntryKind
	}{
		{
			name: "MP4 video",
			ext:  ".mp4",
			want: KindVideo,
		},
		{
			name: "MKV video",
			ext:  ".mkv",
			want: KindVideo,
		},
		{
			name: "MP3 audio",
			ext:  ".mp3",
			want: KindAudio,
		},
		{
			name: "FLAC audio",
			ext:  ".flac",
			want: KindAudio,
		},
		{
			name: "Text file",
			ext:  ".txt",
			want: KindOther,
		},
		{
			name: "Unknown extension",
			ext:  ".xyz",
			want: KindOther,
		},
		{
			name: "Empty extension",
			ext:  "",
			want: KindOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetEntryKind(tt.ext)
			if got != tt.want {
				t.Errorf("GetEntryKind(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}

func TestGetMimeType(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want string
	}{
		{
			name: "MP4 mime type",
			ext:  ".mp4",
			want: "video/mp4",
		},
		{
			name: "MKV mime type",
			ext:  ".mkv",
			want: "video/x-matroska",
		},
		{
			name: "MP3 mime type",
			ext:  ".mp3",
			want: "audio/mpeg",
		},
		{
			name: "Unknown extension returns octet-stream",
			ext:  ".unknown",
			want: "application/octet-stream",
		},
		{
			name: "Empty extension returns octet-stream",
			ext:  "",
			want: "application/octet-stream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetMimeType(tt.ext)
			if got != tt.want {
				t.Errorf("GetMimeType(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}

func TestIsMediaFile(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want bool
	}{
		{
			name: "MP4 is media",
			ext:  ".mp4",
			want: true,
		},
		{
			name: "FLAC is media",
			ext:  ".flac",
			want: true,
		},
		{
			name: "Text file is not media",
			ext:  ".txt",
			want: false,
		},
		{
			name: "Subtitle file is not media",
			ext:  ".srt",
			want: false,
		},
		{
			name: "Empty extension is not media",
			ext:  "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsMediaFile(tt.ext)
			if got != tt.want {
				t.Errorf("IsMediaFile(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}

func TestVideoExtensions(t *testing.T) {
	// Test that common video extensions are present
	commonVideos := []string{".mp4", ".mkv", ".avi", ".mov", ".webm"}
	for _, ext := range commonVideos {
		if !VideoExtensions[ext] {
			t.Errorf("Expected %s to be in VideoExtensions", ext)
		}
	}
}

func TestAudioExtensions(t *testing.T) {
	// Test that common audio extensions are present
	commonAudio := []string{".mp3", ".flac", ".m4a", ".ogg"}
	for _, ext := range commonAudio {
		if !AudioExtensions[ext] {
			t.Errorf("Expected %s to be in AudioExtensions", ext)
		}
	}
}

func TestEntryKindConstants(t *testing.T) {
	// Ensure constants have expected values
	if KindFolder != "folder" {
		t.Errorf("KindFolder = %v, want 'folder'", KindFolder)
	}
	if KindVideo != "video" {
		t.Errorf("KindVideo = %v, want 'video'", KindVideo)
	}
	if KindAudio != "audio" {
		t.Errorf("KindAudio = %v, want 'audio'", KindAudio)
	}
	if KindOther != "other" {
		t.Errorf("KindOther = %v, want 'other'", KindOther)
	}
}

func TestMediaKindConstants(t *testing.T) {
	if KindMovie != "movie" {
		t.Errorf("KindMovie = %v, want 'movie'", KindMovie)
	}
	if KindSeries != "series" {
		t.Errorf("KindSeries = %v, want 'series'", KindSeries)
	}
}
