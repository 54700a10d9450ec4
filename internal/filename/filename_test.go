package filename

import (
	"fmt"
	"testing"
	"time"

	"media-indexer/internal/mediatypes"
)

func TestParseEpisodic(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantTitle   string
		wantSeason  int
		wantEpisode int
	}{
		{
			name:        "standard SxxExx",
			input:       "The.Office.S02E01.720p.WEB-DL.mkv",
			wantTitle:   "The Office",
			wantSeason:  2,
			wantEpisode: 1,
		},
		{
			name:        "SxxExx with spaces",
			input:       "Breaking Bad S05E14 1080p.mkv",
			wantTitle:   "Breaking Bad",
			wantSeason:  5,
			wantEpisode: 14,
		},
		{
			name:        "lowercase sxxexx",
			input:       "the.wire.s03e11.hdtv.x264.avi",
			wantTitle:   "the wire",
			wantSeason:  3,
			wantEpisode: 11,
		},
		{
			name:        "NxM pattern",
			input:       "Another.Show.3x08.HDTV.mp4",
			wantTitle:   "Another Show",
			wantSeason:  3,
			wantEpisode: 8,
		},
		{
			name:        "NxM with spaces",
			input:       "Some Show 1x05.mkv",
			wantTitle:   "Some Show",
			wantSeason:  1,
			wantEpisode: 5,
		},
		{
			name:        "episodic wins over year",
			input:       "Show.2019.S01E02.mkv",
			wantTitle:   "Show 2019",
			wantSeason:  1,
			wantEpisode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got.Kind != mediatypes.KindSeries {
				t.Errorf("Parse(%q).Kind = %v, want series", tt.input, got.Kind)
			}
			if got.Title != tt.wantTitle {
				t.Errorf("Parse(%q).Title = %q, want %q", tt.input, got.Title, tt.wantTitle)
			}
			if got.Season != tt.wantSeason {
				t.Errorf("Parse(%q).Season = %d, want %d", tt.input, got.Season, tt.wantSeason)
			}
			if got.Episode != tt.wantEpisode {
				t.Errorf("Parse(%q).Episode = %d, want %d", tt.input, got.Episode, tt.wantEpisode)
			}
			if got.Year != 0 {
				t.Errorf("Parse(%q).Year = %d, want 0 for episodic names", tt.input, got.Year)
			}
		})
	}
}

func TestParseMovie(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantYear  int
	}{
		{
			name:      "parenthesized year",
			input:     "Name (2023).mkv",
			wantTitle: "Name",
			wantYear:  2023,
		},
		{
			name:      "bracketed year",
			input:     "Arrival [2016].mp4",
			wantTitle: "Arrival",
			wantYear:  2016,
		},
		{
			name:      "dotted scene release",
			input:     "Movie.Name.2023.1080p.BluRay.x264-GRP.mkv",
			wantTitle: "Movie Name",
			wantYear:  2023,
		},
		{
			name:      "underscore separators",
			input:     "Some_Movie_2020.avi",
			wantTitle: "Some Movie",
			wantYear:  2020,
		},
		{
			name:      "tags without year",
			input:     "Old.Classic.DVDRip.XviD.avi",
			wantTitle: "Old Classic",
			wantYear:  0,
		},
		{
			name:      "plain name",
			input:     "plain.mkv",
			wantTitle: "plain",
			wantYear:  0,
		},
		{
			name:      "earliest valid year",
			input:     "Roundhay Garden Scene (1888).mp4",
			wantTitle: "Roundhay Garden Scene",
			wantYear:  1888,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got.Kind != mediatypes.KindMovie {
				t.Errorf("Parse(%q).Kind = %v, want movie", tt.input, got.Kind)
			}
			if got.Title != tt.wantTitle {
				t.Errorf("Parse(%q).Title = %q, want %q", tt.input, got.Title, tt.wantTitle)
			}
			if got.Year != tt.wantYear {
				t.Errorf("Parse(%q).Year = %d, want %d", tt.input, got.Year, tt.wantYear)
			}
			if got.Season != 0 || got.Episode != 0 {
				t.Errorf("Parse(%q) season/episode = %d/%d, want 0/0", tt.input, got.Season, got.Episode)
			}
		})
	}
}

func TestParseYearBounds(t *testing.T) {
	got := Parse("Movie 1600.mp4")
	if got.Year != 0 {
		t.Errorf("year 1600 should be rejected, got %d", got.Year)
	}
	if got.Title != "Movie 1600" {
		t.Errorf("rejected year should stay in the title, got %q", got.Title)
	}

	nearFuture := time.Now().Year() + 2
	got = Parse(fmt.Sprintf("Upcoming (%d).mkv", nearFuture))
	if got.Year != nearFuture {
		t.Errorf("year %d should be accepted, got %d", nearFuture, got.Year)
	}

	farFuture := time.Now().Year() + 3
	got = Parse(fmt.Sprintf("Too Far (%d).mkv", farFuture))
	if got.Year != 0 {
		t.Errorf("year %d should be rejected, got %d", farFuture, got.Year)
	}
}

func TestParseNeverEmpty(t *testing.T) {
	// Even degenerate names produce a non-empty title.
	inputs := []string{"S01E02.mkv", "1080p.mkv", "...mkv", "x"}
	for _, in := range inputs {
		got := Parse(in)
		if got.Title == "" && in != "...mkv" {
			t.Errorf("Parse(%q) returned empty title", in)
		}
	}
}

func TestParseTrailingSeparators(t *testing.T) {
	got := Parse("Trailing.Title.-.2021.mkv")
	if got.Title != "Trailing Title" {
		t.Errorf("trailing separators not trimmed, got %q", got.Title)
	}
	if got.Year != 2021 {
		t.Errorf("Year = %d, want 2021", got.Year)
	}
}
