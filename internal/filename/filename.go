package filename

import (
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"media-indexer/internal/mediatypes"
)

// Parsed holds the fields extracted from a media filename. Year, Season, and
// Episode are 0 when not present.
type Parsed struct {
	Title   string
	Year    int
	Season  int
	Episode int
	Kind    mediatypes.MediaKind
}

// Earliest year accepted during extraction. Film did not exist before 1888.
const minYear = 1888

// Episodic patterns, most specific first. First match wins.
var episodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:^|[\s._-])S(\d{1,2})\s*E(\d{1,2})`),
	regexp.MustCompile(`(?i)(?:^|[\s._-])(\d{1,2})x(\d{1,2})`),
}

// Year extraction: parenthesized anywhere, or a bare trailing run of 4 digits.
var (
	yearInParensRx   = regexp.MustCompile(`[\(\[](\d{4})[\)\]]`)
	yearTrailingRx   = regexp.MustCompile(`(?:^|[\s._-])(\d{4})\s*$`)
	collapseSpacesRx = regexp.MustCompile(`\s+`)
)

// releaseTags is the vocabulary of release-group and quality markers stripped
// from filename tails. Checked case-insensitively.
var releaseTags = []string{
	// Resolution
	"480p", "480i", "576p", "576i", "720p", "720i", "1080p", "1080i", "2160p", "4k", "uhd",
	// Source
	"bluray", "blu-ray", "bdrip", "brrip", "bdremux", "remux",
	"dvdrip", "dvdscr", "dvd", "hdrip",
	"webrip", "web-dl", "webdl", "web",
	"hdtv", "pdtv", "tvrip", "cam", "telesync", "screener",
	// Video codecs
	"x264", "x265", "h264", "h265", "h.264", "h.265", "hevc", "avc", "xvid", "divx", "av1", "10bit", "8bit",
	// Audio
	"aac", "ac3", "ac-3", "eac3", "dts", "dts-hd", "truehd", "atmos", "flac", "opus", "dd5.1", "5.1", "7.1", "2.0",
	// Edition / misc
	"proper", "repack", "rerip", "extended", "unrated", "theatrical", "remastered",
	"limited", "internal", "multi", "subbed", "dubbed", "subs",
}

// releaseTagRx matches the first release tag and everything after it, so a
// single removal cleans the whole tail.
var releaseTagRx = buildTagRegexp(releaseTags)

func buildTagRegexp(tags []string) *regexp.Regexp {
	quoted := make([]string, len(tags))
	for i, tag := range tags {
		quoted[i] = regexp.QuoteMeta(tag)
	}
	// Longest alternative first so "1080p" is not consumed as "1080".
	sort.Slice(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })
	return regexp.MustCompile(`(?i)[\s._\-\(\[](?:` + strings.Join(quoted, "|") + `)(?:[\s._\-\)\]].*)?$`)
}

// Parse extracts title, year, season, episode, and kind from a raw filename.
// The extension is stripped internally. Parse never fails: at minimum the
// cleaned filename is returned as the title with kind movie.
func Parse(name string) Parsed {
	base := strings.TrimSuffix(name, filepath.Ext(name))

	result := Parsed{Kind: mediatypes.KindMovie}
	title := base

	// Episodic patterns take precedence over year extraction.
	for _, rx := range episodePatterns {
		if m := rx.FindStringSubmatchIndex(base); m != nil {
			result.Season, _ = strconv.Atoi(base[m[2]:m[3]])
			result.Episode, _ = strconv.Atoi(base[m[4]:m[5]])
			result.Kind = mediatypes.KindSeries
			title = base[:m[0]]
			break
		}
	}

	title = releaseTagRx.ReplaceAllString(title, "")

	if result.Kind == mediatypes.KindMovie {
		if year, rest, ok := extractYear(title); ok {
			result.Year = year
			title = rest
		}
	}

	result.Title = normalizeTitle(title)
	if result.Title == "" {
		result.Title = normalizeTitle(base)
	}
	return result
}

// extractYear looks for a parenthesized year anywhere, then a bare trailing
// year. Values outside [1888, currentYear+2] are rejected and the filename is
// left untouched.
func extractYear(s string) (year int, rest string, ok bool) {
	if m := yearInParensRx.FindStringSubmatchIndex(s); m != nil {
		if y := validYear(s[m[2]:m[3]]); y > 0 {
			return y, s[:m[0]], true
		}
	}
	if m := yearTrailingRx.FindStringSubmatchIndex(s); m != nil {
		if y := validYear(s[m[2]:m[3]]); y > 0 {
			return y, s[:m[0]], true
		}
	}
	return 0, s, false
}

func validYear(digits string) int {
	y, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	if y < minYear || y > time.Now().Year()+2 {
		return 0
	}
	return y
}

// normalizeTitle converts dots and underscores to spaces, collapses runs of
// whitespace, and trims trailing separators.
func normalizeTitle(s string) string {
	s = strings.ReplaceAll(s, ".", " ")
	s = strings.ReplaceAll(s, "_", " ")
	s = collapseSpacesRx.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	return strings.TrimRight(s, " -")
}
