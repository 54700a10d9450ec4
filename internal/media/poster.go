package media

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"media-indexer/internal/logging"
	"media-indexer/internal/metrics"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const (
	// maxPosterWidth is the width above which downloaded artwork is
	// downscaled before being written to disk.
	maxPosterWidth = 600

	// maxDownloadBytes bounds how much of a response body is read.
	maxDownloadBytes = 20 << 20
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// PosterFetcher downloads poster artwork into a local cache directory.
type PosterFetcher struct {
	posterDir  string
	webPrefix  string
	httpClient *http.Client
}

// NewPosterFetcher creates a fetcher writing into posterDir. webPrefix is
// the site-relative path prefix under which cached posters are served.
func NewPosterFetcher(posterDir, webPrefix string) *PosterFetcher {
	if err := os.MkdirAll(posterDir, 0755); err != nil {
		logging.Warn("PosterFetcher: failed to create poster dir: %v", err)
	}
	return &PosterFetcher{
		posterDir: posterDir,
		webPrefix: strings.TrimRight(webPrefix, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch downloads imageURL and stores it under a name derived from key.
// It returns the site-relative path of the cached poster, or "" when the
// URL is empty or the download fails. Fetch never returns an error;
// artwork is best-effort and must not abort metadata resolution.
func (f *PosterFetcher) Fetch(imageURL, key string) string {
	if imageURL == "" {
		metrics.PosterFetchesTotal.WithLabelValues("skipped").Inc()
		return ""
	}

	name := f.fileName(imageURL, key)
	localPath := filepath.Join(f.posterDir, name)

	if _, err := os.Stat(localPath); err == nil {
		logging.Debug("Poster cache hit: %s", name)
		metrics.PosterFetchesTotal.WithLabelValues("skipped").Inc()
		return f.webPrefix + "/" + name
	}

	data, err := f.download(imageURL)
	if err != nil {
		logging.Warn("Poster download failed for %s: %v", imageURL, err)
		metrics.PosterFetchesTotal.WithLabelValues("error").Inc()
		return ""
	}

	// Oversized artwork gets downscaled and re-encoded as JPEG.
	if img, _, decodeErr := image.Decode(bytes.NewReader(data)); decodeErr == nil {
		if img.Bounds().Dx() > maxPosterWidth {
			resized := imaging.Resize(img, maxPosterWidth, 0, imaging.Lanczos)
			var buf bytes.Buffer
			if encodeErr := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 80}); encodeErr == nil {
				data = buf.Bytes()
				name = strings.TrimSuffix(name, path.Ext(name)) + ".jpg"
				localPath = filepath.Join(f.posterDir, name)
			}
		}
	}

	if err := os.WriteFile(localPath, data, 0644); err != nil {
		logging.Warn("Failed to write poster %s: %v", localPath, err)
		metrics.PosterFetchesTotal.WithLabelValues("error").Inc()
		return ""
	}

	logging.Debug("Poster cached: %s (%d bytes)", name, len(data))
	metrics.PosterFetchesTotal.WithLabelValues("success").Inc()
	metrics.PosterCacheSize.Add(float64(len(data)))

	return f.webPrefix + "/" + name
}

func (f *PosterFetcher) download(imageURL string) ([]byte, error) {
	resp, err := f.httpClient.Get(imageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty response body")
	}
	return data, nil
}

// fileName derives a filesystem-safe name from the cache key, keeping the
// extension of the source URL. Keys that sanitize to nothing fall back to
// a hash of the key.
func (f *PosterFetcher) fileName(imageURL, key string) string {
	ext := ".jpg"
	if u, err := url.Parse(imageURL); err == nil {
		if e := strings.ToLower(path.Ext(u.Path)); e != "" && len(e) <= 5 {
			ext = e
		}
	}

	safe := unsafeChars.ReplaceAllString(key, "_")
	safe = strings.Trim(safe, "_")
	if len(safe) > 120 {
		safe = safe[:120]
	}
	if safe == "" {
		safe = fmt.Sprintf("%x", md5.Sum([]byte(key)))
	}
	return safe + ext
}
