package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"media-indexer/internal/logging"
	"media-indexer/internal/mediatypes"
	"media-indexer/internal/ratelimit"
)

// DefaultOMDbBaseURL is the production OMDb API endpoint.
const DefaultOMDbBaseURL = "https://www.omdbapi.com/"

// OMDbClient looks up structured movie and series metadata by title.
type OMDbClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *ratelimit.Limiter
}

type omdbResponse struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Plot     string `json:"Plot"`
	Rated    string `json:"Rated"`
	Genre    string `json:"Genre"`
	Director string `json:"Director"`
	Actors   string `json:"Actors"`
	Runtime  string `json:"Runtime"`
	Poster   string `json:"Poster"`
	ImdbID   string `json:"imdbID"`
	Rating   string `json:"imdbRating"`
}

// NewOMDbClient creates an OMDb client. baseURL may be empty to use the
// production endpoint.
func NewOMDbClient(baseURL, apiKey string, limiter *ratelimit.Limiter) *OMDbClient {
	if baseURL == "" {
		baseURL = DefaultOMDbBaseURL
	}
	return &OMDbClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: limiter,
	}
}

// Lookup searches for a title. When year is non-zero and the first query
// finds nothing, the lookup is retried once without the year. A lookup that
// finds nothing returns (nil, nil).
func (c *OMDbClient) Lookup(ctx context.Context, title string, year int, kind mediatypes.MediaKind) (*Record, error) {
	rec, err := c.query(ctx, title, year, kind)
	if err != nil {
		return nil, err
	}
	if rec == nil && year > 0 {
		logging.Debug("OMDb: no match for %q (%d), retrying without year", title, year)
		return c.query(ctx, title, 0, kind)
	}
	return rec, nil
}

func (c *OMDbClient) query(ctx context.Context, title string, year int, kind mediatypes.MediaKind) (*Record, error) {
	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("t", title)
	params.Set("plot", "full")
	if year > 0 {
		params.Set("y", strconv.Itoa(year))
	}
	switch kind {
	case mediatypes.KindMovie:
		params.Set("type", "movie")
	case mediatypes.KindSeries:
		params.Set("type", "series")
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create OMDb request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		observeRequest("omdb", start, "error")
		return nil, fmt.Errorf("OMDb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observeRequest("omdb", start, "error")
		return nil, fmt.Errorf("OMDb request failed with status %d", resp.StatusCode)
	}

	var body omdbResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		observeRequest("omdb", start, "error")
		return nil, fmt.Errorf("failed to decode OMDb response: %w", err)
	}

	// OMDb reports "not found" as a 200 with Response=False
	if body.Response != "True" {
		observeRequest("omdb", start, "miss")
		return nil, nil
	}
	observeRequest("omdb", start, "success")

	rec := &Record{
		Title:    body.Title,
		Plot:     body.Plot,
		Rating:   body.Rating,
		Genre:    body.Genre,
		Director: body.Director,
		Actors:   body.Actors,
		Runtime:  body.Runtime,
		ImdbID:   body.ImdbID,
	}
	// Series years come back as ranges like "2019-2023"
	if len(body.Year) >= 4 {
		if y, err := strconv.Atoi(body.Year[:4]); err == nil {
			rec.Year = y
		}
	}
	if body.Poster != "" && body.Poster != "N/A" {
		rec.PosterURL = body.Poster
	}
	return rec, nil
}
