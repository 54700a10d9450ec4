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
	"media-indexer/internal/ratelimit"
)

// DefaultTVMazeBaseURL is the production TVMaze API endpoint.
const DefaultTVMazeBaseURL = "https://api.tvmaze.com"

// TVMazeClient looks up show and episode detail for series.
type TVMazeClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *ratelimit.Limiter
}

type tvmazeShow struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Premiered string `json:"premiered"`
	Image     struct {
		Original string `json:"original"`
	} `json:"image"`
}

type tvmazeEpisode struct {
	Season  int    `json:"season"`
	Number  int    `json:"number"`
	Name    string `json:"name"`
	Summary string `json:"summary"`
}

// NewTVMazeClient creates a TVMaze client. baseURL may be empty to use the
// production endpoint.
func NewTVMazeClient(baseURL string, limiter *ratelimit.Limiter) *TVMazeClient {
	if baseURL == "" {
		baseURL = DefaultTVMazeBaseURL
	}
	return &TVMazeClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: limiter,
	}
}

// Lookup finds a show by title. When season and episode are both positive, a
// second rate-limited call fetches that episode; an episode miss does not
// fail the show lookup. A show miss returns (nil, nil).
func (c *TVMazeClient) Lookup(ctx context.Context, title string, season, episode int) (*ShowResult, error) {
	show, err := c.findShow(ctx, title)
	if err != nil {
		return nil, err
	}
	if show == nil {
		return nil, nil
	}

	result := &ShowResult{Show: *show}
	if season > 0 && episode > 0 {
		ep, err := c.findEpisode(ctx, show.ID, season, episode)
		if err != nil {
			logging.Warn("TVMaze: episode lookup failed for show %d S%02dE%02d: %v", show.ID, season, episode, err)
		} else {
			result.Episode = ep
		}
	}
	return result, nil
}

func (c *TVMazeClient) findShow(ctx context.Context, title string) (*Show, error) {
	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	searchURL := fmt.Sprintf("%s/singlesearch/shows?q=%s", c.baseURL, url.QueryEscape(title))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create TVMaze request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		observeRequest("tvmaze", start, "error")
		return nil, fmt.Errorf("TVMaze search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		observeRequest("tvmaze", start, "miss")
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		observeRequest("tvmaze", start, "error")
		return nil, fmt.Errorf("TVMaze search failed with status %d", resp.StatusCode)
	}

	var body tvmazeShow
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		observeRequest("tvmaze", start, "error")
		return nil, fmt.Errorf("failed to decode TVMaze response: %w", err)
	}
	observeRequest("tvmaze", start, "success")

	return &Show{
		ID:        body.ID,
		Name:      body.Name,
		Premiered: body.Premiered,
		PosterURL: body.Image.Original,
	}, nil
}

func (c *TVMazeClient) findEpisode(ctx context.Context, showID, season, episode int) (*Episode, error) {
	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	epURL := fmt.Sprintf("%s/shows/%d/episodebynumber?season=%s&number=%s",
		c.baseURL, showID, strconv.Itoa(season), strconv.Itoa(episode))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, epURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create TVMaze request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		observeRequest("tvmaze", start, "error")
		return nil, fmt.Errorf("TVMaze episode lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		observeRequest("tvmaze", start, "miss")
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		observeRequest("tvmaze", start, "error")
		return nil, fmt.Errorf("TVMaze episode lookup failed with status %d", resp.StatusCode)
	}

	var body tvmazeEpisode
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		observeRequest("tvmaze", start, "error")
		return nil, fmt.Errorf("failed to decode TVMaze response: %w", err)
	}
	observeRequest("tvmaze", start, "success")

	return &Episode{
		Season:  body.Season,
		Number:  body.Number,
		Name:    body.Name,
		Summary: body.Summary,
	}, nil
}
