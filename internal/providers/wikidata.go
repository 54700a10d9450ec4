package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"media-indexer/internal/ratelimit"
)

// DefaultWikidataBaseURL is the production Wikidata SPARQL endpoint.
const DefaultWikidataBaseURL = "https://query.wikidata.org/sparql"

// WikidataClient answers a single SPARQL query per lookup. It is the last
// resort when neither OMDb nor TVMaze produced a match.
type WikidataClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *ratelimit.Limiter
}

type sparqlResponse struct {
	Results struct {
		Bindings []map[string]struct {
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

// NewWikidataClient creates a Wikidata client. baseURL may be empty to use
// the production endpoint.
func NewWikidataClient(baseURL string, limiter *ratelimit.Limiter) *WikidataClient {
	if baseURL == "" {
		baseURL = DefaultWikidataBaseURL
	}
	return &WikidataClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: limiter,
	}
}

// Lookup queries for an audiovisual work matching the title, optionally
// narrowed by publication year. A lookup that finds nothing returns
// (nil, nil).
func (c *WikidataClient) Lookup(ctx context.Context, title string, year int) (*LinkedResult, error) {
	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	params := url.Values{}
	params.Set("query", buildQuery(title, year))
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Wikidata request: %w", err)
	}
	req.Header.Set("Accept", "application/sparql-results+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		observeRequest("wikidata", start, "error")
		return nil, fmt.Errorf("Wikidata query failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observeRequest("wikidata", start, "error")
		return nil, fmt.Errorf("Wikidata query failed with status %d", resp.StatusCode)
	}

	var body sparqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		observeRequest("wikidata", start, "error")
		return nil, fmt.Errorf("failed to decode Wikidata response: %w", err)
	}

	if len(body.Results.Bindings) == 0 {
		observeRequest("wikidata", start, "miss")
		return nil, nil
	}
	observeRequest("wikidata", start, "success")

	binding := body.Results.Bindings[0]
	result := &LinkedResult{
		Title:    binding["itemLabel"].Value,
		ImageURL: binding["image"].Value,
	}
	// Entity IDs come back as full URIs like http://www.wikidata.org/entity/Q172241
	if uri := binding["item"].Value; uri != "" {
		if idx := strings.LastIndex(uri, "/"); idx >= 0 {
			result.EntityID = uri[idx+1:]
		}
	}
	return result, nil
}

func buildQuery(title string, year int) string {
	var b strings.Builder
	b.WriteString("SELECT ?item ?itemLabel ?image WHERE { ")
	b.WriteString(`?item rdfs:label "` + escapeLiteral(title) + `"@en . `)
	b.WriteString("?item wdt:P31/wdt:P279* wd:Q2431196 . ")
	if year > 0 {
		b.WriteString("?item wdt:P577 ?date . ")
		b.WriteString(fmt.Sprintf("FILTER(YEAR(?date) = %d) ", year))
	}
	b.WriteString("OPTIONAL { ?item wdt:P18 ?image . } ")
	b.WriteString(`SERVICE wikibase:label { bd:serviceParam wikibase:language "en". } `)
	b.WriteString("} LIMIT 1")
	return b.String()
}

func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
