// Package omdb is a minimal OMDb search client, used as the movie fallback
// catalog and as a bridge to IMDb identifiers.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelsort/reelsort/internal/media"
)

var (
	ErrAPIKeyMissing = errors.New("OMDb API key is not configured")
	ErrAPIError      = errors.New("OMDb API error")
)

const (
	defaultBaseURL = "https://www.omdbapi.com/"
	maxResults     = 5
)

// Config holds OMDb client configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client is an OMDb API client.
type Client struct {
	httpClient *http.Client
	cfg        Config
	logger     zerolog.Logger
}

// NewClient creates a new OMDb client.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     logger.With().Str("component", "omdb").Logger(),
	}
}

// Name returns the provider name.
func (c *Client) Name() string { return "omdb" }

// IsConfigured returns true if the API key is set.
func (c *Client) IsConfigured() bool { return c.cfg.APIKey != "" }

// SearchMovies searches OMDb for movies by title with an optional year.
func (c *Client) SearchMovies(ctx context.Context, query string, year int) ([]media.Candidate, error) {
	return c.search(ctx, query, year, "movie")
}

// SearchShows searches OMDb for TV series by title.
func (c *Client) SearchShows(ctx context.Context, query string) ([]media.Candidate, error) {
	return c.search(ctx, query, 0, "series")
}

func (c *Client) search(ctx context.Context, query string, year int, kind string) ([]media.Candidate, error) {
	if !c.IsConfigured() {
		return nil, ErrAPIKeyMissing
	}

	params := url.Values{}
	params.Set("apikey", c.cfg.APIKey)
	params.Set("s", query)
	params.Set("type", kind)
	if year > 0 {
		params.Set("y", strconv.Itoa(year))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrAPIError, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// OMDb reports "Movie not found!" as an in-band error; that is simply
	// an empty result set.
	if !strings.EqualFold(body.Response, "true") {
		if strings.Contains(strings.ToLower(body.Error), "not found") {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrAPIError, body.Error)
	}

	results := body.Search
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	candidates := make([]media.Candidate, 0, len(results))
	for _, r := range results {
		candidates = append(candidates, media.Candidate{
			Source: c.Name(),
			ID:     r.ImdbID,
			Title:  r.Title,
			Year:   parseYear(r.Year),
			ImdbID: r.ImdbID,
			Raw:    map[string]any{"poster": r.Poster, "type": r.Type},
		})
	}
	return candidates, nil
}

type searchResponse struct {
	Search []struct {
		Title  string `json:"Title"`
		Year   string `json:"Year"`
		ImdbID string `json:"imdbID"`
		Type   string `json:"Type"`
		Poster string `json:"Poster"`
	} `json:"Search"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// parseYear handles OMDb year strings, including series ranges like
// "2008–2013" where only the leading year matters.
func parseYear(s string) int {
	if len(s) < 4 {
		return 0
	}
	y, err := strconv.Atoi(s[:4])
	if err != nil {
		return 0
	}
	return y
}
