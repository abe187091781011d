// Package tmdb is a minimal TMDB search client.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelsort/reelsort/internal/media"
)

var (
	ErrAPIKeyMissing = errors.New("TMDB API key is not configured")
	ErrAPIError      = errors.New("TMDB API error")
	ErrRateLimited   = errors.New("TMDB API rate limited")
)

const defaultBaseURL = "https://api.themoviedb.org/3"

// Config holds TMDB client configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client is a TMDB API client.
type Client struct {
	httpClient *http.Client
	cfg        Config
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client.
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
		logger:     logger.With().Str("component", "tmdb").Logger(),
	}
}

// Name returns the provider name.
func (c *Client) Name() string { return "tmdb" }

// IsConfigured returns true if the API key is set.
func (c *Client) IsConfigured() bool { return c.cfg.APIKey != "" }

// SearchMovies searches for movies by query with an optional year filter.
func (c *Client) SearchMovies(ctx context.Context, query string, year int) ([]media.Candidate, error) {
	if !c.IsConfigured() {
		return nil, ErrAPIKeyMissing
	}

	params := url.Values{}
	params.Set("api_key", c.cfg.APIKey)
	params.Set("query", query)
	params.Set("include_adult", "false")
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}

	var resp searchMoviesResponse
	if err := c.doRequest(ctx, c.cfg.BaseURL+"/search/movie", params, &resp); err != nil {
		return nil, err
	}

	results := resp.Results
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	candidates := make([]media.Candidate, 0, len(results))
	for _, m := range results {
		candidates = append(candidates, media.Candidate{
			Source:   c.Name(),
			ID:       strconv.Itoa(m.ID),
			Title:    m.Title,
			Year:     yearOf(m.ReleaseDate),
			Overview: m.Overview,
			Raw:      m.raw(),
		})
	}
	return candidates, nil
}

// SearchShows searches for TV series by query.
func (c *Client) SearchShows(ctx context.Context, query string) ([]media.Candidate, error) {
	if !c.IsConfigured() {
		return nil, ErrAPIKeyMissing
	}

	params := url.Values{}
	params.Set("api_key", c.cfg.APIKey)
	params.Set("query", query)
	params.Set("include_adult", "false")

	var resp searchSeriesResponse
	if err := c.doRequest(ctx, c.cfg.BaseURL+"/search/tv", params, &resp); err != nil {
		return nil, err
	}

	results := resp.Results
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	candidates := make([]media.Candidate, 0, len(results))
	for _, s := range results {
		candidates = append(candidates, media.Candidate{
			Source:   c.Name(),
			ID:       strconv.Itoa(s.ID),
			Title:    s.Name,
			Year:     yearOf(s.FirstAirDate),
			Overview: s.Overview,
			Raw:      s.raw(),
		})
	}
	return candidates, nil
}

func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrAPIError, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// yearOf extracts the year from a TMDB date string ("2010-07-16").
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}
