// Package tvmaze is a minimal TVmaze search client. TVmaze needs no API key
// and only indexes television, so it complements the keyed movie catalogs.
package tvmaze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelsort/reelsort/internal/media"
)

var ErrAPIError = errors.New("TVmaze API error")

const (
	defaultBaseURL = "https://api.tvmaze.com"
	maxResults     = 5
)

// Config holds TVmaze client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is a TVmaze API client.
type Client struct {
	httpClient *http.Client
	cfg        Config
	logger     zerolog.Logger
}

// NewClient creates a new TVmaze client.
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
		logger:     logger.With().Str("component", "tvmaze").Logger(),
	}
}

// Name returns the provider name.
func (c *Client) Name() string { return "tvmaze" }

// IsConfigured always returns true; TVmaze requires no credentials.
func (c *Client) IsConfigured() bool { return true }

// SearchMovies returns nothing: TVmaze does not index movies.
func (c *Client) SearchMovies(context.Context, string, int) ([]media.Candidate, error) {
	return nil, nil
}

// SearchShows searches TVmaze for series by name.
func (c *Client) SearchShows(ctx context.Context, query string) ([]media.Candidate, error) {
	params := url.Values{}
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+"/search/shows?"+params.Encode(), nil)
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

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}

	candidates := make([]media.Candidate, 0, len(results))
	for _, r := range results {
		candidates = append(candidates, media.Candidate{
			Source:   c.Name(),
			ID:       strconv.Itoa(r.Show.ID),
			Title:    r.Show.Name,
			Year:     yearOf(r.Show.Premiered),
			Overview: r.Show.Summary,
			Raw:      map[string]any{"status": r.Show.Status, "matchScore": r.Score},
		})
	}
	return candidates, nil
}

type searchResult struct {
	Score float64 `json:"score"`
	Show  struct {
		ID        int    `json:"id"`
		Name      string `json:"name"`
		Premiered string `json:"premiered"`
		Status    string `json:"status"`
		Summary   string `json:"summary"`
	} `json:"show"`
}

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
