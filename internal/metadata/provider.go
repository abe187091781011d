// Package metadata resolves parsed filename hints against external catalogs
// and produces deduplicated candidate lists.
package metadata

import (
	"context"

	"github.com/reelsort/reelsort/internal/media"
)

// Source is one external catalog. Every search returns at most MaxResults
// candidates; a failure in one source never concerns another.
type Source interface {
	// Name returns the catalog identifier used on candidates ("tmdb").
	Name() string

	// IsConfigured returns true if the source has required credentials.
	IsConfigured() bool

	// SearchMovies searches for movies, optionally filtered by year.
	SearchMovies(ctx context.Context, query string, year int) ([]media.Candidate, error)

	// SearchShows searches for TV series.
	SearchShows(ctx context.Context, query string) ([]media.Candidate, error)
}

// MaxResults caps how many candidates a single source query contributes.
const MaxResults = 5

// Cache is the query cache collaborator handed to the Resolver by
// reference. Lookups are keyed by the exact query string; a miss is not an
// error.
type Cache interface {
	Get(ctx context.Context, key string) ([]media.Candidate, bool)
	Put(ctx context.Context, key string, candidates []media.Candidate)
}

// NullCache never hits and drops every put.
type NullCache struct{}

func (NullCache) Get(context.Context, string) ([]media.Candidate, bool) { return nil, false }
func (NullCache) Put(context.Context, string, []media.Candidate)        {}
