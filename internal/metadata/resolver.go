package metadata

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/reelsort/reelsort/internal/media"
	"github.com/reelsort/reelsort/internal/metadata/ratelimit"
)

// FallbackPolicy controls when the secondary movie catalog is consulted.
type FallbackPolicy string

const (
	// FallbackOnEmpty queries the secondary catalog only when the primary
	// returned nothing (the reference behavior).
	FallbackOnEmpty FallbackPolicy = "on_empty"
	// FallbackAlways queries every movie catalog unconditionally, matching
	// the TV policy.
	FallbackAlways FallbackPolicy = "always"
)

// Resolver attaches candidate lists to items by querying external catalogs.
//
// Movie and TV lookups are deliberately asymmetric: movie catalogs are
// largely redundant, so the primary is preferred and the fallback consulted
// only on an empty result (unless configured otherwise), while TV catalogs
// are complementary and always all queried.
type Resolver struct {
	movieSources []Source // priority order; first configured one is primary
	tvSources    []Source
	fallback     FallbackPolicy
	cache        Cache
	limiter      *ratelimit.Limiter
	logger       zerolog.Logger
}

// NewResolver creates a Resolver. cache may be NullCache{}; limiter may be
// nil to disable pacing.
func NewResolver(movieSources, tvSources []Source, fallback FallbackPolicy, cache Cache, limiter *ratelimit.Limiter, logger zerolog.Logger) *Resolver {
	if fallback == "" {
		fallback = FallbackOnEmpty
	}
	if cache == nil {
		cache = NullCache{}
	}
	return &Resolver{
		movieSources: movieSources,
		tvSources:    tvSources,
		fallback:     fallback,
		cache:        cache,
		limiter:      limiter,
		logger:       logger.With().Str("component", "resolver").Logger(),
	}
}

// Identify queries the enabled catalogs for an item and sets its candidate
// list, deduplicated by (source, id) in first-seen order. Music items are
// never queried. Source failures contribute zero candidates and never stop
// the other sources.
func (r *Resolver) Identify(ctx context.Context, item *media.Item) {
	if item.Type == media.TypeMusicAlbum {
		return
	}

	queryTitle := item.ParsedTitle
	if queryTitle == "" {
		queryTitle = item.Name
	}

	titles := []string{queryTitle}
	if hint := TranslationHint(queryTitle); hint != "" {
		r.logger.Debug().Str("title", queryTitle).Str("hint", hint).Msg("Using translation hint")
		titles = append(titles, hint)
	}

	var results []media.Candidate
	switch item.Type {
	case media.TypeMovie:
		results = r.identifyMovie(ctx, titles, item.ParsedYear)
	case media.TypeTVEpisode:
		results = r.identifyShow(ctx, titles)
	default:
		return
	}

	item.Candidates = dedupe(results)

	r.logger.Debug().
		Str("item", item.Name).
		Str("query", queryTitle).
		Int("candidates", len(item.Candidates)).
		Msg("Identification complete")
}

func (r *Resolver) identifyMovie(ctx context.Context, titles []string, year int) []media.Candidate {
	var results []media.Candidate
	queriedPrimary := false

	for _, src := range r.movieSources {
		if !src.IsConfigured() {
			continue
		}
		if queriedPrimary && len(results) > 0 && r.fallback == FallbackOnEmpty {
			break
		}
		for _, title := range titles {
			results = append(results, r.searchMovies(ctx, src, title, year)...)
		}
		queriedPrimary = true
	}
	return results
}

func (r *Resolver) identifyShow(ctx context.Context, titles []string) []media.Candidate {
	var results []media.Candidate
	for _, src := range r.tvSources {
		if !src.IsConfigured() {
			continue
		}
		for _, title := range titles {
			results = append(results, r.searchShows(ctx, src, title)...)
		}
	}
	return results
}

func (r *Resolver) searchMovies(ctx context.Context, src Source, title string, year int) []media.Candidate {
	key := fmt.Sprintf("movie|%s|%s|%d", src.Name(), title, year)
	if cached, ok := r.cache.Get(ctx, key); ok {
		return cached
	}

	if err := r.wait(ctx, src.Name()); err != nil {
		return nil
	}

	results, err := src.SearchMovies(ctx, title, year)
	if err != nil {
		r.logger.Warn().Err(err).Str("source", src.Name()).Str("query", title).Msg("Movie search failed")
		return nil
	}
	results = capResults(results)

	r.cache.Put(ctx, key, results)
	return results
}

func (r *Resolver) searchShows(ctx context.Context, src Source, title string) []media.Candidate {
	key := fmt.Sprintf("show|%s|%s", src.Name(), title)
	if cached, ok := r.cache.Get(ctx, key); ok {
		return cached
	}

	if err := r.wait(ctx, src.Name()); err != nil {
		return nil
	}

	results, err := src.SearchShows(ctx, title)
	if err != nil {
		r.logger.Warn().Err(err).Str("source", src.Name()).Str("query", title).Msg("Show search failed")
		return nil
	}
	results = capResults(results)

	r.cache.Put(ctx, key, results)
	return results
}

func (r *Resolver) wait(ctx context.Context, source string) error {
	if r.limiter == nil {
		return ctx.Err()
	}
	return r.limiter.Wait(ctx, source)
}

func capResults(results []media.Candidate) []media.Candidate {
	if len(results) > MaxResults {
		return results[:MaxResults]
	}
	return results
}

// dedupe removes candidates sharing a (source, id) identity, keeping the
// first occurrence. The original and translated-hint queries frequently
// return the same entries.
func dedupe(candidates []media.Candidate) []media.Candidate {
	if len(candidates) == 0 {
		return nil
	}
	type identity struct{ source, id string }
	seen := make(map[identity]bool, len(candidates))
	unique := candidates[:0:0]
	for _, c := range candidates {
		key := identity{c.Source, c.ID}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, c)
	}
	return unique
}
