package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/reelsort/reelsort/internal/media"
)

type fakeSource struct {
	name       string
	configured bool
	movies     []media.Candidate
	shows      []media.Candidate
	err        error

	movieCalls int
	showCalls  int
}

func (f *fakeSource) Name() string       { return f.name }
func (f *fakeSource) IsConfigured() bool { return f.configured }

func (f *fakeSource) SearchMovies(ctx context.Context, query string, year int) ([]media.Candidate, error) {
	f.movieCalls++
	return f.movies, f.err
}

func (f *fakeSource) SearchShows(ctx context.Context, query string) ([]media.Candidate, error) {
	f.showCalls++
	return f.shows, f.err
}

func movieItem(title string, year int) *media.Item {
	item := media.NewItem("/src/x.mkv", "x.mkv", "x.mkv", media.TypeMovie)
	item.ParsedTitle = title
	item.ParsedYear = year
	return item
}

func showItem(title string) *media.Item {
	item := media.NewItem("/src/x.mkv", "x.mkv", "x.mkv", media.TypeTVEpisode)
	item.ParsedTitle = title
	return item
}

func TestIdentifyMovieFallbackOnEmpty(t *testing.T) {
	primary := &fakeSource{name: "tmdb", configured: true,
		movies: []media.Candidate{{Source: "tmdb", ID: "603", Title: "The Matrix"}}}
	fallback := &fakeSource{name: "omdb", configured: true,
		movies: []media.Candidate{{Source: "omdb", ID: "tt0133093", Title: "The Matrix"}}}

	r := NewResolver([]Source{primary, fallback}, nil, FallbackOnEmpty, nil, nil, zerolog.Nop())

	item := movieItem("The Matrix", 1999)
	r.Identify(context.Background(), item)

	if primary.movieCalls != 1 {
		t.Errorf("primary queried %d times, want 1", primary.movieCalls)
	}
	if fallback.movieCalls != 0 {
		t.Errorf("fallback queried %d times, want 0 when primary had results", fallback.movieCalls)
	}
	if len(item.Candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(item.Candidates))
	}
}

func TestIdentifyMovieFallbackWhenPrimaryEmpty(t *testing.T) {
	primary := &fakeSource{name: "tmdb", configured: true}
	fallback := &fakeSource{name: "omdb", configured: true,
		movies: []media.Candidate{{Source: "omdb", ID: "tt0133093", Title: "The Matrix"}}}

	r := NewResolver([]Source{primary, fallback}, nil, FallbackOnEmpty, nil, nil, zerolog.Nop())

	item := movieItem("The Matrix", 1999)
	r.Identify(context.Background(), item)

	if fallback.movieCalls != 1 {
		t.Errorf("fallback queried %d times, want 1 when primary was empty", fallback.movieCalls)
	}
	if len(item.Candidates) != 1 || item.Candidates[0].Source != "omdb" {
		t.Fatalf("candidates = %+v, want the omdb result", item.Candidates)
	}
}

func TestIdentifyMovieFallbackAlways(t *testing.T) {
	primary := &fakeSource{name: "tmdb", configured: true,
		movies: []media.Candidate{{Source: "tmdb", ID: "603", Title: "The Matrix"}}}
	fallback := &fakeSource{name: "omdb", configured: true,
		movies: []media.Candidate{{Source: "omdb", ID: "tt0133093", Title: "The Matrix"}}}

	r := NewResolver([]Source{primary, fallback}, nil, FallbackAlways, nil, nil, zerolog.Nop())

	item := movieItem("The Matrix", 1999)
	r.Identify(context.Background(), item)

	if primary.movieCalls != 1 || fallback.movieCalls != 1 {
		t.Errorf("calls = (%d, %d), want both sources queried under always policy",
			primary.movieCalls, fallback.movieCalls)
	}
	if len(item.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(item.Candidates))
	}
}

func TestIdentifyMovieSkipsUnconfigured(t *testing.T) {
	unconfigured := &fakeSource{name: "tmdb"}
	configured := &fakeSource{name: "omdb", configured: true,
		movies: []media.Candidate{{Source: "omdb", ID: "tt1", Title: "A"}}}

	r := NewResolver([]Source{unconfigured, configured}, nil, FallbackOnEmpty, nil, nil, zerolog.Nop())

	item := movieItem("A", 0)
	r.Identify(context.Background(), item)

	if unconfigured.movieCalls != 0 {
		t.Errorf("unconfigured source queried %d times", unconfigured.movieCalls)
	}
	if len(item.Candidates) != 1 {
		t.Fatalf("got %d candidates, want 1 from the configured source", len(item.Candidates))
	}
}

func TestIdentifyShowQueriesAllSources(t *testing.T) {
	a := &fakeSource{name: "tmdb", configured: true,
		shows: []media.Candidate{{Source: "tmdb", ID: "1396", Title: "Breaking Bad"}}}
	b := &fakeSource{name: "tvmaze", configured: true,
		shows: []media.Candidate{{Source: "tvmaze", ID: "169", Title: "Breaking Bad"}}}

	r := NewResolver(nil, []Source{a, b}, FallbackOnEmpty, nil, nil, zerolog.Nop())

	item := showItem("Breaking Bad")
	r.Identify(context.Background(), item)

	if a.showCalls != 1 || b.showCalls != 1 {
		t.Errorf("calls = (%d, %d), want every TV source queried", a.showCalls, b.showCalls)
	}
	if len(item.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(item.Candidates))
	}
}

func TestIdentifyDeduplicatesBySourceAndID(t *testing.T) {
	// The translation-hint query returns the same catalog entry twice.
	src := &fakeSource{name: "tmdb", configured: true,
		movies: []media.Candidate{{Source: "tmdb", ID: "238", Title: "The Godfather"}}}

	r := NewResolver([]Source{src}, nil, FallbackOnEmpty, nil, nil, zerolog.Nop())

	item := movieItem("El Padrino", 1972)
	r.Identify(context.Background(), item)

	if src.movieCalls != 2 {
		t.Errorf("source queried %d times, want 2 (original and hint)", src.movieCalls)
	}
	if len(item.Candidates) != 1 {
		t.Fatalf("got %d candidates, want 1 after dedup", len(item.Candidates))
	}
}

func TestIdentifySourceErrorIsNonFatal(t *testing.T) {
	failing := &fakeSource{name: "tmdb", configured: true, err: errors.New("api down")}
	working := &fakeSource{name: "omdb", configured: true,
		movies: []media.Candidate{{Source: "omdb", ID: "tt1", Title: "A"}}}

	r := NewResolver([]Source{failing, working}, nil, FallbackOnEmpty, nil, nil, zerolog.Nop())

	item := movieItem("A", 0)
	r.Identify(context.Background(), item)

	if len(item.Candidates) != 1 {
		t.Fatalf("got %d candidates, want 1 from the working source", len(item.Candidates))
	}
}

func TestIdentifySkipsMusic(t *testing.T) {
	src := &fakeSource{name: "tmdb", configured: true}
	r := NewResolver([]Source{src}, []Source{src}, FallbackOnEmpty, nil, nil, zerolog.Nop())

	item := media.NewItem("/src/Album", "Album", "Album", media.TypeMusicAlbum)
	r.Identify(context.Background(), item)

	if src.movieCalls != 0 || src.showCalls != 0 {
		t.Errorf("music item triggered catalog queries (%d, %d)", src.movieCalls, src.showCalls)
	}
}

func TestIdentifyCapsResults(t *testing.T) {
	var many []media.Candidate
	for i := 0; i < MaxResults+4; i++ {
		many = append(many, media.Candidate{Source: "tmdb", ID: string(rune('a' + i)), Title: "X"})
	}
	src := &fakeSource{name: "tmdb", configured: true, movies: many}

	r := NewResolver([]Source{src}, nil, FallbackOnEmpty, nil, nil, zerolog.Nop())

	item := movieItem("X", 0)
	r.Identify(context.Background(), item)

	if len(item.Candidates) != MaxResults {
		t.Errorf("got %d candidates, want capped at %d", len(item.Candidates), MaxResults)
	}
}

type recordingCache struct {
	store map[string][]media.Candidate
	hits  int
	puts  int
}

func (c *recordingCache) Get(ctx context.Context, key string) ([]media.Candidate, bool) {
	v, ok := c.store[key]
	if ok {
		c.hits++
	}
	return v, ok
}

func (c *recordingCache) Put(ctx context.Context, key string, candidates []media.Candidate) {
	c.store[key] = candidates
	c.puts++
}

func TestIdentifyUsesCache(t *testing.T) {
	src := &fakeSource{name: "tmdb", configured: true,
		movies: []media.Candidate{{Source: "tmdb", ID: "603", Title: "The Matrix"}}}
	cache := &recordingCache{store: make(map[string][]media.Candidate)}

	r := NewResolver([]Source{src}, nil, FallbackOnEmpty, cache, nil, zerolog.Nop())

	r.Identify(context.Background(), movieItem("The Matrix", 1999))
	r.Identify(context.Background(), movieItem("The Matrix", 1999))

	if src.movieCalls != 1 {
		t.Errorf("source queried %d times, want 1 with a warm cache", src.movieCalls)
	}
	if cache.hits != 1 {
		t.Errorf("cache hits = %d, want 1", cache.hits)
	}
}
