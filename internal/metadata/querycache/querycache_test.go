package querycache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelsort/reelsort/internal/media"
)

func openTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"), ttl, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorePutGet(t *testing.T) {
	s := openTestStore(t, time.Hour)
	ctx := context.Background()

	candidates := []media.Candidate{
		{Source: "tmdb", ID: "603", Title: "The Matrix", Year: 1999},
		{Source: "tmdb", ID: "604", Title: "The Matrix Reloaded", Year: 2003},
	}

	key := "movie|tmdb|The Matrix|1999"
	s.Put(ctx, key, candidates)

	got, ok := s.Get(ctx, key)
	if !ok {
		t.Fatal("entry not found after Put")
	}
	if len(got) != 2 || got[0].ID != "603" || got[1].Year != 2003 {
		t.Errorf("got %+v", got)
	}
}

func TestStoreMiss(t *testing.T) {
	s := openTestStore(t, time.Hour)

	if _, ok := s.Get(context.Background(), "no-such-key"); ok {
		t.Error("Get returned ok for a missing key")
	}
}

func TestStoreReplace(t *testing.T) {
	s := openTestStore(t, time.Hour)
	ctx := context.Background()

	s.Put(ctx, "k", []media.Candidate{{Source: "tmdb", ID: "1", Title: "old"}})
	s.Put(ctx, "k", []media.Candidate{{Source: "tmdb", ID: "2", Title: "new"}})

	got, ok := s.Get(ctx, "k")
	if !ok || len(got) != 1 || got[0].Title != "new" {
		t.Errorf("got %+v, want the replacement entry", got)
	}
}

func TestStoreExpiry(t *testing.T) {
	s := openTestStore(t, time.Nanosecond)
	ctx := context.Background()

	s.Put(ctx, "k", []media.Candidate{{Source: "tmdb", ID: "1", Title: "x"}})
	time.Sleep(10 * time.Millisecond)

	if _, ok := s.Get(ctx, "k"); ok {
		t.Error("expired entry served")
	}
}

func TestStoreEmptyResultCached(t *testing.T) {
	// A catalog answering "nothing found" is a result worth caching too.
	s := openTestStore(t, time.Hour)
	ctx := context.Background()

	s.Put(ctx, "k", nil)

	got, ok := s.Get(ctx, "k")
	if !ok {
		t.Fatal("empty result was not cached")
	}
	if len(got) != 0 {
		t.Errorf("got %+v, want empty", got)
	}
}
