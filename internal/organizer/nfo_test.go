package organizer

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reelsort/reelsort/internal/media"
)

func TestWriteMovieNFO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movie.nfo")
	match := &media.Candidate{
		Source:   "tmdb",
		ID:       "603",
		Title:    "The Matrix",
		Year:     1999,
		Overview: "A hacker learns the truth.",
	}

	if err := WriteMovieNFO(path, match); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), xml.Header) {
		t.Error("NFO missing XML header")
	}

	var nfo movieNFO
	if err := xml.Unmarshal(data, &nfo); err != nil {
		t.Fatalf("NFO is not valid XML: %v", err)
	}
	if nfo.Title != "The Matrix" || nfo.Year != 1999 || nfo.TmdbID != "603" {
		t.Errorf("nfo = %+v", nfo)
	}
	if nfo.ImdbID != "" {
		t.Errorf("imdbid = %q for a tmdb match", nfo.ImdbID)
	}
}

func TestWriteMovieNFOFromOMDb(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movie.nfo")
	match := &media.Candidate{
		Source: "omdb",
		ID:     "tt0133093",
		ImdbID: "tt0133093",
		Title:  "The Matrix",
	}

	if err := WriteMovieNFO(path, match); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var nfo movieNFO
	if err := xml.Unmarshal(data, &nfo); err != nil {
		t.Fatal(err)
	}
	if nfo.ImdbID != "tt0133093" || nfo.TmdbID != "" {
		t.Errorf("nfo ids = (%q, %q)", nfo.ImdbID, nfo.TmdbID)
	}
}

func TestWriteShowNFO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tvshow.nfo")
	match := &media.Candidate{
		Source: "tvmaze",
		ID:     "169",
		Title:  "Breaking Bad",
	}

	if err := WriteShowNFO(path, match); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var nfo showNFO
	if err := xml.Unmarshal(data, &nfo); err != nil {
		t.Fatal(err)
	}
	if nfo.Title != "Breaking Bad" || nfo.TvmazeID != "169" {
		t.Errorf("nfo = %+v", nfo)
	}
}
