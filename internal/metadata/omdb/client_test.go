package omdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func newTestClient(server *httptest.Server) *Client {
	return NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, zerolog.Nop())
}

func TestClient_SearchMovies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("s") != "The Matrix" || q.Get("type") != "movie" || q.Get("y") != "1999" {
			t.Errorf("unexpected query: %v", q)
		}
		fmt.Fprint(w, `{
			"Search": [
				{"Title": "The Matrix", "Year": "1999", "imdbID": "tt0133093", "Type": "movie"}
			],
			"Response": "True"
		}`)
	}))
	defer server.Close()

	client := newTestClient(server)
	candidates, err := client.SearchMovies(context.Background(), "The Matrix", 1999)
	if err != nil {
		t.Fatal(err)
	}

	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	c := candidates[0]
	if c.Source != "omdb" || c.ID != "tt0133093" || c.ImdbID != "tt0133093" || c.Year != 1999 {
		t.Errorf("candidate = %+v", c)
	}
}

func TestClient_SearchMoviesNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Response": "False", "Error": "Movie not found!"}`)
	}))
	defer server.Close()

	client := newTestClient(server)
	candidates, err := client.SearchMovies(context.Background(), "zzzz", 0)
	if err != nil {
		t.Fatalf("not-found must be an empty result, got error: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("got %d candidates, want 0", len(candidates))
	}
}

func TestClient_SearchShowsUsesSeriesType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "series" {
			t.Errorf("type = %q, want series", got)
		}
		fmt.Fprint(w, `{
			"Search": [
				{"Title": "Breaking Bad", "Year": "2008–2013", "imdbID": "tt0903747", "Type": "series"}
			],
			"Response": "True"
		}`)
	}))
	defer server.Close()

	client := newTestClient(server)
	candidates, err := client.SearchShows(context.Background(), "Breaking Bad")
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 1 || candidates[0].Year != 2008 {
		t.Errorf("candidates = %+v, want the range year parsed as 2008", candidates)
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"1999", 1999},
		{"2008–2013", 2008},
		{"2008–", 2008},
		{"N/A", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := parseYear(tt.input); got != tt.want {
			t.Errorf("parseYear(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
