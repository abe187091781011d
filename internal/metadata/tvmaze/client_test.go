package tvmaze

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestClient_SearchShows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/shows" {
			t.Errorf("path = %q, want /search/shows", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "Breaking Bad" {
			t.Errorf("q = %q, want %q", got, "Breaking Bad")
		}
		fmt.Fprint(w, `[
			{"score": 0.91, "show": {"id": 169, "name": "Breaking Bad", "premiered": "2008-01-20", "status": "Ended"}},
			{"score": 0.55, "show": {"id": 9999, "name": "Breaking In", "premiered": "2011-04-06"}}
		]`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, zerolog.Nop())
	candidates, err := client.SearchShows(context.Background(), "Breaking Bad")
	if err != nil {
		t.Fatal(err)
	}

	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}
	c := candidates[0]
	if c.Source != "tvmaze" || c.ID != "169" || c.Title != "Breaking Bad" || c.Year != 2008 {
		t.Errorf("candidate = %+v", c)
	}
}

func TestClient_SearchMoviesReturnsNothing(t *testing.T) {
	client := NewClient(Config{}, zerolog.Nop())
	candidates, err := client.SearchMovies(context.Background(), "The Matrix", 1999)
	if err != nil {
		t.Fatal(err)
	}
	if candidates != nil {
		t.Errorf("candidates = %+v, want nil", candidates)
	}
}

func TestClient_IsConfigured(t *testing.T) {
	client := NewClient(Config{}, zerolog.Nop())
	if !client.IsConfigured() {
		t.Error("IsConfigured() = false, want true without credentials")
	}
}
