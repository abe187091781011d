package organizer

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/reelsort/reelsort/internal/media"
)

// movieNFO is the Kodi/Jellyfin movie metadata side-car.
type movieNFO struct {
	XMLName xml.Name `xml:"movie"`
	Title   string   `xml:"title"`
	Year    int      `xml:"year,omitempty"`
	Plot    string   `xml:"plot,omitempty"`
	TmdbID  string   `xml:"tmdbid,omitempty"`
	ImdbID  string   `xml:"imdbid,omitempty"`
}

// showNFO is the Kodi/Jellyfin series metadata side-car.
type showNFO struct {
	XMLName  xml.Name `xml:"tvshow"`
	Title    string   `xml:"title"`
	Plot     string   `xml:"plot,omitempty"`
	TmdbID   string   `xml:"tmdbid,omitempty"`
	TvmazeID string   `xml:"tvmazeid,omitempty"`
}

// WriteMovieNFO writes a movie.nfo next to an organized movie.
func WriteMovieNFO(path string, match *media.Candidate) error {
	nfo := movieNFO{
		Title: match.Title,
		Year:  match.Year,
		Plot:  match.Overview,
	}
	switch match.Source {
	case "tmdb":
		nfo.TmdbID = match.ID
	case "omdb":
		nfo.ImdbID = match.ImdbID
	}
	return writeNFO(path, nfo)
}

// WriteShowNFO writes a tvshow.nfo at the root of an organized series.
func WriteShowNFO(path string, match *media.Candidate) error {
	nfo := showNFO{
		Title: match.Title,
		Plot:  match.Overview,
	}
	switch match.Source {
	case "tmdb":
		nfo.TmdbID = match.ID
	case "tvmaze":
		nfo.TvmazeID = match.ID
	}
	return writeNFO(path, nfo)
}

func writeNFO(path string, v any) error {
	data, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal NFO: %w", err)
	}
	payload := append([]byte(xml.Header), data...)
	payload = append(payload, '\n')
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write NFO: %w", err)
	}
	return nil
}
