package tmdb

// maxResults caps how many search results a single query contributes.
const maxResults = 5

type searchMoviesResponse struct {
	Page    int           `json:"page"`
	Results []movieResult `json:"results"`
}

type movieResult struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	ReleaseDate   string  `json:"release_date"`
	Overview      string  `json:"overview"`
	Popularity    float64 `json:"popularity"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
}

func (m movieResult) raw() map[string]any {
	return map[string]any{
		"originalTitle": m.OriginalTitle,
		"releaseDate":   m.ReleaseDate,
		"popularity":    m.Popularity,
		"voteAverage":   m.VoteAverage,
		"voteCount":     m.VoteCount,
	}
}

type searchSeriesResponse struct {
	Page    int            `json:"page"`
	Results []seriesResult `json:"results"`
}

type seriesResult struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	OriginalName string  `json:"original_name"`
	FirstAirDate string  `json:"first_air_date"`
	Overview     string  `json:"overview"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
}

func (s seriesResult) raw() map[string]any {
	return map[string]any{
		"originalName": s.OriginalName,
		"firstAirDate": s.FirstAirDate,
		"popularity":   s.Popularity,
		"voteAverage":  s.VoteAverage,
		"voteCount":    s.VoteCount,
	}
}
