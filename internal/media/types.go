// Package media defines the data model shared by every pipeline stage.
package media

import "github.com/reelsort/reelsort/internal/probe"

// Type classifies a media item. It is set once by the scanner and never
// changed by a later stage.
type Type string

const (
	TypeMovie      Type = "movie"
	TypeTVEpisode  Type = "tv_episode"
	TypeMusicAlbum Type = "music_album"
	TypeUnknown    Type = "unknown"
)

// Disposition is the pipeline's terminal decision for an item.
type Disposition string

const (
	DispositionPending      Disposition = "pending"
	DispositionAutoAccepted Disposition = "auto_accepted"
	DispositionQuarantine   Disposition = "quarantine"
	DispositionIgnored      Disposition = "ignored"
	DispositionError        Disposition = "error"
)

// ScoreBreakdown holds the per-factor confidence scores for a candidate.
// Each factor and the weighted overall are in [0,1].
type ScoreBreakdown struct {
	TitleSimilarity float64 `json:"titleSimilarity"`
	YearMatch       float64 `json:"yearMatch"`
	KeywordOverlap  float64 `json:"keywordOverlap"`
	Overall         float64 `json:"overall"`
}

// Candidate is a single external catalog result being evaluated as a
// possible identity for an item.
type Candidate struct {
	Source   string         `json:"source"`
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Year     int            `json:"year,omitempty"`
	Overview string         `json:"overview,omitempty"`
	ImdbID   string         `json:"imdbId,omitempty"`
	Raw      map[string]any `json:"-"`

	Score ScoreBreakdown `json:"score"`
}

// Subtitle is a subtitle file claimed by a video item, with a best-effort
// detected language.
type Subtitle struct {
	Path     string `json:"path"`
	Language string `json:"language,omitempty"`
}

// Item is one logical unit of media traversing the pipeline. Stages only
// append to it in a fixed order: the scanner creates it and sets Type and
// the parsed hints, the resolver fills Candidates, the scorer attaches
// scores and BestMatch, the decision engine sets Disposition exactly once,
// and the executor sets Destination.
type Item struct {
	// Identity, set by the scanner.
	SourcePath   string `json:"path"`
	RelativePath string `json:"relativePath"`
	Name         string `json:"name"`
	Type         Type   `json:"type"`

	// Hints parsed from the filename. Zero values mean extraction failed,
	// which is a valid low-confidence state, not an error.
	ParsedTitle string `json:"parsedTitle,omitempty"`
	ParsedYear  int    `json:"parsedYear,omitempty"`
	Season      int    `json:"season,omitempty"`
	Episode     int    `json:"episode,omitempty"`

	// Technical metadata from the probe collaborator; read-only once attached.
	Probe probe.Record `json:"probe"`

	// Subtitle files claimed for this video, in discovery order.
	Subtitles []Subtitle `json:"subtitles,omitempty"`

	// Candidates in resolver query order until the scorer sorts them by
	// overall score, descending. Never reordered after scoring.
	Candidates []Candidate `json:"candidates,omitempty"`

	// BestMatch points into Candidates after scoring; nil if the list was
	// empty.
	BestMatch       *Candidate `json:"bestMatch,omitempty"`
	ConfidenceScore float64    `json:"confidenceScore"`

	Disposition Disposition `json:"disposition"`
	Reason      string      `json:"reason,omitempty"`

	// Destination is set exactly once by the executor.
	Destination string `json:"destination,omitempty"`
}

// NewItem creates a pending item; every field past identity starts unset.
func NewItem(sourcePath, relativePath, name string, t Type) *Item {
	return &Item{
		SourcePath:   sourcePath,
		RelativePath: relativePath,
		Name:         name,
		Type:         t,
		Disposition:  DispositionPending,
	}
}

// Alternatives returns up to n scored candidates after the best match,
// used for quarantine triage records.
func (it *Item) Alternatives(n int) []Candidate {
	if len(it.Candidates) <= 1 {
		return nil
	}
	rest := it.Candidates[1:]
	if len(rest) > n {
		rest = rest[:n]
	}
	out := make([]Candidate, len(rest))
	copy(out, rest)
	return out
}
