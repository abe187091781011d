// Package scoring computes weighted confidence scores for metadata
// candidates and selects a best match per item.
package scoring

import (
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"github.com/rs/zerolog"

	"github.com/reelsort/reelsort/internal/media"
	"github.com/reelsort/reelsort/internal/probe"
)

// Weights are the per-factor multipliers for the overall score. They should
// sum to 1.0 so the overall stays in [0,1].
type Weights struct {
	Title   float64
	Year    float64
	Keyword float64
}

// DefaultWeights returns the standard factor weights.
func DefaultWeights() Weights {
	return Weights{Title: 0.5, Year: 0.3, Keyword: 0.2}
}

// Config holds scorer tuning.
type Config struct {
	Weights       Weights
	YearTolerance int
	MinConfidence float64
}

// DefaultConfig returns the standard scorer configuration.
func DefaultConfig() Config {
	return Config{
		Weights:       DefaultWeights(),
		YearTolerance: 1,
		MinConfidence: 0.7,
	}
}

// Scorer evaluates candidates with fuzzy title similarity, year proximity
// and keyword overlap.
type Scorer struct {
	cfg    Config
	logger zerolog.Logger
}

// New creates a Scorer.
func New(cfg Config, logger zerolog.Logger) *Scorer {
	if cfg.YearTolerance <= 0 {
		cfg.YearTolerance = 1
	}
	return &Scorer{
		cfg:    cfg,
		logger: logger.With().Str("component", "scorer").Logger(),
	}
}

// Score computes a breakdown for every candidate on the item, sorts the
// candidate list by overall score descending, and records the best match.
// Items with no candidates are left untouched. Ties keep resolver insertion
// order so reruns over the same inputs are reproducible.
func (s *Scorer) Score(item *media.Item) {
	if len(item.Candidates) == 0 {
		s.logger.Debug().Str("item", item.Name).Msg("No candidates to score")
		return
	}

	queryTitle := item.ParsedTitle
	if queryTitle == "" {
		queryTitle = item.Name
	}

	for i := range item.Candidates {
		c := &item.Candidates[i]
		c.Score = s.ScoreMatch(queryTitle, c.Title, item.ParsedYear, c.Year, nil, item.Probe)
	}

	sort.SliceStable(item.Candidates, func(i, j int) bool {
		return item.Candidates[i].Score.Overall > item.Candidates[j].Score.Overall
	})

	item.BestMatch = &item.Candidates[0]
	item.ConfidenceScore = item.BestMatch.Score.Overall

	s.logger.Debug().
		Str("item", item.Name).
		Str("bestMatch", item.BestMatch.Title).
		Float64("score", item.ConfidenceScore).
		Int("candidates", len(item.Candidates)).
		Msg("Scored candidates")
}

// ScoreMatch is a pure function of its inputs and the configured weights:
// identical inputs always produce an identical breakdown.
func (s *Scorer) ScoreMatch(queryTitle, resultTitle string, queryYear, resultYear int, keywords []string, rec probe.Record) media.ScoreBreakdown {
	titleScore := scoreTitle(queryTitle, resultTitle)
	yearScore := s.scoreYear(queryYear, resultYear)
	keywordScore := scoreKeywords(queryTitle, keywords)

	yearScore = applyProbeHints(yearScore, queryYear, resultYear, rec)

	overall := s.cfg.Weights.Title*titleScore +
		s.cfg.Weights.Year*yearScore +
		s.cfg.Weights.Keyword*keywordScore

	return media.ScoreBreakdown{
		TitleSimilarity: titleScore,
		YearMatch:       yearScore,
		KeywordOverlap:  keywordScore,
		Overall:         overall,
	}
}

// SelectBestMatch returns the top-scoring candidate only when it clears the
// minimum-confidence floor. Used by callers that bypass the decision engine.
func (s *Scorer) SelectBestMatch(candidates []media.Candidate) *media.Candidate {
	if len(candidates) == 0 {
		return nil
	}
	sorted := make([]media.Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score.Overall > sorted[j].Score.Overall
	})
	if sorted[0].Score.Overall < s.cfg.MinConfidence {
		return nil
	}
	best := sorted[0]
	return &best
}

// scoreTitle takes the maximum of four fuzzy similarity measures. The max is
// deliberate: reordering, punctuation, and partial-substring differences each
// break a different measure, and any single one holding up is evidence of a
// match.
func scoreTitle(query, result string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	r := strings.ToLower(strings.TrimSpace(result))
	if q == "" || r == "" {
		return 0
	}

	best := fuzzy.Ratio(q, r)
	if v := fuzzy.PartialRatio(q, r); v > best {
		best = v
	}
	if v := fuzzy.TokenSortRatio(q, r); v > best {
		best = v
	}
	if v := fuzzy.TokenSetRatio(q, r); v > best {
		best = v
	}
	return float64(best) / 100
}

// scoreYear maps year distance onto fixed breakpoints. A missing query year
// is neutral rather than a penalty; a missing candidate year is a mild
// catalog-gap penalty.
func (s *Scorer) scoreYear(queryYear, resultYear int) float64 {
	if queryYear == 0 {
		return 0.5
	}
	if resultYear == 0 {
		return 0.3
	}

	diff := queryYear - resultYear
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return 1.0
	case diff <= s.cfg.YearTolerance:
		return 0.8
	case diff <= 2:
		return 0.5
	default:
		return 0.2
	}
}

// scoreKeywords measures word overlap between the query title and candidate
// keywords: 0.5 baseline, +0.2 per overlapping word, capped at 1.0.
func scoreKeywords(queryTitle string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0.5
	}

	queryWords := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(queryTitle)) {
		queryWords[w] = true
	}

	seen := make(map[string]bool)
	overlap := 0
	for _, kw := range keywords {
		for _, w := range strings.Fields(strings.ToLower(kw)) {
			if queryWords[w] && !seen[w] {
				seen[w] = true
				overlap++
			}
		}
	}

	score := 0.5 + 0.2*float64(overlap)
	if score > 1.0 {
		return 1.0
	}
	return score
}

// applyProbeHints nudges the year score when, and only when, no filename
// year exists to trust. A modern codec or HDR flag weakly corroborates a
// recent candidate; an ancient codec corroborates an old one. The hint can
// break ties but never overrides an explicit year.
func applyProbeHints(yearScore float64, queryYear, resultYear int, rec probe.Record) float64 {
	if queryYear != 0 || resultYear == 0 {
		return yearScore
	}

	switch rec.VideoCodec {
	case "h265", "av1", "vp9":
		if resultYear >= 2015 {
			yearScore = capScore(yearScore + 0.1)
		}
	case "xvid", "divx":
		if resultYear <= 2010 {
			yearScore = capScore(yearScore + 0.1)
		}
	}

	if rec.HDR && resultYear >= 2016 {
		yearScore = capScore(yearScore + 0.1)
	}
	return yearScore
}

func capScore(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	return v
}
