// Package decision applies confidence thresholds and ambiguity rules to
// pick a disposition for each scored item.
package decision

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/reelsort/reelsort/internal/media"
)

// Thresholds holds the decision cut lines.
type Thresholds struct {
	// AutoAccept is the minimum overall score for hands-off acceptance.
	AutoAccept float64
	// Quarantine is the floor below which a match is called low confidence.
	Quarantine float64
}

// DefaultThresholds returns the standard thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{AutoAccept: 0.85, Quarantine: 0.65}
}

// Engine decides dispositions. Every decision records a human-readable
// reason; the reasons are the audit trail for the run report and for anyone
// triaging the quarantine folder.
type Engine struct {
	thresholds  Thresholds
	ignoreGlobs []string
	logger      zerolog.Logger
}

// New creates an Engine. ignoreGlobs are matched against item display names;
// a hit routes the item to Ignored before any score is consulted.
func New(thresholds Thresholds, ignoreGlobs []string, logger zerolog.Logger) *Engine {
	return &Engine{
		thresholds:  thresholds,
		ignoreGlobs: ignoreGlobs,
		logger:      logger.With().Str("component", "decision").Logger(),
	}
}

// Decide evaluates the transition table once for a scored item and sets its
// disposition and reason. Items already out of Pending (collaborator-reported
// errors) are left alone.
func (e *Engine) Decide(item *media.Item) {
	if item.Disposition != media.DispositionPending {
		return
	}

	disposition, reason := e.evaluate(item)
	item.Disposition = disposition
	item.Reason = reason

	e.logger.Debug().
		Str("item", item.Name).
		Str("disposition", string(disposition)).
		Str("reason", reason).
		Msg("Decision made")
}

func (e *Engine) evaluate(item *media.Item) (media.Disposition, string) {
	for _, glob := range e.ignoreGlobs {
		if matched, _ := filepath.Match(glob, item.Name); matched {
			return media.DispositionIgnored, fmt.Sprintf("name matches ignore pattern %q", glob)
		}
	}

	// Music identification is delegated downstream; it always passes.
	if item.Type == media.TypeMusicAlbum {
		return media.DispositionAutoAccepted, "music album, identification delegated"
	}

	if item.BestMatch == nil {
		return media.DispositionQuarantine, "no metadata match found"
	}

	// Near-ties are never silently resolved: two candidates both clearing
	// the auto-accept bar means a human picks the winner.
	if n := e.countAboveAutoAccept(item.Candidates); n > 1 {
		return media.DispositionQuarantine,
			fmt.Sprintf("ambiguous match: %d candidates scored at or above %.2f", n, e.thresholds.AutoAccept)
	}

	score := item.ConfidenceScore
	switch {
	case score >= e.thresholds.AutoAccept:
		return media.DispositionAutoAccepted,
			fmt.Sprintf("matched %q (%s) with confidence %.2f", item.BestMatch.Title, item.BestMatch.Source, score)
	case score >= e.thresholds.Quarantine:
		return media.DispositionQuarantine,
			fmt.Sprintf("confidence %.2f is below auto-accept (%.2f) but above the quarantine floor (%.2f)",
				score, e.thresholds.AutoAccept, e.thresholds.Quarantine)
	default:
		return media.DispositionQuarantine,
			fmt.Sprintf("low confidence: best score %.2f is below the quarantine floor (%.2f)",
				score, e.thresholds.Quarantine)
	}
}

func (e *Engine) countAboveAutoAccept(candidates []media.Candidate) int {
	n := 0
	for _, c := range candidates {
		if c.Score.Overall >= e.thresholds.AutoAccept {
			n++
		}
	}
	return n
}

// MarkError records a collaborator-reported failure as the item's terminal
// state. It only applies to items still pending.
func MarkError(item *media.Item, err error) {
	if item.Disposition != media.DispositionPending {
		return
	}
	item.Disposition = media.DispositionError
	item.Reason = err.Error()
}
