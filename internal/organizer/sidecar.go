package organizer

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/reelsort/reelsort/internal/media"
)

const sidecarSuffix = ".review.yaml"

// sidecarRecord is the triage note written next to a quarantined item so a
// human can resolve it without digging through run logs.
type sidecarRecord struct {
	Name         string             `yaml:"name"`
	Type         string             `yaml:"type"`
	Reason       string             `yaml:"reason"`
	Score        float64            `yaml:"score"`
	BestMatch    *sidecarCandidate  `yaml:"best_match,omitempty"`
	Alternatives []sidecarCandidate `yaml:"alternatives,omitempty"`
}

type sidecarCandidate struct {
	Source string  `yaml:"source"`
	ID     string  `yaml:"id"`
	Title  string  `yaml:"title"`
	Year   int     `yaml:"year,omitempty"`
	Score  float64 `yaml:"score"`
}

func writeSidecar(path string, item *media.Item) error {
	rec := sidecarRecord{
		Name:   item.Name,
		Type:   string(item.Type),
		Reason: item.Reason,
		Score:  item.ConfidenceScore,
	}
	if m := item.BestMatch; m != nil {
		rec.BestMatch = &sidecarCandidate{
			Source: m.Source,
			ID:     m.ID,
			Title:  m.Title,
			Year:   m.Year,
			Score:  m.Score.Overall,
		}
	}
	for _, alt := range item.Alternatives(3) {
		rec.Alternatives = append(rec.Alternatives, sidecarCandidate{
			Source: alt.Source,
			ID:     alt.ID,
			Title:  alt.Title,
			Year:   alt.Year,
			Score:  alt.Score.Overall,
		})
	}

	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal side-car: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create review directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write side-car: %w", err)
	}
	return nil
}
