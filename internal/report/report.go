// Package report accumulates per-item audit records and produces the run's
// JSON report and console summary.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/reelsort/reelsort/internal/media"
)

// Entry is one processed item's audit record.
type Entry struct {
	Name        string  `json:"name"`
	Path        string  `json:"path"`
	Type        string  `json:"type"`
	Disposition string  `json:"disposition"`
	Reason      string  `json:"reason,omitempty"`
	Score       float64 `json:"score"`
	Match       *Match  `json:"match,omitempty"`
	Destination string  `json:"destination,omitempty"`
}

// Match summarizes the accepted or best candidate.
type Match struct {
	Source string `json:"source"`
	ID     string `json:"id"`
	Title  string `json:"title"`
	Year   int    `json:"year,omitempty"`
}

// Summary holds the per-disposition counts for a run.
type Summary struct {
	Total       int `json:"total"`
	Movies      int `json:"moviesProcessed"`
	TVEpisodes  int `json:"tvEpisodesProcessed"`
	MusicAlbums int `json:"musicProcessed"`
	Quarantined int `json:"quarantined"`
	Ignored     int `json:"ignored"`
	Errors      int `json:"errors"`
}

// Report is the complete record of one run.
type Report struct {
	RunID       string    `json:"runId"`
	StartedAt   time.Time `json:"startedAt"`
	CompletedAt time.Time `json:"completedAt"`
	SourceDir   string    `json:"sourceDir"`
	DestDir     string    `json:"destDir"`
	DryRun      bool      `json:"dryRun"`
	Summary     Summary   `json:"summary"`
	Results     []Entry   `json:"results"`
}

// New starts a report for a run.
func New(sourceDir, destDir string, dryRun bool) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		SourceDir: sourceDir,
		DestDir:   destDir,
		DryRun:    dryRun,
	}
}

// Add appends one processed item and updates the summary counts.
func (r *Report) Add(item *media.Item) {
	entry := Entry{
		Name:        item.Name,
		Path:        item.SourcePath,
		Type:        string(item.Type),
		Disposition: string(item.Disposition),
		Reason:      item.Reason,
		Score:       item.ConfidenceScore,
		Destination: item.Destination,
	}
	if m := item.BestMatch; m != nil {
		entry.Match = &Match{Source: m.Source, ID: m.ID, Title: m.Title, Year: m.Year}
	}
	r.Results = append(r.Results, entry)

	r.Summary.Total++
	switch item.Disposition {
	case media.DispositionAutoAccepted:
		switch item.Type {
		case media.TypeMovie:
			r.Summary.Movies++
		case media.TypeTVEpisode:
			r.Summary.TVEpisodes++
		case media.TypeMusicAlbum:
			r.Summary.MusicAlbums++
		}
	case media.DispositionQuarantine:
		r.Summary.Quarantined++
	case media.DispositionIgnored:
		r.Summary.Ignored++
	case media.DispositionError:
		r.Summary.Errors++
	}
}

// Save finalizes the report and writes it as JSON.
func (r *Report) Save(path string) error {
	r.CompletedAt = time.Now()

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// PrintSummary renders the disposition counts and enumerates every
// quarantined item with its reason, so triage needs no log digging.
func (r *Report) PrintSummary(w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("reelsort run %s", r.RunID)

	tw.AppendHeader(table.Row{"", "Count"})
	tw.AppendRows([]table.Row{
		{"Items scanned", r.Summary.Total},
		{"Movies accepted", r.Summary.Movies},
		{"TV episodes accepted", r.Summary.TVEpisodes},
		{"Music albums accepted", r.Summary.MusicAlbums},
		{"Quarantined", r.Summary.Quarantined},
		{"Ignored", r.Summary.Ignored},
		{"Errors", r.Summary.Errors},
	})
	tw.Render()

	if r.DryRun {
		fmt.Fprintln(w, "Dry run: no files were moved. Re-run with --apply to execute.")
	}

	quarantined := r.quarantinedEntries()
	if len(quarantined) == 0 {
		return
	}
	fmt.Fprintln(w, "\nItems needing review:")
	for _, entry := range quarantined {
		fmt.Fprintf(w, "  - %s\n      %s\n", entry.Name, entry.Reason)
	}
}

func (r *Report) quarantinedEntries() []Entry {
	var out []Entry
	for _, e := range r.Results {
		if e.Disposition == string(media.DispositionQuarantine) {
			out = append(out, e)
		}
	}
	return out
}
