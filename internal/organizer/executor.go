package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/reelsort/reelsort/internal/media"
)

// Config holds executor configuration.
type Config struct {
	// LibraryRoot is the destination root for auto-accepted items.
	LibraryRoot string
	// ReviewRoot receives quarantined items, mirroring their original
	// relative layout.
	ReviewRoot string
	Naming     NamingConfig
	// WriteNFO enables metadata side-car emission for accepted items.
	WriteNFO bool
	// DryRun computes destinations and writes nothing.
	DryRun bool
}

// Executor computes destination paths for decided items and hands move
// instructions to the Mover. A per-item failure (collision, IO error) marks
// that item failed and never aborts the run.
type Executor struct {
	cfg    Config
	mover  Mover
	logger zerolog.Logger
}

// NewExecutor creates an Executor.
func NewExecutor(cfg Config, mover Mover, logger zerolog.Logger) *Executor {
	return &Executor{
		cfg:    cfg,
		mover:  mover,
		logger: logger.With().Str("component", "executor").Logger(),
	}
}

// Execute carries out an item's disposition. Pending, Ignored, and Error
// items are left untouched.
func (e *Executor) Execute(item *media.Item) {
	switch item.Disposition {
	case media.DispositionAutoAccepted:
		e.accept(item)
	case media.DispositionQuarantine:
		e.quarantine(item)
	}
}

func (e *Executor) accept(item *media.Item) {
	switch item.Type {
	case media.TypeMovie:
		e.acceptMovie(item)
	case media.TypeTVEpisode:
		e.acceptEpisode(item)
	case media.TypeMusicAlbum:
		e.acceptMusic(item)
	}
}

func (e *Executor) acceptMovie(item *media.Item) {
	values := e.templateValues(item)
	folder := Render(e.cfg.Naming.MovieFolderFormat, values)
	file := Render(e.cfg.Naming.MovieFileFormat, values)

	dir := filepath.Join(e.cfg.LibraryRoot, e.cfg.Naming.MoviesDir, folder)
	dst := filepath.Join(dir, file+filepath.Ext(item.SourcePath))
	item.Destination = dst

	if !e.move(item, item.SourcePath, dst) {
		return
	}
	e.moveSubtitles(item, dir, file)

	if e.cfg.WriteNFO && !e.cfg.DryRun && item.BestMatch != nil {
		if err := WriteMovieNFO(filepath.Join(dir, "movie.nfo"), item.BestMatch); err != nil {
			e.logger.Warn().Err(err).Str("item", item.Name).Msg("NFO write failed")
		}
	}
}

func (e *Executor) acceptEpisode(item *media.Item) {
	values := e.templateValues(item)
	seriesFolder := Render(e.cfg.Naming.SeriesFolderFormat, values)
	seasonFolder := Render(e.cfg.Naming.SeasonFolderFormat, values)
	file := Render(e.cfg.Naming.EpisodeFileFormat, values)

	seriesDir := filepath.Join(e.cfg.LibraryRoot, e.cfg.Naming.TVDir, seriesFolder)
	dir := filepath.Join(seriesDir, seasonFolder)
	dst := filepath.Join(dir, file+filepath.Ext(item.SourcePath))
	item.Destination = dst

	if !e.move(item, item.SourcePath, dst) {
		return
	}
	e.moveSubtitles(item, dir, file)

	if e.cfg.WriteNFO && !e.cfg.DryRun && item.BestMatch != nil {
		nfoPath := filepath.Join(seriesDir, "tvshow.nfo")
		if _, err := os.Stat(nfoPath); os.IsNotExist(err) {
			if err := WriteShowNFO(nfoPath, item.BestMatch); err != nil {
				e.logger.Warn().Err(err).Str("item", item.Name).Msg("NFO write failed")
			}
		}
	}
}

// acceptMusic relocates the whole album directory; identification inside it
// is delegated to an external music tagger.
func (e *Executor) acceptMusic(item *media.Item) {
	dst := filepath.Join(e.cfg.LibraryRoot, e.cfg.Naming.MusicDir, Sanitize(item.Name))
	item.Destination = dst
	e.move(item, item.SourcePath, dst)
}

// quarantine mirrors the item's original relative path under the review
// root and drops a triage side-car next to it.
func (e *Executor) quarantine(item *media.Item) {
	dst := filepath.Join(e.cfg.ReviewRoot, item.RelativePath)
	item.Destination = dst

	if !e.move(item, item.SourcePath, dst) {
		return
	}

	for _, sub := range item.Subtitles {
		subDst := filepath.Join(filepath.Dir(dst), filepath.Base(sub.Path))
		e.moveExtra(item, sub.Path, subDst)
	}

	if e.cfg.DryRun {
		return
	}
	if err := writeSidecar(dst+sidecarSuffix, item); err != nil {
		e.logger.Warn().Err(err).Str("item", item.Name).Msg("Side-car write failed")
	}
}

// move performs the primary move for an item; on failure the item's
// disposition becomes Error with the collision or IO reason recorded.
func (e *Executor) move(item *media.Item, src, dst string) bool {
	if e.cfg.DryRun {
		return true
	}
	status, err := e.mover.Move(src, dst)
	switch status {
	case MoveOK:
		return true
	case MoveAlreadyExists:
		e.fail(item, fmt.Sprintf("destination already exists: %s", dst))
	case MoveFailed:
		e.fail(item, fmt.Sprintf("move failed: %v", err))
	}
	return false
}

// moveExtra moves an associated file (subtitle); failures are logged but do
// not change the item's disposition.
func (e *Executor) moveExtra(item *media.Item, src, dst string) {
	if e.cfg.DryRun {
		return
	}
	if _, err := e.mover.Move(src, dst); err != nil {
		e.logger.Warn().Err(err).Str("item", item.Name).Str("src", src).Msg("Associated file not moved")
	}
}

// moveSubtitles relocates claimed subtitles next to the video under its new
// stem, preserving any language suffix from the original name.
func (e *Executor) moveSubtitles(item *media.Item, dir, stem string) {
	videoStem := strings.TrimSuffix(filepath.Base(item.SourcePath), filepath.Ext(item.SourcePath))
	for _, sub := range item.Subtitles {
		base := filepath.Base(sub.Path)
		suffix := strings.TrimPrefix(base, videoStem)
		if suffix == base {
			suffix = filepath.Ext(base)
		}
		e.moveExtra(item, sub.Path, filepath.Join(dir, stem+suffix))
	}
}

func (e *Executor) fail(item *media.Item, reason string) {
	item.Disposition = media.DispositionError
	item.Reason = reason
	e.logger.Error().Str("item", item.Name).Str("reason", reason).Msg("Execution failed")
}

// templateValues collects every field the naming templates may reference.
// Unset fields stay absent so optional sections collapse.
func (e *Executor) templateValues(item *media.Item) map[string]string {
	values := map[string]string{
		"title": item.ParsedTitle,
	}
	if item.ParsedYear > 0 {
		values["year"] = strconv.Itoa(item.ParsedYear)
	}
	if item.Season > 0 {
		values["season"] = strconv.Itoa(item.Season)
	}
	if item.Episode > 0 {
		values["episode"] = strconv.Itoa(item.Episode)
	}

	if m := item.BestMatch; m != nil {
		if m.Title != "" {
			values["title"] = m.Title
		}
		if m.Year > 0 {
			values["year"] = strconv.Itoa(m.Year)
		}
		values["source_id"] = m.ID
		if m.Source == "tmdb" {
			values["tmdb_id"] = m.ID
		}
		if m.ImdbID != "" {
			values["imdb_id"] = m.ImdbID
		}
	}

	if !item.Probe.IsZero() {
		values["codec"] = item.Probe.VideoCodec
		values["resolution"] = item.Probe.Resolution
		values["audio_langs"] = strings.Join(item.Probe.AudioLanguages, "+")
		values["sub_langs"] = strings.Join(item.Probe.SubtitleLanguages, "+")
	}

	return values
}
