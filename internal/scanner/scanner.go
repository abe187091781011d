// Package scanner walks a source tree, parses noisy media filenames, and
// groups raw files into the logical items the pipeline operates on.
package scanner

import (
	"context"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/reelsort/reelsort/internal/media"
	"github.com/reelsort/reelsort/internal/probe"
)

var seasonLabelRe = regexp.MustCompile(`(?i)^(season|temporada|temp)\b|^s\d{1,2}$`)

// Scanner discovers media files under a root and groups them into items.
type Scanner struct {
	root   string
	prober probe.Prober
	logger zerolog.Logger
}

// New creates a Scanner. root should be absolute; prober may be probe.Null{}.
func New(root string, prober probe.Prober, logger zerolog.Logger) *Scanner {
	return &Scanner{
		root:   root,
		prober: prober,
		logger: logger.With().Str("component", "scanner").Logger(),
	}
}

// ScanAndGroup walks the tree once and returns one item per logical media
// unit. Files that cannot be classified are skipped silently; a malformed
// filename degrades to an empty parsed title rather than an error.
func (s *Scanner) ScanAndGroup(ctx context.Context) ([]*media.Item, error) {
	videos, audios, subs, err := s.scan()
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("videos", len(videos)).
		Int("audio", len(audios)).
		Int("subtitles", len(subs)).
		Msg("Scan complete")

	items := s.group(ctx, videos, audios, subs)

	s.logger.Info().Int("items", len(items)).Msg("Grouping complete")
	return items, nil
}

// scan classifies every regular file under the root. Hidden directories are
// pruned from traversal. Walk order is lexical, which keeps grouping and the
// final report deterministic for a given tree.
func (s *Scanner) scan() (videos, audios, subs []string, err error) {
	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != s.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		switch Classify(d.Name()) {
		case KindVideo:
			videos = append(videos, path)
		case KindAudio:
			audios = append(audios, path)
		case KindSubtitle:
			subs = append(subs, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return videos, audios, subs, nil
}

// group applies the grouping policy in fixed priority: music directories
// absorb everything they contain, then video directories become TV groups
// when any file carries episode numbering, and remaining videos are
// individual movies.
func (s *Scanner) group(ctx context.Context, videos, audios, subs []string) []*media.Item {
	var items []*media.Item
	absorbed := make(map[string]bool)

	// 1. Music albums: one item per directory holding audio. Videos in the
	// same directory are assumed to be music videos and taken out of
	// movie/TV processing so one folder cannot yield conflicting types.
	musicDirs := groupByDir(audios)
	for _, dir := range musicDirs.order {
		items = append(items, s.musicItem(dir))
		for _, v := range videos {
			if filepath.Dir(v) == dir {
				absorbed[v] = true
			}
		}
		for _, sub := range subs {
			if filepath.Dir(sub) == dir {
				absorbed[sub] = true
			}
		}
	}

	var remainingVideos, remainingSubs []string
	for _, v := range videos {
		if !absorbed[v] {
			remainingVideos = append(remainingVideos, v)
		}
	}
	for _, sub := range subs {
		if !absorbed[sub] {
			remainingSubs = append(remainingSubs, sub)
		}
	}

	// 2 & 3. TV directories vs. individual movies.
	claimed := make(map[string]bool)
	videoDirs := groupByDir(remainingVideos)
	for _, dir := range videoDirs.order {
		files := videoDirs.byDir[dir]

		tv := false
		for _, f := range files {
			if IsEpisodeName(filepath.Base(f)) {
				tv = true
				break
			}
		}

		if tv {
			for _, f := range files {
				items = append(items, s.episodeItem(ctx, dir, f, remainingSubs, claimed))
			}
		} else {
			for _, f := range files {
				items = append(items, s.movieItem(ctx, f, remainingSubs, claimed))
			}
		}
	}

	return items
}

func (s *Scanner) movieItem(ctx context.Context, path string, subs []string, claimed map[string]bool) *media.Item {
	name := filepath.Base(path)
	title, year := CleanFilename(name)

	item := media.NewItem(path, s.relative(path), name, media.TypeMovie)
	item.ParsedTitle = title
	item.ParsedYear = year
	item.Subtitles = claimSubtitles(path, subs, claimed)
	item.Probe = s.prober.Probe(ctx, path)
	return item
}

func (s *Scanner) episodeItem(ctx context.Context, dir, path string, subs []string, claimed map[string]bool) *media.Item {
	name := filepath.Base(path)
	title, season, episode, ok := ParseEpisode(name)
	if !ok || title == "" || seasonLabelRe.MatchString(title) {
		title = s.directoryTitle(dir)
	}

	item := media.NewItem(path, s.relative(path), name, media.TypeTVEpisode)
	item.ParsedTitle = title
	item.Season = season
	item.Episode = episode
	item.Subtitles = claimSubtitles(path, subs, claimed)
	item.Probe = s.prober.Probe(ctx, path)
	return item
}

func (s *Scanner) musicItem(dir string) *media.Item {
	return media.NewItem(dir, s.relative(dir), filepath.Base(dir), media.TypeMusicAlbum)
}

// directoryTitle derives a show title from a directory name, walking one
// level up when the directory itself is only a season label ("Season 1").
func (s *Scanner) directoryTitle(dir string) string {
	name := filepath.Base(dir)
	if seasonLabelRe.MatchString(name) {
		name = filepath.Base(filepath.Dir(dir))
	}
	title, _ := CleanFilename(name)
	return title
}

func (s *Scanner) relative(path string) string {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return path
	}
	return rel
}

// dirGroups preserves first-seen directory order alongside the per-directory
// file lists.
type dirGroups struct {
	order []string
	byDir map[string][]string
}

func groupByDir(files []string) dirGroups {
	g := dirGroups{byDir: make(map[string][]string)}
	for _, f := range files {
		dir := filepath.Dir(f)
		if _, seen := g.byDir[dir]; !seen {
			g.order = append(g.order, dir)
		}
		g.byDir[dir] = append(g.byDir[dir], f)
	}
	return g
}
