// Package organizer turns dispositions into destination paths and move
// instructions. Naming is template driven; the template micro-language is
// pure string transformation, isolated from all scoring and decision logic.
package organizer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NamingConfig holds the destination naming templates. Templates contain
// {field} or {field:00} placeholders and may contain [optional sections]
// that vanish entirely when any placeholder inside has no value.
type NamingConfig struct {
	MovieFolderFormat  string `mapstructure:"movie_folder"`
	MovieFileFormat    string `mapstructure:"movie_file"`
	SeriesFolderFormat string `mapstructure:"series_folder"`
	SeasonFolderFormat string `mapstructure:"season_folder"`
	EpisodeFileFormat  string `mapstructure:"episode_file"`

	MoviesDir string `mapstructure:"movies_dir"`
	TVDir     string `mapstructure:"tv_dir"`
	MusicDir  string `mapstructure:"music_dir"`
}

// DefaultNamingConfig returns the default naming configuration.
func DefaultNamingConfig() NamingConfig {
	return NamingConfig{
		MovieFolderFormat:  "{title} ({year})",
		MovieFileFormat:    "{title} ({year})",
		SeriesFolderFormat: "{title}",
		SeasonFolderFormat: "Season {season:00}",
		EpisodeFileFormat:  "{title} - S{season:00}E{episode:00}",
		MoviesDir:          "Movies",
		TVDir:              "TV Shows",
		MusicDir:           "Music",
	}
}

var (
	tokenRe           = regexp.MustCompile(`\{(\w+)(?::([^}]+))?\}`)
	optionalSectionRe = regexp.MustCompile(`\[([^\[\]]*)\]`)
	multiSpaceRe      = regexp.MustCompile(`\s+`)
	danglingDashRe    = regexp.MustCompile(`\s*-\s*-\s*`)
	emptyParenRe      = regexp.MustCompile(`\(\s*\)|\[\s*\]|\{\s*\}`)
	trailingDashRe    = regexp.MustCompile(`\s+-\s*$`)
	leadingDashRe     = regexp.MustCompile(`^\s*-\s+`)
)

// Render evaluates a template in two passes: optional-section elimination,
// then field substitution, followed by sanitizing. Values holds every
// available field; absent or empty entries count as unavailable.
func Render(template string, values map[string]string) string {
	// Pass 1: drop any [section] whose placeholders are not all available.
	result := optionalSectionRe.ReplaceAllStringFunc(template, func(section string) string {
		inner := section[1 : len(section)-1]
		for _, m := range tokenRe.FindAllStringSubmatch(inner, -1) {
			if values[m[1]] == "" {
				return ""
			}
		}
		return inner
	})

	// Pass 2: substitute fields, formatting numbers where asked.
	result = tokenRe.ReplaceAllStringFunc(result, func(match string) string {
		m := tokenRe.FindStringSubmatch(match)
		return formatValue(values[m[1]], m[2])
	})

	return Sanitize(result)
}

// formatValue applies a zero-padding format like "00" to numeric values.
// Non-numeric values and empty formats pass through unchanged.
func formatValue(value, format string) string {
	if format == "" || value == "" {
		return value
	}
	if format[0] == '0' {
		if n, err := strconv.Atoi(value); err == nil {
			return fmt.Sprintf("%0*d", len(format), n)
		}
	}
	return value
}

// Sanitize strips filesystem-invalid characters and the whitespace or dash
// artifacts left behind by removed placeholders.
func Sanitize(name string) string {
	for _, ch := range []string{"<", ">", ":", "\"", "/", "\\", "|", "?", "*"} {
		name = strings.ReplaceAll(name, ch, "")
	}

	name = multiSpaceRe.ReplaceAllString(name, " ")
	name = danglingDashRe.ReplaceAllString(name, " - ")
	name = emptyParenRe.ReplaceAllString(name, "")
	name = multiSpaceRe.ReplaceAllString(name, " ")
	name = trailingDashRe.ReplaceAllString(name, "")
	name = leadingDashRe.ReplaceAllString(name, "")

	return strings.Trim(name, " .")
}
