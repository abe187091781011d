package scanner

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// junkPatterns are the release-annotation classes stripped from filenames,
// applied after separator normalization and year removal. Kept as data so
// each class can be tested on its own.
var junkPatterns = []*regexp.Regexp{
	// Resolution markers
	regexp.MustCompile(`(?i)\b(2160p|4k|uhd|fullhd|hd|1080p|1080i|720p|720i|480p)\b`),
	// Video codecs and bit depth
	regexp.MustCompile(`(?i)\b(x264|x265|h\.?264|h\.?265|hevc|avc|xvid|divx|av1|vp9)\b`),
	regexp.MustCompile(`(?i)\b(10bit|8bit)\b`),
	regexp.MustCompile(`(?i)\b(hdr10plus|hdr10|hdr|dolby\s*vision|dv|hlg)\b`),
	// Audio formats and channel layouts
	regexp.MustCompile(`(?i)\b(aac|ac3|eac3|dts-hd|dts|truehd|atmos|flac|mp3|pcm|vorbis|opus)\b`),
	// Channel layouts appear as "5.1" or, after separator normalization,
	// "5 1".
	regexp.MustCompile(`(?i)\b(dd5[.\s]?1|5[.\s]1|7[.\s]1|2[.\s]0|stereo|mono|dual[.\s]?audio)\b`),
	// Release sources and edition tags
	regexp.MustCompile(`(?i)\b(bluray|blu-ray|bdrip|brrip|hdrip|webrip|web-dl|webdl|hdtv|dvdrip|dvdscr|hdcam|cam|telecine|telesync|ts|tc|tvrip|satrip)\b`),
	regexp.MustCompile(`(?i)\b(remux|proper|repack|extended|unrated|theatrical|directors\.?cut|imax|restored|remastered|edition|special|anniversary)\b`),
	// Language tags
	regexp.MustCompile(`(?i)\b(english|spanish|french|german|italian|portuguese|russian|japanese|korean|chinese|hindi|multi|dual)\b`),
	regexp.MustCompile(`(?i)\b(latino|castellano|lat|esp|eng|fra|ger|ita|por|rus|jap|kor|chi|hin)\b`),
	// Subtitle tags
	regexp.MustCompile(`(?i)\b(subtitulado|subtitulada|subs?|hardsubs?|softsubs?)\b`),
	// Season/episode words and misc release strings
	regexp.MustCompile(`(?i)\b(completa|complete|full|season|temporada|temp|episodes?|capitulos?)\b`),
	regexp.MustCompile(`(?i)\b(internal|limited|rerip|retail|hc|korsub)\b`),
	// Release groups: Potential-GroupName plus well known group names
	regexp.MustCompile(`\b[A-Z0-9]{2,}\-[A-Z0-9]{2,}\b`),
	regexp.MustCompile(`(?i)\b(yify|yts|rarbg|ettv|psa|qxr|hazel|ion10|amiable|spark|dgt|vxt)\b`),
}

var (
	bracketGroupRe = regexp.MustCompile(`\[.*?\]`)
	parenGroupRe   = regexp.MustCompile(`\(.*?\)`)
	braceGroupRe   = regexp.MustCompile(`\{.*?\}`)
	separatorRe    = regexp.MustCompile(`[._\-]`)
	nonWordRe      = regexp.MustCompile(`[^\w\s']`)
	parenYearRe    = regexp.MustCompile(`\((\d{4})\)`)
	bareYearRe     = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)

	// Scene releases end in "-GROUP". Stripped before separator
	// normalization turns the hyphen into a space.
	trailingGroupRe = regexp.MustCompile(`-[A-Z0-9]+$`)
)

// minorWords stay lowercase in smart title casing unless they lead the title.
var minorWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"and": true, "but": true, "or": true, "for": true, "nor": true,
	"on": true, "at": true, "to": true, "by": true, "in": true, "of": true,
}

var titleCaser = cases.Title(language.English, cases.NoLower)

// episodeMatcher is one episode-numbering convention. Matchers are tried in
// declaration order and the first match wins.
type episodeMatcher struct {
	name string
	re   *regexp.Regexp
}

var episodeMatchers = []episodeMatcher{
	{"SxxEyy", regexp.MustCompile(`(?i)^(.*?)[\s._-]*[Ss](\d{1,2})[Ee](\d{1,3})`)},
	{"NxNN", regexp.MustCompile(`(?i)^(.*?)[\s._-]*\b(\d{1,2})[xX](\d{1,2})\b`)},
	{"SeasonEpisodeWords", regexp.MustCompile(`(?i)^(.*?)[\s._-]*season[\s._-]*(\d{1,2})[\s._-]*episode[\s._-]*(\d{1,3})`)},
}

// CleanFilename extracts a display title and release year from a raw media
// filename. It never fails: heavy cleaning may leave an empty title, which
// downstream stages treat as a low-confidence hint.
func CleanFilename(raw string) (string, int) {
	name := stripMediaExt(raw)

	yearToken, year := extractYear(name)

	name = trailingGroupRe.ReplaceAllString(name, " ")

	// Normalize separators to spaces before any word-boundary matching.
	name = separatorRe.ReplaceAllString(name, " ")

	if yearToken != "" {
		tokenRe := regexp.MustCompile(`\b` + yearToken + `\b`)
		name = tokenRe.ReplaceAllString(name, " ")
	}

	name = bracketGroupRe.ReplaceAllString(name, " ")
	name = braceGroupRe.ReplaceAllString(name, " ")
	name = parenGroupRe.ReplaceAllString(name, " ")

	for _, re := range junkPatterns {
		name = re.ReplaceAllString(name, " ")
	}

	name = nonWordRe.ReplaceAllString(name, " ")
	name = strings.Join(strings.Fields(name), " ")
	name = strings.Trim(name, "- ")

	return smartTitleCase(name), year
}

// extractYear finds a plausible release year in name. A year enclosed in
// parentheses wins outright. For bare tokens the last plausible year is
// preferred, since trailing tokens are far more often the release year; a
// lone year leading the string is assumed to be part of the title.
func extractYear(name string) (token string, year int) {
	if m := parenYearRe.FindStringSubmatch(name); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil && y >= 1900 && y <= 2099 {
			return m[1], y
		}
	}

	matches := bareYearRe.FindAllStringSubmatchIndex(name, -1)
	if len(matches) == 0 {
		return "", 0
	}
	last := matches[len(matches)-1]
	if last[0] == 0 {
		// "2001 A Space Odyssey": a leading number is a title, not a year.
		return "", 0
	}
	tok := name[last[2]:last[3]]
	y, _ := strconv.Atoi(tok)
	return tok, y
}

// smartTitleCase capitalizes every word except minor words (articles, short
// conjunctions and prepositions), which stay lowercase unless leading.
func smartTitleCase(name string) string {
	words := strings.Fields(strings.ToLower(name))
	if len(words) == 0 {
		return ""
	}
	for i, w := range words {
		if i == 0 || !minorWords[w] {
			words[i] = titleCaser.String(w)
		}
	}
	return strings.Join(words, " ")
}

// ParseEpisode recognizes the supported episode-numbering conventions in
// priority order. The text captured before the number is cleaned into a show
// title; ok is false when no convention matches and the caller should fall
// back to a directory-derived title.
func ParseEpisode(raw string) (title string, season, episode int, ok bool) {
	name := stripMediaExt(raw)

	for _, m := range episodeMatchers {
		match := m.re.FindStringSubmatch(name)
		if match == nil {
			continue
		}
		season, _ = strconv.Atoi(match[2])
		episode, _ = strconv.Atoi(match[3])
		if lead := match[1]; lead != "" {
			title, _ = CleanFilename(lead)
		}
		return title, season, episode, true
	}
	return "", 0, 0, false
}

// IsEpisodeName reports whether a filename carries episode numbering.
func IsEpisodeName(raw string) bool {
	_, _, _, ok := ParseEpisode(raw)
	return ok
}
