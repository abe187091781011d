package scanner

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/reelsort/reelsort/internal/media"
)

// languageNames maps subtitle filename suffixes (ISO codes or spelled-out
// names) to a display language.
var languageNames = map[string]string{
	"en": "English", "eng": "English", "english": "English",
	"es": "Spanish", "spa": "Spanish", "spanish": "Spanish",
	"fr": "French", "fra": "French", "fre": "French", "french": "French",
	"de": "German", "ger": "German", "deu": "German", "german": "German",
	"it": "Italian", "ita": "Italian", "italian": "Italian",
	"pt": "Portuguese", "por": "Portuguese", "portuguese": "Portuguese",
	"ru": "Russian", "rus": "Russian", "russian": "Russian",
	"ja": "Japanese", "jpn": "Japanese", "japanese": "Japanese",
	"ko": "Korean", "kor": "Korean", "korean": "Korean",
	"zh": "Chinese", "chi": "Chinese", "chinese": "Chinese",
	"ar": "Arabic", "ara": "Arabic", "arabic": "Arabic",
	"hi": "Hindi", "hin": "Hindi", "hindi": "Hindi",
	"nl": "Dutch", "dut": "Dutch", "dutch": "Dutch",
	"pl": "Polish", "pol": "Polish", "polish": "Polish",
	"sv": "Swedish", "swe": "Swedish", "swedish": "Swedish",
	"no": "Norwegian", "nor": "Norwegian", "norwegian": "Norwegian",
	"da": "Danish", "dan": "Danish", "danish": "Danish",
	"fi": "Finnish", "fin": "Finnish", "finnish": "Finnish",
	"tr": "Turkish", "tur": "Turkish", "turkish": "Turkish",
	"he": "Hebrew", "heb": "Hebrew", "hebrew": "Hebrew",
	"th": "Thai", "tha": "Thai", "thai": "Thai",
	"vi": "Vietnamese", "vie": "Vietnamese", "vietnamese": "Vietnamese",
}

var langSuffixRe = regexp.MustCompile(`(?i)[._\-]([a-z]+)$`)

// DetectSubtitleLanguage guesses the language of a subtitle file from a
// trailing suffix like "movie.en.srt" or "movie_english.srt". Returns ""
// when no known suffix is present.
func DetectSubtitleLanguage(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	m := langSuffixRe.FindStringSubmatch(stem)
	if m == nil {
		return ""
	}
	return languageNames[strings.ToLower(m[1])]
}

// claimSubtitles matches subtitle files to a video by filename-prefix: any
// unclaimed subtitle whose name starts with the video's stem belongs to the
// video. claimed is shared across the scan so each subtitle is attached to
// at most one video.
func claimSubtitles(videoPath string, pool []string, claimed map[string]bool) []media.Subtitle {
	videoStem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))

	var matched []media.Subtitle
	for _, sub := range pool {
		if claimed[sub] {
			continue
		}
		if !strings.HasPrefix(filepath.Base(sub), videoStem) {
			continue
		}
		claimed[sub] = true
		matched = append(matched, media.Subtitle{
			Path:     sub,
			Language: DetectSubtitleLanguage(sub),
		})
	}
	return matched
}
