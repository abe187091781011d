package scanner

import (
	"path/filepath"
	"strings"
)

// FileKind classifies a file by extension.
type FileKind int

const (
	KindOther FileKind = iota
	KindVideo
	KindAudio
	KindSubtitle
)

// VideoExtensions contains supported video file extensions.
var VideoExtensions = map[string]bool{
	".mkv":  true,
	".mp4":  true,
	".avi":  true,
	".m4v":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".mpg":  true,
	".mpeg": true,
	".ts":   true,
	".m2ts": true,
	".vob":  true,
}

// AudioExtensions contains supported audio file extensions.
var AudioExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".wav":  true,
	".m4a":  true,
	".ogg":  true,
	".wma":  true,
	".aac":  true,
	".opus": true,
	".ape":  true,
	".alac": true,
}

// SubtitleExtensions contains supported subtitle file extensions.
var SubtitleExtensions = map[string]bool{
	".srt": true,
	".vtt": true,
	".sub": true,
	".ass": true,
	".ssa": true,
	".idx": true,
}

// Classify returns the kind of a file based on its extension. Anything not
// recognized is KindOther and is ignored by the scanner.
func Classify(filename string) FileKind {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case VideoExtensions[ext]:
		return KindVideo
	case AudioExtensions[ext]:
		return KindAudio
	case SubtitleExtensions[ext]:
		return KindSubtitle
	default:
		return KindOther
	}
}

// IsVideoFile checks if a filename has a video extension.
func IsVideoFile(filename string) bool { return Classify(filename) == KindVideo }

// IsAudioFile checks if a filename has an audio extension.
func IsAudioFile(filename string) bool { return Classify(filename) == KindAudio }

// IsSubtitleFile checks if a filename has a subtitle extension.
func IsSubtitleFile(filename string) bool { return Classify(filename) == KindSubtitle }

// stripMediaExt removes the extension only when it is one the scanner
// recognizes, so titles containing dots are not truncated.
func stripMediaExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if VideoExtensions[ext] || AudioExtensions[ext] || SubtitleExtensions[ext] {
		return strings.TrimSuffix(filename, filepath.Ext(filename))
	}
	return filename
}
