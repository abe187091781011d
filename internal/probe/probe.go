// Package probe extracts technical metadata from media files.
//
// The pipeline treats probing as an opaque collaborator: a Prober returns a
// Record that may be entirely empty when the file cannot be inspected, and
// it never reports an error to the caller.
package probe

import "context"

// Record holds technical metadata for one media file. Empty fields mean the
// information was unavailable.
type Record struct {
	VideoCodec        string   `json:"videoCodec,omitempty"`
	Resolution        string   `json:"resolution,omitempty"`
	Width             int      `json:"width,omitempty"`
	Height            int      `json:"height,omitempty"`
	HDR               bool     `json:"hdr,omitempty"`
	AudioLanguages    []string `json:"audioLanguages,omitempty"`
	SubtitleLanguages []string `json:"subtitleLanguages,omitempty"`
	Container         string   `json:"container,omitempty"`
	DurationSeconds   float64  `json:"durationSeconds,omitempty"`
}

// IsZero reports whether the record carries no information at all.
func (r Record) IsZero() bool {
	return r.VideoCodec == "" && r.Resolution == "" && !r.HDR &&
		len(r.AudioLanguages) == 0 && len(r.SubtitleLanguages) == 0 &&
		r.Container == "" && r.DurationSeconds == 0
}

// Prober inspects a media file and returns whatever technical metadata it
// can. Implementations must degrade to an empty Record instead of failing.
type Prober interface {
	Probe(ctx context.Context, path string) Record
}

// Null is a Prober that knows nothing about any file.
type Null struct{}

func (Null) Probe(context.Context, string) Record { return Record{} }
