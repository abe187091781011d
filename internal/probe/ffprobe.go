package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// codecNames maps raw ffprobe codec identifiers to the lowercase names the
// scorer's recency hints key on.
var codecNames = map[string]string{
	"hevc":      "h265",
	"h265":      "h265",
	"h264":      "h264",
	"avc":       "h264",
	"av1":       "av1",
	"vp9":       "vp9",
	"vp8":       "vp8",
	"mpeg2":     "mpeg2",
	"vc1":       "vc1",
	"xvid":      "xvid",
	"divx":      "divx",
	"msmpeg4v3": "divx",
}

// FFprobe runs the ffprobe binary to inspect media files.
type FFprobe struct {
	binary  string
	timeout time.Duration
	logger  zerolog.Logger
}

// NewFFprobe locates ffprobe and returns a Prober backed by it. If the
// binary cannot be found the returned Prober still works, producing empty
// records.
func NewFFprobe(explicitPath string, logger zerolog.Logger) *FFprobe {
	return &FFprobe{
		binary:  findBinary("ffprobe", explicitPath),
		timeout: 30 * time.Second,
		logger:  logger.With().Str("component", "probe").Logger(),
	}
}

// Available reports whether an ffprobe binary was found.
func (p *FFprobe) Available() bool { return p.binary != "" }

// Probe inspects path with ffprobe. Any failure degrades to an empty record.
func (p *FFprobe) Probe(ctx context.Context, path string) Record {
	if p.binary == "" {
		return Record{}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.binary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		p.logger.Debug().Err(err).Str("path", path).Msg("ffprobe failed")
		return Record{}
	}

	rec, err := parseFFprobeOutput(stdout.Bytes())
	if err != nil {
		p.logger.Debug().Err(err).Str("path", path).Msg("ffprobe output unreadable")
		return Record{}
	}
	return rec
}

type ffprobeOutput struct {
	Streams []struct {
		CodecType      string `json:"codec_type"`
		CodecName      string `json:"codec_name"`
		Width          int    `json:"width"`
		Height         int    `json:"height"`
		ColorTransfer  string `json:"color_transfer"`
		ColorPrimaries string `json:"color_primaries"`
		Tags           struct {
			Language string `json:"language"`
		} `json:"tags"`
	} `json:"streams"`
	Format struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
	} `json:"format"`
}

func parseFFprobeOutput(data []byte) (Record, error) {
	var out ffprobeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return Record{}, err
	}

	var rec Record
	for _, s := range out.Streams {
		switch s.CodecType {
		case "video":
			if rec.VideoCodec == "" {
				rec.VideoCodec = normalizeCodec(s.CodecName)
				rec.Width = s.Width
				rec.Height = s.Height
				rec.Resolution = resolutionLabel(s.Width, s.Height)
				rec.HDR = isHDRTransfer(s.ColorTransfer, s.ColorPrimaries)
			}
		case "audio":
			if lang := s.Tags.Language; lang != "" && lang != "und" {
				rec.AudioLanguages = appendUnique(rec.AudioLanguages, lang)
			}
		case "subtitle":
			if lang := s.Tags.Language; lang != "" && lang != "und" {
				rec.SubtitleLanguages = appendUnique(rec.SubtitleLanguages, lang)
			}
		}
	}

	if name := out.Format.FormatName; name != "" {
		rec.Container = strings.Split(name, ",")[0]
	}
	if d, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil {
		rec.DurationSeconds = d
	}
	return rec, nil
}

func normalizeCodec(raw string) string {
	if mapped, ok := codecNames[strings.ToLower(raw)]; ok {
		return mapped
	}
	return strings.ToLower(raw)
}

// resolutionLabel buckets pixel dimensions into the familiar scan labels.
// Width is checked as well as height to tolerate cropped aspect ratios.
func resolutionLabel(width, height int) string {
	switch {
	case width >= 3200 || height >= 1800:
		return "2160p"
	case width >= 1800 || height >= 1000:
		return "1080p"
	case width >= 1200 || height >= 680:
		return "720p"
	case width > 0 || height > 0:
		return "480p"
	default:
		return ""
	}
}

// isHDRTransfer reports HDR for PQ/HLG transfer functions or BT.2020
// primaries, which is how ffprobe surfaces HDR10/HLG streams.
func isHDRTransfer(transfer, primaries string) bool {
	t := strings.ToLower(transfer)
	if strings.Contains(t, "smpte2084") || strings.Contains(t, "arib-std-b67") {
		return true
	}
	return strings.Contains(strings.ToLower(primaries), "bt2020")
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

// findBinary resolves a tool by explicit path, PATH lookup, then common
// install locations.
func findBinary(name, explicitPath string) string {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err == nil {
			return explicitPath
		}
	}
	if path, err := exec.LookPath(name); err == nil {
		return path
	}
	for _, p := range []string{"/usr/bin/" + name, "/usr/local/bin/" + name, "/opt/homebrew/bin/" + name} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
