package organizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/reelsort/reelsort/internal/media"
)

func TestWriteSidecar(t *testing.T) {
	item := media.NewItem("/src/mystery.mkv", "mystery.mkv", "mystery.mkv", media.TypeMovie)
	item.Disposition = media.DispositionQuarantine
	item.Reason = "ambiguous match: 2 candidates scored at or above 0.85"
	item.ConfidenceScore = 0.88
	item.Candidates = []media.Candidate{
		{Source: "tmdb", ID: "1", Title: "Mystery", Year: 2001, Score: media.ScoreBreakdown{Overall: 0.88}},
		{Source: "tmdb", ID: "2", Title: "The Mystery", Year: 2002, Score: media.ScoreBreakdown{Overall: 0.86}},
		{Source: "omdb", ID: "tt3", Title: "Mystery Road", Score: media.ScoreBreakdown{Overall: 0.61}},
	}
	item.BestMatch = &item.Candidates[0]

	path := filepath.Join(t.TempDir(), "mystery.mkv"+sidecarSuffix)
	require.NoError(t, writeSidecar(path, item))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rec sidecarRecord
	require.NoError(t, yaml.Unmarshal(data, &rec))

	require.Equal(t, "mystery.mkv", rec.Name)
	require.Equal(t, string(media.TypeMovie), rec.Type)
	require.Equal(t, item.Reason, rec.Reason)
	require.NotNil(t, rec.BestMatch)
	require.Equal(t, "1", rec.BestMatch.ID)
	require.Len(t, rec.Alternatives, 2)
	require.Equal(t, "2", rec.Alternatives[0].ID)
}

func TestWriteSidecarNoMatch(t *testing.T) {
	item := media.NewItem("/src/unknown.mkv", "unknown.mkv", "unknown.mkv", media.TypeMovie)
	item.Disposition = media.DispositionQuarantine
	item.Reason = "no metadata match found"

	path := filepath.Join(t.TempDir(), "unknown.mkv"+sidecarSuffix)
	require.NoError(t, writeSidecar(path, item))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rec sidecarRecord
	require.NoError(t, yaml.Unmarshal(data, &rec))
	require.Nil(t, rec.BestMatch)
	require.Empty(t, rec.Alternatives)
}
