package organizer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// MoveStatus is the outcome of a single move request.
type MoveStatus int

const (
	MoveOK MoveStatus = iota
	MoveAlreadyExists
	MoveFailed
)

// Mover relocates files on disk. The pipeline calls it once per file and
// never retries.
type Mover interface {
	Move(src, dst string) (MoveStatus, error)
}

// FileMover moves files with rename, falling back to copy-and-remove across
// filesystems. It refuses to overwrite: the existence check runs against the
// live filesystem immediately before the move, so two items in one run can
// never race the same destination into a silent overwrite.
type FileMover struct {
	logger zerolog.Logger
}

// NewFileMover creates a FileMover.
func NewFileMover(logger zerolog.Logger) *FileMover {
	return &FileMover{logger: logger.With().Str("component", "mover").Logger()}
}

// Move relocates src to dst, creating parent directories as needed.
func (m *FileMover) Move(src, dst string) (MoveStatus, error) {
	if _, err := os.Lstat(dst); err == nil {
		return MoveAlreadyExists, fmt.Errorf("destination already exists: %s", dst)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return MoveFailed, fmt.Errorf("failed to create destination directory: %w", err)
	}

	err := os.Rename(src, dst)
	if err == nil {
		m.logger.Info().Str("src", src).Str("dst", dst).Msg("Moved")
		return MoveOK, nil
	}

	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		// Cross-device rename; fall back to copy and remove.
		if copyErr := copyFile(src, dst); copyErr != nil {
			return MoveFailed, fmt.Errorf("cross-device copy failed: %w", copyErr)
		}
		if rmErr := os.Remove(src); rmErr != nil {
			m.logger.Warn().Err(rmErr).Str("src", src).Msg("Copied but could not remove source")
		}
		m.logger.Info().Str("src", src).Str("dst", dst).Msg("Moved (copy)")
		return MoveOK, nil
	}

	return MoveFailed, fmt.Errorf("move failed: %w", err)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

// DryRunMover records nothing and reports every move as successful. Used
// when the run is a preview.
type DryRunMover struct{}

func (DryRunMover) Move(src, dst string) (MoveStatus, error) { return MoveOK, nil }
