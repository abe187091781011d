// Package querycache persists catalog query results between runs, keyed by
// the exact query string. It is handed to the resolver as a collaborator; a
// broken or missing cache only costs repeat lookups.
package querycache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/reelsort/reelsort/internal/media"
)

const schema = `
CREATE TABLE IF NOT EXISTS query_cache (
	key        TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	created_at INTEGER NOT NULL
);`

// Store is a sqlite-backed query cache.
type Store struct {
	db     *sql.DB
	ttl    time.Duration
	logger zerolog.Logger
}

// Open creates or opens the cache database at path. ttl bounds how long an
// entry stays valid; zero means entries never expire.
func Open(path string, ttl time.Duration, logger zerolog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &Store{
		db:     db,
		ttl:    ttl,
		logger: logger.With().Str("component", "querycache").Logger(),
	}, nil
}

// Get returns the cached candidates for key, or ok=false on a miss, an
// expired entry, or any storage error.
func (s *Store) Get(ctx context.Context, key string) ([]media.Candidate, bool) {
	var payload string
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, created_at FROM query_cache WHERE key = ?`, key,
	).Scan(&payload, &createdAt)
	if err != nil {
		if err != sql.ErrNoRows {
			s.logger.Warn().Err(err).Msg("Cache read failed")
		}
		return nil, false
	}

	if s.ttl > 0 && time.Since(time.Unix(createdAt, 0)) > s.ttl {
		return nil, false
	}

	var candidates []media.Candidate
	if err := json.Unmarshal([]byte(payload), &candidates); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Cache entry unreadable, ignoring")
		return nil, false
	}
	return candidates, true
}

// Put stores candidates under key, replacing any previous entry. Failures
// are logged and swallowed.
func (s *Store) Put(ctx context.Context, key string, candidates []media.Candidate) {
	payload, err := json.Marshal(candidates)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Cache entry not serializable")
		return
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO query_cache (key, payload, created_at) VALUES (?, ?, ?)`,
		key, string(payload), time.Now().Unix(),
	)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Cache write failed")
	}
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
