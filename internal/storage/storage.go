package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/shirokuma-tools/shirokuma-docs/internal/core"
)

// Store defines the local persistence operations. The cache half is
// advisory: callers that get an error fall back to the live API.
type Store interface {
	GetCached(ctx context.Context, key string, maxAge time.Duration) ([]byte, bool, error)
	PutCached(ctx context.Context, key string, payload []byte) error
	InvalidateCached(ctx context.Context, key string) error
	RecordScanRun(ctx context.Context, run *core.ScanRun) error
	RecentScanRuns(ctx context.Context, kind string, limit int) ([]core.ScanRun, error)
}

type sqliteStore struct {
	db *sqlx.DB
}

// NewStore creates a new Store
func NewStore(db *sqlx.DB) Store {
	return &sqliteStore{db: db}
}

// GetCached returns the cached payload for key if it is younger than
// maxAge. A zero maxAge disables expiry. The second return value
// reports a usable hit.
func (s *sqliteStore) GetCached(ctx context.Context, key string, maxAge time.Duration) ([]byte, bool, error) {
	query := `SELECT payload, fetched_at FROM api_cache WHERE cache_key = ?`

	var row struct {
		Payload   string    `db:"payload"`
		FetchedAt time.Time `db:"fetched_at"`
	}
	if err := s.db.GetContext(ctx, &row, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	// maxAge == 0 means no expiry; a negative maxAge always misses.
	if maxAge != 0 && time.Since(row.FetchedAt) > maxAge {
		return nil, false, nil
	}
	return []byte(row.Payload), true, nil
}

// PutCached stores or replaces the payload for key.
func (s *sqliteStore) PutCached(ctx context.Context, key string, payload []byte) error {
	query := `INSERT INTO api_cache (cache_key, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`
	_, err := s.db.ExecContext(ctx, query, key, string(payload), time.Now().UTC())
	return err
}

// InvalidateCached drops the entry for key. Missing keys are not an error.
func (s *sqliteStore) InvalidateCached(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM api_cache WHERE cache_key = ?`, key)
	return err
}

// RecordScanRun appends one scan to the history table.
func (s *sqliteStore) RecordScanRun(ctx context.Context, run *core.ScanRun) error {
	query := `INSERT INTO scan_runs (kind, source_dir, files, started_at, finished_at) VALUES (?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, query, run.Kind, run.SourceDir, run.Files, run.StartedAt.UTC(), run.FinishedAt.UTC())
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		run.ID = id
	}
	return nil
}

// RecentScanRuns returns the newest runs of the given kind, most recent
// first.
func (s *sqliteStore) RecentScanRuns(ctx context.Context, kind string, limit int) ([]core.ScanRun, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, kind, source_dir, files, started_at, finished_at
		FROM scan_runs WHERE kind = ? ORDER BY finished_at DESC, id DESC LIMIT ?`

	var runs []core.ScanRun
	if err := s.db.SelectContext(ctx, &runs, query, kind, limit); err != nil {
		return nil, err
	}
	return runs, nil
}
