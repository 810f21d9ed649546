// Package history persists build run summaries in SQLite.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/docpress/internal/build"
)

// ErrNoBuilds is returned by Last when no build has been recorded yet.
var ErrNoBuilds = errors.New("no builds recorded")

// Entry is one recorded build run.
type Entry struct {
	BuildID   string
	Started   time.Time
	Finished  time.Time
	Documents int
	Failures  int
	Warnings  int
	SetHash   string
}

// Store records build results in a SQLite database.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// NewStore opens (or creates) the history database.
// Use ":memory:" for an in-memory database, or a file path for persistence.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		build_id TEXT NOT NULL,
		started INTEGER NOT NULL,
		finished INTEGER NOT NULL,
		documents INTEGER NOT NULL,
		failures INTEGER NOT NULL,
		warnings INTEGER NOT NULL,
		set_hash TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_builds_build_id ON builds(build_id);
	CREATE INDEX IF NOT EXISTS idx_builds_started ON builds(started);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores the summary of one build run.
func (s *Store) Record(ctx context.Context, result *build.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO builds (build_id, started, finished, documents, failures, warnings, set_hash) VALUES (?, ?, ?, ?, ?, ?, ?)",
		result.BuildID,
		result.Started.Unix(),
		result.Finished.Unix(),
		result.Documents,
		len(result.Failures),
		len(result.BrokenLinks),
		result.SetHash,
	)
	if err != nil {
		return fmt.Errorf("insert build: %w", err)
	}
	return nil
}

// Recent returns the most recent builds, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT build_id, started, finished, documents, failures, warnings, set_hash FROM builds ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var started, finished int64
		if err := rows.Scan(&e.BuildID, &started, &finished, &e.Documents, &e.Failures, &e.Warnings, &e.SetHash); err != nil {
			return nil, fmt.Errorf("scan build row: %w", err)
		}
		e.Started = time.Unix(started, 0).UTC()
		e.Finished = time.Unix(finished, 0).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Last returns the most recent build, or ErrNoBuilds.
func (s *Store) Last(ctx context.Context) (*Entry, error) {
	entries, err := s.Recent(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoBuilds
	}
	return &entries[0], nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
