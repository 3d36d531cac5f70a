// Package history records check outcomes in a local SQLite database.
// The store is best-effort: it never influences the printed result.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Fault classes recorded per check.
const (
	FaultNone       = "none"       // check passed
	FaultInvocation = "invocation" // launch failure, timeout, non-zero exit
	FaultFormat     = "format"     // malformed announcement line
	FaultContent    = "content"    // count or multiset mismatch
)

// Entry is one recorded check outcome.
type Entry struct {
	ID        int64
	StartedAt time.Time
	Duration  time.Duration
	Passed    bool
	Fault     string // one of the Fault* constants
	Detail    string // short human-readable deviation summary
}

// Store persists check outcomes.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS checks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at  INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	passed      INTEGER NOT NULL,
	fault       TEXT NOT NULL,
	detail      TEXT NOT NULL DEFAULT ''
);
`

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one check outcome.
func (s *Store) Record(e Entry) error {
	_, err := s.db.Exec(
		`INSERT INTO checks (started_at, duration_ms, passed, fault, detail) VALUES (?, ?, ?, ?, ?)`,
		e.StartedAt.Unix(), e.Duration.Milliseconds(), boolToInt(e.Passed), e.Fault, e.Detail,
	)
	if err != nil {
		return fmt.Errorf("record check: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, duration_ms, passed, fault, detail
		 FROM checks ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			startedAt  int64
			durationMS int64
			passed     int
		)
		if err := rows.Scan(&e.ID, &startedAt, &durationMS, &passed, &e.Fault, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.StartedAt = time.Unix(startedAt, 0)
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.Passed = passed != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats returns total pass and fail counts across all recorded checks.
func (s *Store) Stats() (passed, failed int, err error) {
	row := s.db.QueryRow(
		`SELECT COALESCE(SUM(passed), 0), COALESCE(SUM(1 - passed), 0) FROM checks`,
	)
	if err := row.Scan(&passed, &failed); err != nil {
		return 0, 0, fmt.Errorf("query stats: %w", err)
	}
	return passed, failed, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
