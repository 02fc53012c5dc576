// Package storage keeps a local history of review and fix runs.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/prvet-dev/prvet/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  pr TEXT NOT NULL,
  mode TEXT NOT NULL CHECK(mode IN ('review','fix')),
  agent TEXT NOT NULL DEFAULT '',
  files INTEGER NOT NULL DEFAULT 0,
  comments_posted INTEGER NOT NULL DEFAULT 0,
  skipped INTEGER NOT NULL DEFAULT 0,
  failures INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_pr ON runs(pr);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`

type DB struct {
	*sql.DB
}

// Run is one recorded invocation of the review or fix command.
type Run struct {
	ID             string
	PR             string // "owner/repo#number"
	Mode           string // "review" or "fix"
	Agent          string
	Files          int
	CommentsPosted int
	Skipped        int
	Failures       int
	CreatedAt      time.Time
}

// DefaultDBPath returns the default database path
func DefaultDBPath() string {
	return filepath.Join(config.DataDir(), "runs.db")
}

// Open opens or creates the database at the given path
func Open(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// Open with WAL mode and busy timeout
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &DB{db}, nil
}

// RecordRun inserts a run and returns its generated ID.
func (db *DB) RecordRun(run Run) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO runs (id, pr, mode, agent, files, comments_posted, skipped, failures)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, run.PR, run.Mode, run.Agent, run.Files, run.CommentsPosted, run.Skipped, run.Failures)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return id, nil
}

// RecentRuns returns the most recent runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT id, pr, mode, agent, files, comments_posted, skipped, failures, created_at
		FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.PR, &r.Mode, &r.Agent, &r.Files, &r.CommentsPosted, &r.Skipped, &r.Failures, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", created)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunsForPR returns all recorded runs for one pull request, newest first.
func (db *DB) RunsForPR(pr string) ([]Run, error) {
	rows, err := db.Query(`
		SELECT id, pr, mode, agent, files, comments_posted, skipped, failures, created_at
		FROM runs WHERE pr = ? ORDER BY created_at DESC, id DESC`, pr)
	if err != nil {
		return nil, fmt.Errorf("query runs for %s: %w", pr, err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.PR, &r.Mode, &r.Agent, &r.Files, &r.CommentsPosted, &r.Skipped, &r.Failures, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", created)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
