// Package sqlite implements the download manifest on SQLite. The manifest
// is an audit history of runs and outcomes; it never drives scheduling or
// idempotency decisions.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/rkedia/drivepull/internal/domain"
	"github.com/rkedia/drivepull/internal/port"
)

// Store implements port.Manifest using SQLite. database/sql serializes
// access, so concurrent workers may record outcomes directly.
type Store struct {
	db *sql.DB
}

// Ensure Store implements port.Manifest
var _ port.Manifest = (*Store)(nil)

// Open opens (and migrates) the manifest database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate manifest database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// migrate creates or updates the manifest schema.
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TIMESTAMP NOT NULL,
			finished_at TIMESTAMP,
			downloaded INTEGER NOT NULL DEFAULT 0,
			skipped INTEGER NOT NULL DEFAULT 0,
			errors INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS downloads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			batch TEXT NOT NULL,
			file_id TEXT NOT NULL,
			path TEXT NOT NULL,
			outcome TEXT NOT NULL,
			size INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_downloads_run_id ON downloads(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_downloads_file_id ON downloads(file_id)`,
		`CREATE INDEX IF NOT EXISTS idx_downloads_outcome ON downloads(outcome)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, migration)
		}
	}
	return nil
}

// BeginRun opens a new run row and returns its ID.
func (s *Store) BeginRun() (string, error) {
	runID := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO runs (id, started_at) VALUES (?, ?)",
		runID, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to begin run: %w", err)
	}
	return runID, nil
}

// RecordOutcome appends one task outcome to the run.
func (s *Store) RecordOutcome(runID string, rec port.OutcomeRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO downloads (run_id, batch, file_id, path, outcome, size)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, rec.Batch, rec.FileID, rec.Path, rec.Outcome.String(), rec.Size,
	)
	if err != nil {
		return fmt.Errorf("failed to record outcome: %w", err)
	}
	return nil
}

// FinishRun stores the run's final totals.
func (s *Store) FinishRun(runID string, totals domain.Summary) error {
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, downloaded = ?, skipped = ?, errors = ?
		 WHERE id = ?`,
		time.Now().UTC(), totals.Downloaded, totals.Skipped, totals.Errors, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// RunSummary reads back the stored totals for a run.
func (s *Store) RunSummary(runID string) (domain.Summary, error) {
	var sum domain.Summary
	err := s.db.QueryRow(
		"SELECT downloaded, skipped, errors FROM runs WHERE id = ?", runID,
	).Scan(&sum.Downloaded, &sum.Skipped, &sum.Errors)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("failed to read run summary: %w", err)
	}
	return sum, nil
}

// OutcomeCounts counts the recorded download rows of a run by outcome.
func (s *Store) OutcomeCounts(runID string) (map[string]int, error) {
	rows, err := s.db.Query(
		"SELECT outcome, COUNT(*) FROM downloads WHERE run_id = ? GROUP BY outcome", runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count outcomes: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, err
		}
		counts[outcome] = n
	}
	return counts, rows.Err()
}
