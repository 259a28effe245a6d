// Package history keeps a record of completed scan runs in SQLite.
package history

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // CGO-free SQLite driver

	"github.com/triagekit/triagekit/internal/domain"
)

// Store implements domain.RunHistory backed by SQLite.
type Store struct {
	conn *sql.DB
}

// Open opens (and creates if missing) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	// Pragmas via DSN keep it portable with the modernc driver.
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	s := &Store{conn: conn}
	if err := s.createSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.conn.Close() }

func (s *Store) createSchema() error {
	_, err := s.conn.Exec(`
CREATE TABLE IF NOT EXISTS runs (
  id             TEXT PRIMARY KEY,
  started_at     TEXT NOT NULL,     -- RFC3339
  root_path      TEXT,
  commit_hash    TEXT,
  total_findings INTEGER NOT NULL,
  criticals      INTEGER NOT NULL,
  highs          INTEGER NOT NULL,
  report_json    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS findings (
  run_id         TEXT NOT NULL,
  priority_index INTEGER NOT NULL,
  rule_id        TEXT,
  file_path      TEXT,
  category       TEXT,
  severity       TEXT,
  message        TEXT,
  PRIMARY KEY (run_id, priority_index),
  FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_findings_rule ON findings(rule_id);
`)
	return err
}

// SaveRun persists a completed run and its findings in one transaction.
func (s *Store) SaveRun(entry domain.RunEntry) error {
	reportJSON, err := json.Marshal(entry.Report)
	if err != nil {
		return err
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT INTO runs (id, started_at, root_path, commit_hash, total_findings, criticals, highs, report_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.StartedAt.UTC().Format(time.RFC3339Nano),
		entry.RootPath,
		entry.CommitHash,
		entry.TotalFindings,
		entry.Criticals,
		entry.Highs,
		string(reportJSON),
	); err != nil {
		return err
	}

	if entry.Report != nil && len(entry.Report.Findings) > 0 {
		stmt, err := tx.Prepare(`
			INSERT INTO findings (run_id, priority_index, rule_id, file_path, category, severity, message)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, f := range entry.Report.Findings {
			if _, err := stmt.Exec(
				entry.ID,
				f.PriorityIndex,
				f.RuleID,
				f.FilePath,
				string(f.Category),
				string(f.Severity),
				f.Message,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first. Reports are not
// loaded; use LoadReport for the full document.
func (s *Store) ListRuns(limit int) ([]domain.RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.conn.Query(
		`SELECT id, started_at, root_path, commit_hash, total_findings, criticals, highs
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.RunEntry
	for rows.Next() {
		var e domain.RunEntry
		var startedAt string
		if err := rows.Scan(&e.ID, &startedAt, &e.RootPath, &e.CommitHash, &e.TotalFindings, &e.Criticals, &e.Highs); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			e.StartedAt = ts
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LoadReport returns the full report stored for a run.
func (s *Store) LoadReport(runID string) (*domain.Report, error) {
	var raw string
	row := s.conn.QueryRow(`SELECT report_json FROM runs WHERE id = ?`, runID)
	if err := row.Scan(&raw); err != nil {
		return nil, err
	}
	var report domain.Report
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, err
	}
	return &report, nil
}
