// Package storage provides SQLite-based persistence for the run journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a run ID is not in the journal.
var ErrNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// Span is one run-length encoded stretch of frames with the same input.
type Span struct {
	Mask   uint8
	Frames int
}

// RunRecord is a finished run as stored in the journal.
type RunRecord struct {
	ID         string // Assigned by SaveRun
	Variant    string
	Player     string
	Seed       int64
	TickRate   int
	ConfigYAML string // Config the run was played with
	Score      int
	Frames     int
	Coins      int
	Recycles   int
	Spawns     int
	EndReason  string
	CreatedAt  time.Time
	Spans      []Span // Only filled by LoadRun
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			config_yaml TEXT NOT NULL,
			score INTEGER NOT NULL,
			frames INTEGER NOT NULL,
			coins INTEGER NOT NULL DEFAULT 0,
			recycles INTEGER NOT NULL DEFAULT 0,
			spawns INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_variant ON runs(variant);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS run_inputs (
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			mask INTEGER NOT NULL,
			frames INTEGER NOT NULL,
			PRIMARY KEY (run_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run and its input spans in one transaction.
// Returns the new run ID.
func (s *Store) SaveRun(rec RunRecord) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs
		 (id, variant, player, seed, tick_rate, config_yaml, score, frames, coins, recycles, spawns, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		rec.Variant,
		rec.Player,
		rec.Seed,
		rec.TickRate,
		rec.ConfigYAML,
		rec.Score,
		rec.Frames,
		rec.Coins,
		rec.Recycles,
		rec.Spawns,
		rec.EndReason,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO run_inputs (run_id, seq, mask, frames) VALUES (?, ?, ?, ?)")
	if err != nil {
		return "", fmt.Errorf("storage: cannot prepare input insert: %w", err)
	}
	defer stmt.Close()

	for i, sp := range rec.Spans {
		if _, err := stmt.Exec(id, i, sp.Mask, sp.Frames); err != nil {
			return "", fmt.Errorf("storage: cannot save run input: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit run: %w", err)
	}

	return id, nil
}

const runColumns = `id, variant, player, seed, tick_rate, config_yaml, score, frames,
	coins, recycles, spawns, end_reason, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var rec RunRecord
	var createdAt any
	err := row.Scan(
		&rec.ID,
		&rec.Variant,
		&rec.Player,
		&rec.Seed,
		&rec.TickRate,
		&rec.ConfigYAML,
		&rec.Score,
		&rec.Frames,
		&rec.Coins,
		&rec.Recycles,
		&rec.Spawns,
		&rec.EndReason,
		&createdAt,
	)
	if err != nil {
		return RunRecord{}, err
	}
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RecentRuns retrieves the most recent runs, newest first, without spans.
// An empty variant matches every variant.
func (s *Store) RecentRuns(variant string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR variant = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// LoadRun retrieves a run with its input spans. The ID may be a unique
// prefix of the full ID, as shown by the runs browser.
func (s *Store) LoadRun(id string) (*RunRecord, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs WHERE id LIKE ? || '%' LIMIT 2`, id)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	var matches []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		matches = append(matches, rec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, ErrNotFound
	case 1:
	default:
		return nil, fmt.Errorf("storage: run id %q is ambiguous", id)
	}
	rec := matches[0]

	spans, err := s.db.Query("SELECT mask, frames FROM run_inputs WHERE run_id = ? ORDER BY seq", rec.ID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run inputs: %w", err)
	}
	defer spans.Close()

	for spans.Next() {
		var sp Span
		if err := spans.Scan(&sp.Mask, &sp.Frames); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run input: %w", err)
		}
		rec.Spans = append(rec.Spans, sp)
	}
	if err := spans.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &rec, nil
}

// CountRuns returns how many runs are stored. An empty variant counts all.
func (s *Store) CountRuns(variant string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs WHERE ? = '' OR variant = ?", variant, variant).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

// DeleteRun removes a run and its inputs.
func (s *Store) DeleteRun(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec("DELETE FROM run_inputs WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete run inputs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}
