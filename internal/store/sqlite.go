package store

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps runs in a SQLite database file.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore returns a store for the database at path; call Init before use.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Init opens the database and creates the runs table if needed.
func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

// SaveRun inserts run, or updates the results of the run with the same ID.
func (s *SQLiteStore) SaveRun(ctx context.Context, run Run) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, instance, solver, value, weight, elapsed_ms, seed, selection, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			value = excluded.value,
			weight = excluded.weight,
			elapsed_ms = excluded.elapsed_ms,
			selection = excluded.selection
	`, run.ID, run.Instance, run.Solver, run.Value, run.Weight, run.ElapsedMS, run.Seed,
		encodeSelection(run.Selection), run.CreatedAt.UTC().Format(time.RFC3339Nano))
	return err
}

// GetRun returns the run with id and whether it exists.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (Run, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Run{}, false, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT id, instance, solver, value, weight, elapsed_ms, seed, selection, created_at
		FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, false, nil
		}
		return Run{}, false, err
	}
	return run, true, nil
}

// ListRuns returns the runs of instance in insertion order.
func (s *SQLiteStore) ListRuns(ctx context.Context, instance string) ([]Run, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, instance, solver, value, weight, elapsed_ms, seed, selection, created_at
		FROM runs WHERE instance = ? ORDER BY seq`, instance)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// Close closes the database. The store can be initialized again afterwards.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrNotInitialized
	}
	return s.db, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run     Run
		sel     string
		created string
	)
	if err := sc.Scan(&run.ID, &run.Instance, &run.Solver, &run.Value, &run.Weight,
		&run.ElapsedMS, &run.Seed, &sel, &created); err != nil {
		return Run{}, err
	}
	run.Selection = decodeSelection(sel)
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Run{}, err
	}
	run.CreatedAt = t
	return run, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			instance TEXT NOT NULL,
			solver TEXT NOT NULL,
			value INTEGER NOT NULL,
			weight INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			selection TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS runs_instance ON runs (instance);
	`)
	return err
}
