// Package store keeps a history of suite reports in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/cwbudde/algo-bench/suite"
)

// ErrNotFound is returned by Latest on an empty history.
var ErrNotFound = errors.New("store: no runs recorded")

// RunRecord is one stored suite run.
type RunRecord struct {
	ID       int64        `json:"id"`
	Started  time.Time    `json:"started"`
	Finished time.Time    `json:"finished"`
	Features string       `json:"features"`
	Cases    []CaseRecord `json:"cases"`
}

// CaseRecord is the stored summary of one case.
type CaseRecord struct {
	Name        string  `json:"name"`
	Transform   string  `json:"transform"`
	Size        int     `json:"size"`
	Strategy    string  `json:"strategy"`
	Layout      string  `json:"layout"`
	AllocMode   string  `json:"alloc_mode"`
	Impl        string  `json:"impl"`
	Repetitions int     `json:"repetitions"`
	Median      float64 `json:"median"`
	Mean        float64 `json:"mean"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	StdDev      float64 `json:"stddev"`
}

// Store is a SQLite-backed run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies migrations.
// Use ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	// Every connection to ":memory:" opens a separate empty database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate database: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_ns INTEGER NOT NULL,
		finished_ns INTEGER NOT NULL,
		features TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS case_results (
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		transform TEXT NOT NULL,
		size INTEGER NOT NULL,
		strategy TEXT NOT NULL,
		layout TEXT NOT NULL,
		alloc_mode TEXT NOT NULL,
		impl TEXT NOT NULL,
		repetitions INTEGER NOT NULL,
		median REAL NOT NULL,
		mean REAL NOT NULL,
		min REAL NOT NULL,
		max REAL NOT NULL,
		stddev REAL NOT NULL,
		PRIMARY KEY (run_id, position)
	);
	`
	_, err := s.db.Exec(query)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores rep and returns the new run ID.
func (s *Store) Save(ctx context.Context, rep suite.Report) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_ns, finished_ns, features) VALUES (?, ?, ?)`,
		rep.Started.UnixNano(), rep.Finished.UnixNano(), rep.Features)
	if err != nil {
		return 0, fmt.Errorf("store: insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: run id: %w", err)
	}

	const insertCase = `INSERT INTO case_results
		(run_id, position, name, transform, size, strategy, layout, alloc_mode, impl,
		 repetitions, median, mean, min, max, stddev)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, cr := range rep.Cases {
		c, sum := cr.Case, cr.Summary
		if _, err := tx.ExecContext(ctx, insertCase,
			id, i, c.Name, c.Transform, c.Size, c.Strategy.String(), c.Layout.String(), c.AllocMode.String(), cr.Impl,
			sum.N, sum.Median, sum.Mean, sum.Min, sum.Max, sum.StdDev,
		); err != nil {
			return 0, fmt.Errorf("store: insert case %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit: %w", err)
	}
	return id, nil
}

// List returns up to limit runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit < 1 {
		return nil, fmt.Errorf("store: limit must be >= 1, got %d", limit)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_ns, finished_ns, features FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: query runs: %w", err)
	}

	var runs []RunRecord
	for rows.Next() {
		var (
			r                  RunRecord
			started, finished int64
		)
		if err := rows.Scan(&r.ID, &started, &finished, &r.Features); err != nil {
			rows.Close()
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		r.Started = time.Unix(0, started)
		r.Finished = time.Unix(0, finished)
		runs = append(runs, r)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("store: query runs: %w", err)
	}

	for i := range runs {
		cases, err := s.cases(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Cases = cases
	}
	return runs, nil
}

// Latest returns the most recent run.
func (s *Store) Latest(ctx context.Context) (RunRecord, error) {
	runs, err := s.List(ctx, 1)
	if err != nil {
		return RunRecord{}, err
	}
	if len(runs) == 0 {
		return RunRecord{}, ErrNotFound
	}
	return runs[0], nil
}

func (s *Store) cases(ctx context.Context, runID int64) ([]CaseRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, transform, size, strategy, layout, alloc_mode, impl,
		       repetitions, median, mean, min, max, stddev
		FROM case_results WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("store: query cases: %w", err)
	}
	defer rows.Close()

	var out []CaseRecord
	for rows.Next() {
		var c CaseRecord
		if err := rows.Scan(&c.Name, &c.Transform, &c.Size, &c.Strategy, &c.Layout, &c.AllocMode, &c.Impl,
			&c.Repetitions, &c.Median, &c.Mean, &c.Min, &c.Max, &c.StdDev); err != nil {
			return nil, fmt.Errorf("store: scan case: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
