// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists a history of conversion runs in a SQLite
// database, one row per converted drawing.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"
)

// Run is one recorded conversion.
type Run struct {
	ID        string    `json:"id" yaml:"id"`
	Input     string    `json:"input" yaml:"input"`
	Output    string    `json:"output" yaml:"output"`
	Version   string    `json:"version" yaml:"version"`
	Layers    int       `json:"layers" yaml:"layers"`
	Entities  int       `json:"entities" yaml:"entities"`
	Warnings  int       `json:"warnings" yaml:"warnings"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Store manages the catalog database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog at path, creating the parent directory
// and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			version TEXT,
			layers INTEGER,
			entities INTEGER,
			warnings INTEGER,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_input ON runs(input)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts a run, assigning an ID and timestamp when unset, and
// returns the stored run.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, input, output, version, layers, entities, warnings, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Input, run.Output, run.Version,
		run.Layers, run.Entities, run.Warnings,
		run.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Run{}, fmt.Errorf("recording run for %s: %w", run.Input, err)
	}
	return run, nil
}

// List returns recorded runs, newest first, at most limit (all runs when
// limit <= 0).
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	q := `SELECT id, input, output, version, layers, entities, warnings, created_at
	      FROM runs ORDER BY created_at DESC, id`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Get returns the run with the given id.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, input, output, version, layers, entities, warnings, created_at
		 FROM runs WHERE id = ?`, id)

	r, err := scanRun(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ExportYAML writes every recorded run to path as YAML, newest first.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	runs, err := s.List(ctx, 0)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(runs)
	if err != nil {
		return fmt.Errorf("marshaling catalog export: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func scanRun(scan func(dest ...any) error) (Run, error) {
	var r Run
	var created string
	if err := scan(&r.ID, &r.Input, &r.Output, &r.Version,
		&r.Layers, &r.Entities, &r.Warnings, &created); err != nil {
		return Run{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Run{}, fmt.Errorf("parsing run timestamp %q: %w", created, err)
	}
	r.CreatedAt = t
	return r, nil
}
