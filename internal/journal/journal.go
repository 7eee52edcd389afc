package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL,
    root TEXT NOT NULL,
    dry_run INTEGER NOT NULL,
    status TEXT NOT NULL,
    error TEXT,
    units INTEGER NOT NULL,
    episodes INTEGER NOT NULL,
    activities INTEGER NOT NULL,
    skipped INTEGER NOT NULL,
    warnings INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_entities (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    kind TEXT NOT NULL,
    key TEXT NOT NULL,
    outcome TEXT NOT NULL,
    PRIMARY KEY (run_id, position)
);
`

// Run summarizes one publish invocation.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Root       string
	DryRun     bool
	Status     string
	Error      string
	Units      int
	Episodes   int
	Activities int
	Skipped    int
	Warnings   int
}

// Entity is one live-record write observed during a run.
type Entity struct {
	Kind    string
	Key     string
	Outcome string
}

// Journal manages the history database.
type Journal struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply journal schema: %w", err)
	}

	return &Journal{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Path returns the on-disk location of the journal database.
func (j *Journal) Path() string {
	if j == nil {
		return ""
	}
	return j.path
}

// RecordRun stores a completed run and its entity outcomes in one
// transaction.
func (j *Journal) RecordRun(ctx context.Context, run Run, entities []Entity) error {
	if j == nil {
		return nil
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin journal tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
            id, started_at, finished_at, root, dry_run, status, error,
            units, episodes, activities, skipped, warnings
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.Root,
		boolToInt(run.DryRun),
		run.Status,
		nullableString(run.Error),
		run.Units,
		run.Episodes,
		run.Activities,
		run.Skipped,
		run.Warnings,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	for i, entity := range entities {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_entities (run_id, position, kind, key, outcome) VALUES (?, ?, ?, ?, ?)`,
			run.ID, i, entity.Kind, entity.Key, entity.Outcome,
		); err != nil {
			return fmt.Errorf("insert run entity %s: %w", entity.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit journal tx: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (j *Journal) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, root, dry_run, status, COALESCE(error, ''),
                units, episodes, activities, skipped, warnings
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		var dryRun int
		if err := rows.Scan(
			&run.ID, &started, &finished, &run.Root, &dryRun, &run.Status, &run.Error,
			&run.Units, &run.Episodes, &run.Activities, &run.Skipped, &run.Warnings,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.DryRun = dryRun != 0
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse run start time: %w", err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse run finish time: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunEntities returns the entity outcomes recorded for a run, in write
// order.
func (j *Journal) RunEntities(ctx context.Context, runID string) ([]Entity, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT kind, key, outcome FROM run_entities WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run entities: %w", err)
	}
	defer rows.Close()

	var entities []Entity
	for rows.Next() {
		var entity Entity
		if err := rows.Scan(&entity.Kind, &entity.Key, &entity.Outcome); err != nil {
			return nil, fmt.Errorf("scan run entity: %w", err)
		}
		entities = append(entities, entity)
	}
	return entities, rows.Err()
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
