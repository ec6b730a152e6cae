package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"kotoba/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users delete the journal database to adopt the new schema.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Store manages run journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database under the configured
// log directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "journal.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
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

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to start fresh)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}

	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// BeginRun inserts a new run row and returns its identity.
func (s *Store) BeginRun(ctx context.Context, kind RunKind) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, kind, started_at) VALUES (?, ?, ?)`,
		run.ID, string(run.Kind), run.StartedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// FinishRun stamps the run's finish time.
func (s *Store) FinishRun(ctx context.Context, run *Run) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ? WHERE run_id = ?`,
		now.Format(time.RFC3339Nano), run.ID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	run.FinishedAt = &now
	return nil
}

// RecordLevel upserts the outcome of one level for a run. RecordedAt is
// stamped here; the value on the argument is ignored.
func (s *Store) RecordLevel(ctx context.Context, outcome LevelOutcome) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO run_levels (
            run_id, level, status, detail, entries, chunks, mismatches, recorded_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		outcome.RunID,
		outcome.Level,
		string(outcome.Status),
		nullableString(outcome.Detail),
		outcome.Entries,
		outcome.Chunks,
		outcome.Mismatches,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record level outcome: %w", err)
	}
	return nil
}

// LatestLevelOutcomes returns the most recent outcome per level across all
// runs of the given kind. Rows replay in insertion order, so later runs win.
func (s *Store) LatestLevelOutcomes(ctx context.Context, kind RunKind) (map[int]LevelOutcome, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rl.run_id, rl.level, rl.status, rl.detail, rl.entries, rl.chunks, rl.mismatches, rl.recorded_at
         FROM run_levels rl
         JOIN runs r ON r.run_id = rl.run_id
         WHERE r.kind = ?
         ORDER BY rl.rowid ASC`,
		string(kind),
	)
	if err != nil {
		return nil, fmt.Errorf("query level outcomes: %w", err)
	}
	defer rows.Close()

	outcomes := make(map[int]LevelOutcome)
	for rows.Next() {
		var (
			outcome  LevelOutcome
			status   string
			detail   sql.NullString
			recorded string
		)
		if err := rows.Scan(&outcome.RunID, &outcome.Level, &status, &detail, &outcome.Entries, &outcome.Chunks, &outcome.Mismatches, &recorded); err != nil {
			return nil, fmt.Errorf("scan level outcome: %w", err)
		}
		outcome.Status = LevelStatus(status)
		outcome.Detail = detail.String
		if ts, err := time.Parse(time.RFC3339Nano, recorded); err == nil {
			outcome.RecordedAt = ts
		}
		outcomes[outcome.Level] = outcome
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate level outcomes: %w", err)
	}
	return outcomes, nil
}

// RecentRuns returns the newest runs first, each with per-status level counts.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.run_id, r.kind, r.started_at, r.finished_at,
                COALESCE(SUM(CASE WHEN rl.status = ? THEN 1 ELSE 0 END), 0),
                COALESCE(SUM(CASE WHEN rl.status = ? THEN 1 ELSE 0 END), 0),
                COALESCE(SUM(CASE WHEN rl.status = ? THEN 1 ELSE 0 END), 0)
         FROM runs r
         LEFT JOIN run_levels rl ON rl.run_id = r.run_id
         GROUP BY r.run_id
         ORDER BY r.started_at DESC, r.rowid DESC
         LIMIT ?`,
		string(LevelCompleted), string(LevelSkipped), string(LevelFailed), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var (
			summary  RunSummary
			kind     string
			started  string
			finished sql.NullString
		)
		if err := rows.Scan(&summary.ID, &kind, &started, &finished, &summary.Completed, &summary.Skipped, &summary.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		summary.Kind = RunKind(kind)
		if ts, err := time.Parse(time.RFC3339Nano, started); err == nil {
			summary.StartedAt = ts
		}
		if finished.Valid {
			if ts, err := time.Parse(time.RFC3339Nano, finished.String); err == nil {
				summary.FinishedAt = &ts
			}
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return summaries, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
