package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"agriyield/domain/core"
	"agriyield/ports"
)

// runRepository implements the run registry on Postgres
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a run registry backed by the given database
func NewRunRepository(db *sqlx.DB) ports.RunRegistryPort {
	return &runRepository{db: db}
}

// Connect opens and pings a Postgres connection
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the training_runs table when it does not exist
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	const ddl = `CREATE TABLE IF NOT EXISTS training_runs (
		run_id        TEXT PRIMARY KEY,
		bundle_id     TEXT NOT NULL,
		model_kind    TEXT NOT NULL,
		target_column TEXT NOT NULL,
		schema_hash   TEXT NOT NULL,
		manifest      JSONB NOT NULL,
		metrics       JSONB NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure training_runs table: %w", err)
	}
	return nil
}

// RecordRun inserts one training run
func (r *runRepository) RecordRun(ctx context.Context, run ports.TrainingRun) error {
	manifestJSON, err := json.Marshal(run.Manifest)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	metricsJSON, err := json.Marshal(run.Metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	query := `INSERT INTO training_runs (
		run_id, bundle_id, model_kind, target_column, schema_hash, manifest, metrics, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.ExecContext(ctx, query,
		run.RunID.String(), run.BundleID.String(), run.Manifest.ModelKind,
		run.Manifest.TargetColumn, run.Manifest.SchemaHash.String(),
		manifestJSON, metricsJSON, run.Manifest.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record training run: %w", err)
	}
	return nil
}

// LatestRun returns the most recent training run
func (r *runRepository) LatestRun(ctx context.Context) (*ports.TrainingRun, error) {
	query := `SELECT run_id, bundle_id, manifest, metrics
		FROM training_runs ORDER BY created_at DESC LIMIT 1`

	run, err := r.scanRun(r.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to load latest run: %w", err)
	}
	return run, nil
}

// ListRuns returns recent training runs, newest first
func (r *runRepository) ListRuns(ctx context.Context, limit int) ([]ports.TrainingRun, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT run_id, bundle_id, manifest, metrics
		FROM training_runs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []ports.TrainingRun
	for rows.Next() {
		run, err := r.scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// scannable covers sql.Row and sql.Rows
type scannable interface {
	Scan(dest ...any) error
}

func (r *runRepository) scanRun(row scannable) (*ports.TrainingRun, error) {
	var (
		runID, bundleID           string
		manifestJSON, metricsJSON []byte
	)
	if err := row.Scan(&runID, &bundleID, &manifestJSON, &metricsJSON); err != nil {
		return nil, err
	}

	run := ports.TrainingRun{
		RunID:    core.RunID(runID),
		BundleID: core.BundleID(bundleID),
	}
	if err := json.Unmarshal(manifestJSON, &run.Manifest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}
	if err := json.Unmarshal(metricsJSON, &run.Metrics); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metrics: %w", err)
	}
	return &run, nil
}

// NoopRegistry satisfies the registry port for processes running without a
// database
type NoopRegistry struct{}

var _ ports.RunRegistryPort = NoopRegistry{}

func (NoopRegistry) RecordRun(ctx context.Context, run ports.TrainingRun) error { return nil }

func (NoopRegistry) LatestRun(ctx context.Context) (*ports.TrainingRun, error) {
	return nil, core.ErrRunNotFound
}

func (NoopRegistry) ListRuns(ctx context.Context, limit int) ([]ports.TrainingRun, error) {
	return nil, nil
}
