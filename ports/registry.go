package ports

import (
	"context"

	"agriyield/domain/core"
	"agriyield/domain/forecast"
)

// TrainingRun is one recorded training execution
type TrainingRun struct {
	RunID    core.RunID
	BundleID core.BundleID
	Manifest forecast.Manifest
	Metrics  forecast.Metrics
}

// RunRegistryPort records training runs for operational history. The
// registry is an audit trail, not part of the serving path; a process
// without a database runs with a no-op registry.
type RunRegistryPort interface {
	RecordRun(ctx context.Context, run TrainingRun) error
	LatestRun(ctx context.Context) (*TrainingRun, error)
	ListRuns(ctx context.Context, limit int) ([]TrainingRun, error)
}
