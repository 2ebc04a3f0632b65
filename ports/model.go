package ports

import (
	"context"

	"agriyield/domain/forecast"
)

// ModelTrainerPort fits a tree-ensemble regressor on a scaled feature
// matrix. Which ensemble backs it is a configuration switch, never a
// runtime decision.
type ModelTrainerPort interface {
	// Kind names the ensemble this trainer produces
	Kind() string

	// Fit trains a regressor on the feature matrix and target vector
	Fit(ctx context.Context, x [][]float64, y []float64) (forecast.Regressor, error)
}
