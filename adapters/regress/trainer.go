package regress

import (
	"context"
	"fmt"

	"agriyield/domain/forecast"
	"agriyield/ports"
)

// GradientBoostingTrainer fits the boosting ensemble behind the generic
// trainer port. A zero-value trainer uses the default hyperparameters.
type GradientBoostingTrainer struct {
	Config BoostConfig
}

func (t GradientBoostingTrainer) Kind() string { return forecast.ModelGradientBoosting }

func (t GradientBoostingTrainer) Fit(ctx context.Context, x [][]float64, y []float64) (forecast.Regressor, error) {
	cfg := t.Config
	if cfg.Estimators == 0 {
		cfg = DefaultBoostConfig()
	}
	return FitGradientBoosting(x, y, cfg)
}

// RandomForestTrainer fits the bagging ensemble behind the generic trainer
// port. A zero-value trainer uses the default hyperparameters.
type RandomForestTrainer struct {
	Config ForestConfig
}

func (t RandomForestTrainer) Kind() string { return forecast.ModelRandomForest }

func (t RandomForestTrainer) Fit(ctx context.Context, x [][]float64, y []float64) (forecast.Regressor, error) {
	cfg := t.Config
	if cfg.Estimators == 0 {
		cfg = DefaultForestConfig()
	}
	return FitRandomForest(ctx, x, y, cfg)
}

// TrainerFor selects the ensemble trainer for a configured model kind
func TrainerFor(kind string) (ports.ModelTrainerPort, error) {
	switch kind {
	case forecast.ModelGradientBoosting, "":
		return GradientBoostingTrainer{Config: DefaultBoostConfig()}, nil
	case forecast.ModelRandomForest:
		return RandomForestTrainer{Config: DefaultForestConfig()}, nil
	}
	return nil, fmt.Errorf("unknown model kind %q", kind)
}
