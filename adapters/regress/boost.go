package regress

import (
	"fmt"
	"math/rand"

	"agriyield/domain/core"
	"agriyield/domain/forecast"
)

// BoostConfig holds gradient-boosting hyperparameters. These are fixed
// configuration, not runtime decisions.
type BoostConfig struct {
	Estimators      int
	MaxDepth        int
	LearningRate    float64
	Subsample       float64
	MinSamplesSplit int
	Seed            int64
}

// DefaultBoostConfig mirrors the historical XGBoost settings
func DefaultBoostConfig() BoostConfig {
	return BoostConfig{
		Estimators:      100,
		MaxDepth:        6,
		LearningRate:    0.1,
		Subsample:       0.8,
		MinSamplesSplit: 2,
		Seed:            42,
	}
}

// GradientBoosting is a boosted ensemble of regression trees fit on
// successive residuals. Exported fields are the persisted model state.
type GradientBoosting struct {
	InitValue    float64
	LearningRate float64
	Trees        []*TreeNode
	RawGains     []float64
	Features     int
}

// FitGradientBoosting trains the boosted ensemble. Each stage fits a tree
// to the current residuals on a random subsample of rows, then shrinks its
// contribution by the learning rate.
func FitGradientBoosting(x [][]float64, y []float64, cfg BoostConfig) (*GradientBoosting, error) {
	if len(x) == 0 {
		return nil, core.NewEmptyTrainingSetError("no rows to fit gradient boosting")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d rows, %d targets", core.ErrDimension, len(x), len(y))
	}

	numFeatures := len(x[0])
	rng := rand.New(rand.NewSource(cfg.Seed))

	var initSum float64
	for _, v := range y {
		initSum += v
	}
	model := &GradientBoosting{
		InitValue:    initSum / float64(len(y)),
		LearningRate: cfg.LearningRate,
		Trees:        make([]*TreeNode, 0, cfg.Estimators),
		RawGains:     make([]float64, numFeatures),
		Features:     numFeatures,
	}

	pred := make([]float64, len(y))
	for i := range pred {
		pred[i] = model.InitValue
	}
	residuals := make([]float64, len(y))

	sampleSize := int(cfg.Subsample * float64(len(x)))
	if sampleSize <= 0 || sampleSize > len(x) {
		sampleSize = len(x)
	}

	params := treeParams{
		maxDepth:        cfg.MaxDepth,
		minSamplesSplit: cfg.MinSamplesSplit,
		rng:             rng,
	}

	for stage := 0; stage < cfg.Estimators; stage++ {
		for i := range y {
			residuals[i] = y[i] - pred[i]
		}
		indices := rng.Perm(len(x))[:sampleSize]

		tree := buildTree(x, residuals, indices, 0, params, model.RawGains)
		model.Trees = append(model.Trees, tree)

		for i := range pred {
			pred[i] += cfg.LearningRate * tree.Predict(x[i])
		}
	}

	return model, nil
}

// Predict scores one feature vector
func (m *GradientBoosting) Predict(features []float64) float64 {
	out := m.InitValue
	for _, tree := range m.Trees {
		out += m.LearningRate * tree.Predict(features)
	}
	return out
}

// FeatureImportances returns the normalized split-gain importances
func (m *GradientBoosting) FeatureImportances() []float64 {
	return normalizeGains(m.RawGains)
}

// Kind names the ensemble type
func (m *GradientBoosting) Kind() string { return forecast.ModelGradientBoosting }

// NumFeatures returns the fitted feature-vector length
func (m *GradientBoosting) NumFeatures() int { return m.Features }

// normalizeGains scales raw split gains to sum to one
func normalizeGains(gains []float64) []float64 {
	out := make([]float64, len(gains))
	var total float64
	for _, g := range gains {
		total += g
	}
	if total == 0 {
		return out
	}
	for i, g := range gains {
		out[i] = g / total
	}
	return out
}
