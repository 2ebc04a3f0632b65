package regress

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"golang.org/x/sync/semaphore"

	"agriyield/domain/core"
	"agriyield/domain/forecast"
)

// ForestConfig holds random-forest hyperparameters
type ForestConfig struct {
	Estimators      int
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     int // 0 means all features
	Seed            int64
	Workers         int64 // concurrent tree fits, 0 means Estimators
}

// DefaultForestConfig mirrors the historical random-forest settings
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		Estimators:      100,
		MaxDepth:        10,
		MinSamplesSplit: 2,
		Seed:            42,
		Workers:         4,
	}
}

// RandomForest is a bagged ensemble of regression trees, each fit on a
// bootstrap sample. Predictions average the trees.
type RandomForest struct {
	Trees    []*TreeNode
	RawGains []float64
	Features int
}

// FitRandomForest trains the forest. Tree fits run concurrently under a
// weighted semaphore; each tree seeds its own RNG from the base seed so the
// result is deterministic regardless of scheduling.
func FitRandomForest(ctx context.Context, x [][]float64, y []float64, cfg ForestConfig) (*RandomForest, error) {
	if len(x) == 0 {
		return nil, core.NewEmptyTrainingSetError("no rows to fit random forest")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d rows, %d targets", core.ErrDimension, len(x), len(y))
	}

	numFeatures := len(x[0])
	workers := cfg.Workers
	if workers <= 0 {
		workers = int64(cfg.Estimators)
	}
	sem := semaphore.NewWeighted(workers)

	trees := make([]*TreeNode, cfg.Estimators)
	gains := make([][]float64, cfg.Estimators)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Estimators; i++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("forest fit cancelled: %w", err)
		}
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer sem.Release(1)

			rng := rand.New(rand.NewSource(cfg.Seed + int64(idx)))
			indices := make([]int, len(x))
			for j := range indices {
				indices[j] = rng.Intn(len(x))
			}

			treeGains := make([]float64, numFeatures)
			trees[idx] = buildTree(x, y, indices, 0, treeParams{
				maxDepth:        cfg.MaxDepth,
				minSamplesSplit: cfg.MinSamplesSplit,
				maxFeatures:     cfg.MaxFeatures,
				rng:             rng,
			}, treeGains)
			gains[idx] = treeGains
		}(i)
	}
	wg.Wait()

	// Merge per-tree gains in index order so the sum is deterministic
	model := &RandomForest{
		Trees:    trees,
		RawGains: make([]float64, numFeatures),
		Features: numFeatures,
	}
	for _, treeGains := range gains {
		for j, g := range treeGains {
			model.RawGains[j] += g
		}
	}
	return model, nil
}

// Predict averages the trees for one feature vector
func (m *RandomForest) Predict(features []float64) float64 {
	if len(m.Trees) == 0 {
		return 0
	}
	var sum float64
	for _, tree := range m.Trees {
		sum += tree.Predict(features)
	}
	return sum / float64(len(m.Trees))
}

// FeatureImportances returns the normalized split-gain importances
func (m *RandomForest) FeatureImportances() []float64 {
	return normalizeGains(m.RawGains)
}

// Kind names the ensemble type
func (m *RandomForest) Kind() string { return forecast.ModelRandomForest }

// NumFeatures returns the fitted feature-vector length
func (m *RandomForest) NumFeatures() int { return m.Features }
