package forecast

import (
	"sort"
	"time"
)

// FeatureImportance pairs a feature column with its importance score
type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// Metrics reports regression accuracy for one training run
type Metrics struct {
	TargetColumn string    `json:"target_column"`
	TrainRows    int       `json:"train_rows"`
	TestRows     int       `json:"test_rows"`
	TrainR2      float64   `json:"train_r2"`
	TestR2       float64   `json:"test_r2"`
	TrainRMSE    float64   `json:"train_rmse"`
	TestRMSE     float64   `json:"test_rmse"`
	TestMAE      float64   `json:"test_mae"`
	TrainedAt    time.Time `json:"trained_at"`

	// Test absolute-error distribution, for the training report
	TestAbsErrMedian float64 `json:"test_abs_err_median"`
	TestAbsErrP90    float64 `json:"test_abs_err_p90"`

	// Importances are sorted by descending importance
	Importances []FeatureImportance `json:"importances,omitempty"`
}

// TopImportances returns the n highest-ranked features
func (m Metrics) TopImportances(n int) []FeatureImportance {
	if n > len(m.Importances) {
		n = len(m.Importances)
	}
	return m.Importances[:n]
}

// RankImportances pairs raw importance scores with feature names and sorts
// them descending, ties broken by feature name for determinism
func RankImportances(features []string, scores []float64) []FeatureImportance {
	n := len(features)
	if len(scores) < n {
		n = len(scores)
	}
	ranked := make([]FeatureImportance, n)
	for i := 0; i < n; i++ {
		ranked[i] = FeatureImportance{Feature: features[i], Importance: scores[i]}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Importance != ranked[j].Importance {
			return ranked[i].Importance > ranked[j].Importance
		}
		return ranked[i].Feature < ranked[j].Feature
	})
	return ranked
}
