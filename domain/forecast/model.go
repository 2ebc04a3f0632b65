package forecast

// Regressor maps a fixed-length numeric feature vector to a scalar yield
// estimate. Implementations are immutable once fitted so one model may
// serve any number of concurrent predictions.
type Regressor interface {
	// Predict scores a single scaled feature vector
	Predict(features []float64) float64

	// FeatureImportances returns the per-feature importance scores in
	// feature order, summing to one
	FeatureImportances() []float64

	// Kind names the ensemble type, e.g. "gradient_boosting"
	Kind() string

	// NumFeatures returns the feature-vector length the model was fitted on
	NumFeatures() int
}

// Ensemble kinds selectable through configuration
const (
	ModelGradientBoosting = "gradient_boosting"
	ModelRandomForest     = "random_forest"
)
