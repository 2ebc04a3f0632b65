package forecast

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"agriyield/domain/core"
)

// FeatureScaler standardizes features to zero mean and unit variance using
// statistics computed only from the training split. It is applied
// identically to training, test, and inference data and never refit.
type FeatureScaler struct {
	Mean []float64
	Std  []float64
}

// FitScaler computes per-column mean and standard deviation from the
// training matrix. Zero-variance columns get a unit deviation so scaling
// maps them to zero rather than dividing by zero.
func FitScaler(x [][]float64) (*FeatureScaler, error) {
	if len(x) == 0 {
		return nil, core.NewEmptyTrainingSetError("no rows to fit scaler")
	}
	cols := len(x[0])
	s := &FeatureScaler{
		Mean: make([]float64, cols),
		Std:  make([]float64, cols),
	}

	col := make([]float64, len(x))
	for j := 0; j < cols; j++ {
		for i := range x {
			col[i] = x[i][j]
		}
		mean := stat.Mean(col, nil)
		var sumSq float64
		for _, v := range col {
			d := v - mean
			sumSq += d * d
		}
		std := math.Sqrt(sumSq / float64(len(col)))
		if std == 0 {
			std = 1
		}
		s.Mean[j] = mean
		s.Std[j] = std
	}
	return s, nil
}

// Len returns the number of features the scaler was fitted on
func (s *FeatureScaler) Len() int {
	return len(s.Mean)
}

// TransformVector scales a single feature vector, returning a new slice.
// The input is never mutated so concurrent predict calls can share one scaler.
func (s *FeatureScaler) TransformVector(v []float64) ([]float64, error) {
	if len(v) != len(s.Mean) {
		return nil, fmt.Errorf("%w: vector has %d features, scaler fitted on %d",
			core.ErrDimension, len(v), len(s.Mean))
	}
	out := make([]float64, len(v))
	for j, val := range v {
		out[j] = (val - s.Mean[j]) / s.Std[j]
	}
	return out, nil
}

// TransformMatrix scales every row, returning a new matrix
func (s *FeatureScaler) TransformMatrix(x [][]float64) ([][]float64, error) {
	out := make([][]float64, len(x))
	for i, row := range x {
		scaled, err := s.TransformVector(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = scaled
	}
	return out, nil
}
