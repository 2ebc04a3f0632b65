package forecast

import (
	"fmt"

	"agriyield/domain/core"
)

// FeatureFrame is the dense numeric frame produced by preprocessing: the
// post-engineering column list (target still included) with one row per
// surviving training record.
type FeatureFrame struct {
	Columns []string
	Data    [][]float64
}

// RowCount returns the number of rows
func (f *FeatureFrame) RowCount() int {
	return len(f.Data)
}

// ColumnCount returns the number of columns
func (f *FeatureFrame) ColumnCount() int {
	return len(f.Columns)
}

// ColumnIndex returns the position of a named column
func (f *FeatureFrame) ColumnIndex(name string) (int, bool) {
	for i, c := range f.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// Column extracts one column as a fresh slice
func (f *FeatureFrame) Column(name string) ([]float64, bool) {
	idx, ok := f.ColumnIndex(name)
	if !ok {
		return nil, false
	}
	out := make([]float64, len(f.Data))
	for i, row := range f.Data {
		out[i] = row[idx]
	}
	return out, true
}

// Validate ensures the frame is internally consistent
func (f *FeatureFrame) Validate() error {
	if len(f.Data) == 0 {
		return core.NewEmptyTrainingSetError("feature frame has no rows")
	}
	for i, row := range f.Data {
		if len(row) != len(f.Columns) {
			return core.NewDataError("frame",
				fmt.Sprintf("row %d has %d values, expected %d", i, len(row), len(f.Columns)))
		}
	}
	return nil
}

// SplitTarget separates the target column from the features. The returned
// feature matrix keeps the frame's column order minus the target, which is
// exactly the order the feature schema freezes.
func (f *FeatureFrame) SplitTarget(target string) (x [][]float64, y []float64, featureColumns []string, err error) {
	targetIdx, ok := f.ColumnIndex(target)
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: target %s", core.ErrColumnNotFound, target)
	}

	featureColumns = make([]string, 0, len(f.Columns)-1)
	for _, c := range f.Columns {
		if c != target {
			featureColumns = append(featureColumns, c)
		}
	}

	x = make([][]float64, len(f.Data))
	y = make([]float64, len(f.Data))
	for i, row := range f.Data {
		vec := make([]float64, 0, len(row)-1)
		for j, v := range row {
			if j == targetIdx {
				y[i] = v
				continue
			}
			vec = append(vec, v)
		}
		x[i] = vec
	}
	return x, y, featureColumns, nil
}
