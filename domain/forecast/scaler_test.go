package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriyield/domain/core"
)

func TestFitScalerStandardizes(t *testing.T) {
	x := [][]float64{{1, 10}, {2, 20}, {3, 30}}
	scaler, err := FitScaler(x)
	require.NoError(t, err)

	scaled, err := scaler.TransformMatrix(x)
	require.NoError(t, err)

	// Each column has zero mean and unit variance after scaling
	for j := 0; j < 2; j++ {
		var sum, sumSq float64
		for i := range scaled {
			sum += scaled[i][j]
			sumSq += scaled[i][j] * scaled[i][j]
		}
		assert.InDelta(t, 0, sum/3, 1e-9)
		assert.InDelta(t, 1, sumSq/3, 1e-9)
	}
}

func TestFitScalerZeroVarianceColumn(t *testing.T) {
	scaler, err := FitScaler([][]float64{{5, 1}, {5, 2}, {5, 3}})
	require.NoError(t, err)

	out, err := scaler.TransformVector([]float64{5, 2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, out[0])
}

func TestTransformVectorDoesNotMutateInput(t *testing.T) {
	scaler, err := FitScaler([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	in := []float64{1, 2}
	_, err = scaler.TransformVector(in)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, in)
}

func TestTransformVectorDimensionMismatch(t *testing.T) {
	scaler, err := FitScaler([][]float64{{1, 2}})
	require.NoError(t, err)

	_, err = scaler.TransformVector([]float64{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDimension)
}

func TestFitScalerEmpty(t *testing.T) {
	_, err := FitScaler(nil)
	assert.ErrorIs(t, err, core.ErrEmptyTrainingSet)
}
