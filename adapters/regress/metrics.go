package regress

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// R2 is the coefficient of determination of predictions against truth
func R2(yTrue, yPred []float64) float64 {
	return stat.RSquaredFrom(yPred, yTrue, nil)
}

// RMSE is the root-mean-square error
func RMSE(yTrue, yPred []float64) float64 {
	var sum float64
	for i := range yTrue {
		d := yPred[i] - yTrue[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(yTrue)))
}

// MAE is the mean absolute error
func MAE(yTrue, yPred []float64) float64 {
	var sum float64
	for i := range yTrue {
		sum += math.Abs(yPred[i] - yTrue[i])
	}
	return sum / float64(len(yTrue))
}

// PredictAll scores a whole matrix with one model
func PredictAll(model interface{ Predict([]float64) float64 }, x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		out[i] = model.Predict(row)
	}
	return out
}
