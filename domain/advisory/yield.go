package advisory

// Yield category thresholds, in predicted-yield units
const (
	LowYieldMax    = 1500
	MediumYieldMax = 3000
	GoodYieldMax   = 4500
)

// YieldCategory buckets a predicted yield value
func YieldCategory(yieldValue float64) string {
	switch {
	case yieldValue < LowYieldMax:
		return "Low Yield"
	case yieldValue < MediumYieldMax:
		return "Medium Yield"
	case yieldValue < GoodYieldMax:
		return "Good Yield"
	default:
		return "Excellent Yield"
	}
}
