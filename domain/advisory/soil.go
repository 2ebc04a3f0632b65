package advisory

import "math"

// NutrientStatus classifies one soil nutrient level
type NutrientStatus string

const (
	NutrientLow      NutrientStatus = "Low"
	NutrientAdequate NutrientStatus = "Adequate"
	NutrientHigh     NutrientStatus = "High"
)

// SoilHealth is the rule-based soil assessment
type SoilHealth struct {
	OverallHealth   string                    `json:"overall_health"`
	PHStatus        string                    `json:"ph_status"`
	NutrientStatus  map[string]NutrientStatus `json:"nutrient_status"`
	Recommendations []string                  `json:"recommendations"`
}

// AssessSoilHealth applies the NPK and pH threshold tables. Nutrient
// levels are mg/kg.
func AssessSoilHealth(n, p, k, ph float64) SoilHealth {
	assessment := SoilHealth{
		NutrientStatus: make(map[string]NutrientStatus, 3),
	}

	switch {
	case n < 200:
		assessment.NutrientStatus["nitrogen"] = NutrientLow
		assessment.Recommendations = append(assessment.Recommendations,
			"Add nitrogen fertilizers (urea/ammonium sulfate)")
	case n > 400:
		assessment.NutrientStatus["nitrogen"] = NutrientHigh
		assessment.Recommendations = append(assessment.Recommendations,
			"Reduce nitrogen fertilizer, risk of leaf burn")
	default:
		assessment.NutrientStatus["nitrogen"] = NutrientAdequate
	}

	switch {
	case p < 15:
		assessment.NutrientStatus["phosphorus"] = NutrientLow
		assessment.Recommendations = append(assessment.Recommendations,
			"Add phosphorus fertilizers (DAP/SSP)")
	case p > 50:
		assessment.NutrientStatus["phosphorus"] = NutrientHigh
		assessment.Recommendations = append(assessment.Recommendations,
			"Reduce phosphorus, may cause zinc deficiency")
	default:
		assessment.NutrientStatus["phosphorus"] = NutrientAdequate
	}

	switch {
	case k < 150:
		assessment.NutrientStatus["potassium"] = NutrientLow
		assessment.Recommendations = append(assessment.Recommendations,
			"Add potassium fertilizers (MOP/SOP)")
	case k > 300:
		assessment.NutrientStatus["potassium"] = NutrientHigh
		assessment.Recommendations = append(assessment.Recommendations,
			"Reduce potassium fertilizer application")
	default:
		assessment.NutrientStatus["potassium"] = NutrientAdequate
	}

	switch {
	case ph < 5.5:
		assessment.PHStatus = "Too Acidic"
		assessment.Recommendations = append(assessment.Recommendations,
			"Add lime to increase pH (target: 6.0-7.0)")
	case ph > 8.5:
		assessment.PHStatus = "Too Alkaline"
		assessment.Recommendations = append(assessment.Recommendations,
			"Add sulfur or organic matter to reduce pH")
	case ph >= 6.0 && ph <= 7.5:
		assessment.PHStatus = "Optimal"
	default:
		assessment.PHStatus = "Acceptable"
	}

	var low, high int
	for _, status := range assessment.NutrientStatus {
		switch status {
		case NutrientLow:
			low++
		case NutrientHigh:
			high++
		}
	}
	phIssue := assessment.PHStatus == "Too Acidic" || assessment.PHStatus == "Too Alkaline"
	switch {
	case low >= 2 || phIssue:
		assessment.OverallHealth = "Poor"
	case low == 1 || high >= 1:
		assessment.OverallHealth = "Fair"
	default:
		assessment.OverallHealth = "Good"
	}

	return assessment
}

// FertilizerPlan is the recommended application in kg/hectare
type FertilizerPlan struct {
	NitrogenKgPerHa   float64           `json:"nitrogen_kg_per_ha"`
	PhosphorusKgPerHa float64           `json:"phosphorus_kg_per_ha"`
	PotassiumKgPerHa  float64           `json:"potassium_kg_per_ha"`
	TotalCostEstimate float64           `json:"total_cost_estimate"`
	ApplicationTiming map[string]string `json:"application_timing"`
}

// FertilizerRequirement estimates the fertilizer needed to reach a target
// yield given current soil nutrient levels
func FertilizerRequirement(n, p, k, targetYield float64) FertilizerPlan {
	// Base requirements (kg/hectare) for an average 3000-unit yield
	const (
		baseN        = 120.0
		baseP        = 60.0
		baseK        = 40.0
		averageYield = 3000.0
	)
	yieldFactor := targetYield / averageYield

	nRequired := math.Max(0, baseN*yieldFactor-n*0.1)
	pRequired := math.Max(0, baseP*yieldFactor-p*0.2)
	kRequired := math.Max(0, baseK*yieldFactor-k*0.15)

	return FertilizerPlan{
		NitrogenKgPerHa:   round1(nRequired),
		PhosphorusKgPerHa: round1(pRequired),
		PotassiumKgPerHa:  round1(kRequired),
		TotalCostEstimate: round2(nRequired*25 + pRequired*35 + kRequired*20),
		ApplicationTiming: map[string]string{
			"nitrogen":   "Split application: 50% at sowing, 25% at tillering, 25% at flowering",
			"phosphorus": "Full dose at sowing/transplanting",
			"potassium":  "Split application: 50% at sowing, 50% at flowering",
		},
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
