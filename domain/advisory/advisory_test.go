package advisory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func TestYieldCategoryBuckets(t *testing.T) {
	assert.Equal(t, "Low Yield", YieldCategory(0))
	assert.Equal(t, "Low Yield", YieldCategory(1499.9))
	assert.Equal(t, "Medium Yield", YieldCategory(1500))
	assert.Equal(t, "Medium Yield", YieldCategory(2999))
	assert.Equal(t, "Good Yield", YieldCategory(3000))
	assert.Equal(t, "Good Yield", YieldCategory(4499))
	assert.Equal(t, "Excellent Yield", YieldCategory(4500))
}

func TestAssessSoilHealthBalanced(t *testing.T) {
	health := AssessSoilHealth(250, 30, 200, 6.8)
	assert.Equal(t, "Good", health.OverallHealth)
	assert.Equal(t, "Optimal", health.PHStatus)
	assert.Equal(t, NutrientAdequate, health.NutrientStatus["nitrogen"])
	assert.Empty(t, health.Recommendations)
}

func TestAssessSoilHealthDeficient(t *testing.T) {
	health := AssessSoilHealth(100, 10, 200, 6.5)
	assert.Equal(t, "Poor", health.OverallHealth, "two low nutrients")
	assert.Equal(t, NutrientLow, health.NutrientStatus["nitrogen"])
	assert.Equal(t, NutrientLow, health.NutrientStatus["phosphorus"])
	assert.NotEmpty(t, health.Recommendations)
}

func TestAssessSoilHealthPHIssues(t *testing.T) {
	acidic := AssessSoilHealth(250, 30, 200, 5.0)
	assert.Equal(t, "Too Acidic", acidic.PHStatus)
	assert.Equal(t, "Poor", acidic.OverallHealth)

	alkaline := AssessSoilHealth(250, 30, 200, 9.0)
	assert.Equal(t, "Too Alkaline", alkaline.PHStatus)

	borderline := AssessSoilHealth(250, 30, 200, 5.8)
	assert.Equal(t, "Acceptable", borderline.PHStatus)
}

func TestAssessSoilHealthSingleIssueIsFair(t *testing.T) {
	oneLow := AssessSoilHealth(100, 30, 200, 6.8)
	assert.Equal(t, "Fair", oneLow.OverallHealth)

	oneHigh := AssessSoilHealth(450, 30, 200, 6.8)
	assert.Equal(t, "Fair", oneHigh.OverallHealth)
	assert.Equal(t, NutrientHigh, oneHigh.NutrientStatus["nitrogen"])
}

func TestFertilizerRequirement(t *testing.T) {
	plan := FertilizerRequirement(200, 30, 200, 3000)

	// yield_factor 1: base minus soil credit
	assert.InDelta(t, 100.0, plan.NitrogenKgPerHa, 0.01)
	assert.InDelta(t, 54.0, plan.PhosphorusKgPerHa, 0.01)
	assert.InDelta(t, 10.0, plan.PotassiumKgPerHa, 0.01)
	assert.Greater(t, plan.TotalCostEstimate, 0.0)
	assert.Contains(t, plan.ApplicationTiming, "nitrogen")
}

func TestFertilizerRequirementClampsAtZero(t *testing.T) {
	plan := FertilizerRequirement(900, 190, 900, 1000)
	assert.Equal(t, 0.0, plan.NitrogenKgPerHa)
	assert.Equal(t, 0.0, plan.PhosphorusKgPerHa)
	assert.Equal(t, 0.0, plan.PotassiumKgPerHa)
}

func TestIrrigationAdvice(t *testing.T) {
	// 600mm monthly is 20mm daily against a 40mm need
	assert.Contains(t, IrrigationAdvice(600, 40), "Irrigation needed: 20.0 mm")
	// 1350mm monthly is 45mm daily: within 20% headroom
	assert.Contains(t, IrrigationAdvice(1350, 40), "Monitor closely")
	assert.Equal(t, "No irrigation needed (rainfall sufficient)", IrrigationAdvice(1500, 40))
}

func TestSuggestCropCycle(t *testing.T) {
	assert.Contains(t, SuggestCropCycle(18, 600), "Winter Wheat")
	assert.Contains(t, SuggestCropCycle(27, 1400), "Rice/Maize")
	assert.Contains(t, SuggestCropCycle(32, 1500), "Rice (Intensive)")
	assert.Contains(t, SuggestCropCycle(29, 800), "Drought-Resistant")
	assert.Contains(t, SuggestCropCycle(20, 1600), "High-Moisture")
	assert.Contains(t, SuggestCropCycle(26, 900), "Variable Conditions")
}

func TestAssessWeatherRiskFavorable(t *testing.T) {
	risk := AssessWeatherRisk(25, 1200, 60)
	assert.Equal(t, RiskLow, risk.RiskLevel)
	assert.Equal(t, []string{"Favorable weather conditions"}, risk.Risks)
}

func TestAssessWeatherRiskEscalation(t *testing.T) {
	frost := AssessWeatherRisk(5, 1200, 60)
	assert.Equal(t, RiskHigh, frost.RiskLevel)

	warm := AssessWeatherRisk(36, 1200, 60)
	assert.Equal(t, RiskMedium, warm.RiskLevel)

	drought := AssessWeatherRisk(25, 300, 60)
	assert.Equal(t, RiskHigh, drought.RiskLevel)

	// Medium never downgrades an already-high level
	combined := AssessWeatherRisk(5, 2100, 60)
	assert.Equal(t, RiskHigh, combined.RiskLevel)

	hotHumid := AssessWeatherRisk(32, 1200, 82)
	assert.Equal(t, RiskHigh, hotHumid.RiskLevel)
	assert.NotEmpty(t, hotHumid.Recommendations)
}

func TestValidateParameters(t *testing.T) {
	valid := Parameters{
		Nitrogen: fp(220), Phosphorus: fp(25), Potassium: fp(180), PH: fp(6.8),
		AvgTempC: fp(26), RainfallMM: fp(1100), HumidityPct: fp(62),
	}
	assert.Empty(t, valid.Validate())

	missing := Parameters{Nitrogen: fp(220)}
	errs := missing.Validate()
	assert.Len(t, errs, 6)
	assert.Contains(t, errs[0], "Missing required field")

	outOfRange := valid
	outOfRange.PH = fp(15)
	outOfRange.HumidityPct = fp(120)
	errs = outOfRange.Validate()
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "pH")
}

func TestBuildSummary(t *testing.T) {
	params := Parameters{
		Nitrogen: fp(220), Phosphorus: fp(25), Potassium: fp(180), PH: fp(6.8),
		AvgTempC: fp(26), RainfallMM: fp(1100), HumidityPct: fp(62),
	}
	summary := BuildSummary(3850, params)

	assert.Equal(t, 3850.0, summary.PredictedYield)
	assert.Equal(t, "Good Yield", summary.YieldCategory)
	assert.Equal(t, "Good", summary.SoilHealth.OverallHealth)
	assert.Equal(t, RiskLow, summary.WeatherRisks.RiskLevel)
	assert.NotEmpty(t, summary.CropCycle)
	assert.NotEmpty(t, summary.IrrigationAdvice)
}

func TestBuildSummaryDefaults(t *testing.T) {
	summary := BuildSummary(2000, Parameters{})
	assert.Equal(t, "Medium Yield", summary.YieldCategory)
	// Absent rainfall reads as zero for irrigation, not the regional default
	assert.Contains(t, summary.IrrigationAdvice, "Irrigation needed")
}

func TestFarmingTipsAlwaysIncludeGeneralAdvice(t *testing.T) {
	tips := FarmingTips(Parameters{})
	require.GreaterOrEqual(t, len(tips), 2)
	assert.Contains(t, tips[len(tips)-2], "crop rotation")
	assert.Contains(t, tips[len(tips)-1], "certified seeds")

	dry := FarmingTips(Parameters{RainfallMM: fp(500)})
	assert.Contains(t, dry[0], "drought-tolerant")
}
