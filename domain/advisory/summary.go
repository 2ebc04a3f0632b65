package advisory

// Summary bundles every rule-based recommendation for one forecast
type Summary struct {
	PredictedYield   float64     `json:"predicted_yield"`
	YieldCategory    string      `json:"yield_category"`
	IrrigationAdvice string      `json:"irrigation_advice"`
	CropCycle        string      `json:"crop_cycle"`
	SoilHealth       SoilHealth  `json:"soil_health"`
	WeatherRisks     WeatherRisk `json:"weather_risks"`
}

// BuildSummary assembles the full advisory summary for a predicted yield
// and the (possibly partial) request parameters
func BuildSummary(prediction float64, params Parameters) Summary {
	n, phos, k, soilPH, temp, rainfall, humidity := params.Resolved()

	// Irrigation advice treats an absent rainfall figure as zero rather
	// than the regional default, so the caller hears about it
	irrigationRainfall := orDefault(params.RainfallMM, 0)

	return Summary{
		PredictedYield:   prediction,
		YieldCategory:    YieldCategory(prediction),
		IrrigationAdvice: IrrigationAdvice(irrigationRainfall, DefaultCropWaterNeedMM),
		CropCycle:        SuggestCropCycle(temp, rainfall),
		SoilHealth:       AssessSoilHealth(n, phos, k, soilPH),
		WeatherRisks:     AssessWeatherRisk(temp, rainfall, humidity),
	}
}

// FarmingTips generates personalized tips from the soil and weather
// parameters
func FarmingTips(params Parameters) []string {
	n, _, _, soilPH, temp, rainfall, humidity := params.Resolved()

	var tips []string
	if n < 200 {
		tips = append(tips, "Consider organic nitrogen sources like compost or vermicompost for sustainable soil improvement")
	}
	switch {
	case soilPH < 6.0:
		tips = append(tips, "Apply agricultural lime 2-3 months before planting to improve soil pH")
	case soilPH > 8.0:
		tips = append(tips, "Add organic matter or sulfur to reduce soil alkalinity")
	}
	if temp > 32 && humidity > 75 {
		tips = append(tips, "High temperature and humidity favor disease development, ensure good field ventilation")
	}
	switch {
	case rainfall < 700:
		tips = append(tips, "Consider drought-tolerant crop varieties and water-efficient irrigation methods")
	case rainfall > 1800:
		tips = append(tips, "Ensure adequate drainage and consider raised bed cultivation")
	}
	tips = append(tips,
		"Plan crop rotation to maintain soil health and reduce pest buildup",
		"Use certified seeds and follow recommended spacing for optimal yield")
	return tips
}
