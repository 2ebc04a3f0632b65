package advisory

import "fmt"

// RiskLevel grades the severity of a weather risk assessment
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// DefaultCropWaterNeedMM is the assumed daily crop water requirement
const DefaultCropWaterNeedMM = 40.0

// IrrigationAdvice compares the daily rainfall average against the crop
// water need. Rainfall is a monthly total in mm.
func IrrigationAdvice(rainfallMM, cropWaterNeed float64) string {
	if cropWaterNeed <= 0 {
		cropWaterNeed = DefaultCropWaterNeedMM
	}
	daily := rainfallMM / 30

	switch {
	case daily < cropWaterNeed:
		return fmt.Sprintf("Irrigation needed: %.1f mm more per day", cropWaterNeed-daily)
	case daily < cropWaterNeed*1.2:
		return fmt.Sprintf("Monitor closely: %.1f mm rainfall (barely sufficient)", daily)
	default:
		return "No irrigation needed (rainfall sufficient)"
	}
}

// SuggestCropCycle maps climate conditions to a planting calendar
func SuggestCropCycle(temp, rainfall float64) string {
	switch {
	case temp < 20 && rainfall < 800:
		return "Winter Wheat: plant in Nov-Dec, harvest in Mar-Apr"
	case temp >= 20 && temp < 25 && rainfall >= 800 && rainfall < 1200:
		return "Mixed Crops: wheat/barley in winter, maize in summer"
	case temp >= 25 && temp < 30 && rainfall >= 1000 && rainfall < 1800:
		return "Rice/Maize: plant in Jun-Jul, harvest in Oct-Nov"
	case temp >= 30 && rainfall >= 1200:
		return "Rice (Intensive): Kharif Jun-Oct, Rabi Nov-Mar"
	case temp >= 28 && rainfall < 1000:
		return "Drought-Resistant: millets, sorghum, cotton"
	case temp < 25 && rainfall >= 1500:
		return "High-Moisture Crops: rice, sugarcane, jute"
	default:
		return "Variable Conditions: consult local agricultural extension office"
	}
}

// WeatherRisk is the rule-based climate risk assessment
type WeatherRisk struct {
	RiskLevel       RiskLevel `json:"risk_level"`
	Risks           []string  `json:"risks"`
	Recommendations []string  `json:"recommendations"`
}

// raise only ever escalates the level
func (w *WeatherRisk) raise(level RiskLevel) {
	if level == RiskHigh || (level == RiskMedium && w.RiskLevel == RiskLow) {
		w.RiskLevel = level
	}
}

// AssessWeatherRisk evaluates temperature, rainfall and humidity against
// the crop risk thresholds
func AssessWeatherRisk(temp, rainfall, humidity float64) WeatherRisk {
	risk := WeatherRisk{RiskLevel: RiskLow}

	switch {
	case temp < 10:
		risk.Risks = append(risk.Risks, "Frost risk, protect sensitive crops")
		risk.raise(RiskHigh)
	case temp > 40:
		risk.Risks = append(risk.Risks, "Heat stress, provide shade/irrigation")
		risk.raise(RiskHigh)
	case temp > 35:
		risk.Risks = append(risk.Risks, "High temperature, monitor crop stress")
		risk.raise(RiskMedium)
	}

	switch {
	case rainfall < 500:
		risk.Risks = append(risk.Risks, "Drought conditions, irrigation critical")
		risk.raise(RiskHigh)
	case rainfall > 2500:
		risk.Risks = append(risk.Risks, "Excess rainfall, drainage and fungal disease risk")
		risk.raise(RiskHigh)
	case rainfall > 2000:
		risk.Risks = append(risk.Risks, "High rainfall, monitor for waterlogging")
		risk.raise(RiskMedium)
	}

	switch {
	case humidity > 85:
		risk.Risks = append(risk.Risks, "High humidity, fungal disease risk")
		risk.raise(RiskMedium)
	case humidity < 30:
		risk.Risks = append(risk.Risks, "Low humidity, plant water stress")
		risk.raise(RiskMedium)
	}

	if temp > 30 && humidity > 80 {
		risk.Risks = append(risk.Risks, "Hot and humid, pest and disease pressure")
		risk.raise(RiskHigh)
	}

	if len(risk.Risks) == 0 {
		risk.Risks = append(risk.Risks, "Favorable weather conditions")
	}
	risk.Recommendations = weatherRecommendations(temp, rainfall, humidity)
	return risk
}

func weatherRecommendations(temp, rainfall, humidity float64) []string {
	var recs []string

	if temp > 35 {
		recs = append(recs,
			"Install shade nets or increase irrigation frequency",
			"Schedule field operations for early morning or late evening")
	}
	if rainfall < 600 {
		recs = append(recs,
			"Install drip irrigation system for water efficiency",
			"Apply mulch to conserve soil moisture")
	}
	if rainfall > 2000 {
		recs = append(recs,
			"Ensure proper field drainage",
			"Apply preventive fungicide sprays")
	}
	if humidity > 80 {
		recs = append(recs,
			"Improve air circulation between crop rows",
			"Monitor for pest and disease outbreak")
	}
	if temp < 15 {
		recs = append(recs,
			"Use row covers or polytunnels for protection",
			"Delay sowing until soil temperature rises")
	}
	return recs
}
