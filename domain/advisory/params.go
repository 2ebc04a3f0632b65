package advisory

import "fmt"

// Parameters holds the agronomic inputs to a forecast request. Zero
// values are replaced by the regional defaults before any rule runs.
type Parameters struct {
	Nitrogen    *float64 `json:"N"`
	Phosphorus  *float64 `json:"P"`
	Potassium   *float64 `json:"K"`
	PH          *float64 `json:"pH"`
	AvgTempC    *float64 `json:"avg_temp_c"`
	RainfallMM  *float64 `json:"total_rainfall_mm"`
	HumidityPct *float64 `json:"avg_humidity_percent"`
}

// Regional default values used when a parameter is absent
const (
	DefaultNitrogen   = 200.0
	DefaultPhosphorus = 30.0
	DefaultPotassium  = 200.0
	DefaultPH         = 7.0
	DefaultTempC      = 25.0
	DefaultRainfallMM = 1000.0
	DefaultHumidity   = 65.0
)

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// Resolved returns the parameter values with defaults applied
func (p Parameters) Resolved() (n, phos, k, soilPH, temp, rainfall, humidity float64) {
	return orDefault(p.Nitrogen, DefaultNitrogen),
		orDefault(p.Phosphorus, DefaultPhosphorus),
		orDefault(p.Potassium, DefaultPotassium),
		orDefault(p.PH, DefaultPH),
		orDefault(p.AvgTempC, DefaultTempC),
		orDefault(p.RainfallMM, DefaultRainfallMM),
		orDefault(p.HumidityPct, DefaultHumidity)
}

type rangeRule struct {
	name    string
	value   *float64
	min     float64
	max     float64
	message string
}

// Validate checks required fields and plausibility ranges. It returns
// every violation rather than stopping at the first one.
func (p Parameters) Validate() []string {
	var errs []string

	required := []struct {
		field string
		value *float64
	}{
		{"N", p.Nitrogen},
		{"P", p.Phosphorus},
		{"K", p.Potassium},
		{"pH", p.PH},
		{"avg_temp_c", p.AvgTempC},
		{"total_rainfall_mm", p.RainfallMM},
		{"avg_humidity_percent", p.HumidityPct},
	}
	for _, r := range required {
		if r.value == nil {
			errs = append(errs, fmt.Sprintf("Missing required field: %s", r.field))
		}
	}

	rules := []rangeRule{
		{"N", p.Nitrogen, 0, 1000, "Nitrogen value should be between 0-1000 mg/kg"},
		{"P", p.Phosphorus, 0, 200, "Phosphorus value should be between 0-200 mg/kg"},
		{"K", p.Potassium, 0, 1000, "Potassium value should be between 0-1000 mg/kg"},
		{"pH", p.PH, 0, 14, "pH value should be between 0-14"},
		{"avg_temp_c", p.AvgTempC, -10, 60, "Temperature should be between -10C to 60C"},
		{"total_rainfall_mm", p.RainfallMM, 0, 5000, "Rainfall should be between 0-5000 mm"},
		{"avg_humidity_percent", p.HumidityPct, 0, 100, "Humidity should be between 0-100%"},
	}
	for _, r := range rules {
		if r.value != nil && (*r.value < r.min || *r.value > r.max) {
			errs = append(errs, r.message)
		}
	}
	return errs
}
