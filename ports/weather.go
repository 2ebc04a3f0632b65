package ports

import (
	"context"
)

// WeatherObservation is the current weather snapshot for one state
type WeatherObservation struct {
	State           string  `json:"state"`
	AvgTempC        float64 `json:"avg_temp_c"`
	TotalRainfallMM float64 `json:"total_rainfall_mm"`
	AvgHumidityPct  float64 `json:"avg_humidity_percent"`
	Source          string  `json:"source"`
}

// WeatherProviderPort fetches current weather for a state. The default
// implementation is a lookup table; a real API client slots in behind the
// same port.
type WeatherProviderPort interface {
	CurrentWeather(ctx context.Context, state string) (WeatherObservation, error)
	States() []string
}
