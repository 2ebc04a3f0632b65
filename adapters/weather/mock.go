package weather

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"time"

	"agriyield/ports"
)

// stateClimate holds the historical-average climate for one state
type stateClimate struct {
	temp     float64
	rainfall float64
	humidity float64
}

// mockClimate is the per-state lookup backing the mock provider
var mockClimate = map[string]stateClimate{
	"Andhra Pradesh":    {28.5, 850, 68},
	"Arunachal Pradesh": {22.2, 2100, 75},
	"Assam":             {23.1, 1800, 76},
	"Bihar":             {26.2, 1050, 56},
	"Chhattisgarh":      {26.0, 1200, 59},
	"Delhi":             {25.5, 700, 45},
	"Goa":               {27.4, 2200, 74},
	"Gujarat":           {27.8, 750, 48},
	"Haryana":           {24.2, 950, 47},
	"Himachal Pradesh":  {21.0, 1100, 50},
	"Jharkhand":         {23.4, 1350, 62},
	"Jammu and Kashmir": {9.5, 650, 52},
	"Karnataka":         {23.7, 850, 68},
	"Kerala":            {26.8, 1800, 80},
	"Madhya Pradesh":    {25.2, 1200, 52},
	"Maharashtra":       {26.7, 2400, 67},
	"Manipur":           {20.4, 1300, 74},
	"Meghalaya":         {17.9, 2800, 81},
	"Mizoram":           {22.9, 2000, 77},
	"Nagaland":          {18.3, 1200, 74},
	"Odisha":            {26.4, 1450, 72},
	"Puducherry":        {28.1, 1200, 75},
	"Punjab":            {24.2, 950, 47},
	"Sikkim":            {7.5, 1100, 73},
	"Tamil Nadu":        {27.9, 1250, 72},
	"Telangana":         {26.1, 800, 60},
	"Tripura":           {25.2, 2100, 75},
	"Uttar Pradesh":     {25.8, 1000, 52},
	"Uttarakhand":       {18.0, 1300, 56},
	"West Bengal":       {25.8, 1550, 74},
}

// defaultClimate is used for states absent from the lookup
var defaultClimate = stateClimate{25.0, 1000, 65}

// MockProvider serves weather from a static per-state table with small
// deterministic jitter. It stands in for a real weather API behind the
// same port.
type MockProvider struct {
	now func() time.Time
}

var _ ports.WeatherProviderPort = (*MockProvider)(nil)

// NewMockProvider creates the mock provider
func NewMockProvider() *MockProvider {
	return &MockProvider{now: time.Now}
}

// CurrentWeather returns the climate table entry for the state, jittered
// so repeated calls within the hour agree
func (p *MockProvider) CurrentWeather(ctx context.Context, state string) (ports.WeatherObservation, error) {
	base, ok := mockClimate[state]
	if !ok {
		base = defaultClimate
	}

	t := p.now()
	rng := rand.New(rand.NewSource(int64(t.Day() + t.Hour())))

	return ports.WeatherObservation{
		State:           state,
		AvgTempC:        round1(base.temp + jitter(rng, 2)),
		TotalRainfallMM: round1(base.rainfall + jitter(rng, 100)),
		AvgHumidityPct:  round1(base.humidity + jitter(rng, 5)),
		Source:          "mock_data",
	}, nil
}

// States lists the states present in the climate table, sorted
func (p *MockProvider) States() []string {
	states := make([]string, 0, len(mockClimate))
	for s := range mockClimate {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

func jitter(rng *rand.Rand, span float64) float64 {
	return (rng.Float64()*2 - 1) * span
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
