package weather

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedProvider(t time.Time) *MockProvider {
	return &MockProvider{now: func() time.Time { return t }}
}

func TestCurrentWeatherStableWithinHour(t *testing.T) {
	at := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	p := fixedProvider(at)
	ctx := context.Background()

	first, err := p.CurrentWeather(ctx, "Punjab")
	require.NoError(t, err)
	second, err := p.CurrentWeather(ctx, "Punjab")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, "Punjab", first.State)
	assert.Equal(t, "mock_data", first.Source)
	// Jitter stays within its band around the climate table entry
	assert.InDelta(t, 24.2, first.AvgTempC, 2.01)
	assert.InDelta(t, 950, first.TotalRainfallMM, 100.01)
	assert.InDelta(t, 47, first.AvgHumidityPct, 5.01)
}

func TestCurrentWeatherUnknownStateGetsDefaults(t *testing.T) {
	p := fixedProvider(time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	obs, err := p.CurrentWeather(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.Equal(t, "Atlantis", obs.State)
	assert.InDelta(t, 25, obs.AvgTempC, 2.01)
	assert.InDelta(t, 1000, obs.TotalRainfallMM, 100.01)
}

func TestStatesSorted(t *testing.T) {
	states := NewMockProvider().States()
	assert.True(t, sort.StringsAreSorted(states))
	assert.Contains(t, states, "Punjab")
	assert.Contains(t, states, "Kerala")
	assert.Len(t, states, len(mockClimate))
}
