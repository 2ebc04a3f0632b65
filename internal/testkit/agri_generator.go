package testkit

import (
	"math/rand"
	"strconv"

	"agriyield/domain/tabular"
)

// AgriGeneratorConfig configures the synthetic dataset generator
type AgriGeneratorConfig struct {
	States    []string `json:"states"`
	Crops     []string `json:"crops"`
	StartYear int      `json:"start_year"`
	EndYear   int      `json:"end_year"`
	NoiseStd  float64  `json:"noise_std"`
	Seed      int64    `json:"seed"`
}

// DefaultAgriConfig returns sensible defaults for synthetic agri data
func DefaultAgriConfig() AgriGeneratorConfig {
	return AgriGeneratorConfig{
		States:    []string{"Punjab", "Maharashtra", "Kerala", "West Bengal", "Tamil Nadu", "Gujarat"},
		Crops:     []string{"Rice", "Wheat", "Maize", "Cotton"},
		StartYear: 2010,
		EndYear:   2020,
		NoiseStd:  80,
		Seed:      42,
	}
}

// AgriDataGenerator produces the three source tables with a known
// mostly-linear relationship between the inputs and the yield, so model
// accuracy is checkable in tests
type AgriDataGenerator struct {
	config AgriGeneratorConfig
	rng    *rand.Rand

	soilByState    map[string][4]float64
	weatherByState map[string][3]float64
}

// NewAgriDataGenerator creates a seeded generator
func NewAgriDataGenerator(config AgriGeneratorConfig) *AgriDataGenerator {
	g := &AgriDataGenerator{
		config:         config,
		rng:            rand.New(rand.NewSource(config.Seed)),
		soilByState:    make(map[string][4]float64),
		weatherByState: make(map[string][3]float64),
	}
	for _, state := range config.States {
		g.soilByState[state] = [4]float64{
			150 + g.rng.Float64()*200, // N
			10 + g.rng.Float64()*50,   // P
			120 + g.rng.Float64()*200, // K
			5.5 + g.rng.Float64()*2.5, // pH
		}
		g.weatherByState[state] = [3]float64{
			18 + g.rng.Float64()*14,    // avg temp
			500 + g.rng.Float64()*1800, // rainfall
			45 + g.rng.Float64()*40,    // humidity
		}
	}
	return g
}

// CropTable generates the crop observations with the yield target
func (g *AgriDataGenerator) CropTable() *tabular.Table {
	table := tabular.NewTable([]string{"state", "year", "crop", "yield"})
	for _, state := range g.config.States {
		for year := g.config.StartYear; year <= g.config.EndYear; year++ {
			for _, crop := range g.config.Crops {
				table.Append(tabular.Row{
					"state": cell(state),
					"year":  cell(strconv.Itoa(year)),
					"crop":  cell(crop),
					"yield": cell(formatFloat(g.trueYield(state, year, crop))),
				})
			}
		}
	}
	return table
}

// SoilTable generates one soil row per state
func (g *AgriDataGenerator) SoilTable() *tabular.Table {
	table := tabular.NewTable([]string{"state", "N", "P", "K", "pH"})
	for _, state := range g.config.States {
		soil := g.soilByState[state]
		table.Append(tabular.Row{
			"state": cell(state),
			"N":     cell(formatFloat(soil[0])),
			"P":     cell(formatFloat(soil[1])),
			"K":     cell(formatFloat(soil[2])),
			"pH":    cell(formatFloat(soil[3])),
		})
	}
	return table
}

// WeatherTable generates per-state, per-year weather rows
func (g *AgriDataGenerator) WeatherTable() *tabular.Table {
	table := tabular.NewTable([]string{
		"state", "year", "avg_temp_c", "total_rainfall_mm", "avg_humidity_percent",
	})
	for _, state := range g.config.States {
		weather := g.weatherByState[state]
		for year := g.config.StartYear; year <= g.config.EndYear; year++ {
			table.Append(tabular.Row{
				"state":                cell(state),
				"year":                 cell(strconv.Itoa(year)),
				"avg_temp_c":           cell(formatFloat(weather[0] + g.yearDrift(year))),
				"total_rainfall_mm":    cell(formatFloat(weather[1] + g.yearDrift(year)*40)),
				"avg_humidity_percent": cell(formatFloat(weather[2])),
			})
		}
	}
	return table
}

// trueYield is the ground-truth generating function: linear in soil
// nutrients and rainfall, with per-crop offsets and Gaussian noise
func (g *AgriDataGenerator) trueYield(state string, year int, crop string) float64 {
	soil := g.soilByState[state]
	weather := g.weatherByState[state]

	base := 800.0
	base += soil[0] * 4.0   // nitrogen dominates
	base += soil[1] * 10.0  // phosphorus
	base += soil[2] * 2.0   // potassium
	base += (weather[1] + g.yearDrift(year)*40) * 0.5
	base += cropOffset(crop)
	return base + g.rng.NormFloat64()*g.config.NoiseStd
}

func (g *AgriDataGenerator) yearDrift(year int) float64 {
	return float64(year-g.config.StartYear) * 0.1
}

func cropOffset(crop string) float64 {
	switch crop {
	case "Rice":
		return 400
	case "Wheat":
		return 200
	case "Maize":
		return 100
	default:
		return 0
	}
}

func cell(raw string) tabular.Cell {
	return tabular.Cell{Raw: raw}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
