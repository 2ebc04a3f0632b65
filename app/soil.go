package app

import (
	"fmt"
	"sort"
	"strings"

	"agriyield/domain/core"
	"agriyield/domain/forecast"
	"agriyield/domain/tabular"
)

// SoilProfile is the per-state soil summary served to clients
type SoilProfile struct {
	State      string  `json:"state"`
	Nitrogen   float64 `json:"N"`
	Phosphorus float64 `json:"P"`
	Potassium  float64 `json:"K"`
	PH         float64 `json:"pH"`
}

// SoilCatalog is a read-only index of the soil source table, keyed by
// state. Built once at startup; lookups are safe for concurrent use.
type SoilCatalog struct {
	states   []string
	profiles map[string]SoilProfile
}

// NewSoilCatalog indexes the soil table by state. Duplicate states keep
// the first row, matching the merge join.
func NewSoilCatalog(soil *tabular.Table) (*SoilCatalog, error) {
	if !soil.HasColumn(tabular.ColState) {
		return nil, core.NewDataError("soil", "table has no state column")
	}

	catalog := &SoilCatalog{profiles: make(map[string]SoilProfile)}
	for _, row := range soil.Rows {
		state := strings.TrimSpace(row.Cell(tabular.ColState).Raw)
		if state == "" {
			continue
		}
		key := strings.ToLower(state)
		if _, ok := catalog.profiles[key]; ok {
			continue
		}
		profile := SoilProfile{State: state}
		profile.Nitrogen, _ = row.Cell(forecast.ColNitrogen).Float()
		profile.Phosphorus, _ = row.Cell(forecast.ColPhosphorus).Float()
		profile.Potassium, _ = row.Cell(forecast.ColPotassium).Float()
		profile.PH, _ = row.Cell(forecast.ColPH).Float()
		catalog.profiles[key] = profile
		catalog.states = append(catalog.states, state)
	}
	sort.Strings(catalog.states)
	return catalog, nil
}

// States lists the known states in sorted order
func (c *SoilCatalog) States() []string {
	return append([]string(nil), c.states...)
}

// Lookup resolves a state's soil profile, case-insensitively
func (c *SoilCatalog) Lookup(state string) (SoilProfile, error) {
	profile, ok := c.profiles[strings.ToLower(strings.TrimSpace(state))]
	if !ok {
		return SoilProfile{}, fmt.Errorf("%w: %s", core.ErrStateNotFound, state)
	}
	return profile, nil
}
