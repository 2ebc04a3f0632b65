package testkit

import (
	"fmt"

	"agriyield/domain/tabular"
)

// Fixture paths resolved by the kit's in-memory table reader
const (
	CropPath    = "testkit://crop"
	SoilPath    = "testkit://soil"
	WeatherPath = "testkit://weather"
)

// TestKit bundles the synthetic generator with an in-memory table reader
// so pipeline tests run without fixture files on disk
type TestKit struct {
	Generator *AgriDataGenerator
	tables    map[string]*tabular.Table
}

// NewTestKit generates the three source tables with the given config
func NewTestKit(config AgriGeneratorConfig) *TestKit {
	generator := NewAgriDataGenerator(config)
	return &TestKit{
		Generator: generator,
		tables: map[string]*tabular.Table{
			CropPath:    generator.CropTable(),
			SoilPath:    generator.SoilTable(),
			WeatherPath: generator.WeatherTable(),
		},
	}
}

// ReadTable satisfies the table reader port against the generated tables
func (k *TestKit) ReadTable(path string) (*tabular.Table, error) {
	table, ok := k.tables[path]
	if !ok {
		return nil, fmt.Errorf("testkit has no table for path %s", path)
	}
	return table, nil
}

// Table returns a generated table directly, for tests that skip the
// reader port
func (k *TestKit) Table(path string) *tabular.Table {
	return k.tables[path]
}
