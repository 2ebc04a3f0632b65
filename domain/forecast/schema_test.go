package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriyield/domain/core"
)

func TestFeatureSchemaFreezesColumns(t *testing.T) {
	columns := []string{"N", "P", "K"}
	schema := NewFeatureSchema(columns)

	// Mutating the source slice cannot reach the frozen schema
	columns[0] = "hacked"
	assert.Equal(t, "N", schema.Columns[0])
	require.NoError(t, schema.Verify())
}

func TestFeatureSchemaHashSensitiveToOrder(t *testing.T) {
	a := NewFeatureSchema([]string{"N", "P"})
	b := NewFeatureSchema([]string{"P", "N"})
	assert.NotEqual(t, a.Hash, b.Hash)
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(NewFeatureSchema([]string{"N", "P"})))
}

func TestFeatureSchemaVerifyDetectsTampering(t *testing.T) {
	schema := NewFeatureSchema([]string{"N", "P"})
	schema.Columns[1] = "K"

	err := schema.Verify()
	require.Error(t, err)
	assert.True(t, core.IsSchemaMismatchError(err))
}

func TestManifestVerify(t *testing.T) {
	schema := NewFeatureSchema([]string{"N", "P", "K"})
	model := &stubModel{features: 3}
	manifest := NewManifest(core.NewRunID(), model, schema, Metrics{TargetColumn: "yield"})

	require.NoError(t, manifest.Verify(schema))
	assert.Equal(t, ManifestVersion, manifest.FormatVersion)
	assert.Equal(t, 3, manifest.FeatureCount)
	assert.Equal(t, "yield", manifest.TargetColumn)

	// A schema from a different run is rejected
	other := NewFeatureSchema([]string{"N", "P"})
	err := manifest.Verify(other)
	require.Error(t, err)
	assert.True(t, core.IsSchemaMismatchError(err))

	stale := manifest
	stale.FormatVersion = "0"
	assert.Error(t, stale.Verify(schema))
}

type stubModel struct {
	features int
}

func (s *stubModel) Predict([]float64) float64     { return 0 }
func (s *stubModel) FeatureImportances() []float64 { return make([]float64, s.features) }
func (s *stubModel) Kind() string                  { return ModelGradientBoosting }
func (s *stubModel) NumFeatures() int              { return s.features }
