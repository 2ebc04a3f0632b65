package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriyield/domain/core"
)

func fittedTransformers(t *testing.T) (FeatureSchema, map[string]*CategoryEncoder) {
	t.Helper()
	frame, encoders, err := FitTransform(mergedFixture())
	require.NoError(t, err)

	// Serving schema excludes the target, mirroring training
	var features []string
	for _, col := range frame.Columns {
		if col != "yield" {
			features = append(features, col)
		}
	}
	return NewFeatureSchema(features), encoders
}

func TestTransformRecordSchemaOrderAndDerivation(t *testing.T) {
	schema, encoders := fittedTransformers(t)

	vector, unseen, err := TransformRecord(InputRecord{
		"state":             "Kerala",
		"crop":              "Rice",
		"N":                 200.0,
		"P":                 30.0,
		"K":                 200.0,
		"avg_temp_c":        27.0,
		"total_rainfall_mm": 1500.0,
	}, schema, encoders, UnseenFallback)
	require.NoError(t, err)
	require.Empty(t, unseen)
	require.Len(t, vector, schema.Len())

	at := func(col string) float64 {
		idx, ok := schema.Index(col)
		require.True(t, ok, col)
		return vector[idx]
	}
	assert.Equal(t, 1.0, at("state"))
	assert.Equal(t, 0.0, at("crop"))
	assert.InDelta(t, 200.0/(30+200+1), at(FeatureNPKRatio), 1e-9)
	assert.InDelta(t, (200.0+30+200)/3, at(FeatureSoilFertility), 1e-9)
	assert.InDelta(t, 27.0*1500/1000, at(FeatureTempRainfall), 1e-9)
}

func TestTransformRecordAbsentColumnsDefaultToZero(t *testing.T) {
	schema, encoders := fittedTransformers(t)

	vector, _, err := TransformRecord(InputRecord{"state": "Punjab"}, schema, encoders, UnseenFallback)
	require.NoError(t, err)

	for i, col := range schema.Columns {
		if col == "state" {
			continue
		}
		assert.Zerof(t, vector[i], "column %s", col)
	}
}

func TestTransformRecordUnseenPolicies(t *testing.T) {
	schema, encoders := fittedTransformers(t)
	input := InputRecord{"state": "Atlantis"}

	vector, unseen, err := TransformRecord(input, schema, encoders, UnseenFallback)
	require.NoError(t, err)
	idx, _ := schema.Index("state")
	assert.Equal(t, float64(FallbackCode), vector[idx])
	assert.Equal(t, []string{"state"}, unseen)

	_, _, err = TransformRecord(input, schema, encoders, UnseenReject)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnseenCategory)
}

func TestTransformRecordNonNumericForNumericColumn(t *testing.T) {
	schema, encoders := fittedTransformers(t)

	_, _, err := TransformRecord(InputRecord{"N": "plenty"}, schema, encoders, UnseenFallback)
	require.Error(t, err)
	assert.True(t, core.IsSchemaMismatchError(err))
}

func TestTransformRecordIsIdempotent(t *testing.T) {
	schema, encoders := fittedTransformers(t)
	input := InputRecord{
		"state": "Punjab",
		"crop":  "Wheat",
		"N":     220.0,
		"P":     25.0,
		"K":     180.0,
	}

	first, _, err := TransformRecord(input, schema, encoders, UnseenFallback)
	require.NoError(t, err)
	second, _, err := TransformRecord(input, schema, encoders, UnseenFallback)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTransformRecordSuppliedFeatureWins(t *testing.T) {
	schema, encoders := fittedTransformers(t)

	// An explicitly supplied engineered feature is not recomputed
	vector, _, err := TransformRecord(InputRecord{
		"N": 220.0, "P": 25.0, "K": 180.0,
		FeatureNPKRatio: 9.5,
	}, schema, encoders, UnseenFallback)
	require.NoError(t, err)
	idx, _ := schema.Index(FeatureNPKRatio)
	assert.Equal(t, 9.5, vector[idx])
}

func TestCoerceInputVariants(t *testing.T) {
	vector, _, err := TransformRecord(InputRecord{"N": "220.5"}, mustSchema(t, []string{"N"}), nil, UnseenFallback)
	require.NoError(t, err)
	assert.Equal(t, 220.5, vector[0])

	_, _, err = TransformRecord(InputRecord{"N": nil}, mustSchema(t, []string{"N"}), nil, UnseenFallback)
	require.Error(t, err)
	assert.True(t, core.IsDataError(err))
}

func mustSchema(t *testing.T, columns []string) FeatureSchema {
	t.Helper()
	return NewFeatureSchema(columns)
}
