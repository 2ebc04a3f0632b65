package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriyield/domain/core"
	"agriyield/domain/tabular"
)

func mergedFixture() *tabular.Table {
	t := tabular.NewTable([]string{
		"state", "crop", "yield", "N", "P", "K", "avg_temp_c", "total_rainfall_mm",
	})
	rows := [][]string{
		{"Punjab", "Rice", "4200", "220", "25", "180", "26", "1100"},
		{"Kerala", "Rice", "2800", "180", "20", "150", "28", "2400"},
		{"Punjab", "Wheat", "3900", "220", "25", "180", "22", "700"},
	}
	for _, r := range rows {
		row := tabular.Row{}
		for i, col := range t.Columns {
			row[col] = tabular.NewCell(r[i])
		}
		t.Append(row)
	}
	return t
}

func TestFitTransformEncodesAndDerives(t *testing.T) {
	merged := mergedFixture()
	frame, encoders, err := FitTransform(merged)
	require.NoError(t, err)

	// Engineered features appended after the merged columns
	assert.Equal(t, append(append([]string(nil), merged.Columns...),
		FeatureNPKRatio, FeatureSoilFertility, FeatureTempRainfall), frame.Columns)
	require.Len(t, frame.Data, 3)

	// Categorical columns get first-observation codes
	require.Contains(t, encoders, "state")
	require.Contains(t, encoders, "crop")
	assert.Equal(t, []string{"Punjab", "Kerala"}, encoders["state"].Classes)
	assert.Equal(t, []string{"Rice", "Wheat"}, encoders["crop"].Classes)

	stateIdx, _ := frame.ColumnIndex("state")
	assert.Equal(t, 0.0, frame.Data[0][stateIdx])
	assert.Equal(t, 1.0, frame.Data[1][stateIdx])

	// Derived feature values follow the shared formulas
	npkIdx, _ := frame.ColumnIndex(FeatureNPKRatio)
	fertIdx, _ := frame.ColumnIndex(FeatureSoilFertility)
	interIdx, _ := frame.ColumnIndex(FeatureTempRainfall)
	assert.InDelta(t, 220.0/(25+180+1), frame.Data[0][npkIdx], 1e-9)
	assert.InDelta(t, (220.0+25+180)/3, frame.Data[0][fertIdx], 1e-9)
	assert.InDelta(t, 26.0*1100/1000, frame.Data[0][interIdx], 1e-9)
}

func TestFitTransformDropsIncompleteRows(t *testing.T) {
	merged := mergedFixture()
	incomplete := merged.Rows[0].Clone()
	incomplete["N"] = tabular.MissingCell()
	merged.Append(incomplete)

	frame, _, err := FitTransform(merged)
	require.NoError(t, err)
	assert.Len(t, frame.Data, 3)
}

func TestFitTransformAllRowsDropped(t *testing.T) {
	merged := tabular.NewTable([]string{"state", "N", "yield"})
	for i := 0; i < 3; i++ {
		merged.Append(tabular.Row{
			"state": tabular.NewCell("Punjab"),
			"N":     tabular.MissingCell(),
			"yield": tabular.NewCell("4200"),
		})
	}

	_, _, err := FitTransform(merged)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrEmptyTrainingSet)
	// The error names the offending column
	assert.Contains(t, err.Error(), "N (3 rows)")
}

func TestFitTransformEmptyTable(t *testing.T) {
	_, _, err := FitTransform(tabular.NewTable([]string{"state"}))
	assert.ErrorIs(t, err, core.ErrEmptyTrainingSet)
}

func TestFitTransformSkipsDerivedWithoutSources(t *testing.T) {
	merged := tabular.NewTable([]string{"state", "yield"})
	merged.Append(tabular.Row{
		"state": tabular.NewCell("Punjab"),
		"yield": tabular.NewCell("4200"),
	})

	frame, _, err := FitTransform(merged)
	require.NoError(t, err)
	_, hasNPK := frame.ColumnIndex(FeatureNPKRatio)
	_, hasInter := frame.ColumnIndex(FeatureTempRainfall)
	assert.False(t, hasNPK)
	assert.False(t, hasInter)
}
