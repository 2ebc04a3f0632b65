package forecast

import (
	"fmt"
	"sort"
	"strings"

	"agriyield/domain/core"
	"agriyield/domain/tabular"
)

// Soil nutrient columns feeding the engineered features
const (
	ColNitrogen   = "N"
	ColPhosphorus = "P"
	ColPotassium  = "K"
	ColPH         = "pH"
)

// Engineered feature columns, appended after the source columns in this order
const (
	FeatureNPKRatio      = "NPK_ratio"
	FeatureSoilFertility = "soil_fertility_index"
	FeatureTempRainfall  = "temp_rainfall_interaction"
)

// Engineered feature formulas, shared by the fit and inference paths so the
// two cannot drift.
func npkRatio(n, p, k float64) float64        { return n / (p + k + 1) }
func soilFertility(n, p, k float64) float64   { return (n + p + k) / 3 }
func tempRainfall(temp, rain float64) float64 { return temp * rain / 1000 }

// FitTransform cleans, encodes, and feature-engineers the merged table.
//
// Rows with any missing cell are discarded entirely (strict drop-NA, no
// imputation). When joins are sparse this materially shrinks the training
// set; the empty-set error names the columns responsible. Every non-numeric
// column is assigned a CategoryEncoder with codes in first-observation
// order. The returned frame's column order is the merged order plus the
// engineered features, and is the order the feature schema will freeze.
func FitTransform(merged *tabular.Table) (*FeatureFrame, map[string]*CategoryEncoder, error) {
	if merged == nil || merged.RowCount() == 0 {
		return nil, nil, core.NewEmptyTrainingSetError("merged table has no rows")
	}

	rows, missingByColumn := dropNA(merged)
	if len(rows) == 0 {
		return nil, nil, core.NewEmptyTrainingSetError(
			"all rows dropped; most missing columns: " + topMissing(missingByColumn, 3))
	}

	numeric := detectNumericColumns(merged.Columns, rows)

	encoders := make(map[string]*CategoryEncoder)
	for _, col := range merged.Columns {
		if numeric[col] {
			continue
		}
		enc := NewCategoryEncoder(col)
		values := make([]string, len(rows))
		for i, row := range rows {
			values[i] = row.Cell(col).Raw
		}
		enc.Fit(values)
		encoders[col] = enc
	}

	columns := append([]string(nil), merged.Columns...)
	deriveSoil := numeric[ColNitrogen] && numeric[ColPhosphorus] && numeric[ColPotassium]
	deriveWeather := numeric[tabular.ColTemp] && numeric[tabular.ColRainfall]
	if deriveSoil {
		columns = append(columns, FeatureNPKRatio, FeatureSoilFertility)
	}
	if deriveWeather {
		columns = append(columns, FeatureTempRainfall)
	}

	frame := &FeatureFrame{Columns: columns, Data: make([][]float64, len(rows))}
	for i, row := range rows {
		vec := make([]float64, 0, len(columns))
		for _, col := range merged.Columns {
			cell := row.Cell(col)
			if enc, ok := encoders[col]; ok {
				code, _, _ := enc.Encode(cell.Raw, UnseenFallback)
				vec = append(vec, float64(code))
				continue
			}
			v, ok := cell.Float()
			if !ok {
				return nil, nil, core.NewDataError("preprocess",
					fmt.Sprintf("column %s row %d is not numeric", col, i))
			}
			vec = append(vec, v)
		}
		if deriveSoil {
			n := vec[mustIndex(merged.Columns, ColNitrogen)]
			p := vec[mustIndex(merged.Columns, ColPhosphorus)]
			k := vec[mustIndex(merged.Columns, ColPotassium)]
			vec = append(vec, npkRatio(n, p, k), soilFertility(n, p, k))
		}
		if deriveWeather {
			temp := vec[mustIndex(merged.Columns, tabular.ColTemp)]
			rain := vec[mustIndex(merged.Columns, tabular.ColRainfall)]
			vec = append(vec, tempRainfall(temp, rain))
		}
		frame.Data[i] = vec
	}

	if err := frame.Validate(); err != nil {
		return nil, nil, err
	}
	return frame, encoders, nil
}

// dropNA returns the rows with no missing cells, plus per-column missing
// counts for diagnostics
func dropNA(t *tabular.Table) ([]tabular.Row, map[string]int) {
	missingByColumn := make(map[string]int)
	var kept []tabular.Row
	for _, row := range t.Rows {
		complete := true
		for _, col := range t.Columns {
			if row.Cell(col).Missing {
				missingByColumn[col]++
				complete = false
			}
		}
		if complete {
			kept = append(kept, row)
		}
	}
	return kept, missingByColumn
}

// detectNumericColumns marks a column numeric when every surviving cell
// parses as a number
func detectNumericColumns(columns []string, rows []tabular.Row) map[string]bool {
	numeric := make(map[string]bool, len(columns))
	for _, col := range columns {
		isNumeric := true
		for _, row := range rows {
			if _, ok := row.Cell(col).Float(); !ok {
				isNumeric = false
				break
			}
		}
		numeric[col] = isNumeric
	}
	return numeric
}

// topMissing names the n columns with the most missing cells
func topMissing(counts map[string]int, n int) string {
	type entry struct {
		col   string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for col, count := range counts {
		entries = append(entries, entry{col, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].col < entries[j].col
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s (%d rows)", e.col, e.count)
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func mustIndex(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	panic("column not found: " + name)
}
