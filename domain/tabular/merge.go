package tabular

import (
	"fmt"
	"strings"

	"agriyield/domain/core"
)

// Column names shared by the source tables
const (
	ColState    = "state"
	ColYear     = "year"
	ColTemp     = "avg_temp_c"
	ColRainfall = "total_rainfall_mm"
	ColHumidity = "avg_humidity_percent"
)

// Merge joins the three source tables into one training table.
//
// The crop table drives the join: every crop row appears exactly once in the
// output, in its original order. Soil attributes are left-joined on state.
// Weather attributes are left-joined on (state, year) when the crop table
// carries a year column, otherwise on state against per-state historical
// averages. Unmatched joins produce missing cells, not dropped rows.
func Merge(crop, soil, weather *Table) (*Table, error) {
	if crop == nil || crop.RowCount() == 0 {
		return nil, core.NewDataError("merge", "crop table is empty")
	}
	if !crop.HasColumn(ColState) {
		return nil, core.NewDataError("merge", "crop table has no state column")
	}
	if !soil.HasColumn(ColState) {
		return nil, core.NewDataError("merge", "soil table has no state column")
	}
	if !weather.HasColumn(ColState) {
		return nil, core.NewDataError("merge", "weather table has no state column")
	}

	soilIndex := indexByState(soil)

	joinOnYear := crop.HasColumn(ColYear) && weather.HasColumn(ColYear)
	var weatherTable *Table
	var weatherIndex map[string]Row
	if joinOnYear {
		weatherTable = weather
		weatherIndex = indexByStateYear(weather)
	} else {
		weatherTable = averageWeatherByState(weather)
		weatherIndex = indexByState(weatherTable)
	}

	merged := NewTable(mergedColumns(crop, soil, weatherTable, joinOnYear))
	for _, cropRow := range crop.Rows {
		row := cropRow.Clone()

		state := normalizeKey(cropRow.Cell(ColState))
		attachColumns(row, soilIndex[state], soil.Columns, []string{ColState})

		var weatherRow Row
		if joinOnYear {
			weatherRow = weatherIndex[state+"\x1f"+normalizeKey(cropRow.Cell(ColYear))]
		} else {
			weatherRow = weatherIndex[state]
		}
		attachColumns(row, weatherRow, weatherTable.Columns, []string{ColState, ColYear})

		merged.Append(row)
	}

	return merged, nil
}

// mergedColumns builds the output column order: crop columns first, then
// soil, then weather, with join keys appearing once.
func mergedColumns(crop, soil, weather *Table, joinOnYear bool) []string {
	seen := make(map[string]bool, len(crop.Columns))
	var columns []string
	for _, c := range crop.Columns {
		seen[c] = true
		columns = append(columns, c)
	}
	for _, c := range soil.Columns {
		if c == ColState || seen[c] {
			continue
		}
		seen[c] = true
		columns = append(columns, c)
	}
	for _, c := range weather.Columns {
		if c == ColState || c == ColYear || seen[c] {
			continue
		}
		seen[c] = true
		columns = append(columns, c)
	}
	return columns
}

// attachColumns copies non-key columns of src into dst, writing missing
// cells when src is nil (unmatched join)
func attachColumns(dst Row, src Row, columns []string, keys []string) {
	for _, col := range columns {
		if containsColumn(keys, col) {
			continue
		}
		if _, taken := dst[col]; taken {
			continue
		}
		if src == nil {
			dst[col] = MissingCell()
			continue
		}
		dst[col] = src.Cell(col)
	}
}

// averageWeatherByState collapses the multi-year weather table to one row
// per state, averaging the numeric weather columns across all years.
func averageWeatherByState(weather *Table) *Table {
	type accumulator struct {
		sums   map[string]float64
		counts map[string]int
	}

	order := make([]string, 0)
	accs := make(map[string]*accumulator)
	metrics := []string{ColTemp, ColRainfall, ColHumidity}

	for _, row := range weather.Rows {
		state := normalizeKey(row.Cell(ColState))
		if state == "" {
			continue
		}
		acc, ok := accs[state]
		if !ok {
			acc = &accumulator{sums: make(map[string]float64), counts: make(map[string]int)}
			accs[state] = acc
			order = append(order, state)
		}
		for _, m := range metrics {
			if v, ok := row.Cell(m).Float(); ok {
				acc.sums[m] += v
				acc.counts[m]++
			}
		}
	}

	out := NewTable(append([]string{ColState}, metrics...))
	for _, state := range order {
		acc := accs[state]
		row := Row{ColState: NewCell(state)}
		for _, m := range metrics {
			if n := acc.counts[m]; n > 0 {
				row[m] = NewCell(fmt.Sprintf("%g", acc.sums[m]/float64(n)))
			} else {
				row[m] = MissingCell()
			}
		}
		out.Append(row)
	}
	return out
}

func indexByState(t *Table) map[string]Row {
	index := make(map[string]Row, t.RowCount())
	for _, row := range t.Rows {
		key := normalizeKey(row.Cell(ColState))
		if key == "" {
			continue
		}
		// First occurrence wins so repeated state rows cannot reorder output
		if _, ok := index[key]; !ok {
			index[key] = row
		}
	}
	return index
}

func indexByStateYear(t *Table) map[string]Row {
	index := make(map[string]Row, t.RowCount())
	for _, row := range t.Rows {
		state := normalizeKey(row.Cell(ColState))
		year := normalizeKey(row.Cell(ColYear))
		if state == "" || year == "" {
			continue
		}
		key := state + "\x1f" + year
		if _, ok := index[key]; !ok {
			index[key] = row
		}
	}
	return index
}

func normalizeKey(c Cell) string {
	if c.Missing {
		return ""
	}
	return strings.TrimSpace(c.Raw)
}

func containsColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
