package tabular

import (
	"strconv"
	"strings"
)

// Cell is a single table value. Missing cells come from unmatched joins or
// blank source fields and are distinct from empty strings.
type Cell struct {
	Raw     string
	Missing bool
}

// NewCell creates a present cell from a raw string value
func NewCell(raw string) Cell {
	return Cell{Raw: raw}
}

// MissingCell creates a missing-value cell
func MissingCell() Cell {
	return Cell{Missing: true}
}

// Float parses the cell as a number. Returns false for missing or
// non-numeric cells.
func (c Cell) Float() (float64, bool) {
	if c.Missing {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(c.Raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Row maps column name to cell. Columns absent from the map are missing.
type Row map[string]Cell

// Cell returns the cell for a column, treating absent columns as missing
func (r Row) Cell(column string) Cell {
	if c, ok := r[column]; ok {
		return c
	}
	return MissingCell()
}

// Clone returns an independent copy of the row
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered collection of rows with a fixed column order.
// Column order is load order and is preserved through merging so that
// downstream feature ordering is deterministic.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given column order
func NewTable(columns []string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Append adds a row to the table
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// HasColumn reports whether the table declares a column
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}
