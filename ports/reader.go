package ports

import (
	"agriyield/domain/tabular"
)

// TableReaderPort loads one tabular source (CSV or spreadsheet) into a
// column-ordered table
type TableReaderPort interface {
	ReadTable(path string) (*tabular.Table, error)
}
