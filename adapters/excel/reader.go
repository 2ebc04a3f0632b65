package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"agriyield/domain/tabular"
	"agriyield/ports"
)

// DataReader loads one tabular source file (CSV or Excel) into a
// column-ordered table. Blank fields become missing cells so the drop-NA
// policy sees them.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	if ext == ".xlsx" || ext == ".xls" {
		fileType = "xlsx"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadTable reads the file into a table
func (r *DataReader) ReadTable() (*tabular.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// readCSV reads a CSV file into a table
func (r *DataReader) readCSV() (*tabular.Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV file must have at least a header row and one data row")
	}

	return r.processRows(rows)
}

// readExcel reads Sheet1 of an Excel file into a table
func (r *DataReader) readExcel() (*tabular.Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("Excel file must have at least a header row and one data row")
	}

	return r.processRows(rows)
}

// processRows converts raw string rows into a table, preserving header
// order and row order
func (r *DataReader) processRows(rows [][]string) (*tabular.Table, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	table := tabular.NewTable(headers)
	for i := 1; i < len(rows); i++ {
		row := make(tabular.Row, len(headers))
		for j, header := range headers {
			var cell string
			if j < len(rows[i]) {
				cell = strings.TrimSpace(rows[i][j])
			}
			if cell == "" {
				row[header] = tabular.MissingCell()
			} else {
				row[header] = tabular.NewCell(cell)
			}
		}
		table.Append(row)
	}

	log.Printf("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(table.Columns), table.RowCount())

	return table, nil
}

// PathReader adapts DataReader construction to the table reader port
type PathReader struct{}

var _ ports.TableReaderPort = PathReader{}

// ReadTable reads the table at path, picking the CSV or Excel codec from
// the file extension
func (PathReader) ReadTable(path string) (*tabular.Table, error) {
	return NewDataReader(path).ReadTable()
}
