package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeCSV(t, "state,year,yield\nPunjab,2019,4200\nKerala,2019,2800\n")

	table, err := PathReader{}.ReadTable(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"state", "year", "yield"}, table.Columns)
	require.Equal(t, 2, table.RowCount())
	assert.Equal(t, "Punjab", table.Rows[0].Cell("state").Raw)
	assert.Equal(t, "2800", table.Rows[1].Cell("yield").Raw)
}

func TestReadCSVBlankFieldsBecomeMissing(t *testing.T) {
	path := writeCSV(t, "state,N\nPunjab,220\nKerala,\n")

	table, err := PathReader{}.ReadTable(path)
	require.NoError(t, err)
	assert.False(t, table.Rows[0].Cell("N").Missing)
	assert.True(t, table.Rows[1].Cell("N").Missing)
}

func TestReadCSVShortRowsPadWithMissing(t *testing.T) {
	path := writeCSV(t, "state,N,pH\nPunjab,220\n")

	table, err := PathReader{}.ReadTable(path)
	require.NoError(t, err)
	assert.True(t, table.Rows[0].Cell("pH").Missing)
}

func TestReadCSVTrimsWhitespace(t *testing.T) {
	path := writeCSV(t, " state , N \n Punjab , 220 \n")

	table, err := PathReader{}.ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"state", "N"}, table.Columns)
	assert.Equal(t, "Punjab", table.Rows[0].Cell("state").Raw)
}

func TestReadMissingFile(t *testing.T) {
	_, err := PathReader{}.ReadTable(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReadHeaderOnlyFile(t *testing.T) {
	path := writeCSV(t, "state,year\n")
	_, err := PathReader{}.ReadTable(path)
	assert.Error(t, err)
}
