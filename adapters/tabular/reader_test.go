package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"catview/domain/core"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeTempXLSX(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cells := make([]interface{}, len(row))
			for j, v := range row {
				cells[j] = v
			}
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &cells))
		}
	}

	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadCSVBuildsTable(t *testing.T) {
	path := writeTempCSV(t, "Module,Subcategory,Segment\nTools,Hand,A\nTools,Power,B\n")

	table, err := NewDataReader(path).ReadData()
	require.NoError(t, err)

	assert.Equal(t, []string{"Module", "Subcategory", "Segment"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Hand", table.Rows[0]["Subcategory"])
	assert.Equal(t, "B", table.Rows[1]["Segment"])
}

func TestReadCSVTrimsHeadersButNotValues(t *testing.T) {
	path := writeTempCSV(t, " Module ,Segment\n Tools ,A\n")

	table, err := NewDataReader(path).ReadData()
	require.NoError(t, err)

	assert.Equal(t, []string{"Module", "Segment"}, table.Headers)
	// Values stay verbatim; normalization happens at filter time.
	assert.Equal(t, " Tools ", table.Rows[0]["Module"])
}

func TestReadCSVRejectsHeaderOnlyFile(t *testing.T) {
	path := writeTempCSV(t, "Module,Segment\n")

	_, err := NewDataReader(path).ReadData()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrEmptyTable)
}

func TestReadMissingFileFails(t *testing.T) {
	_, err := NewDataReader("/nonexistent/data.csv").ReadData()
	assert.Error(t, err)
}

func TestReadXLSXFirstSheetByDefault(t *testing.T) {
	path := writeTempXLSX(t, map[string][][]string{
		"Products": {
			{"Module", "Subcategory", "Segment"},
			{"Tools", "Hand", "A"},
		},
	})

	table, err := NewDataReader(path).ReadData()
	require.NoError(t, err)

	assert.Equal(t, []string{"Module", "Subcategory", "Segment"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Tools", table.Rows[0]["Module"])
}

func TestReadXLSXNamedSheet(t *testing.T) {
	path := writeTempXLSX(t, map[string][][]string{
		"Products": {
			{"Module", "Segment"},
			{"Tools", "A"},
		},
	})

	reader := NewDataReader(path)

	sheets, err := reader.SheetNames()
	require.NoError(t, err)
	assert.Contains(t, sheets, "Products")

	table, err := reader.ReadSheet("Products")
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
}

func TestReadXLSXUnknownSheetFails(t *testing.T) {
	path := writeTempXLSX(t, map[string][][]string{
		"Products": {
			{"Module"},
			{"Tools"},
		},
	})

	_, err := NewDataReader(path).ReadSheet("Nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrSheetNotFound)
}

func TestCSVSheetNamesAreSynthetic(t *testing.T) {
	path := writeTempCSV(t, "Module\nTools\n")

	sheets, err := NewDataReader(path).SheetNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1"}, sheets)
}

func TestLegacyXLSRejectedWithClearError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xls")
	require.NoError(t, os.WriteFile(path, []byte("legacy biff payload"), 0o644))

	reader := NewDataReader(path)

	_, err := reader.SheetNames()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), ".xlsx")

	_, err = reader.ReadData()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
}

func TestDuplicateHeadersGetSuffixes(t *testing.T) {
	path := writeTempCSV(t, "Name,Name,Name,Value\nA,B,C,1\n")

	table, err := NewDataReader(path).ReadData()
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Name.1", "Name.2", "Value"}, table.Headers)
	assert.Equal(t, "A", table.Rows[0]["Name"])
	assert.Equal(t, "B", table.Rows[0]["Name.1"])
	assert.Equal(t, "C", table.Rows[0]["Name.2"])
	assert.Equal(t, "1", table.Rows[0]["Value"])
}

func TestDuplicateHeadersSkipTakenSuffixes(t *testing.T) {
	// An existing X.1 column must not be overwritten by the dedup suffix.
	path := writeTempCSV(t, "X,X.1,X\nA,B,C\n")

	table, err := NewDataReader(path).ReadData()
	require.NoError(t, err)

	assert.Equal(t, []string{"X", "X.1", "X.2"}, table.Headers)
	assert.Equal(t, "C", table.Rows[0]["X.2"])
}

func TestReadCSVToleratesRaggedRows(t *testing.T) {
	path := writeTempCSV(t, "Module,Segment\nTools,A,Extra\nGarden\n")

	table, err := NewDataReader(path).ReadData()
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "A", table.Rows[0]["Segment"])
	assert.Equal(t, "Garden", table.Rows[1]["Module"])
	assert.Equal(t, "", table.Rows[1]["Segment"])
}
