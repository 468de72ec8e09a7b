package tabular

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"catview/domain/catalog"
)

func exportTable() *catalog.Table {
	return &catalog.Table{
		Headers: []string{"Module", "Segment", "Product"},
		Rows: []catalog.Row{
			{"Module": "Tools", "Segment": "A", "Product": "Hammer"},
			{"Module": "Tools", "Segment": "B", "Product": "Drill"},
			{"Module": "Garden", "Segment": "C", "Product": "Hose"},
		},
	}
}

func TestWriteCSVHeaderPlusOneLinePerRow(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, exportTable()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Module,Segment,Product", lines[0])
	assert.Equal(t, "Tools,A,Hammer", lines[1])
	assert.Equal(t, "Garden,C,Hose", lines[3])
}

func TestWriteCSVKeepsValuesVerbatim(t *testing.T) {
	table := &catalog.Table{
		Headers: []string{"Product", "Definition"},
		Rows: []catalog.Row{
			{"Product": " Hammer ", "Definition": "hits, things"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	assert.Contains(t, buf.String(), `" Hammer ","hits, things"`)
}

func TestWriteCSVEmptyResultSetIsHeaderOnly(t *testing.T) {
	table := &catalog.Table{Headers: []string{"Module", "Segment"}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	assert.Equal(t, "Module,Segment\n", buf.String())
}

func TestWriteXLSXRoundTripsRowsAndColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, exportTable()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ExportSheetName}, f.GetSheetList())

	rows, err := f.GetRows(ExportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Module", "Segment", "Product"}, rows[0])
	assert.Equal(t, []string{"Tools", "A", "Hammer"}, rows[1])
	assert.Equal(t, []string{"Garden", "C", "Hose"}, rows[3])
}
