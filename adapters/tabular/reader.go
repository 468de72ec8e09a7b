package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"catview/domain/catalog"
	"catview/domain/core"
	"catview/internal"
)

var logger = internal.DefaultLogger.Named("tabular")

// DataReader handles reading Excel and CSV files into a catalog table
type DataReader struct {
	filePath string
	fileType string // "xlsx", "xls", or "csv"
}

// errLegacyWorkbook is returned for .xls files: excelize reads OOXML
// workbooks only, and the legacy BIFF format has no decoder here.
var errLegacyWorkbook = fmt.Errorf("%w: legacy .xls workbooks are not supported, save the file as .xlsx", core.ErrUnsupportedFormat)

// NewDataReader creates a new data reader for the given file path. The
// format is decided by extension: .csv is CSV, .xls is recognized but
// rejected at read time, everything else is treated as an xlsx workbook.
func NewDataReader(filePath string) *DataReader {
	fileType := "xlsx"
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csv":
		fileType = "csv"
	case ".xls":
		fileType = "xls"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// SheetNames returns the workbook's sheet names. CSV files report a single
// synthetic sheet so callers can treat both formats uniformly.
func (r *DataReader) SheetNames() ([]string, error) {
	switch r.fileType {
	case "csv":
		return []string{"Sheet1"}, nil
	case "xls":
		return nil, errLegacyWorkbook
	}

	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// ReadSheet reads the named sheet into a table. An empty sheet name selects
// the first sheet.
func (r *DataReader) ReadSheet(sheet string) (*catalog.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel(sheet)
	case "xls":
		return nil, errLegacyWorkbook
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, r.fileType)
	}
}

// ReadData reads the first sheet
func (r *DataReader) ReadData() (*catalog.Table, error) {
	return r.ReadSheet("")
}

func (r *DataReader) readExcel(sheet string) (*catalog.Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if !containsString(sheets, sheet) {
		return nil, fmt.Errorf("%w: %s", core.ErrSheetNotFound, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	logger.Debug("read sheet %s (%d raw rows)", sheet, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: sheet %s needs a header row and at least one data row", core.ErrEmptyTable, sheet)
	}

	return r.buildTable(rows)
}

func (r *DataReader) readCSV() (*catalog.Table, error) {
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
	logger.Debug("read CSV file (%d raw rows)", len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: CSV needs a header row and at least one data row", core.ErrEmptyTable)
	}

	return r.buildTable(rows)
}

// buildTable converts raw string rows into a catalog table. Headers are
// trimmed; duplicate headers get numeric suffixes (X, X.1, ...) so no
// column's values collapse into another; cell values are kept verbatim so
// exports stay byte-for-byte.
func (r *DataReader) buildTable(rows [][]string) (*catalog.Table, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	used := make(map[string]bool, len(headerRow))
	for i, header := range headerRow {
		name := strings.TrimSpace(header)
		if used[name] {
			base := name
			for n := 1; ; n++ {
				name = fmt.Sprintf("%s.%d", base, n)
				if !used[name] {
					break
				}
			}
		}
		used[name] = true
		headers[i] = name
	}

	dataRows := make([]catalog.Row, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowData := make(catalog.Row, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = cell
			}
		}
		dataRows = append(dataRows, rowData)
	}

	logger.Info("%s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &catalog.Table{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
