package tabular

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"catview/domain/catalog"
)

// ExportSheetName is the sheet exported workbooks are written to
const ExportSheetName = "Filtered"

// WriteCSV serializes the table as delimited text: one header row plus one
// row per record, UTF-8, cell values written verbatim.
func WriteCSV(w io.Writer, table *catalog.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(table.Headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	record := make([]string, len(table.Headers))
	for _, row := range table.Rows {
		for i, header := range table.Headers {
			record[i] = row[header]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write data row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteXLSX serializes the table as a single-sheet workbook with the same
// rows and columns as the CSV export.
func WriteXLSX(w io.Writer, table *catalog.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(ExportSheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headerCells := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(ExportSheetName, "A1", &headerCells); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for rowIdx, row := range table.Rows {
		cells := make([]interface{}, len(table.Headers))
		for i, header := range table.Headers {
			cells[i] = row[header]
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", rowIdx+2, err)
		}
		if err := f.SetSheetRow(ExportSheetName, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", rowIdx+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
