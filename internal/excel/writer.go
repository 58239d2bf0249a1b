// Package excel renders merged quote rows into the downloadable
// spreadsheet: fixed column schema, filterable table, no reordering.
package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/quotedeck/quotedeck/internal/batch"
)

const sheetName = "Quotes"

const headerFillColor = "CCFFCC"

// Columns is the export schema, in order.
var Columns = []string{"Interview File Name", "Timestamp", "Topic", "Quote"}

// Write renders the rows to w as an .xlsx workbook. Rows are written in
// the order given; grouping and sorting are the aggregator's job. The
// sheet hides gridlines, bolds and tints the header, auto-fits column
// widths, and wraps the data in an Excel table so every column gets a
// filter widget.
func Write(rows []batch.MergedRow, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	if err := f.SetSheetRow(sheetName, "A1", &[]any{Columns[0], Columns[1], Columns[2], Columns[3]}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []any{row.FileName, row.Timestamp, string(row.Topic), row.Quote}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "D1", headerStyle); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	showGridLines := false
	if err := f.SetSheetView(sheetName, 0, &excelize.ViewOptions{ShowGridLines: &showGridLines}); err != nil {
		return fmt.Errorf("sheet view: %w", err)
	}

	if err := autoFitColumns(f, rows); err != nil {
		return err
	}

	if len(rows) > 0 {
		stripes := false
		if err := f.AddTable(sheetName, &excelize.Table{
			Range:             fmt.Sprintf("A1:D%d", len(rows)+1),
			Name:              "InterviewTable",
			StyleName:         "TableStyleMedium2",
			ShowRowStripes:    &stripes,
			ShowColumnStripes: false,
		}); err != nil {
			return fmt.Errorf("add table: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func autoFitColumns(f *excelize.File, rows []batch.MergedRow) error {
	widths := make([]int, len(Columns))
	for i, h := range Columns {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, v := range []string{row.FileName, row.Timestamp, string(row.Topic), row.Quote} {
			if len(v) > widths[i] {
				widths[i] = len(v)
			}
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, float64(w+2)); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	return nil
}
