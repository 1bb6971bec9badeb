// =============================================================================
// Weighing Report - Spreadsheet Export
// =============================================================================
//
// SHEET LAYOUT:
//
//   | A  | B    | C     | D     | E     | F                                |
//   |----|------|-------|-------|-------|----------------------------------|
//   | No | Nama | Berat | Harga | Total | Waktu                            |
//   | 1  | Kopi | 2.5   | 20000 | 50000 | 01 Januari 2024 pukul 10.00 WIB  |
//
// "No" is the 1-based position in the given order. Berat, Harga and Total
// stay numeric cells so the sheet can be summed; Waktu is the display string.
//
// =============================================================================

package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"

	"github.com/ginjaninja78/weighing-report/internal/types"
)

// SheetColumns is the exact header row of the sheet.
var SheetColumns = []string{"No", "Nama", "Berat", "Harga", "Total", "Waktu"}

var sheetColumnWidths = []float64{6, 28, 10, 14, 16, 34}

// Spreadsheet renders the snapshot as a single-sheet workbook.
func Spreadsheet(snap types.Snapshot, opts Options) (doc *Document, err error) {
	if len(snap.Records) == 0 {
		return nil, ErrEmptyReport
	}
	opts = opts.withDefaults()

	f := excelize.NewFile()
	defer func() {
		multierr.AppendInto(&err, f.Close())
	}()

	// ==========================================================================
	// STEP 1: Sheet and header
	// ==========================================================================
	sheet := opts.SheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet %q: %w", sheet, err)
	}

	header := make([]any, len(SheetColumns))
	for i, c := range SheetColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "F1", bold); err != nil {
		return nil, fmt.Errorf("failed to style header row: %w", err)
	}

	for i, w := range sheetColumnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return nil, fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}

	// ==========================================================================
	// STEP 2: One row per record
	// ==========================================================================
	for i, r := range snap.Records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			i + 1,
			r.ProductName,
			r.Weight,
			r.UnitPrice,
			r.TotalValue,
			opts.Formatter.Timestamp(r.Timestamp),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	// ==========================================================================
	// STEP 3: Encode
	// ==========================================================================
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}

	return &Document{
		Name:        opts.SpreadsheetName,
		ContentType: ContentTypeXLSX,
		Bytes:       buf.Bytes(),
		Rows:        len(snap.Records),
	}, nil
}

// ReadSheet opens an encoded workbook and returns the raw rows of the named
// sheet, header included. An empty name reads the first sheet.
func ReadSheet(r io.Reader, sheet string) (rows [][]string, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		multierr.AppendInto(&err, f.Close())
	}()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, fmt.Errorf("sheet %q not found (have %v)", sheet, f.GetSheetList())
	}

	rows, err = f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// ReadDocument is ReadSheet over a rendered spreadsheet document.
func ReadDocument(doc *Document, sheet string) ([][]string, error) {
	return ReadSheet(bytes.NewReader(doc.Bytes), sheet)
}
