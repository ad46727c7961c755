package ingest

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"siprev/internal"
)

// Column layout of the canonical series file, the sole contract between
// unification and forecasting.
var canonicalHeader = []string{"Date", "Product", "Quantity"}

const canonicalDateLayout = "2006-01-02"

func WriteCanonicalCSV(records []internal.SalesRecord, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(canonicalHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Date.Format(canonicalDateLayout),
			r.Product,
			strconv.FormatFloat(r.Quantity, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ExportXLSX writes the unified table as a workbook for spreadsheet review.
func ExportXLSX(records []internal.SalesRecord, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range canonicalHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for i, r := range records {
		row := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, value)
		}
		set(1, r.Date.Format(canonicalDateLayout))
		set(2, r.Product)
		set(3, r.Quantity)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
