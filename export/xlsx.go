package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mdYoungDOer/pdf-processor/model"
)

// xlsxMaxColWidth caps the auto-sized column width in characters.
const xlsxMaxColWidth = 60

// WriteXLSX encodes a dataset as an XLSX workbook with a single sheet:
// the schema as row 1, records below, columns sized to their content.
// An empty dataset writes no bytes.
func WriteXLSX(w io.Writer, ds model.Dataset) error {
	if ds.IsEmpty() {
		return nil
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	widths := make([]int, len(ds.Columns))
	for i, h := range ds.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell %d: %w", i, err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("header cell %d: %w", i, err)
		}
		widths[i] = len(h)
	}

	for ri, rec := range ds.Records {
		for ci := range ds.Columns {
			c := rec.At(ci)
			if !c.Valid {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return fmt.Errorf("cell %d,%d: %w", ri, ci, err)
			}
			if err := f.SetCellValue(sheet, cell, c.Text); err != nil {
				return fmt.Errorf("cell %d,%d: %w", ri, ci, err)
			}
			if n := len(c.Text); n > widths[ci] {
				widths[ci] = n
			}
		}
	}

	for i, width := range widths {
		if width > xlsxMaxColWidth {
			width = xlsxMaxColWidth
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
		if err := f.SetColWidth(sheet, col, col, float64(width+2)); err != nil {
			return fmt.Errorf("column %d width: %w", i, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
