// Package export encodes merged datasets and formatted document text
// into the delivery formats: CSV, XLSX, SQLite for datasets; plain
// text and DOCX for text. Encoders write empty output, not errors, for
// empty inputs — "no tables found" is a successful result.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/mdYoungDOer/pdf-processor/model"
)

// WriteCSV encodes a dataset as RFC 4180 CSV with the schema as the
// header row. Absent cells become empty fields. An empty dataset
// writes no bytes.
func WriteCSV(w io.Writer, ds model.Dataset) error {
	if ds.IsEmpty() {
		return nil
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	fields := make([]string, len(ds.Columns))
	for _, rec := range ds.Records {
		for i := range fields {
			fields[i] = ""
			if c := rec.At(i); c.Valid {
				fields[i] = c.Text
			}
		}
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
