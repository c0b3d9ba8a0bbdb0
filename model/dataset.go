package model

// Dataset is an ordered set of uniquely named columns plus row-major
// records. The zero value is the empty dataset (zero rows, zero
// columns), which is a valid "no tables detected" result rather than
// an error.
type Dataset struct {
	Columns []string
	Records []Row
}

// NewDataset creates a dataset with the given schema and no records.
func NewDataset(columns []string) Dataset {
	return Dataset{Columns: columns}
}

// RowCount returns the number of data records.
func (d Dataset) RowCount() int {
	return len(d.Records)
}

// ColCount returns the number of columns in the schema.
func (d Dataset) ColCount() int {
	return len(d.Columns)
}

// IsEmpty reports whether the dataset has no columns and no records.
func (d Dataset) IsEmpty() bool {
	return len(d.Columns) == 0 && len(d.Records) == 0
}

// ColumnIndex returns the index of the named column, or -1 when the
// schema does not contain it.
func (d Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the cells of column i across all records. Records
// shorter than the schema contribute absent cells.
func (d Dataset) Column(i int) []Cell {
	cells := make([]Cell, len(d.Records))
	for r, rec := range d.Records {
		cells[r] = rec.At(i)
	}
	return cells
}

// Value returns the cell at record row, column col.
func (d Dataset) Value(row, col int) Cell {
	if row < 0 || row >= len(d.Records) {
		return Cell{}
	}
	return d.Records[row].At(col)
}
