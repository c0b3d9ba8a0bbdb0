package model

import "strings"

// Cell is a single value in a raw grid. Valid reports whether the
// extraction engine produced a value for this position at all; an
// absent cell is distinct from a present-but-blank one, though both
// count as empty for occupancy statistics.
type Cell struct {
	Text  string
	Valid bool
}

// NewCell returns a valid cell holding the given text.
func NewCell(text string) Cell {
	return Cell{Text: text, Valid: true}
}

// Null reports whether the cell is absent (the engine produced no value).
func (c Cell) Null() bool {
	return !c.Valid
}

// Empty reports whether the cell is absent or blank after trimming
// surrounding whitespace.
func (c Cell) Empty() bool {
	return !c.Valid || strings.TrimSpace(c.Text) == ""
}

// String returns the cell's text trimmed of surrounding whitespace,
// or "" for an absent cell.
func (c Cell) String() string {
	if !c.Valid {
		return ""
	}
	return strings.TrimSpace(c.Text)
}

// Row is an ordered sequence of cells. Rows within one grid may have
// differing lengths.
type Row []Cell

// At returns the cell at index i, or an absent cell when i is past the
// row's length.
func (r Row) At(i int) Cell {
	if i < 0 || i >= len(r) {
		return Cell{}
	}
	return r[i]
}

// Empty reports whether every cell in the row is empty.
func (r Row) Empty() bool {
	for _, c := range r {
		if !c.Empty() {
			return false
		}
	}
	return true
}

// Grid is the raw rows-by-cells output of table detection for a single
// detected table.
type Grid struct {
	Rows []Row

	// Page is the 1-based page the table was detected on, 0 if unknown.
	Page int
}

// NewGrid creates a grid from pre-built rows.
func NewGrid(rows []Row) *Grid {
	return &Grid{Rows: rows}
}

// GridFromStrings builds a grid where every value is a valid cell.
// It is a convenience for engines that always produce text, and for tests.
func GridFromStrings(rows [][]string) *Grid {
	g := &Grid{Rows: make([]Row, len(rows))}
	for i, row := range rows {
		r := make(Row, len(row))
		for j, s := range row {
			r[j] = NewCell(s)
		}
		g.Rows[i] = r
	}
	return g
}

// RowCount returns the number of rows in the grid.
func (g *Grid) RowCount() int {
	if g == nil {
		return 0
	}
	return len(g.Rows)
}

// Width returns the maximum row length across the grid.
func (g *Grid) Width() int {
	if g == nil {
		return 0
	}
	w := 0
	for _, row := range g.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// At returns the cell at the given row and column, or an absent cell
// when either index is out of range.
func (g *Grid) At(row, col int) Cell {
	if g == nil || row < 0 || row >= len(g.Rows) {
		return Cell{}
	}
	return g.Rows[row].At(col)
}
