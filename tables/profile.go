package tables

import (
	"github.com/mdYoungDOer/pdf-processor/model"
)

// RowProfile summarizes the occupancy of a single grid row.
type RowProfile struct {
	// Index is the row's position within its grid.
	Index int

	// NonEmpty is the count of cells that are present and non-blank
	// after trimming.
	NonEmpty int

	// Indices holds the column indices of the non-empty cells, in order.
	Indices []int

	// Width is the row's total cell count.
	Width int
}

// ProfileRow computes the occupancy profile for one row.
func ProfileRow(index int, row model.Row) RowProfile {
	p := RowProfile{Index: index, Width: len(row)}
	for i, cell := range row {
		if !cell.Empty() {
			p.NonEmpty++
			p.Indices = append(p.Indices, i)
		}
	}
	return p
}

// ProfileGrid profiles every row of a grid.
func ProfileGrid(g *model.Grid) []RowProfile {
	if g == nil {
		return nil
	}
	profiles := make([]RowProfile, len(g.Rows))
	for i, row := range g.Rows {
		profiles[i] = ProfileRow(i, row)
	}
	return profiles
}
