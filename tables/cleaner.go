package tables

import (
	"github.com/mdYoungDOer/pdf-processor/model"
)

// TableCleaner applies detected structure to a raw grid, producing a
// rectangular table free of decorative rows and artifact columns.
// When detection is inconclusive it falls through a cascade of simpler
// heuristics, and as a last resort returns the grid unchanged: cleaning
// must never silently throw away all data.
type TableCleaner struct {
	// Detector infers the header row and retained columns.
	Detector *StructureDetector

	// SecondaryFillRate is the minimum per-column fill rate used by the
	// fallback heuristic when the detector reports no column filter.
	SecondaryFillRate float64

	// MaxFallbackColumns caps the schema width when even the secondary
	// heuristic finds nothing and any column with data is kept. Without
	// the cap, pathological wide grids produce unbounded schemas.
	MaxFallbackColumns int
}

// NewTableCleaner creates a cleaner with a default detector and the
// tuned fallback thresholds.
func NewTableCleaner() *TableCleaner {
	return &TableCleaner{
		Detector:           NewStructureDetector(),
		SecondaryFillRate:  0.20,
		MaxFallbackColumns: 20,
	}
}

// Clean slices the grid from the detected header row onward and
// projects every row onto the retained columns, substituting an absent
// cell for any index past a row's actual length. The input grid is not
// modified.
func (tc *TableCleaner) Clean(g *model.Grid) *model.Grid {
	if g.RowCount() == 0 {
		return g
	}

	st := tc.Detector.Detect(g)

	sliced := g.Rows[st.HeaderIndex:]
	if len(sliced) == 0 {
		return g
	}

	keep := st.Columns
	if len(keep) == 0 {
		keep = tc.fallbackColumns(sliced)
	}
	if len(keep) == 0 {
		// Last resort: hand back the sliced grid unfiltered.
		return &model.Grid{Rows: sliced, Page: g.Page}
	}

	rows := make([]model.Row, len(sliced))
	for ri, row := range sliced {
		nr := make(model.Row, len(keep))
		for i, ci := range keep {
			nr[i] = row.At(ci)
		}
		rows[ri] = nr
	}
	return &model.Grid{Rows: rows, Page: g.Page}
}

// fallbackColumns selects columns by raw fill rate over the sliced
// rows, and failing that keeps every column with at least one non-empty
// cell, capped at the MaxFallbackColumns highest-usage columns.
func (tc *TableCleaner) fallbackColumns(rows []model.Row) []int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return nil
	}

	usage := columnUsage(rows, width)

	threshold := float64(len(rows)) * tc.SecondaryFillRate
	if threshold < 1 {
		threshold = 1
	}
	var keep []int
	for i, u := range usage {
		if float64(u) >= threshold {
			keep = append(keep, i)
		}
	}
	if len(keep) > 0 {
		return keep
	}

	for i, u := range usage {
		if u > 0 {
			keep = append(keep, i)
		}
	}
	if len(keep) > tc.MaxFallbackColumns {
		ranked := topColumnsByUsage(usage, tc.MaxFallbackColumns)
		keepSet := make(map[int]bool, len(keep))
		for _, i := range keep {
			keepSet[i] = true
		}
		keep = keep[:0]
		for _, i := range ranked {
			if keepSet[i] {
				keep = append(keep, i)
			}
		}
	}
	return keep
}
