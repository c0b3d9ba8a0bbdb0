package tables

import (
	"sort"

	"github.com/mdYoungDOer/pdf-processor/model"
)

// Structure describes the inferred layout of a raw grid.
type Structure struct {
	// HeaderIndex is the row index of the detected header row.
	HeaderIndex int

	// Columns holds the sorted column indices that carry real data.
	// A nil or empty slice means no column filter could be inferred and
	// callers must keep all columns unchanged.
	Columns []int
}

// StructureDetector locates the header row and the set of data-bearing
// columns in a raw grid, using per-row occupancy statistics.
type StructureDetector struct {
	// MinRowCells is the minimum non-empty cell count for a row to take
	// part in the column-count vote.
	MinRowCells int

	// HeaderTolerance is the fraction of the dominant column count a
	// row must reach to be accepted as the header during the top-down
	// scan. Extraction engines often prepend empty or decorative rows
	// before the true header, so the scan is deliberately relaxed.
	HeaderTolerance float64

	// ColumnUsageRate is the minimum fill rate over the data rows for a
	// column to be retained.
	ColumnUsageRate float64

	// MinRetainedColumns triggers the under-retention guard: when fewer
	// columns than this survive on a grid wider than this, the top
	// max(MinRetainedColumns, width/2) columns by usage are kept instead.
	MinRetainedColumns int
}

// NewStructureDetector creates a detector with the tuned defaults.
func NewStructureDetector() *StructureDetector {
	return &StructureDetector{
		MinRowCells:        2,
		HeaderTolerance:    0.5,
		ColumnUsageRate:    0.15,
		MinRetainedColumns: 3,
	}
}

// Detect infers the header row and retained columns for a grid.
// Grids with fewer than two rows are returned with header index 0 and
// no column filter.
func (sd *StructureDetector) Detect(g *model.Grid) Structure {
	if g.RowCount() < 2 {
		return Structure{}
	}

	profiles := ProfileGrid(g)

	// Vote on the dominant non-empty cell count. Ties prefer the larger
	// count: denser structures are likelier to be genuine tabular rows
	// than sparse ones sharing a frequency.
	freq := make(map[int]int)
	for _, p := range profiles {
		if p.NonEmpty >= sd.MinRowCells {
			freq[p.NonEmpty]++
		}
	}
	if len(freq) == 0 {
		// No row carries enough cells to signal any structure.
		return Structure{}
	}
	target := 0
	for count, n := range freq {
		if n > freq[target] || (n == freq[target] && count > target) {
			target = count
		}
	}

	// Relaxed top-down scan for the first row dense enough to be the header.
	headerIdx := 0
	need := float64(target) * sd.HeaderTolerance
	if min := float64(sd.MinRowCells); need < min {
		need = min
	}
	for _, p := range profiles {
		if float64(p.NonEmpty) >= need {
			headerIdx = p.Index
			break
		}
	}

	dataRows := g.Rows[headerIdx+1:]
	if len(dataRows) == 0 {
		return Structure{HeaderIndex: headerIdx}
	}

	usage := columnUsage(dataRows, g.Width())

	threshold := float64(len(dataRows)) * sd.ColumnUsageRate
	if threshold < 1 {
		threshold = 1
	}
	var keep []int
	for i, u := range usage {
		if float64(u) >= threshold {
			keep = append(keep, i)
		}
	}

	// Protect named columns that are only sparsely populated: a header
	// cell with content earns its column back, provided the column has
	// at least some data.
	header := g.Rows[headerIdx]
	keep = addHeaderColumns(keep, header, usage, true)

	// Under-retention guard: on data that is merely sparse rather than
	// structurally simple, falling below MinRetainedColumns means the
	// thresholds collapsed a real table. Rank by usage instead.
	if len(keep) < sd.MinRetainedColumns && g.Width() > sd.MinRetainedColumns {
		n := sd.MinRetainedColumns
		if half := g.Width() / 2; half > n {
			n = half
		}
		keep = topColumnsByUsage(usage, n)
		keep = addHeaderColumns(keep, header, usage, false)
	}

	sort.Ints(keep)
	keep = dedupSorted(keep)

	return Structure{HeaderIndex: headerIdx, Columns: keep}
}

// columnUsage counts non-empty cells per column position across rows.
func columnUsage(rows []model.Row, width int) []int {
	usage := make([]int, width)
	for _, row := range rows {
		for i, cell := range row {
			if i < width && !cell.Empty() {
				usage[i]++
			}
		}
	}
	return usage
}

// addHeaderColumns appends columns whose header cell has content.
// When requireUsage is set, a column must also have nonzero usage in
// the data rows to be added back.
func addHeaderColumns(keep []int, header model.Row, usage []int, requireUsage bool) []int {
	have := make(map[int]bool, len(keep))
	for _, i := range keep {
		have[i] = true
	}
	for i, cell := range header {
		if cell.Empty() || have[i] {
			continue
		}
		if requireUsage && (i >= len(usage) || usage[i] == 0) {
			continue
		}
		keep = append(keep, i)
		have[i] = true
	}
	return keep
}

// topColumnsByUsage returns the indices of the n highest-usage columns.
// Usage ties fall to the higher index, matching the descending
// (usage, index) ordering.
func topColumnsByUsage(usage []int, n int) []int {
	idx := make([]int, len(usage))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		if usage[idx[a]] != usage[idx[b]] {
			return usage[idx[a]] > usage[idx[b]]
		}
		return idx[a] > idx[b]
	})
	if n > len(idx) {
		n = len(idx)
	}
	return append([]int(nil), idx[:n]...)
}

// dedupSorted removes adjacent duplicates from a sorted slice.
func dedupSorted(s []int) []int {
	if len(s) < 2 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
