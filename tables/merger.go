package tables

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mdYoungDOer/pdf-processor/model"
)

// ErrNoTable is returned when a grid yields no usable dataset: it is
// empty, reduces to nothing after the all-empty drops, or carries no
// non-blank column name. Callers should skip the table, not abort.
var ErrNoTable = errors.New("no usable table data")

// TableMerger converts cleaned grids into named-column datasets and
// concatenates datasets across differing schemas into one result.
type TableMerger struct {
	// Cleaner prepares each raw grid before dataset construction.
	Cleaner *TableCleaner

	// MergedFillRate is the minimum non-null fill rate a column must
	// reach across the merged dataset to survive pruning.
	MergedFillRate float64

	// UnnamedFillRate is the minimum non-blank fill rate for columns
	// whose name is empty or the literal "None". Named, mostly-populated
	// accidental blank-named columns are kept; unnamed mostly-empty
	// ones are not.
	UnnamedFillRate float64
}

// NewTableMerger creates a merger with a default cleaner and the tuned
// pruning thresholds.
func NewTableMerger() *TableMerger {
	return &TableMerger{
		Cleaner:         NewTableCleaner(),
		MergedFillRate:  0.20,
		UnnamedFillRate: 0.30,
	}
}

// UniqueColumns derives column names from a header row. Absent or
// blank cells become the empty string; duplicate names after trimming
// are disambiguated with _1, _2, ... suffixes in order of appearance,
// the first occurrence keeping the bare name.
func UniqueColumns(header model.Row) []string {
	seen := make(map[string]int, len(header))
	names := make([]string, len(header))
	for i, cell := range header {
		name := cell.String()
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			names[i] = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			seen[name] = 0
			names[i] = name
		}
	}
	return names
}

// FromGrid cleans a raw grid and builds its dataset. If construction
// fails, a minimal recovery is attempted on the unmodified grid with
// only the all-empty drops applied; if that also fails the table is
// discarded with ErrNoTable wrapped in the returned error.
func (tm *TableMerger) FromGrid(g *model.Grid) (model.Dataset, error) {
	if g.RowCount() == 0 {
		return model.Dataset{}, ErrNoTable
	}

	cleaned := tm.Cleaner.Clean(g)
	if cleaned.RowCount() == 0 {
		// Cleaning must never throw away all data silently.
		cleaned = g
	}

	ds, err := tm.buildDataset(cleaned)
	if err == nil {
		return ds, nil
	}

	if g.RowCount() > 1 {
		if ds, rerr := tm.buildDataset(g); rerr == nil {
			return ds, nil
		}
	}
	return model.Dataset{}, fmt.Errorf("discarding table: %w", err)
}

// buildDataset makes the first grid row the header and the rest data
// records. Entirely-null rows and entirely-null columns are dropped.
// A grid reduced to only a header row still contributes a zero-row
// dataset, provided at least one column name is non-blank.
func (tm *TableMerger) buildDataset(g *model.Grid) (model.Dataset, error) {
	if g.RowCount() == 0 {
		return model.Dataset{}, ErrNoTable
	}

	columns := UniqueColumns(g.Rows[0])
	records := g.Rows[1:]

	if len(records) == 0 {
		var named []string
		for _, c := range columns {
			if strings.TrimSpace(c) != "" {
				named = append(named, c)
			}
		}
		if len(named) == 0 {
			return model.Dataset{}, ErrNoTable
		}
		return model.NewDataset(named), nil
	}

	// The schema must cover the widest record exactly; a mismatch means
	// the header row does not describe the body.
	width := 0
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}
	if width != len(columns) {
		return model.Dataset{}, fmt.Errorf("%d columns for records %d cells wide", len(columns), width)
	}

	ds := model.Dataset{Columns: columns}
	for _, rec := range records {
		row := make(model.Row, len(columns))
		copy(row, rec)
		if !rowAllNull(row) {
			ds.Records = append(ds.Records, row)
		}
	}

	ds = dropNullColumns(ds)
	if ds.RowCount() == 0 || ds.ColCount() == 0 {
		return model.Dataset{}, ErrNoTable
	}
	return ds, nil
}

// Merge concatenates per-table datasets using outer-join column
// alignment: the merged schema is the union of all schemas in
// first-seen order, and values absent in a source table are null.
// Post-merge pruning then drops sparse, all-blank and unnamed noise
// columns. Merging no datasets yields the empty dataset.
func (tm *TableMerger) Merge(datasets []model.Dataset) model.Dataset {
	if len(datasets) == 0 {
		return model.Dataset{}
	}

	var columns []string
	index := make(map[string]int)
	for _, ds := range datasets {
		for _, c := range ds.Columns {
			if _, ok := index[c]; !ok {
				index[c] = len(columns)
				columns = append(columns, c)
			}
		}
	}

	merged := model.Dataset{Columns: columns}
	for _, ds := range datasets {
		for _, rec := range ds.Records {
			row := make(model.Row, len(columns))
			for i, c := range ds.Columns {
				row[index[c]] = rec.At(i)
			}
			merged.Records = append(merged.Records, row)
		}
	}

	return tm.prune(merged)
}

// prune applies the post-merge column drops in order: non-null fill
// rate, all-blank-after-trim, and unnamed columns with little data.
func (tm *TableMerger) prune(ds model.Dataset) model.Dataset {
	rows := ds.RowCount()

	minFilled := int(float64(rows) * tm.MergedFillRate)
	if minFilled < 1 {
		minFilled = 1
	}

	var keep []int
	for i := range ds.Columns {
		col := ds.Column(i)

		filled := 0
		allBlank := true
		nonBlank := 0
		for _, c := range col {
			if !c.Null() {
				filled++
			}
			if !c.Empty() {
				allBlank = false
				nonBlank++
			}
		}

		if filled < minFilled {
			continue
		}
		if allBlank {
			// Null-equivalent whitespace that survived the fill-rate cut.
			continue
		}

		name := strings.TrimSpace(ds.Columns[i])
		if (name == "" || name == "None") && float64(nonBlank) < float64(rows)*tm.UnnamedFillRate {
			continue
		}

		keep = append(keep, i)
	}

	if len(keep) == len(ds.Columns) {
		return ds
	}
	if len(keep) == 0 {
		return model.Dataset{}
	}
	return projectColumns(ds, keep)
}

// projectColumns restricts a dataset to the given column indices.
func projectColumns(ds model.Dataset, keep []int) model.Dataset {
	out := model.Dataset{Columns: make([]string, len(keep))}
	for i, ci := range keep {
		out.Columns[i] = ds.Columns[ci]
	}
	for _, rec := range ds.Records {
		row := make(model.Row, len(keep))
		for i, ci := range keep {
			row[i] = rec.At(ci)
		}
		out.Records = append(out.Records, row)
	}
	return out
}

// rowAllNull reports whether every cell in the row is absent.
func rowAllNull(row model.Row) bool {
	for _, c := range row {
		if !c.Null() {
			return false
		}
	}
	return true
}

// dropNullColumns removes columns whose every value is absent.
func dropNullColumns(ds model.Dataset) model.Dataset {
	var keep []int
	for i := range ds.Columns {
		for _, c := range ds.Column(i) {
			if !c.Null() {
				keep = append(keep, i)
				break
			}
		}
	}
	if len(keep) == len(ds.Columns) {
		return ds
	}
	return projectColumns(ds, keep)
}
