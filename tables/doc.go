// Package tables turns raw, artifact-laden cell grids into clean,
// merged datasets.
//
// Extraction engines routinely emit grids with decorative rows above
// the real header, ghost columns produced by ruling artifacts, and
// sparsely populated noise. This package infers the genuine structure
// and removes the rest:
//
//  1. [ProfileRow] computes per-row occupancy statistics.
//  2. [StructureDetector] votes on the dominant column count, locates
//     the header row, and selects the column indices that carry data.
//  3. [TableCleaner] applies the detected structure to produce a
//     rectangular table, with fallback heuristics when detection is
//     inconclusive.
//  4. [TableMerger] names columns from the header row, builds a
//     per-table dataset, and concatenates datasets across tables with
//     outer-join column alignment, pruning sparse and unnamed columns.
//
// # Thresholds
//
// The heuristics are governed by named threshold fields on each type,
// set to tuned defaults by the NewX constructors. The defaults are
// empirical rather than principled; they can be adjusted per instance
// when a corpus calls for it:
//
//	d := tables.NewStructureDetector()
//	d.ColumnUsageRate = 0.25 // stricter column retention
//	st := d.Detect(grid)
//
// All operations are pure transformations over their inputs. Nothing
// in this package holds locks or mutates shared state, so independent
// goroutines may run their own pipelines concurrently.
package tables
