// Package model defines the data types shared by the table pipeline:
// raw grids as produced by an extraction engine, and the cleaned,
// merged datasets the pipeline produces from them.
//
// # Grids
//
// A [Grid] is the raw rows-by-cells output of table detection for a
// single table. Rows may have differing lengths; a position beyond a
// row's length is an absent cell. A [Cell] distinguishes absent values
// from present-but-blank ones, though both count as empty for
// occupancy purposes:
//
//	c := model.NewCell(" total ")
//	c.Empty()  // false
//	c.Null()   // false
//
// # Datasets
//
// A [Dataset] pairs an ordered set of unique column names with
// row-major records. Datasets are produced per cleaned table and then
// merged across tables with outer-join column alignment.
//
// All types in this package are computed fresh per document and hold
// no shared state; they are safe to use from concurrent pipelines as
// long as each pipeline works on its own values.
package model
