// Package engine defines the interface boundary to the external PDF
// extraction engines that feed the pipeline: one producing raw cell
// grids per detected table, one producing the raw text layer per page.
//
// The package also implements the two-pass detection contract: a
// strict line-based strategy is tried first, and the looser text-based
// strategy only when the strict pass yields nothing.
package engine

import (
	"context"

	"github.com/mdYoungDOer/pdf-processor/model"
)

// Strategy selects how a table engine detects table boundaries.
type Strategy int

const (
	// StrategyLines detects tables from drawn ruling lines only.
	StrategyLines Strategy = iota

	// StrategyText infers tables from text alignment, for tables
	// without visible ruling.
	StrategyText
)

func (s Strategy) String() string {
	switch s {
	case StrategyLines:
		return "lines"
	case StrategyText:
		return "text"
	default:
		return "unknown"
	}
}

// TableEngine produces raw cell grids for the tables detected on a page.
// Pages are 1-based. An engine returning no grids and no error simply
// found no tables; that is not a failure.
type TableEngine interface {
	PageCount() int
	Tables(ctx context.Context, page int, strategy Strategy) ([]*model.Grid, error)
}

// TextEngine produces the raw text layer of a page. Pages are 1-based.
// A page with no extractable text yields the empty string.
type TextEngine interface {
	PageCount() int
	PageText(ctx context.Context, page int) (string, error)
}

// Tables extracts the grids for one page, trying the strict lines
// strategy first and falling back to the text strategy only when the
// strict pass yields nothing.
func Tables(ctx context.Context, e TableEngine, page int) ([]*model.Grid, error) {
	grids, err := e.Tables(ctx, page, StrategyLines)
	if err != nil {
		return nil, err
	}
	if len(grids) > 0 {
		return grids, nil
	}
	return e.Tables(ctx, page, StrategyText)
}
