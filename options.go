package processor

import (
	"log/slog"

	"github.com/mdYoungDOer/pdf-processor/model"
	"github.com/mdYoungDOer/pdf-processor/tables"
	"github.com/mdYoungDOer/pdf-processor/textformat"
)

// Merger is the table pipeline a processor drives: per-grid cleaning
// and dataset construction, then the cross-table merge.
// *tables.TableMerger is the standard implementation.
type Merger interface {
	FromGrid(g *model.Grid) (model.Dataset, error)
	Merge(datasets []model.Dataset) model.Dataset
}

// PageFormatter normalizes per-page text and joins the page blocks.
// *textformat.Formatter is the standard implementation.
type PageFormatter interface {
	FormatPage(text string, pageNum, totalPages int) string
	JoinPages(pages []string) string
}

// Options holds the configuration a processor chain accumulates.
type Options struct {
	// Page selection (1-indexed); nil means all pages.
	pages []int

	merger    Merger
	formatter PageFormatter
	logger    *slog.Logger
}

// defaultOptions returns the default pipeline configuration.
func defaultOptions() Options {
	return Options{
		merger:    tables.NewTableMerger(),
		formatter: textformat.NewFormatter(),
	}
}

// clone creates a deep copy of Options.
func (o Options) clone() Options {
	newOpts := Options{
		merger:    o.merger,
		formatter: o.formatter,
		logger:    o.logger,
	}
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	return newOpts
}
