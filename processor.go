// Package processor converts raw per-page cell grids and page text,
// as produced by a PDF extraction engine, into clean merged datasets
// and normalized document text.
//
// Basic usage:
//
//	ds, warnings, err := processor.Open("report.pdf").Dataset()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", processor.FormatWarnings(warnings))
//	}
//
// With options:
//
//	text, _, err := processor.FromBytes(data).
//	    Pages(1, 2, 3).
//	    WithLogger(logger).
//	    Text()
//
// Each configuration method returns a new Processor, so chains are
// immutable and safe to share. Every terminal operation runs with its
// own request context; no state persists between documents. Per-table
// failures surface as warnings, never as errors — the only fatal
// condition is a document that cannot be opened at all.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/mdYoungDOer/pdf-processor/engine"
	"github.com/mdYoungDOer/pdf-processor/model"
	"github.com/mdYoungDOer/pdf-processor/reader"
)

// ErrEmptyInput is returned when FromBytes is given no data.
var ErrEmptyInput = errors.New("input bytes cannot be empty")

// Processor provides a fluent interface for turning one document into
// a merged dataset or normalized text.
type Processor struct {
	// Source (exactly one of path/data, unless engines are injected).
	path string
	data []byte

	// Engines; opened from the source lazily unless injected.
	tableEngine engine.TableEngine
	textEngine  engine.TextEngine

	options Options

	// Accumulated error (fail-fast).
	err error
}

// Open prepares a processor for the PDF at path. The file is not read
// until a terminal operation runs.
func Open(path string) *Processor {
	return &Processor{path: path, options: defaultOptions()}
}

// FromBytes prepares a processor for an in-memory PDF. Empty input is
// rejected immediately as a precondition failure.
func FromBytes(data []byte) *Processor {
	p := &Processor{data: data, options: defaultOptions()}
	if len(data) == 0 {
		p.err = ErrEmptyInput
	}
	return p
}

// FromEngines prepares a processor over caller-supplied engines,
// bypassing the bundled reader entirely. Either engine may be nil if
// the corresponding terminal operation is not used.
func FromEngines(te engine.TableEngine, xe engine.TextEngine) *Processor {
	return &Processor{tableEngine: te, textEngine: xe, options: defaultOptions()}
}

// clone creates a copy with deep-copied options, keeping chains immutable.
func (p *Processor) clone() *Processor {
	return &Processor{
		path:        p.path,
		data:        p.data,
		tableEngine: p.tableEngine,
		textEngine:  p.textEngine,
		options:     p.options.clone(),
		err:         p.err,
	}
}

// ============================================================================
// Configuration Methods (return new Processor instance)
// ============================================================================

// Pages restricts processing to the given pages (1-indexed).
// Multiple calls are cumulative.
func (p *Processor) Pages(pages ...int) *Processor {
	np := p.clone()
	np.options.pages = append(np.options.pages, pages...)
	return np
}

// PageRange restricts processing to a page range (1-indexed, inclusive).
func (p *Processor) PageRange(start, end int) *Processor {
	np := p.clone()
	for i := start; i <= end; i++ {
		np.options.pages = append(np.options.pages, i)
	}
	return np
}

// WithTableEngine replaces the bundled table-detection engine.
func (p *Processor) WithTableEngine(e engine.TableEngine) *Processor {
	np := p.clone()
	np.tableEngine = e
	return np
}

// WithTextEngine replaces the bundled text-extraction engine, e.g.
// with an OCR engine for scanned documents.
func (p *Processor) WithTextEngine(e engine.TextEngine) *Processor {
	np := p.clone()
	np.textEngine = e
	return np
}

// WithMerger replaces the table pipeline, giving access to all
// detection and pruning thresholds.
func (p *Processor) WithMerger(m Merger) *Processor {
	np := p.clone()
	np.options.merger = m
	return np
}

// WithFormatter replaces the page text formatter.
func (p *Processor) WithFormatter(f PageFormatter) *Processor {
	np := p.clone()
	np.options.formatter = f
	return np
}

// WithLogger attaches a logger for pipeline progress and per-table
// recovery events. Without one, slog.Default() is used.
func (p *Processor) WithLogger(logger *slog.Logger) *Processor {
	np := p.clone()
	np.options.logger = logger
	return np
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Dataset extracts every table from the configured pages, cleans each
// one, and merges them into a single dataset with outer-join column
// alignment. An empty dataset means no tables were detected; that is a
// successful result, not an error. Warnings report tables or pages
// that failed and were skipped.
func (p *Processor) Dataset() (model.Dataset, []Warning, error) {
	if p.err != nil {
		return model.Dataset{}, nil, p.err
	}
	if err := p.ensureEngines(); err != nil {
		return model.Dataset{}, nil, err
	}
	if p.tableEngine == nil {
		return model.Dataset{}, nil, fmt.Errorf("no table engine configured")
	}

	run := p.newRun("dataset")
	ctx := context.Background()

	pages, err := resolvePages(p.options.pages, p.tableEngine.PageCount())
	if err != nil {
		return model.Dataset{}, nil, err
	}

	var warnings []Warning
	var datasets []model.Dataset
	detected := 0

	for _, page := range pages {
		grids, err := engine.Tables(ctx, p.tableEngine, page)
		if err != nil {
			warnings = append(warnings, Warning{Page: page, Stage: StageDetect, Message: err.Error()})
			run.logger.Warn("table detection failed", "page", page, "error", err)
			continue
		}
		for _, g := range grids {
			detected++
			ds, err := p.options.merger.FromGrid(g)
			if err != nil {
				warnings = append(warnings, Warning{Page: page, Stage: StageClean, Message: err.Error()})
				run.logger.Warn("table discarded", "page", page, "error", err)
				continue
			}
			datasets = append(datasets, ds)
		}
	}

	merged := p.options.merger.Merge(datasets)
	run.logger.Info("dataset assembled",
		"pages", len(pages),
		"tables_detected", detected,
		"tables_kept", len(datasets),
		"rows", merged.RowCount(),
		"columns", merged.ColCount(),
		"duration", time.Since(run.start))
	return merged, warnings, nil
}

// Text extracts and normalizes the text of the configured pages,
// concatenated with blank-line separators and page-delimiter headers
// for multi-page documents. Empty text means the document has no
// extractable text; that is a successful result, not an error.
func (p *Processor) Text() (string, []Warning, error) {
	if p.err != nil {
		return "", nil, p.err
	}
	if err := p.ensureEngines(); err != nil {
		return "", nil, err
	}
	if p.textEngine == nil {
		return "", nil, fmt.Errorf("no text engine configured")
	}

	run := p.newRun("text")
	ctx := context.Background()

	total := p.textEngine.PageCount()
	pages, err := resolvePages(p.options.pages, total)
	if err != nil {
		return "", nil, err
	}

	var warnings []Warning
	formatted := make([]string, 0, len(pages))

	for _, page := range pages {
		raw, err := p.textEngine.PageText(ctx, page)
		if err != nil {
			warnings = append(warnings, Warning{Page: page, Stage: StageText, Message: err.Error()})
			run.logger.Warn("page text failed", "page", page, "error", err)
			continue
		}
		if raw == "" {
			continue
		}
		formatted = append(formatted, p.options.formatter.FormatPage(raw, page, total))
	}

	text := p.options.formatter.JoinPages(formatted)
	run.logger.Info("text assembled",
		"pages", len(pages),
		"chars", len(text),
		"duration", time.Since(run.start))
	return text, warnings, nil
}

// PageCount returns the number of pages in the document.
func (p *Processor) PageCount() (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	if err := p.ensureEngines(); err != nil {
		return 0, err
	}
	if p.tableEngine != nil {
		return p.tableEngine.PageCount(), nil
	}
	if p.textEngine != nil {
		return p.textEngine.PageCount(), nil
	}
	return 0, fmt.Errorf("no engine configured")
}

// ensureEngines opens the bundled reader engine when none was injected.
func (p *Processor) ensureEngines() error {
	if p.tableEngine != nil || p.textEngine != nil {
		return nil
	}

	var doc *reader.Document
	var err error
	switch {
	case p.path != "":
		doc, err = reader.Open(p.path)
	case len(p.data) > 0:
		doc, err = reader.FromBytes(p.data)
	default:
		return fmt.Errorf("no source specified")
	}
	if err != nil {
		return fmt.Errorf("opening document: %w", err)
	}

	p.tableEngine = doc
	p.textEngine = doc
	return nil
}

// resolvePages expands the page selection against the document's page
// count: nil means all pages. Selected pages are deduplicated, sorted,
// and validated.
func resolvePages(selected []int, total int) ([]int, error) {
	if len(selected) == 0 {
		pages := make([]int, total)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages, nil
	}

	seen := make(map[int]bool, len(selected))
	var pages []int
	for _, page := range selected {
		if page < 1 || page > total {
			return nil, fmt.Errorf("page %d out of range [1, %d]", page, total)
		}
		if !seen[page] {
			seen[page] = true
			pages = append(pages, page)
		}
	}
	sort.Ints(pages)
	return pages, nil
}

// Must is a helper that wraps a call returning (T, error) and panics
// on error. It is intended for scripts and tests.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustResult wraps a terminal operation returning (T, []Warning, error),
// panicking on error and discarding warnings.
func MustResult[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
