// Package reader is the bundled extraction engine: it opens a PDF and
// implements the engine interfaces over its embedded text layer.
//
// The document is validated with pdfcpu up front, so a corrupt or
// truncated file fails at Open rather than midway through a pipeline.
// Text extraction uses the ledongthuc/pdf text layer. Table detection
// supports only the loose text strategy: the text layer carries no
// ruling geometry, so the strict lines strategy always reports no
// tables and the two-pass fallback in package engine proceeds to the
// text pass. Callers needing line-based detection can plug in their
// own engine at the processor level.
//
// Scanned, image-only PDFs have no text layer; pair the ocr package
// with pre-rendered page images for those.
package reader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/mdYoungDOer/pdf-processor/engine"
	"github.com/mdYoungDOer/pdf-processor/model"
)

// ErrEmptySource is returned when Open or FromBytes is given no data.
var ErrEmptySource = errors.New("pdf source is empty")

// ErrInvalidDocument is returned when the source bytes cannot be
// parsed or validated as a PDF.
var ErrInvalidDocument = errors.New("invalid pdf document")

// Document is an opened, validated PDF exposing the text layer as
// both an engine.TableEngine and an engine.TextEngine.
type Document struct {
	r         *lpdf.Reader
	pageCount int

	// Clusterer builds grids from positioned text rows for the text
	// detection strategy.
	Clusterer *TextClusterer
}

var (
	_ engine.TableEngine = (*Document)(nil)
	_ engine.TextEngine  = (*Document)(nil)
)

// Open reads and validates the PDF at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return FromBytes(data)
}

// FromBytes opens a PDF held in memory. The data is validated before
// any extraction is attempted; validation failure is the one fatal,
// whole-document error in the pipeline.
func FromBytes(data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, ErrEmptySource
	}

	ctx, err := api.ReadContext(bytes.NewReader(data), pdfcpumodel.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	r, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	return &Document{
		r:         r,
		pageCount: ctx.PageCount,
		Clusterer: NewTextClusterer(),
	}, nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.pageCount
}

// PageText returns the plain text of a page (1-based), or "" when the
// page has no extractable text.
func (d *Document) PageText(ctx context.Context, page int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if page < 1 || page > d.pageCount {
		return "", fmt.Errorf("page %d out of range [1, %d]", page, d.pageCount)
	}

	p := d.r.Page(page)
	if p.V.IsNull() {
		return "", nil
	}

	fonts := make(map[string]*lpdf.Font)
	for _, name := range p.Fonts() {
		f := p.Font(name)
		fonts[name] = &f
	}

	text, err := p.GetPlainText(fonts)
	if err != nil {
		return "", fmt.Errorf("page %d text: %w", page, err)
	}
	return text, nil
}

// Tables detects tables on a page (1-based) with the given strategy.
// The lines strategy always yields nothing for this engine.
func (d *Document) Tables(ctx context.Context, page int, strategy engine.Strategy) ([]*model.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page < 1 || page > d.pageCount {
		return nil, fmt.Errorf("page %d out of range [1, %d]", page, d.pageCount)
	}
	if strategy != engine.StrategyText {
		return nil, nil
	}

	p := d.r.Page(page)
	if p.V.IsNull() {
		return nil, nil
	}

	rows, err := p.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("page %d rows: %w", page, err)
	}

	grid := d.Clusterer.Grid(rows)
	if grid == nil {
		return nil, nil
	}
	grid.Page = page
	return []*model.Grid{grid}, nil
}
