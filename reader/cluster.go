package reader

import (
	"sort"
	"strings"

	lpdf "github.com/ledongthuc/pdf"

	"github.com/mdYoungDOer/pdf-processor/model"
)

// TextClusterer infers a cell grid from positioned text rows, for
// tables that have no drawn ruling. Words separated by wide horizontal
// gaps become cells; cell start positions aligned across rows become
// column boundaries.
type TextClusterer struct {
	// CellGap is the minimum horizontal gap (in points) that starts a
	// new cell within a row.
	CellGap float64

	// SpaceFactor scales the font size to decide when a small gap
	// between glyph runs is an internal space rather than touching text.
	SpaceFactor float64

	// BoundaryTolerance is the maximum distance between cell start
	// positions merged into one column boundary.
	BoundaryTolerance float64

	// MinTableRows is the number of rows with at least two cells a
	// page must have before a grid is emitted. Below it, the page is
	// treated as prose.
	MinTableRows int
}

// NewTextClusterer creates a clusterer with default tolerances.
func NewTextClusterer() *TextClusterer {
	return &TextClusterer{
		CellGap:           12.0, // ~3 character widths at common body sizes
		SpaceFactor:       0.25,
		BoundaryTolerance: 10.0,
		MinTableRows:      2,
	}
}

// span is a run of text within a row, with its starting X position.
type span struct {
	x    float64
	text string
}

// Grid builds a cell grid from the page's text rows, or nil when the
// page does not look tabular.
func (tc *TextClusterer) Grid(rows lpdf.Rows) *model.Grid {
	var rowSpans [][]span
	multiCell := 0
	for _, row := range rows {
		spans := tc.spans(row.Content)
		if len(spans) == 0 {
			continue
		}
		if len(spans) >= 2 {
			multiCell++
		}
		rowSpans = append(rowSpans, spans)
	}

	if len(rowSpans) < tc.MinTableRows || multiCell < tc.MinTableRows {
		return nil
	}

	bounds := tc.boundaries(rowSpans)
	if len(bounds) < 2 {
		return nil
	}

	g := &model.Grid{Rows: make([]model.Row, len(rowSpans))}
	for ri, spans := range rowSpans {
		cells := make(model.Row, len(bounds))
		for _, sp := range spans {
			ci := nearestBoundary(bounds, sp.x)
			if cells[ci].Valid {
				cells[ci].Text += " " + sp.text
			} else {
				cells[ci] = model.NewCell(sp.text)
			}
		}
		g.Rows[ri] = cells
	}
	return g
}

// spans groups a row's glyph runs (already sorted left-to-right) into
// cells, splitting at gaps wider than CellGap.
func (tc *TextClusterer) spans(content lpdf.TextHorizontal) []span {
	var spans []span
	var b strings.Builder
	var startX, lastEnd float64

	flush := func() {
		if b.Len() > 0 {
			spans = append(spans, span{x: startX, text: b.String()})
			b.Reset()
		}
	}

	for _, t := range content {
		if t.S == "" {
			continue
		}
		if b.Len() == 0 {
			startX = t.X
		} else {
			gap := t.X - lastEnd
			if gap > tc.CellGap {
				flush()
				startX = t.X
			} else if gap > t.FontSize*tc.SpaceFactor {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
		lastEnd = t.X + t.W
	}
	flush()
	return spans
}

// boundaries clusters cell start positions across rows into column
// boundary centers, returned in ascending order.
func (tc *TextClusterer) boundaries(rowSpans [][]span) []float64 {
	var starts []float64
	for _, spans := range rowSpans {
		for _, sp := range spans {
			starts = append(starts, sp.x)
		}
	}
	sort.Float64s(starts)

	var centers []float64
	groupStart := 0
	for i := 1; i <= len(starts); i++ {
		if i == len(starts) || starts[i]-starts[groupStart] > tc.BoundaryTolerance {
			sum := 0.0
			for _, x := range starts[groupStart:i] {
				sum += x
			}
			centers = append(centers, sum/float64(i-groupStart))
			groupStart = i
		}
	}
	return centers
}

// nearestBoundary returns the index of the boundary center closest to x.
func nearestBoundary(bounds []float64, x float64) int {
	i := sort.SearchFloat64s(bounds, x)
	if i == 0 {
		return 0
	}
	if i == len(bounds) {
		return len(bounds) - 1
	}
	if x-bounds[i-1] <= bounds[i]-x {
		return i - 1
	}
	return i
}
