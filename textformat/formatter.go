// Package textformat normalizes raw per-page text extracted from a
// document and assembles it into a single document string, inserting
// page delimiters when the document has more than one page. It shares
// no state with the table pipeline.
package textformat

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	multiNewlines = regexp.MustCompile(`\n{3,}`)
	spaceRuns     = regexp.MustCompile(`[ \t]+`)
)

// Formatter cleans up a page of extracted text: whitespace runs are
// collapsed, line breaks re-flowed, and a page-delimiter header is
// prepended for multi-page documents.
type Formatter struct {
	// RuleWidth is the width of the delimiter rule lines surrounding
	// the "Page N of M" header.
	RuleWidth int
}

// NewFormatter creates a formatter with the default delimiter width.
func NewFormatter() *Formatter {
	return &Formatter{RuleWidth: 60}
}

// FormatPage normalizes the raw text of one page. pageNum is 1-based.
// Empty input yields an empty string.
func (f *Formatter) FormatPage(text string, pageNum, totalPages int) string {
	if text == "" {
		return ""
	}

	text = norm.NFC.String(text)
	text = multiNewlines.ReplaceAllString(text, "\n\n")
	text = spaceRuns.ReplaceAllString(text, " ")

	if totalPages > 1 {
		rule := strings.Repeat("=", f.RuleWidth)
		text = fmt.Sprintf("\n%s\nPage %d of %d\n%s\n\n", rule, pageNum, totalPages, rule) + text
	}

	// Re-flow: trim each line and allow at most one consecutive blank
	// line between non-blank lines.
	lines := strings.Split(text, "\n")
	formatted := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			formatted = append(formatted, line)
		} else if n := len(formatted); n > 0 && formatted[n-1] != "" {
			formatted = append(formatted, "")
		}
	}

	return strings.Join(formatted, "\n")
}

// JoinPages concatenates formatted page blocks with a blank-line
// separator. Pages that yielded no text are skipped.
func (f *Formatter) JoinPages(pages []string) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n\n")
}
