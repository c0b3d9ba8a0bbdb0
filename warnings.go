package processor

import (
	"fmt"
	"strings"
)

// Stage identifies where in the pipeline a warning arose.
type Stage string

const (
	// StageDetect covers table detection by the engine.
	StageDetect Stage = "detect"

	// StageClean covers cleaning and dataset construction for one table.
	StageClean Stage = "clean"

	// StageText covers per-page text extraction.
	StageText Stage = "text"
)

// Warning reports a non-fatal issue: a page or table that failed and
// was skipped while the rest of the document processed normally.
type Warning struct {
	Page    int
	Stage   Stage
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("page %d (%s): %s", w.Page, w.Stage, w.Message)
}

// FormatWarnings renders warnings one per line for logging.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}
