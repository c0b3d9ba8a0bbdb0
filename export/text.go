package export

import (
	"io"
	"strings"
)

// WriteText encodes document text as UTF-8 plain text. Blank or empty
// text writes no bytes.
func WriteText(w io.Writer, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	_, err := io.WriteString(w, text)
	return err
}
