//go:build ocr

// Package ocr recovers page text from scanned, image-only documents,
// where the bundled reader engine finds no text layer to extract.
//
// It wraps the Tesseract engine via gosseract and is only compiled in
// with the "ocr" build tag:
//
//	go build -tags ocr
//
// Tesseract must be installed on the system (brew install tesseract /
// apt-get install tesseract-ocr).
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps a Tesseract session. It is not safe for concurrent use;
// create one client per worker.
type Client struct {
	client *gosseract.Client
}

// New creates an OCR client. Close it when done to release the
// underlying Tesseract resources.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases the Tesseract session.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeImage runs OCR over encoded image data (PNG, TIFF, JPEG)
// and returns the recognized text trimmed of surrounding whitespace.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// SetLanguage selects the recognition language(s); multiple languages
// are "+"-separated (e.g. "eng+deu"). The default is "eng".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}
