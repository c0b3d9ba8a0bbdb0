//go:build !ocr

// Package ocr recovers page text from scanned, image-only documents,
// where the bundled reader engine finds no text layer to extract.
//
// This is the stub used when the "ocr" build tag is not set; every
// operation returns ErrOCRNotEnabled. Rebuild with
//
//	go build -tags ocr
//
// to compile in the Tesseract-backed implementation (requires
// Tesseract installed on the system).
package ocr

import "errors"

// ErrOCRNotEnabled is returned when OCR is invoked without the "ocr"
// build tag.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Client is the stub OCR session.
type Client struct{}

// New returns ErrOCRNotEnabled.
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op on the stub client.
func (c *Client) Close() error {
	return nil
}

// RecognizeImage returns ErrOCRNotEnabled.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// SetLanguage returns ErrOCRNotEnabled.
func (c *Client) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}
