package ocr

import (
	"context"
	"fmt"
)

// Engine adapts OCR over pre-rendered page images to the text-engine
// interface used by the processing pipeline. Page rendering is the
// caller's concern; the engine only recognizes what it is given.
//
//	client, err := ocr.New()
//	// handle err, defer client.Close()
//	eng := ocr.NewEngine(client, pageImages)
//	text, warnings, err := processor.FromBytes(data).WithTextEngine(eng).Text()
type Engine struct {
	client *Client
	images [][]byte
}

// NewEngine creates an engine over one encoded image per page, in page
// order. The engine does not close the client.
func NewEngine(client *Client, pageImages [][]byte) *Engine {
	return &Engine{client: client, images: pageImages}
}

// PageCount returns the number of page images supplied.
func (e *Engine) PageCount() int {
	return len(e.images)
}

// PageText recognizes the text of a page (1-based).
func (e *Engine) PageText(ctx context.Context, page int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if page < 1 || page > len(e.images) {
		return "", fmt.Errorf("page %d out of range [1, %d]", page, len(e.images))
	}
	return e.client.RecognizeImage(e.images[page-1])
}
