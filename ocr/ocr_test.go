//go:build ocr

package ocr

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// testPNG renders a white image with a black block, enough for the
// engine to run over without asserting recognized content.
func testPNG(width, height int) []byte {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	for x := 10; x < 50 && x < width; x++ {
		for y := 10; y < 30 && y < height; y++ {
			img.Set(x, y, color.Black)
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRecognizeImage(t *testing.T) {
	client := newTestClient(t)

	// The image is just a rectangle; only the call path is under test.
	if _, err := client.RecognizeImage(testPNG(100, 50)); err != nil {
		t.Errorf("RecognizeImage failed: %v", err)
	}
}

func TestSetLanguage(t *testing.T) {
	client := newTestClient(t)

	if err := client.SetLanguage("eng"); err != nil {
		t.Errorf("SetLanguage failed: %v", err)
	}
}

func TestEnginePageText(t *testing.T) {
	client := newTestClient(t)

	eng := NewEngine(client, [][]byte{testPNG(100, 50), testPNG(80, 40)})
	if eng.PageCount() != 2 {
		t.Fatalf("Expected 2 pages, got %d", eng.PageCount())
	}
	if _, err := eng.PageText(context.Background(), 1); err != nil {
		t.Errorf("PageText failed: %v", err)
	}
}
