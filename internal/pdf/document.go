// Package pdf wraps the MuPDF bindings behind the small capability
// surface the pipeline needs: page count, per-page text extraction and
// per-page raster rendering at a scale.
package pdf

import (
	"errors"
	"fmt"
	"image"

	fitz "github.com/gen2brain/go-fitz"

	"slimpdf/internal/common"
)

var ErrNoPages = errors.New("document has no pages")

// Document is an open PDF ready for rendering and text extraction.
type Document struct {
	doc *fitz.Document
}

// Open decodes a PDF from raw bytes.
func Open(data []byte) (*Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode PDF: %w", err)
	}
	return &Document{doc: doc}, nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.doc.NumPage()
}

// PageText extracts the text content of page i (0-based).
func (d *Document) PageText(i int) (string, error) {
	text, err := d.doc.Text(i)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from page %d: %w", i+1, err)
	}
	return text, nil
}

// RenderPage rasterizes page i (0-based) at the given scale factor,
// where 1.0 corresponds to the PDF's native 72 DPI.
func (d *Document) RenderPage(i int, scale float64) (image.Image, error) {
	img, err := d.doc.ImageDPI(i, common.BaseRenderDPI*scale)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", i+1, err)
	}
	return img, nil
}

// Close releases the underlying MuPDF document.
func (d *Document) Close() error {
	return d.doc.Close()
}
