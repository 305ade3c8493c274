// Package pdfgen constructs new PDF documents from plain text.
package pdfgen

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

const (
	pageMargin = 20.0 // mm
	// A4 is 210mm wide; text wraps at the full width between margins.
	contentWidth = 210.0 - 2*pageMargin
	fontSize     = 12.0
	lineHeight   = 6.0 // mm
)

// Build lays out text with word wrapping at a fixed content width and
// returns the serialized PDF bytes, losslessly optimized.
func Build(text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text to typeset")
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AddPage()
	doc.SetFont("Helvetica", "", fontSize)

	// Core fonts are cp1252; translate the UTF-8 input.
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.MultiCell(contentWidth, lineHeight, tr(text), "", "L", false)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize PDF: %w", err)
	}

	return optimize(buf.Bytes())
}

// optimize runs pdfcpu's lossless optimization over freshly generated
// PDF bytes. pdfcpu's API is file based, so it round-trips through temp
// files. Optimization failures fall back to the unoptimized bytes.
func optimize(data []byte) ([]byte, error) {
	in, err := os.CreateTemp("", "slimpdf_gen_in_*.pdf")
	if err != nil {
		return data, nil
	}
	defer os.Remove(in.Name())

	if _, err := in.Write(data); err != nil {
		in.Close()
		return data, nil
	}
	in.Close()

	out, err := os.CreateTemp("", "slimpdf_gen_out_*.pdf")
	if err != nil {
		return data, nil
	}
	out.Close()
	defer os.Remove(out.Name())

	if err := api.OptimizeFile(in.Name(), out.Name(), nil); err != nil {
		return data, nil
	}

	optimized, err := os.ReadFile(out.Name())
	if err != nil || len(optimized) == 0 {
		return data, nil
	}
	return optimized, nil
}
