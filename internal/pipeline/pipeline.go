// Package pipeline turns a source PDF plus options into downloadable
// artifacts: one compressed image per page, or a single AI-summarized
// PDF for the whole document.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"slimpdf/internal/ai"
	"slimpdf/internal/common"
	"slimpdf/internal/pdf"
	"slimpdf/internal/pdfgen"
)

// Pipeline runs compression jobs. Pages are processed strictly
// sequentially so progress messages stay ordered.
type Pipeline struct {
	workingDir string
	assistant  ai.Assistant
	logger     *slog.Logger
}

// New creates a pipeline writing artifact files under workingDir.
func New(workingDir string, assistant ai.Assistant, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		workingDir: workingDir,
		assistant:  assistant,
		logger:     logger,
	}
}

// Run executes one compression run. The returned artifacts are fully
// encoded; on any error no partial results are returned and any files
// written so far are removed.
func (p *Pipeline) Run(ctx context.Context, source SourceFile, opts Options, onProgress ProgressFunc) ([]Artifact, error) {
	opts = opts.Normalize()
	if !common.IsValidFormat(opts.Format) {
		return nil, fmt.Errorf("unknown output format %q", opts.Format)
	}
	if !common.IsValidLevel(opts.Level) {
		return nil, fmt.Errorf("unknown quality level %q", opts.Level)
	}
	if onProgress == nil {
		onProgress = func(string) {}
	}

	runDir := filepath.Join(p.workingDir, common.GenerateUUID())

	var artifacts []Artifact
	var err error
	if common.IsImageFormat(opts.Format) {
		artifacts, err = p.runImages(ctx, source, opts, runDir, onProgress)
	} else {
		artifacts, err = p.runSummary(ctx, source, runDir, onProgress)
	}
	if err != nil {
		// All-or-nothing: a failed run leaves nothing behind.
		os.RemoveAll(runDir)
		return nil, err
	}
	return artifacts, nil
}

// runImages rasterizes every page in order and encodes it at the quality
// implied by the chosen level.
func (p *Pipeline) runImages(ctx context.Context, source SourceFile, opts Options, runDir string, onProgress ProgressFunc) ([]Artifact, error) {
	doc, err := pdf.Open(source.Data)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	pageCount := doc.PageCount()
	if pageCount == 0 {
		return nil, pdf.ErrNoPages
	}

	base := common.BaseName(source.Name)
	quality := common.QualityFor(opts.Level)
	mimeType := "image/" + opts.Format

	// The source PDF has no clean per-page byte boundary, so the
	// original size of each page is estimated as an even split.
	perPageEstimate := source.Size / int64(pageCount)

	artifacts := make([]Artifact, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		onProgress(fmt.Sprintf("Converting page %d of %d", i+1, pageCount))

		img, err := doc.RenderPage(i, common.OutputRenderScale)
		if err != nil {
			return nil, err
		}

		encoded, err := encodeImage(img, opts.Format, quality)
		if err != nil {
			return nil, fmt.Errorf("failed to encode page %d: %w", i+1, err)
		}

		name := fmt.Sprintf("%s_page_%d.%s", base, i+1, opts.Format)
		filePath, err := writeArtifactFile(runDir, name, encoded)
		if err != nil {
			return nil, err
		}

		content := common.EncodeDataURL(mimeType, encoded)
		artifacts = append(artifacts, Artifact{
			ID:             common.GenerateUUID(),
			Name:           name,
			Content:        content,
			Preview:        content,
			OriginalSize:   perPageEstimate,
			CompressedSize: int64(len(encoded)),
			FilePath:       filePath,
			Editable:       true,
		})
	}

	p.logger.Info("Image run completed", "file", source.Name, "pages", pageCount, "format", opts.Format)
	return artifacts, nil
}

// runSummary extracts the full document text, summarizes it remotely and
// typesets the summary into a new PDF.
func (p *Pipeline) runSummary(ctx context.Context, source SourceFile, runDir string, onProgress ProgressFunc) ([]Artifact, error) {
	doc, err := pdf.Open(source.Data)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	pageCount := doc.PageCount()
	if pageCount == 0 {
		return nil, pdf.ErrNoPages
	}

	pages := make([]string, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		text, err := doc.PageText(i)
		if err != nil {
			return nil, err
		}
		pages = append(pages, text)
	}
	fullText := strings.Join(pages, "\n\n")
	if strings.TrimSpace(fullText) == "" {
		return nil, fmt.Errorf("document has no extractable text to summarize")
	}

	onProgress("AI is summarizing the content...")
	summary, err := p.assistant.Summarize(ctx, fullText)
	if err != nil {
		return nil, err
	}

	onProgress("Generating new PDF...")
	pdfBytes, err := pdfgen.Build(summary)
	if err != nil {
		return nil, err
	}

	onProgress("Generating preview...")
	preview, err := pdf.FirstPageThumbnail(pdfBytes)
	if err != nil {
		return nil, err
	}

	name := common.BaseName(source.Name) + "_summary.pdf"
	filePath, err := writeArtifactFile(runDir, name, pdfBytes)
	if err != nil {
		return nil, err
	}

	p.logger.Info("Summary run completed", "file", source.Name,
		"original_size", source.Size, "summary_size", len(pdfBytes))

	return []Artifact{{
		ID:             common.GenerateUUID(),
		Name:           name,
		Content:        common.EncodeDataURL(common.PDFMimeType, pdfBytes),
		Preview:        preview,
		OriginalSize:   source.Size,
		CompressedSize: int64(len(pdfBytes)),
		FilePath:       filePath,
		Editable:       false,
	}}, nil
}

func encodeImage(img image.Image, format string, quality float64) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case common.FormatPNG:
		err = imaging.Encode(&buf, img, imaging.PNG)
	default:
		q := int(math.Round(quality * 100))
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(q))
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeArtifactFile(runDir, name string, data []byte) (string, error) {
	path := filepath.Join(runDir, name)
	if err := common.WriteFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	return path, nil
}
