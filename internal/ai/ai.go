// Package ai defines the remote generative-AI capabilities the app
// depends on. The interfaces are intentionally small so the pipeline and
// tests never see a vendor API shape.
package ai

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("AI service not configured (set GOOGLE_API_KEY)")

// Summarizer shortens a body of text in a single round trip.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// ImageEditor applies a free-text instruction to an image and returns a
// modified image of the same MIME type.
type ImageEditor interface {
	EditImage(ctx context.Context, mimeType string, data []byte, instruction string) ([]byte, error)
}

// Assistant bundles the remote capabilities plus an availability probe.
type Assistant interface {
	Summarizer
	ImageEditor
	Available() bool
}

// Noop is the assistant used when no API key is configured. Every remote
// call fails fast with ErrNotConfigured.
type Noop struct{}

func (Noop) Summarize(ctx context.Context, text string) (string, error) {
	return "", ErrNotConfigured
}

func (Noop) EditImage(ctx context.Context, mimeType string, data []byte, instruction string) ([]byte, error) {
	return nil, ErrNotConfigured
}

func (Noop) Available() bool { return false }
