package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "google.golang.org/genai"
)

const summaryPrompt = "Summarize the following document concisely. " +
	"Keep the key points and conclusions, drop repetition and filler. " +
	"Return plain text only, no markdown.\n\n"

// Gemini implements Assistant on top of the Google GenAI SDK.
type Gemini struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

// NewGemini creates a Gemini-backed assistant.
func NewGemini(ctx context.Context, apiKey, textModel, imageModel string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &Gemini{client: c, textModel: textModel, imageModel: imageModel}, nil
}

func (g *Gemini) Available() bool { return g.client != nil }

// Summarize sends the full document text and returns the shortened text.
func (g *Gemini) Summarize(ctx context.Context, text string) (string, error) {
	if g.client == nil {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("nothing to summarize: document has no extractable text")
	}

	res, err := g.client.Models.GenerateContent(ctx, g.textModel, []*genai.Content{
		genai.NewContentFromText(summaryPrompt+text, genai.RoleUser),
	}, nil)
	if err != nil {
		return "", fmt.Errorf("summarization request failed: %w", err)
	}

	out := strings.TrimSpace(res.Text())
	if out == "" {
		return "", errors.New("summarization returned an empty response")
	}
	return out, nil
}

// EditImage sends the image plus instruction and returns the edited
// image bytes of the same MIME type.
func (g *Gemini) EditImage(ctx context.Context, mimeType string, data []byte, instruction string) ([]byte, error) {
	if g.client == nil {
		return nil, ErrNotConfigured
	}

	content := &genai.Content{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: instruction},
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
		},
	}

	res, err := g.client.Models.GenerateContent(ctx, g.imageModel, []*genai.Content{content}, nil)
	if err != nil {
		return nil, fmt.Errorf("image edit request failed: %w", err)
	}

	for _, cand := range res.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}

	return nil, errors.New("image edit returned no image data")
}
