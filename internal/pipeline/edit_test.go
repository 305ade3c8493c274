package pipeline

import (
	"context"
	"errors"
	"os"
	"testing"

	"slimpdf/internal/common"
)

func imageArtifact(t *testing.T, p *Pipeline) Artifact {
	t.Helper()
	data := buildTestPDF(t, "page to edit")
	artifacts, err := p.Run(context.Background(), sourceFromBytes("doc.pdf", data),
		Options{Format: common.FormatJPEG, Level: common.LevelMedium}, nil)
	if err != nil {
		t.Fatalf("Failed to produce artifact: %v", err)
	}
	return artifacts[0]
}

func TestApplyEdit(t *testing.T) {
	edited := []byte{0xff, 0xd8, 0xff, 0xe0, 0x01, 0x02, 0x03}
	assistant := &fakeAssistant{edited: edited}
	p := newTestPipeline(t, assistant)
	original := imageArtifact(t, p)

	replacement, err := p.ApplyEdit(context.Background(), original, "grayscale")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if replacement.Name != "doc_page_1_edited.jpeg" {
		t.Errorf("Expected name doc_page_1_edited.jpeg, got %q", replacement.Name)
	}
	if assistant.gotInstruction != "grayscale" {
		t.Errorf("Expected instruction to reach the editor, got %q", assistant.gotInstruction)
	}
	if assistant.gotMime != "image/jpeg" {
		t.Errorf("Expected image/jpeg sent to editor, got %q", assistant.gotMime)
	}

	mimeType, data, err := common.DecodeDataURL(replacement.Content)
	if err != nil {
		t.Fatalf("Replacement content is not a valid data URL: %v", err)
	}
	if mimeType != "image/jpeg" {
		t.Errorf("Expected replacement MIME image/jpeg, got %q", mimeType)
	}
	if replacement.CompressedSize != int64(len(data)) || len(data) != len(edited) {
		t.Errorf("Expected compressed size %d, got %d", len(edited), replacement.CompressedSize)
	}
	if replacement.OriginalSize != original.OriginalSize {
		t.Error("Original size estimate must carry over to the replacement")
	}
	if replacement.Preview != replacement.Content {
		t.Error("Edited image artifacts should be self-previewing")
	}
	if _, err := os.Stat(replacement.FilePath); err != nil {
		t.Errorf("Replacement file handle missing: %v", err)
	}
}

func TestApplyEdit_EmptyInstruction(t *testing.T) {
	assistant := &fakeAssistant{edited: []byte{1}}
	p := newTestPipeline(t, assistant)
	artifact := imageArtifact(t, p)

	for _, instruction := range []string{"", "   "} {
		_, err := p.ApplyEdit(context.Background(), artifact, instruction)
		if !errors.Is(err, ErrEmptyInstruction) {
			t.Errorf("Expected ErrEmptyInstruction for %q, got %v", instruction, err)
		}
	}
	if assistant.editCalls != 0 {
		t.Errorf("Empty instruction must not reach the remote editor, got %d calls", assistant.editCalls)
	}
}

func TestApplyEdit_NotEditable(t *testing.T) {
	p := newTestPipeline(t, &fakeAssistant{})

	_, err := p.ApplyEdit(context.Background(), Artifact{Name: "doc_summary.pdf"}, "shorten")
	if !errors.Is(err, ErrNotEditable) {
		t.Errorf("Expected ErrNotEditable, got %v", err)
	}
}

func TestApplyEdit_RemoteFailure(t *testing.T) {
	assistant := &fakeAssistant{editErr: errors.New("model overloaded")}
	p := newTestPipeline(t, assistant)
	artifact := imageArtifact(t, p)

	_, err := p.ApplyEdit(context.Background(), artifact, "grayscale")
	if err == nil {
		t.Fatal("Expected remote failure to surface")
	}
	// The original artifact's file handle must survive a failed edit.
	if _, statErr := os.Stat(artifact.FilePath); statErr != nil {
		t.Errorf("Original artifact file lost after failed edit: %v", statErr)
	}
}
