package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"slimpdf/internal/ai"
	"slimpdf/internal/common"
	"slimpdf/internal/pipeline"
	"slimpdf/internal/transport"
)

type fakeRunner struct {
	mu              sync.Mutex
	runCalls        int
	editCalls       int
	lastInstruction string

	artifacts  []pipeline.Artifact
	runErr     error
	editResult pipeline.Artifact
	editErr    error

	// block, when non-nil, holds Run until the channel is closed.
	block chan struct{}
}

func (f *fakeRunner) Run(ctx context.Context, source pipeline.SourceFile, opts pipeline.Options, onProgress pipeline.ProgressFunc) ([]pipeline.Artifact, error) {
	f.mu.Lock()
	f.runCalls++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.runErr != nil {
		return nil, f.runErr
	}
	if onProgress != nil {
		onProgress("Converting page 1 of 1")
	}
	out := make([]pipeline.Artifact, len(f.artifacts))
	copy(out, f.artifacts)
	return out, nil
}

func (f *fakeRunner) ApplyEdit(ctx context.Context, artifact pipeline.Artifact, instruction string) (pipeline.Artifact, error) {
	f.mu.Lock()
	f.editCalls++
	f.lastInstruction = instruction
	f.mu.Unlock()

	if f.editErr != nil {
		return pipeline.Artifact{}, f.editErr
	}
	return f.editResult, nil
}

func newTestApp(runner Runner) *App {
	return &App{
		status:    StatusIdle,
		options:   pipeline.Options{}.Normalize(),
		results:   NewResultSet(),
		assistant: ai.Noop{},
		emitter:   transport.NopEmitter{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		runner:    runner,
		stats:     NewStatsManager(nil, nil),
	}
}

func pdfUpload(name string) FileUpload {
	data := []byte("%PDF-1.4\nfake document body\n%%EOF\n")
	return FileUpload{Name: name, Data: data, Size: int64(len(data))}
}

// makeArtifact writes a backing file so handle release can be observed.
func makeArtifact(t *testing.T, name string, editable bool) pipeline.Artifact {
	t.Helper()
	dir := filepath.Join(t.TempDir(), common.GenerateUUID())
	path := filepath.Join(dir, name)
	if err := common.WriteFileAtomic(path, []byte("artifact bytes")); err != nil {
		t.Fatalf("Failed to write artifact file: %v", err)
	}
	content := common.EncodeDataURL("image/jpeg", []byte("artifact bytes"))
	return pipeline.Artifact{
		ID:             common.GenerateUUID(),
		Name:           name,
		Content:        content,
		Preview:        content,
		OriginalSize:   100,
		CompressedSize: 14,
		FilePath:       path,
		Editable:       editable,
	}
}

func waitForStatus(t *testing.T, app *App, want Status) AppState {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		state := app.GetState()
		if state.Status == want {
			return state
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for status %q, last state %q", want, app.GetState().Status)
	return AppState{}
}

func TestCompress_NoFileSelected(t *testing.T) {
	runner := &fakeRunner{}
	app := newTestApp(runner)

	state := app.Compress()

	if state.Status != StatusIdle {
		t.Errorf("Expected idle status, got %q", state.Status)
	}
	if runner.runCalls != 0 {
		t.Errorf("Expected no run calls, got %d", runner.runCalls)
	}
}

func TestSelectFile_RejectsNonPDF(t *testing.T) {
	app := newTestApp(&fakeRunner{})

	app.SelectFile(pdfUpload("report.pdf"))
	state := app.SelectFile(FileUpload{Name: "notes.txt", Data: []byte("plain text"), Size: 10})

	if state.Error == "" {
		t.Error("Expected an error message for a non-PDF upload")
	}
	if state.File == nil || state.File.Name != "report.pdf" {
		t.Errorf("Expected previous selection to survive, got %+v", state.File)
	}
}

func TestSelectFile_ClearsPreviousRun(t *testing.T) {
	artifact := makeArtifact(t, "report_page_1.jpeg", true)
	runner := &fakeRunner{artifacts: []pipeline.Artifact{artifact}}
	app := newTestApp(runner)

	app.SelectFile(pdfUpload("report.pdf"))
	app.Compress()
	waitForStatus(t, app, StatusSuccess)

	state := app.SelectFile(pdfUpload("other.pdf"))

	if len(state.Results) != 0 {
		t.Errorf("Expected results cleared, got %d", len(state.Results))
	}
	if state.Status != StatusIdle {
		t.Errorf("Expected idle status, got %q", state.Status)
	}
	if _, err := os.Stat(artifact.FilePath); !os.IsNotExist(err) {
		t.Error("Expected previous artifact file to be released")
	}
}

func TestCompress_Success(t *testing.T) {
	artifact := makeArtifact(t, "report_page_1.jpeg", true)
	runner := &fakeRunner{artifacts: []pipeline.Artifact{artifact}}
	app := newTestApp(runner)

	app.SelectFile(pdfUpload("report.pdf"))
	app.Compress()
	state := waitForStatus(t, app, StatusSuccess)

	if len(state.Results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(state.Results))
	}
	if state.Results[0].Name != "report_page_1.jpeg" {
		t.Errorf("Unexpected artifact name %q", state.Results[0].Name)
	}
	if state.StatusMessage != "" {
		t.Errorf("Expected status message cleared, got %q", state.StatusMessage)
	}
	if state.Error != "" {
		t.Errorf("Expected no error, got %q", state.Error)
	}

	stats := app.GetStats()
	if stats.SessionRuns != 1 {
		t.Errorf("Expected 1 session run, got %d", stats.SessionRuns)
	}
	if stats.SessionArtifacts != 1 {
		t.Errorf("Expected 1 session artifact, got %d", stats.SessionArtifacts)
	}
}

func TestCompress_Failure(t *testing.T) {
	runner := &fakeRunner{runErr: errors.New("render failed")}
	app := newTestApp(runner)

	app.SelectFile(pdfUpload("report.pdf"))
	app.Compress()
	state := waitForStatus(t, app, StatusError)

	if state.Error != "render failed" {
		t.Errorf("Expected error message, got %q", state.Error)
	}
	if len(state.Results) != 0 {
		t.Errorf("Expected no results on failure, got %d", len(state.Results))
	}
	if app.GetStats().SessionRuns != 0 {
		t.Error("Failed runs must not count toward stats")
	}
}

func TestCompress_SupersededRunIsDiscarded(t *testing.T) {
	artifact := makeArtifact(t, "report_page_1.jpeg", true)
	release := make(chan struct{})
	runner := &fakeRunner{artifacts: []pipeline.Artifact{artifact}, block: release}
	app := newTestApp(runner)

	app.SelectFile(pdfUpload("report.pdf"))
	app.Compress()
	app.Reset()
	close(release)

	// Give the stale goroutine time to land and discard its output.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(artifact.FilePath); os.IsNotExist(err) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	state := app.GetState()
	if state.Status != StatusIdle {
		t.Errorf("Expected idle after reset, got %q", state.Status)
	}
	if len(state.Results) != 0 {
		t.Errorf("Stale run results must not surface, got %d", len(state.Results))
	}
	if _, err := os.Stat(artifact.FilePath); !os.IsNotExist(err) {
		t.Error("Expected stale run artifact file to be removed")
	}
}

func TestEditFlow_ReplacesArtifact(t *testing.T) {
	original := makeArtifact(t, "report_page_1.jpeg", true)
	edited := makeArtifact(t, "report_page_1_edited.jpeg", true)
	runner := &fakeRunner{
		artifacts:  []pipeline.Artifact{original},
		editResult: edited,
	}
	app := newTestApp(runner)

	app.SelectFile(pdfUpload("report.pdf"))
	app.Compress()
	waitForStatus(t, app, StatusSuccess)

	state := app.OpenEdit(0)
	if state.Edit == nil || state.Edit.Index != 0 {
		t.Fatalf("Expected open edit session on index 0, got %+v", state.Edit)
	}

	app.UpdateEditInstruction("make the background white")
	state = app.ApplyEdit()

	if state.Edit != nil {
		t.Error("Expected edit session closed after success")
	}
	if runner.lastInstruction != "make the background white" {
		t.Errorf("Unexpected instruction %q", runner.lastInstruction)
	}
	if len(state.Results) != 1 || state.Results[0].Name != "report_page_1_edited.jpeg" {
		t.Fatalf("Expected edited artifact in place, got %+v", state.Results)
	}
	if _, err := os.Stat(original.FilePath); !os.IsNotExist(err) {
		t.Error("Expected replaced artifact file to be released")
	}
	if _, err := os.Stat(edited.FilePath); err != nil {
		t.Errorf("Expected edited artifact file to exist: %v", err)
	}
}

func TestApplyEdit_EmptyInstruction(t *testing.T) {
	original := makeArtifact(t, "report_page_1.jpeg", true)
	runner := &fakeRunner{artifacts: []pipeline.Artifact{original}}
	app := newTestApp(runner)

	app.SelectFile(pdfUpload("report.pdf"))
	app.Compress()
	waitForStatus(t, app, StatusSuccess)

	app.OpenEdit(0)
	app.UpdateEditInstruction("   ")
	state := app.ApplyEdit()

	if runner.editCalls != 0 {
		t.Errorf("Expected no edit calls, got %d", runner.editCalls)
	}
	if state.Error == "" {
		t.Error("Expected a validation error")
	}
	if state.Edit == nil {
		t.Error("Expected session to stay open")
	}
}

func TestApplyEdit_FailureKeepsSessionOpen(t *testing.T) {
	original := makeArtifact(t, "report_page_1.jpeg", true)
	runner := &fakeRunner{
		artifacts: []pipeline.Artifact{original},
		editErr:   errors.New("model unavailable"),
	}
	app := newTestApp(runner)

	app.SelectFile(pdfUpload("report.pdf"))
	app.Compress()
	waitForStatus(t, app, StatusSuccess)

	app.OpenEdit(0)
	app.UpdateEditInstruction("remove the watermark")
	state := app.ApplyEdit()

	if state.Error != "model unavailable" {
		t.Errorf("Expected failure message, got %q", state.Error)
	}
	if state.Edit == nil || state.Edit.InFlight {
		t.Errorf("Expected open, not-in-flight session, got %+v", state.Edit)
	}
	if state.Results[0].Name != "report_page_1.jpeg" {
		t.Errorf("Expected original artifact untouched, got %q", state.Results[0].Name)
	}
	if _, err := os.Stat(original.FilePath); err != nil {
		t.Errorf("Expected original artifact file to survive: %v", err)
	}
}

func TestOpenEdit_Guards(t *testing.T) {
	summary := makeArtifact(t, "report_summary.pdf", false)
	editable := makeArtifact(t, "report_page_1.jpeg", true)
	runner := &fakeRunner{artifacts: []pipeline.Artifact{summary, editable}}
	app := newTestApp(runner)

	app.SelectFile(pdfUpload("report.pdf"))
	app.Compress()
	waitForStatus(t, app, StatusSuccess)

	state := app.OpenEdit(0)
	if state.Edit != nil {
		t.Error("Expected no session for a non-editable artifact")
	}
	if state.Error == "" {
		t.Error("Expected an error message for a non-editable artifact")
	}

	state = app.OpenEdit(5)
	if state.Edit != nil {
		t.Error("Expected no session for an out-of-range index")
	}

	app.OpenEdit(1)
	state = app.OpenEdit(1)
	if state.Error != ErrEditInProgress.Error() {
		t.Errorf("Expected duplicate-session error, got %q", state.Error)
	}
}

func TestCancelEdit(t *testing.T) {
	editable := makeArtifact(t, "report_page_1.jpeg", true)
	runner := &fakeRunner{artifacts: []pipeline.Artifact{editable}}
	app := newTestApp(runner)

	app.SelectFile(pdfUpload("report.pdf"))
	app.Compress()
	waitForStatus(t, app, StatusSuccess)

	app.OpenEdit(0)
	app.UpdateEditInstruction("sharpen")
	state := app.CancelEdit()

	if state.Edit != nil {
		t.Error("Expected session closed after cancel")
	}
	if len(state.Results) != 1 {
		t.Errorf("Cancel must not touch results, got %d", len(state.Results))
	}
}

func TestReset(t *testing.T) {
	artifact := makeArtifact(t, "report_page_1.jpeg", true)
	runner := &fakeRunner{artifacts: []pipeline.Artifact{artifact}}
	app := newTestApp(runner)

	app.SelectFile(pdfUpload("report.pdf"))
	app.Compress()
	waitForStatus(t, app, StatusSuccess)

	state := app.Reset()

	if state.Status != StatusIdle {
		t.Errorf("Expected idle status, got %q", state.Status)
	}
	if state.File != nil {
		t.Error("Expected file selection cleared")
	}
	if len(state.Results) != 0 {
		t.Errorf("Expected results cleared, got %d", len(state.Results))
	}
	if _, err := os.Stat(artifact.FilePath); !os.IsNotExist(err) {
		t.Error("Expected artifact file to be released")
	}
}

func TestSetOptions(t *testing.T) {
	app := newTestApp(&fakeRunner{})

	state := app.SetOptions(pipeline.Options{Format: common.FormatPNG, Level: common.LevelLow})
	if state.Options.Format != common.FormatPNG || state.Options.Level != common.LevelLow {
		t.Errorf("Expected options applied, got %+v", state.Options)
	}

	state = app.SetOptions(pipeline.Options{Format: "gif", Level: "ultra"})
	if state.Options.Format != common.FormatPNG {
		t.Errorf("Expected invalid options ignored, got %+v", state.Options)
	}

	state = app.SetOptions(pipeline.Options{})
	if state.Options.Format != common.DefaultFormat || state.Options.Level != common.DefaultLevel {
		t.Errorf("Expected defaults from empty options, got %+v", state.Options)
	}
}
