package application

import (
	"net/http"
	"os"
	"path/filepath"

	"slimpdf/internal/common"
	"slimpdf/internal/pipeline"
)

const pdfContentType = "application/pdf"

// SelectFile replaces the current source file with an uploaded one.
// Anything that does not sniff as a PDF is rejected; the previous
// selection and results stay untouched.
func (a *App) SelectFile(upload FileUpload) AppState {
	a.mu.Lock()
	defer a.mu.Unlock()

	if http.DetectContentType(upload.Data) != pdfContentType {
		a.logger.Warn("Rejected non-PDF upload", "file", upload.Name)
		a.errMsg = "Only PDF files are supported"
		a.emitStateLocked()
		return a.snapshotLocked()
	}

	size := upload.Size
	if size <= 0 {
		size = int64(len(upload.Data))
	}

	// A new selection invalidates any run still in flight.
	a.generation++
	a.source = &pipeline.SourceFile{
		Name: upload.Name,
		Size: size,
		Data: upload.Data,
	}
	a.results.Clear()
	a.edit = nil
	a.status = StatusIdle
	a.statusMsg = ""
	a.errMsg = ""

	a.logger.Info("File selected", "file", upload.Name, "size", size)
	a.emitStateLocked()
	return a.snapshotLocked()
}

// SelectFileFromDialog opens the native file picker and selects the
// chosen PDF. Canceling the dialog leaves the state unchanged.
func (a *App) SelectFileFromDialog() AppState {
	if a.dialogs == nil {
		return a.GetState()
	}

	path, err := a.dialogs.OpenFileDialog()
	if err != nil {
		a.logger.Error("File dialog failed", "error", err)
		return a.GetState()
	}
	if path == "" {
		return a.GetState()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.errMsg = "Could not read the selected file"
		a.logger.Error("Failed to read selected file", "path", path, "error", err)
		a.emitStateLocked()
		return a.snapshotLocked()
	}

	return a.SelectFile(FileUpload{
		Name: filepath.Base(path),
		Data: data,
		Size: int64(len(data)),
	})
}

// SetOptions updates the compression options. Invalid values are
// ignored; changes are refused while a run is processing.
func (a *App) SetOptions(opts pipeline.Options) AppState {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.status == StatusProcessing {
		return a.snapshotLocked()
	}

	opts = opts.Normalize()
	if !common.IsValidFormat(opts.Format) || !common.IsValidLevel(opts.Level) {
		a.logger.Warn("Ignoring invalid options", "format", opts.Format, "level", opts.Level)
		return a.snapshotLocked()
	}

	a.options = opts
	a.emitStateLocked()
	return a.snapshotLocked()
}

// Reset returns the app to its initial state and releases all artifact
// files. Any run still in flight is invalidated.
func (a *App) Reset() AppState {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.generation++
	a.source = nil
	a.results.Clear()
	a.edit = nil
	a.status = StatusIdle
	a.statusMsg = ""
	a.errMsg = ""

	a.emitStateLocked()
	return a.snapshotLocked()
}

// SaveArtifact prompts for a destination and copies the artifact there.
// Returns the chosen path, or "" when the dialog was canceled.
func (a *App) SaveArtifact(index int) (string, error) {
	a.mu.Lock()
	artifact, ok := a.results.Get(index)
	a.mu.Unlock()
	if !ok {
		return "", ErrNoSuchArtifact
	}
	if a.dialogs == nil {
		return "", ErrNoDialogs
	}

	dest, err := a.dialogs.ShowSaveDialog(artifact.Name)
	if err != nil {
		return "", NewOperationError("save artifact", err)
	}
	if dest == "" {
		return "", nil
	}

	if err := common.CopyFile(artifact.FilePath, dest); err != nil {
		return "", NewOperationError("save artifact", err)
	}

	a.logger.Info("Artifact saved", "name", artifact.Name, "path", dest)
	return dest, nil
}

// OpenArtifact opens the artifact file with the system default viewer.
func (a *App) OpenArtifact(index int) error {
	a.mu.Lock()
	artifact, ok := a.results.Get(index)
	a.mu.Unlock()
	if !ok {
		return ErrNoSuchArtifact
	}
	if a.dialogs == nil {
		return ErrNoDialogs
	}
	return a.dialogs.OpenFile(artifact.FilePath)
}
