package transport

import (
	"context"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// DialogHandler abstracts the native dialogs used by the app.
type DialogHandler interface {
	OpenFileDialog() (string, error)
	ShowSaveDialog(filename string) (string, error)
	OpenFile(filePath string) error
}

type dialogsHandler struct {
	ctx context.Context
}

// NewDialogsHandler creates the Wails-backed dialog handler.
func NewDialogsHandler(ctx context.Context) DialogHandler {
	return &dialogsHandler{
		ctx: ctx,
	}
}

func (h *dialogsHandler) OpenFileDialog() (string, error) {
	selection, err := wailsruntime.OpenFileDialog(h.ctx, wailsruntime.OpenDialogOptions{
		Title: "Select a PDF to compress",
		Filters: []wailsruntime.FileFilter{
			{
				DisplayName: "PDF Files (*.pdf)",
				Pattern:     "*.pdf",
			},
		},
	})

	if err != nil {
		return "", err
	}

	return selection, nil
}

func (h *dialogsHandler) ShowSaveDialog(filename string) (string, error) {
	selection, err := wailsruntime.SaveFileDialog(h.ctx, wailsruntime.SaveDialogOptions{
		Title:           "Save artifact",
		DefaultFilename: filename,
	})

	if err != nil {
		return "", err
	}

	return selection, nil
}

func (h *dialogsHandler) OpenFile(filePath string) error {
	wailsruntime.BrowserOpenURL(h.ctx, "file://"+filePath)
	return nil
}
