package application

import "slimpdf/internal/pipeline"

// Status is the coarse lifecycle state of the app.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusProcessing Status = "processing"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// FileInfo describes the currently selected source file to the frontend.
type FileInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// EditSession tracks the single in-progress AI edit. At most one exists
// at a time system-wide.
type EditSession struct {
	Index       int    `json:"index"`
	Instruction string `json:"instruction"`
	InFlight    bool   `json:"in_flight"`
}

// AppState is the immutable snapshot the frontend renders from.
type AppState struct {
	Status        Status              `json:"status"`
	StatusMessage string              `json:"status_message,omitempty"`
	File          *FileInfo           `json:"file,omitempty"`
	Options       pipeline.Options    `json:"options"`
	Results       []pipeline.Artifact `json:"results"`
	Error         string              `json:"error,omitempty"`
	Edit          *EditSession        `json:"edit,omitempty"`
}

// FileUpload represents uploaded file data
type FileUpload struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
	Size int64  `json:"size"`
}

// AppStats holds session counters plus persisted lifetime totals.
type AppStats struct {
	SessionRuns      int   `json:"session_runs"`
	SessionArtifacts int   `json:"session_artifacts"`
	SessionBytesIn   int64 `json:"session_bytes_in"`
	SessionBytesOut  int64 `json:"session_bytes_out"`
	TotalRuns        int64 `json:"total_runs"`
	TotalArtifacts   int64 `json:"total_artifacts"`
	TotalBytesIn     int64 `json:"total_bytes_in"`
	TotalBytesOut    int64 `json:"total_bytes_out"`
}
