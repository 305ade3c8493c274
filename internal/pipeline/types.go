package pipeline

import "slimpdf/internal/common"

// SourceFile is the user-selected PDF. Immutable once selected.
type SourceFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Data []byte `json:"data"`
}

// Options selects the output format and, for image formats, the quality
// level. Always fully defined after Normalize.
type Options struct {
	Format string `json:"format"`
	Level  string `json:"level"`
}

// Normalize fills in defaults for empty fields.
func (o Options) Normalize() Options {
	if o.Format == "" {
		o.Format = common.DefaultFormat
	}
	if o.Level == "" {
		o.Level = common.DefaultLevel
	}
	return o
}

// Artifact is one produced output unit, ready for preview and download.
// Content and Preview are self-contained data URLs; FilePath is the
// on-disk handle the result owner must release exactly once.
type Artifact struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Content        string `json:"content"`
	Preview        string `json:"preview"`
	OriginalSize   int64  `json:"original_size"`
	CompressedSize int64  `json:"compressed_size"`
	FilePath       string `json:"-"`
	Editable       bool   `json:"editable"`
}

// ProgressFunc receives human-readable status messages while a run is
// in flight.
type ProgressFunc func(message string)
