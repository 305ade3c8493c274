package common

const (
	// Output formats
	FormatJPEG       = "jpeg"
	FormatPNG        = "png"
	FormatSummaryPDF = "pdf"

	// Quality levels for image output
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"

	DefaultFormat = FormatJPEG
	DefaultLevel  = LevelMedium

	// Render scales. Output pages are oversampled at 1.5x for quality,
	// previews are rendered coarser since they are tiny.
	OutputRenderScale = 1.5
	PreviewScale      = 0.5

	// go-fitz takes DPI, not a scale factor. PDF user space is 72 DPI.
	BaseRenderDPI = 72.0

	PDFMimeType = "application/pdf"

	// File operation constants
	DefaultFilePermissions = 0755

	// Event names
	EventPipelineProgress = "pipeline:progress"
	EventStateUpdate      = "state:update"
	EventStatsUpdate      = "stats:update"
)

// QualityFor maps a quality level to an encoder quality in [0,1].
func QualityFor(level string) float64 {
	switch level {
	case LevelLow:
		return 0.5
	case LevelHigh:
		return 0.92
	default:
		return 0.75
	}
}

// IsImageFormat reports whether the format produces per-page image artifacts.
func IsImageFormat(format string) bool {
	return format == FormatJPEG || format == FormatPNG
}

// IsValidFormat reports whether the format is one the pipeline understands.
func IsValidFormat(format string) bool {
	return IsImageFormat(format) || format == FormatSummaryPDF
}

// IsValidLevel reports whether the quality level is known.
func IsValidLevel(level string) bool {
	return level == LevelLow || level == LevelMedium || level == LevelHigh
}
