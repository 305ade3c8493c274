package config

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Config holds application configuration
type Config struct {
	WorkingDir       string
	AppDataDir       string
	DatabasePath     string
	GeminiAPIKey     string
	GeminiTextModel  string
	GeminiImageModel string
	Logger           *slog.Logger
}

const (
	defaultTextModel  = "gemini-2.5-flash"
	defaultImageModel = "gemini-2.5-flash-image"
)

// New creates a new configuration instance
func New() *Config {
	cfg := &Config{
		Logger: slog.Default(),
	}

	cfg.setupDirectories()
	cfg.setupAI()

	return cfg
}

func (c *Config) setupDirectories() {
	// Working directory holds per-run artifact files
	c.WorkingDir = filepath.Join(os.TempDir(), "slimpdf")
	os.MkdirAll(c.WorkingDir, 0755)

	// App data directory (database, settings)
	c.AppDataDir = getAppDataDir()
	os.MkdirAll(c.AppDataDir, 0755)

	c.DatabasePath = filepath.Join(c.AppDataDir, "database.sqlite3")
}

func (c *Config) setupAI() {
	c.GeminiAPIKey = os.Getenv("GOOGLE_API_KEY")

	c.GeminiTextModel = os.Getenv("SLIMPDF_TEXT_MODEL")
	if c.GeminiTextModel == "" {
		c.GeminiTextModel = defaultTextModel
	}

	c.GeminiImageModel = os.Getenv("SLIMPDF_IMAGE_MODEL")
	if c.GeminiImageModel == "" {
		c.GeminiImageModel = defaultImageModel
	}
}

func getAppDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "SlimPDF")
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".slimpdf")
}
