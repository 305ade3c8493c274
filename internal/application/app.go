// Package application holds the stateful core of the app: the selected
// file, compression options, run results and the single edit session.
// Every exported method is an intent bound to the frontend; each returns
// the resulting state snapshot so the UI never has to guess.
package application

import (
	"context"
	"log/slog"
	"sync"

	"slimpdf/internal/ai"
	"slimpdf/internal/common"
	"slimpdf/internal/config"
	"slimpdf/internal/database"
	"slimpdf/internal/pipeline"
	"slimpdf/internal/transport"
)

// Runner executes compression runs and single-artifact edits. Satisfied
// by *pipeline.Pipeline; tests substitute fakes.
type Runner interface {
	Run(ctx context.Context, source pipeline.SourceFile, opts pipeline.Options, onProgress pipeline.ProgressFunc) ([]pipeline.Artifact, error)
	ApplyEdit(ctx context.Context, artifact pipeline.Artifact, instruction string) (pipeline.Artifact, error)
}

// App struct
type App struct {
	ctx       context.Context
	config    *config.Config
	db        *database.Database
	runner    Runner
	assistant ai.Assistant
	emitter   transport.Emitter
	dialogs   transport.DialogHandler
	stats     *StatsManager
	logger    *slog.Logger

	mu        sync.Mutex
	source    *pipeline.SourceFile
	options   pipeline.Options
	status    Status
	statusMsg string
	errMsg    string
	results   *ResultSet
	edit      *EditSession

	// generation invalidates in-flight work: results only apply when
	// the generation they started under is still current.
	generation uint64
}

// NewApp creates a new App application struct
func NewApp() *App {
	return &App{
		status:    StatusIdle,
		options:   pipeline.Options{}.Normalize(),
		results:   NewResultSet(),
		assistant: ai.Noop{},
		emitter:   transport.NopEmitter{},
		logger:    slog.Default(),
	}
}

// OnStartup is called when the app starts. The context is saved
// so we can call the runtime methods.
func (a *App) OnStartup(ctx context.Context) {
	a.ctx = ctx

	cfg := config.New()
	a.config = cfg
	a.logger = cfg.Logger

	db, err := database.NewDatabase(cfg.DatabasePath)
	if err != nil {
		a.logger.Warn("Failed to open database, continuing without persistence", "error", err)
	} else {
		a.db = db
	}

	a.assistant = ai.Noop{}
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiTextModel, cfg.GeminiImageModel)
		if err != nil {
			a.logger.Warn("Failed to initialize Gemini client", "error", err)
		} else {
			a.assistant = gemini
		}
	}

	a.runner = pipeline.New(cfg.WorkingDir, a.assistant, a.logger)
	a.emitter = transport.NewWailsEmitter(ctx)
	a.dialogs = transport.NewDialogsHandler(ctx)
	a.stats = NewStatsManager(a.db, a.logger)

	a.loadPreferredOptions()

	a.logger.Info("Application started",
		"working_dir", cfg.WorkingDir,
		"ai_available", a.assistant.Available())
}

// OnShutdown releases all artifact files before the process exits.
func (a *App) OnShutdown(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.generation++
	a.results.Clear()
}

func (a *App) loadPreferredOptions() {
	if a.db == nil {
		return
	}
	prefs, err := a.db.GetPreferences()
	if err != nil {
		a.logger.Warn("Failed to load preferences", "error", err)
		return
	}
	a.mu.Lock()
	a.options = pipeline.Options{Format: prefs.DefaultFormat, Level: prefs.DefaultLevel}.Normalize()
	a.mu.Unlock()
}

// GetState returns the current state snapshot.
func (a *App) GetState() AppState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

func (a *App) snapshotLocked() AppState {
	state := AppState{
		Status:        a.status,
		StatusMessage: a.statusMsg,
		Options:       a.options,
		Results:       a.results.List(),
		Error:         a.errMsg,
	}
	if a.source != nil {
		state.File = &FileInfo{Name: a.source.Name, Size: a.source.Size}
	}
	if a.edit != nil {
		edit := *a.edit
		state.Edit = &edit
	}
	return state
}

func (a *App) emitStateLocked() {
	a.emitter.Emit(common.EventStateUpdate, a.snapshotLocked())
}

func (a *App) runContext() context.Context {
	if a.ctx != nil {
		return a.ctx
	}
	return context.Background()
}

// GetAppStatus returns basic runtime information for the about panel.
func (a *App) GetAppStatus() map[string]interface{} {
	status := map[string]interface{}{
		"app_name":     "SlimPDF",
		"framework":    "Wails v2",
		"ai_available": a.assistant.Available(),
	}
	if a.config != nil {
		status["working_dir"] = a.config.WorkingDir
	}
	return status
}
