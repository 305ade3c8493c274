package application

import (
	"slimpdf/internal/database"
	"slimpdf/internal/pipeline"
)

// GetPreferences returns the stored default options.
func (a *App) GetPreferences() (*database.UserPreferencesData, error) {
	if a.db == nil {
		prefs := database.DefaultPreferences()
		return &prefs, nil
	}
	return a.db.GetPreferences()
}

// UpdatePreferences stores new defaults and, when no run is active,
// applies them to the current options as well.
func (a *App) UpdatePreferences(data map[string]interface{}) error {
	if a.db == nil {
		return nil
	}
	if err := a.db.UpdatePreferences(data); err != nil {
		return NewOperationError("update preferences", err)
	}

	prefs, err := a.db.GetPreferences()
	if err != nil {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status != StatusProcessing {
		a.options = pipeline.Options{Format: prefs.DefaultFormat, Level: prefs.DefaultLevel}.Normalize()
		a.emitStateLocked()
	}
	return nil
}

// GetStats returns session counters merged with lifetime totals.
func (a *App) GetStats() AppStats {
	if a.stats == nil {
		return AppStats{}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats.Snapshot()
}
