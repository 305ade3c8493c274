package database

import (
	"encoding/json"
	"time"

	"slimpdf/internal/common"
)

// UserPreferences database model
type UserPreferences struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PreferencesJSON string    `gorm:"type:text" json:"preferences_json"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserPreferencesData represents user preferences data
type UserPreferencesData struct {
	DefaultFormat string `json:"default_format"`
	DefaultLevel  string `json:"default_level"`
}

// UsageTotals tracks lifetime usage statistics
type UsageTotals struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	TotalRuns      int64     `json:"total_runs"`
	TotalArtifacts int64     `json:"total_artifacts"`
	TotalBytesIn   int64     `json:"total_bytes_in"`
	TotalBytesOut  int64     `json:"total_bytes_out"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() UserPreferencesData {
	return UserPreferencesData{
		DefaultFormat: common.DefaultFormat,
		DefaultLevel:  common.DefaultLevel,
	}
}

// GetPreferences returns the user preferences data
func (up *UserPreferences) GetPreferences() UserPreferencesData {
	if up.PreferencesJSON == "" {
		return DefaultPreferences()
	}

	var prefs UserPreferencesData
	if err := json.Unmarshal([]byte(up.PreferencesJSON), &prefs); err != nil {
		return DefaultPreferences()
	}

	if !common.IsValidFormat(prefs.DefaultFormat) {
		prefs.DefaultFormat = common.DefaultFormat
	}
	if !common.IsValidLevel(prefs.DefaultLevel) {
		prefs.DefaultLevel = common.DefaultLevel
	}
	return prefs
}

// SetPreferences sets the user preferences data
func (up *UserPreferences) SetPreferences(prefs UserPreferencesData) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	up.PreferencesJSON = string(data)
	return nil
}
