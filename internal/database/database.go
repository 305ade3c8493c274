package database

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"slimpdf/internal/common"
)

// Database handles database operations
type Database struct {
	db *gorm.DB
}

// NewDatabase creates a new database instance
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	database := &Database{db: db}

	// Auto-migrate the schema
	err = db.AutoMigrate(&UserPreferences{}, &UsageTotals{})
	if err != nil {
		return nil, err
	}

	return database, nil
}

// GetPreferences gets the current user preferences
func (d *Database) GetPreferences() (*UserPreferencesData, error) {
	prefs, err := d.getOrCreatePreferences()
	if err != nil {
		return nil, err
	}

	prefsData := prefs.GetPreferences()
	return &prefsData, nil
}

// UpdatePreferences updates user preferences
func (d *Database) UpdatePreferences(data map[string]interface{}) error {
	prefs, err := d.getOrCreatePreferences()
	if err != nil {
		return err
	}

	currentPrefs := prefs.GetPreferences()

	if val, ok := data["default_format"]; ok {
		if format, ok := val.(string); ok && common.IsValidFormat(format) {
			currentPrefs.DefaultFormat = format
		}
	}

	if val, ok := data["default_level"]; ok {
		if level, ok := val.(string); ok && common.IsValidLevel(level) {
			currentPrefs.DefaultLevel = level
		}
	}

	if err := prefs.SetPreferences(currentPrefs); err != nil {
		return err
	}

	return d.db.Save(prefs).Error
}

// RecordRun adds a completed run to the lifetime usage totals and
// returns the updated totals.
func (d *Database) RecordRun(artifacts int, bytesIn, bytesOut int64) (*UsageTotals, error) {
	totals, err := d.getOrCreateTotals()
	if err != nil {
		return nil, err
	}

	totals.TotalRuns++
	totals.TotalArtifacts += int64(artifacts)
	totals.TotalBytesIn += bytesIn
	totals.TotalBytesOut += bytesOut

	if err := d.db.Save(totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

// GetTotals returns the lifetime usage totals.
func (d *Database) GetTotals() (*UsageTotals, error) {
	return d.getOrCreateTotals()
}

// getOrCreatePreferences gets existing preferences or creates default ones
func (d *Database) getOrCreatePreferences() (*UserPreferences, error) {
	var prefs UserPreferences

	result := d.db.First(&prefs, 1)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			prefs = UserPreferences{ID: 1}

			defaultPrefs := DefaultPreferences()
			if err := prefs.SetPreferences(defaultPrefs); err != nil {
				return nil, err
			}

			if err := d.db.Create(&prefs).Error; err != nil {
				return nil, err
			}
		} else {
			return nil, result.Error
		}
	}

	return &prefs, nil
}

func (d *Database) getOrCreateTotals() (*UsageTotals, error) {
	var totals UsageTotals

	result := d.db.First(&totals, 1)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			totals = UsageTotals{ID: 1}
			if err := d.db.Create(&totals).Error; err != nil {
				return nil, err
			}
		} else {
			return nil, result.Error
		}
	}

	return &totals, nil
}
