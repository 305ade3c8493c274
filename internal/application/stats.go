package application

import (
	"log/slog"

	"slimpdf/internal/database"
)

// StatsManager accumulates per-session counters and forwards each run
// to the database for lifetime totals. The database is optional; with
// none configured only session counters are kept.
type StatsManager struct {
	db     *database.Database
	logger *slog.Logger

	sessionRuns      int
	sessionArtifacts int
	sessionBytesIn   int64
	sessionBytesOut  int64
}

func NewStatsManager(db *database.Database, logger *slog.Logger) *StatsManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsManager{db: db, logger: logger}
}

// RecordRun folds one successful run into the counters.
func (m *StatsManager) RecordRun(artifacts int, bytesIn, bytesOut int64) {
	m.sessionRuns++
	m.sessionArtifacts += artifacts
	m.sessionBytesIn += bytesIn
	m.sessionBytesOut += bytesOut

	if m.db == nil {
		return
	}
	if _, err := m.db.RecordRun(artifacts, bytesIn, bytesOut); err != nil {
		m.logger.Warn("Failed to persist usage totals", "error", err)
	}
}

// Snapshot merges session counters with the persisted lifetime totals.
func (m *StatsManager) Snapshot() AppStats {
	stats := AppStats{
		SessionRuns:      m.sessionRuns,
		SessionArtifacts: m.sessionArtifacts,
		SessionBytesIn:   m.sessionBytesIn,
		SessionBytesOut:  m.sessionBytesOut,
	}

	if m.db != nil {
		totals, err := m.db.GetTotals()
		if err != nil {
			m.logger.Warn("Failed to load usage totals", "error", err)
		} else {
			stats.TotalRuns = totals.TotalRuns
			stats.TotalArtifacts = totals.TotalArtifacts
			stats.TotalBytesIn = totals.TotalBytesIn
			stats.TotalBytesOut = totals.TotalBytesOut
		}
	}

	return stats
}
