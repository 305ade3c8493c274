package application

import (
	"strings"

	"slimpdf/internal/pipeline"
)

// OpenEdit opens an edit session on an editable artifact. Only one
// session can exist at a time.
func (a *App) OpenEdit(index int) AppState {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.edit != nil {
		a.errMsg = ErrEditInProgress.Error()
		a.emitStateLocked()
		return a.snapshotLocked()
	}

	artifact, ok := a.results.Get(index)
	if !ok {
		a.errMsg = ErrNoSuchArtifact.Error()
		a.emitStateLocked()
		return a.snapshotLocked()
	}
	if !artifact.Editable {
		a.errMsg = "This result cannot be edited"
		a.emitStateLocked()
		return a.snapshotLocked()
	}

	a.edit = &EditSession{Index: index}
	a.errMsg = ""
	a.emitStateLocked()
	return a.snapshotLocked()
}

// UpdateEditInstruction stores the instruction text typed so far.
func (a *App) UpdateEditInstruction(text string) AppState {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.edit != nil && !a.edit.InFlight {
		a.edit.Instruction = text
	}
	return a.snapshotLocked()
}

// CancelEdit closes the edit session without changes. A session whose
// request is already in flight cannot be canceled.
func (a *App) CancelEdit() AppState {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.edit != nil && !a.edit.InFlight {
		a.edit = nil
		a.errMsg = ""
		a.emitStateLocked()
	}
	return a.snapshotLocked()
}

// ApplyEdit sends the session's instruction to the AI and, on success,
// replaces the artifact in place and closes the session. On failure the
// artifact is untouched and the session stays open for another attempt.
func (a *App) ApplyEdit() AppState {
	a.mu.Lock()

	if a.edit == nil {
		a.errMsg = ErrNoEditSession.Error()
		a.emitStateLocked()
		defer a.mu.Unlock()
		return a.snapshotLocked()
	}
	if a.edit.InFlight {
		defer a.mu.Unlock()
		return a.snapshotLocked()
	}

	instruction := strings.TrimSpace(a.edit.Instruction)
	if instruction == "" {
		// Local validation, no network round trip.
		a.errMsg = "Please enter an edit instruction"
		a.emitStateLocked()
		defer a.mu.Unlock()
		return a.snapshotLocked()
	}

	index := a.edit.Index
	artifact, ok := a.results.Get(index)
	if !ok {
		a.edit = nil
		a.errMsg = ErrNoSuchArtifact.Error()
		a.emitStateLocked()
		defer a.mu.Unlock()
		return a.snapshotLocked()
	}

	gen := a.generation
	a.edit.InFlight = true
	a.errMsg = ""
	a.emitStateLocked()
	a.mu.Unlock()

	replacement, err := a.runner.ApplyEdit(a.runContext(), artifact, instruction)

	a.mu.Lock()
	defer a.mu.Unlock()

	if gen != a.generation {
		if err == nil {
			ReleaseArtifacts([]pipeline.Artifact{replacement})
		}
		return a.snapshotLocked()
	}

	if err != nil {
		if a.edit != nil {
			a.edit.InFlight = false
		}
		a.errMsg = err.Error()
		a.logger.Error("Edit failed", "artifact", artifact.Name, "error", err)
		a.emitStateLocked()
		return a.snapshotLocked()
	}

	if err := a.results.Set(index, replacement); err != nil {
		ReleaseArtifacts([]pipeline.Artifact{replacement})
		a.edit = nil
		a.errMsg = err.Error()
		a.emitStateLocked()
		return a.snapshotLocked()
	}

	a.edit = nil
	a.logger.Info("Edit applied", "artifact", replacement.Name)
	a.emitStateLocked()
	return a.snapshotLocked()
}
