package application

import (
	"os"
	"path/filepath"

	"slimpdf/internal/pipeline"
)

// ResultSet owns the artifacts of the most recent successful run,
// including their on-disk files. Handles are released exactly once:
// when an artifact is replaced, when the set is replaced wholesale,
// or when the set is cleared.
type ResultSet struct {
	artifacts []pipeline.Artifact
}

func NewResultSet() *ResultSet {
	return &ResultSet{}
}

func (r *ResultSet) Len() int {
	return len(r.artifacts)
}

func (r *ResultSet) Get(index int) (pipeline.Artifact, bool) {
	if index < 0 || index >= len(r.artifacts) {
		return pipeline.Artifact{}, false
	}
	return r.artifacts[index], true
}

// List returns a copy of the artifact slice for snapshotting.
func (r *ResultSet) List() []pipeline.Artifact {
	out := make([]pipeline.Artifact, len(r.artifacts))
	copy(out, r.artifacts)
	return out
}

// Replace releases every currently held artifact and adopts the new set.
func (r *ResultSet) Replace(artifacts []pipeline.Artifact) {
	ReleaseArtifacts(r.artifacts)
	r.artifacts = artifacts
}

// Set swaps a single artifact, releasing the one it displaces.
func (r *ResultSet) Set(index int, artifact pipeline.Artifact) error {
	if index < 0 || index >= len(r.artifacts) {
		return ErrNoSuchArtifact
	}
	releaseArtifact(&r.artifacts[index])
	r.artifacts[index] = artifact
	return nil
}

// Clear releases all held artifacts and empties the set.
func (r *ResultSet) Clear() {
	ReleaseArtifacts(r.artifacts)
	r.artifacts = nil
}

// ReleaseArtifacts removes the backing files of artifacts that will
// never be owned by a ResultSet, such as the output of a stale run.
func ReleaseArtifacts(artifacts []pipeline.Artifact) {
	for i := range artifacts {
		releaseArtifact(&artifacts[i])
	}
}

func releaseArtifact(a *pipeline.Artifact) {
	if a.FilePath == "" {
		return
	}
	os.Remove(a.FilePath)
	// Run directories hold a single artifact each, so an empty
	// directory can go with its last file.
	os.Remove(filepath.Dir(a.FilePath))
	a.FilePath = ""
}
