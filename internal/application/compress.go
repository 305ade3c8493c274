package application

import (
	"slimpdf/internal/common"
	"slimpdf/internal/pipeline"
)

// Compress starts a compression run for the selected file. Without a
// selected file it is a no-op. The run executes in the background;
// progress and the final state arrive as events. Starting a new run
// supersedes any run still in flight: the older run's output is
// discarded when it lands.
func (a *App) Compress() AppState {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.source == nil {
		return a.snapshotLocked()
	}

	a.generation++
	gen := a.generation

	a.results.Clear()
	a.edit = nil
	a.status = StatusProcessing
	a.statusMsg = ""
	a.errMsg = ""

	source := *a.source
	opts := a.options

	a.logger.Info("Compression started", "file", source.Name, "format", opts.Format, "level", opts.Level)
	a.emitStateLocked()

	go a.runCompression(gen, source, opts)

	return a.snapshotLocked()
}

func (a *App) runCompression(gen uint64, source pipeline.SourceFile, opts pipeline.Options) {
	onProgress := func(message string) {
		a.mu.Lock()
		defer a.mu.Unlock()
		if gen != a.generation {
			return
		}
		a.statusMsg = message
		a.emitter.Emit(common.EventPipelineProgress, map[string]interface{}{"message": message})
		a.emitStateLocked()
	}

	artifacts, err := a.runner.Run(a.runContext(), source, opts, onProgress)

	a.mu.Lock()
	defer a.mu.Unlock()

	if gen != a.generation {
		// A newer run or a reset superseded this one; its output
		// must not surface and its files are not owned by anyone.
		ReleaseArtifacts(artifacts)
		return
	}

	a.statusMsg = ""
	if err != nil {
		a.status = StatusError
		a.errMsg = err.Error()
		a.logger.Error("Compression failed", "file", source.Name, "error", err)
		a.emitStateLocked()
		return
	}

	a.results.Replace(artifacts)
	a.status = StatusSuccess

	var bytesOut int64
	for _, artifact := range artifacts {
		bytesOut += artifact.CompressedSize
	}
	if a.stats != nil {
		a.stats.RecordRun(len(artifacts), source.Size, bytesOut)
		a.emitter.Emit(common.EventStatsUpdate, a.stats.Snapshot())
	}

	a.logger.Info("Compression succeeded", "file", source.Name, "artifacts", len(artifacts))
	a.emitStateLocked()
}
