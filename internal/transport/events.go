package transport

import (
	"context"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// Emitter pushes events to the frontend. The indirection keeps the
// application layer testable without a running Wails context.
type Emitter interface {
	Emit(event string, payload ...interface{})
}

type wailsEmitter struct {
	ctx context.Context
}

// NewWailsEmitter creates an Emitter backed by the Wails event bridge.
func NewWailsEmitter(ctx context.Context) Emitter {
	return &wailsEmitter{ctx: ctx}
}

func (e *wailsEmitter) Emit(event string, payload ...interface{}) {
	wailsruntime.EventsEmit(e.ctx, event, payload...)
}

// NopEmitter discards all events.
type NopEmitter struct{}

func (NopEmitter) Emit(event string, payload ...interface{}) {}
