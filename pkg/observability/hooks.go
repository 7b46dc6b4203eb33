// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about board mutations, store operations, and rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the drawing core dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, plain logging)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBoardHooks(&myBoardHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Board().OnStrokeCommit(id, points, visible)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Board Hooks
// =============================================================================

// BoardHooks receives events from the drawing board as mutations complete.
// All callbacks run synchronously on the board's event goroutine and must
// return quickly.
type BoardHooks interface {
	// OnStrokeCommit records a stroke reaching history.
	// visible is the number of visible strokes after the commit.
	OnStrokeCommit(strokeID string, points, visible int)

	// OnSessionCancel records an in-progress stroke being discarded.
	OnSessionCancel(points int)

	// OnUndo and OnRedo record history cursor movement.
	// applied is false when the operation was a no-op at a boundary.
	OnUndo(applied bool, visible int)
	OnRedo(applied bool, visible int)

	// OnHistoryClear records the history being emptied.
	OnHistoryClear(discarded int)

	// OnConfigChange records a symmetry or view-transform update.
	OnConfigChange(field string)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from drawing persistence backends.
type StoreHooks interface {
	// OnSave records a drawing write. points is the total point count of
	// the saved drawing.
	OnSave(ctx context.Context, backend, drawingID string, points int, duration time.Duration, err error)

	// OnLoad records a drawing read. found is false on a clean miss.
	OnLoad(ctx context.Context, backend, drawingID string, found bool, duration time.Duration, err error)

	// OnDelete records a drawing removal.
	OnDelete(ctx context.Context, backend, drawingID string, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from export and render operations.
type RenderHooks interface {
	// OnRenderStart records the beginning of an export.
	OnRenderStart(ctx context.Context, format string, strokes int)

	// OnRenderComplete records the end of an export.
	OnRenderComplete(ctx context.Context, format string, bytes int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBoardHooks is a no-op implementation of BoardHooks.
type NoopBoardHooks struct{}

func (NoopBoardHooks) OnStrokeCommit(string, int, int) {}
func (NoopBoardHooks) OnSessionCancel(int)             {}
func (NoopBoardHooks) OnUndo(bool, int)                {}
func (NoopBoardHooks) OnRedo(bool, int)                {}
func (NoopBoardHooks) OnHistoryClear(int)              {}
func (NoopBoardHooks) OnConfigChange(string)           {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnSave(context.Context, string, string, int, time.Duration, error) {}
func (NoopStoreHooks) OnLoad(context.Context, string, string, bool, time.Duration, error) {
}
func (NoopStoreHooks) OnDelete(context.Context, string, string, error) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string, int)                         {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	boardHooks  BoardHooks  = NoopBoardHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetBoardHooks registers custom board hooks.
// This should be called once at application startup before any board operations.
func SetBoardHooks(h BoardHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		boardHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any render operations.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Board returns the registered board hooks.
func Board() BoardHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return boardHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	boardHooks = NoopBoardHooks{}
	storeHooks = NoopStoreHooks{}
	renderHooks = NoopRenderHooks{}
}
