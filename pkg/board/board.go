// Package board is the drawing-state engine: it owns the stroke session,
// the undo/redo history, the symmetry configuration, and the view transform,
// and exposes the narrow mutation API everything else goes through.
//
// # State Discipline
//
// All mutations execute synchronously to completion, triggered by a
// serialized stream of input events from one producer. After every mutation
// the board publishes an immutable [Snapshot] to its registered listeners,
// in registration order, on the same goroutine. Readers only ever see
// complete snapshots — never a history buffer mid-truncation or a stroke
// mid-append — because snapshots copy the mutable edges (the in-progress
// point slice, the visible-stroke list) and share only immutable committed
// strokes.
//
// The board is not safe for concurrent mutation. One goroutine owns it;
// collaborators that want to react (renderer, share server, debug overlay)
// register a [Listener] and work from the snapshots they receive.
package board

import (
	"github.com/kaleidodraw/kaleido/pkg/canvas"
	"github.com/kaleidodraw/kaleido/pkg/history"
	"github.com/kaleidodraw/kaleido/pkg/observability"
	"github.com/kaleidodraw/kaleido/pkg/stroke"
	"github.com/kaleidodraw/kaleido/pkg/symmetry"
)

// Snapshot is an immutable view of the full drawing state, published after
// every mutation. Committed strokes are shared by reference (they never
// change after commit); everything else is copied.
type Snapshot struct {
	// Strokes are the visible committed strokes, oldest first.
	Strokes []*stroke.Stroke
	// Current is a frozen copy of the in-progress stroke, or nil.
	Current *stroke.Stroke
	// Symmetry is the active symmetry configuration.
	Symmetry symmetry.Config
	// View is the active view transform.
	View canvas.ViewTransform
	// CanUndo and CanRedo mirror the history cursor position.
	CanUndo bool
	CanRedo bool
}

// Listener receives snapshots after each board mutation. Callbacks run
// synchronously on the board's goroutine and must not mutate the board
// re-entrantly.
type Listener interface {
	BoardChanged(Snapshot)
}

// ListenerFunc adapts a function to the [Listener] interface.
type ListenerFunc func(Snapshot)

// BoardChanged calls f.
func (f ListenerFunc) BoardChanged(s Snapshot) { f(s) }

// Board owns the complete drawing state. Use [New] to create one.
type Board struct {
	session   session
	history   *history.Buffer
	sym       symmetry.Config
	view      canvas.ViewTransform
	listeners []Listener
}

// Options configures a new board.
type Options struct {
	// HistoryCapacity bounds the undo buffer. Non-positive values use
	// history.DefaultCapacity.
	HistoryCapacity int
	// Symmetry is the initial symmetry configuration. The zero value
	// (disabled, axes 0) is replaced by symmetry.NewConfig() disabled.
	Symmetry *symmetry.Config
}

// New creates a board with an empty history and the identity view transform.
func New(opts Options) *Board {
	sym := symmetry.NewConfig().WithEnabled(false)
	if opts.Symmetry != nil {
		sym = opts.Symmetry.WithAxes(opts.Symmetry.Axes)
	}
	return &Board{
		history: history.New(opts.HistoryCapacity),
		sym:     sym,
		view:    canvas.IdentityView(),
	}
}

// Subscribe registers a listener. Listeners are notified in registration
// order after every mutation, starting with the next one.
func (b *Board) Subscribe(l Listener) {
	if l != nil {
		b.listeners = append(b.listeners, l)
	}
}

// Snapshot builds an immutable view of the current state.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Strokes:  b.history.Visible(),
		Current:  b.session.current(),
		Symmetry: b.sym,
		View:     b.view,
		CanUndo:  b.history.CanUndo(),
		CanRedo:  b.history.CanRedo(),
	}
}

// publish pushes the post-mutation snapshot to all listeners.
func (b *Board) publish() {
	if len(b.listeners) == 0 {
		return
	}
	snap := b.Snapshot()
	for _, l := range b.listeners {
		l.BoardChanged(snap)
	}
}

// =============================================================================
// Input
// =============================================================================

// HandleInput applies one normalized input event to the stroke session.
// Events must arrive in order from a single producer. Misordered move/end
// events with no active session are silently ignored.
func (b *Board) HandleInput(ev stroke.InputEvent) {
	switch ev.Type {
	case stroke.InputStart:
		if discarded := b.session.start(ev); discarded > 0 {
			observability.Board().OnSessionCancel(discarded)
		}
	case stroke.InputMove:
		if !b.session.move(ev) {
			return
		}
	case stroke.InputEnd:
		s := b.session.end(ev)
		if s == nil {
			return
		}
		b.history.Commit(s)
		observability.Board().OnStrokeCommit(s.ID, s.Len(), b.history.Cursor())
	case stroke.InputCancel:
		if discarded := b.session.cancel(); discarded > 0 {
			observability.Board().OnSessionCancel(discarded)
		}
	default:
		return
	}
	b.publish()
}

// Drawing reports whether a stroke is currently in progress.
func (b *Board) Drawing() bool { return b.session.drawing() }

// =============================================================================
// History
// =============================================================================

// Undo steps the history cursor back. No-op at the beginning.
func (b *Board) Undo() {
	applied := b.history.Undo()
	observability.Board().OnUndo(applied, b.history.Cursor())
	if applied {
		b.publish()
	}
}

// Redo steps the history cursor forward. No-op at the end.
func (b *Board) Redo() {
	applied := b.history.Redo()
	observability.Board().OnRedo(applied, b.history.Cursor())
	if applied {
		b.publish()
	}
}

// ClearHistory discards all strokes, visible and redoable.
func (b *Board) ClearHistory() {
	discarded := b.history.Len()
	b.history.Clear()
	observability.Board().OnHistoryClear(discarded)
	b.publish()
}

// LoadStrokes replaces the history contents with strokes restored from a
// saved drawing. The history cursor lands at the end; capacity eviction
// applies as usual.
func (b *Board) LoadStrokes(strokes []*stroke.Stroke) {
	b.history.Clear()
	for _, s := range strokes {
		b.history.Commit(s)
	}
	b.publish()
}

// =============================================================================
// Configuration
// =============================================================================

// SetSymmetryEnabled toggles symmetry expansion.
func (b *Board) SetSymmetryEnabled(on bool) {
	b.sym = b.sym.WithEnabled(on)
	observability.Board().OnConfigChange("symmetry.enabled")
	b.publish()
}

// SetAxisCount sets the symmetry axis count, clamped to the valid range.
func (b *Board) SetAxisCount(n int) {
	b.sym = b.sym.WithAxes(n)
	observability.Board().OnConfigChange("symmetry.axes")
	b.publish()
}

// SetCenterPoint moves the symmetry center. The point is not clamped to the
// canvas; an out-of-bounds center is legal.
func (b *Board) SetCenterPoint(p stroke.Point) {
	b.sym = b.sym.WithCenter(p)
	observability.Board().OnConfigChange("symmetry.center")
	b.publish()
}

// Symmetry returns the active symmetry configuration.
func (b *Board) Symmetry() symmetry.Config { return b.sym }

// SetViewTransform replaces the view transform, clamping zoom and
// normalizing rotation.
func (b *Board) SetViewTransform(vt canvas.ViewTransform) {
	b.view = vt.Normalized()
	observability.Board().OnConfigChange("view")
	b.publish()
}

// View returns the active view transform.
func (b *Board) View() canvas.ViewTransform { return b.view }

// Reset cancels any in-progress stroke and restores the symmetry
// configuration and view transform to their defaults. History is untouched;
// use [Board.ClearHistory] for that.
func (b *Board) Reset() {
	if discarded := b.session.cancel(); discarded > 0 {
		observability.Board().OnSessionCancel(discarded)
	}
	b.sym = symmetry.NewConfig().WithEnabled(false)
	b.view = canvas.IdentityView()
	observability.Board().OnConfigChange("reset")
	b.publish()
}
