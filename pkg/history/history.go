// Package history implements the bounded, branchable undo/redo buffer for
// committed strokes.
//
// The buffer is an ordered sequence of committed strokes plus a cursor.
// Strokes below the cursor are visible; strokes at or above it are the redo
// tail. Committing while a redo tail exists discards the tail (branch on
// write — there is no multi-branch tree). When the buffer reaches its
// capacity the oldest stroke is evicted first-in-first-out, so undo depth
// beyond the capacity is permanently lost.
//
// Invariant: 0 ≤ cursor ≤ len(strokes) ≤ capacity.
//
// The buffer is not safe for concurrent use; the board goroutine owns it and
// publishes immutable snapshots to readers (see package board).
package history

import "github.com/kaleidodraw/kaleido/pkg/stroke"

// DefaultCapacity bounds the buffer when no explicit capacity is given.
const DefaultCapacity = 50

// Buffer is the undo/redo history. Use [New] to create one; the zero value
// has zero capacity and drops every commit.
type Buffer struct {
	strokes []*stroke.Stroke
	cursor  int
	cap     int
}

// New creates a buffer holding at most capacity strokes. Non-positive
// capacities fall back to [DefaultCapacity].
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{cap: capacity}
}

// Commit appends a committed stroke. Any redo tail is discarded first; if
// the buffer is at capacity afterwards, the oldest stroke is evicted and the
// cursor shifts down with it. Commit is the only operation that can remove
// redo state.
func (b *Buffer) Commit(s *stroke.Stroke) {
	// Branch on write: drop everything above the cursor.
	b.strokes = b.strokes[:b.cursor]

	if b.cap <= 0 {
		return
	}
	if len(b.strokes) >= b.cap {
		evict := len(b.strokes) - b.cap + 1
		b.strokes = append([]*stroke.Stroke(nil), b.strokes[evict:]...)
		b.cursor -= evict
		if b.cursor < 0 {
			b.cursor = 0
		}
	}

	b.strokes = append(b.strokes, s)
	b.cursor = len(b.strokes)
}

// Undo moves the cursor back one stroke. It is a no-op at the beginning.
// It reports whether anything changed.
func (b *Buffer) Undo() bool {
	if b.cursor == 0 {
		return false
	}
	b.cursor--
	return true
}

// Redo moves the cursor forward one stroke. It is a no-op at the end.
// It reports whether anything changed.
func (b *Buffer) Redo() bool {
	if b.cursor == len(b.strokes) {
		return false
	}
	b.cursor++
	return true
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.strokes = nil
	b.cursor = 0
}

// CanUndo reports whether at least one stroke is visible.
func (b *Buffer) CanUndo() bool { return b.cursor > 0 }

// CanRedo reports whether a redo tail exists.
func (b *Buffer) CanRedo() bool { return b.cursor < len(b.strokes) }

// Len returns the total number of stored strokes, visible or not.
func (b *Buffer) Len() int { return len(b.strokes) }

// Cursor returns the current cursor position.
func (b *Buffer) Cursor() int { return b.cursor }

// Capacity returns the maximum number of strokes the buffer retains.
func (b *Buffer) Capacity() int { return b.cap }

// Visible returns the committed strokes below the cursor, oldest first.
// The slice is freshly allocated on every call so later mutations of the
// buffer never alias into a snapshot a reader is holding; the strokes
// themselves are shared because they are immutable after commit.
func (b *Buffer) Visible() []*stroke.Stroke {
	out := make([]*stroke.Stroke, b.cursor)
	copy(out, b.strokes[:b.cursor])
	return out
}

// All returns every stored stroke, oldest first, including the redo tail.
// Used by debug tooling (the timeline visualization).
func (b *Buffer) All() []*stroke.Stroke {
	out := make([]*stroke.Stroke, len(b.strokes))
	copy(out, b.strokes)
	return out
}
