// Package render turns board snapshots into render-ready stroke lists and
// final output formats.
//
// # Overview
//
// Rendering is a read-only collaborator of the drawing core: it consumes
// immutable [board.Snapshot] values and never mutates state. The central
// operation is [List], which expands every visible stroke — plus the
// in-progress stroke, if any — through the symmetry engine and flattens the
// result in drawing order. Later strokes draw on top.
//
// Sinks transform the render list into concrete formats:
//
//   - SVG: [WriteSVG] — polyline vector output
//   - PNG: [WritePNG] — raster output via fogleman/gg
//   - PDF: [WritePDF] — print output via gofpdf
//   - JSON: [WriteJSON] — the canonical stroke serialization
//
// The timeline sink ([HistoryDOT], [TimelineSVG], [TimelinePNG]) is debug
// tooling: it draws the undo history itself — committed strokes, cursor,
// redo tail — as a Graphviz graph.
package render

import (
	"github.com/kaleidodraw/kaleido/pkg/board"
	"github.com/kaleidodraw/kaleido/pkg/stroke"
	"github.com/kaleidodraw/kaleido/pkg/symmetry"
)

// List expands the snapshot's strokes into the render-ready list: every
// visible committed stroke followed by the in-progress stroke, each expanded
// through the symmetry engine, flattened in emission order. The caller draws
// the list front to back; later entries overdraw earlier ones.
//
// Expansion is identical for committed and in-progress strokes, so a stroke
// never jumps when it transitions from live preview to history.
func List(snap board.Snapshot) []*stroke.Stroke {
	out := make([]*stroke.Stroke, 0, (len(snap.Strokes)+1)*expansionFactor(snap.Symmetry))
	for _, s := range snap.Strokes {
		out = append(out, symmetry.Expand(s, snap.Symmetry)...)
	}
	if snap.Current != nil {
		out = append(out, symmetry.Expand(snap.Current, snap.Symmetry)...)
	}
	return out
}

func expansionFactor(cfg symmetry.Config) int {
	if !cfg.Enabled || cfg.Axes <= 1 {
		return 1
	}
	return cfg.Axes
}
