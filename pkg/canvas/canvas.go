// Package canvas defines the coordinate spaces of the drawing surface and
// the pure conversions between them.
//
// # Coordinate Spaces
//
// Four spaces exist, each represented by a plain 2D point:
//
//   - Device: physical pixels, viewport-relative, Y-down, unbounded.
//   - Canvas: the logical 1024×1024 drawing square, Y-down. Strokes and the
//     symmetry center live here; the center of the square is (512, 512).
//   - View: canvas space after applying the [ViewTransform] (scale by zoom,
//     rotate, then translate by the pan offset).
//   - Clip: render-normalized GPU clip space, [-1, 1] on both axes, Y-up.
//     Converting from canvas requires a Y flip.
//
// # Conversion Pipeline
//
// Input handling maps Device → Canvas (through the inverse view transform);
// rendering maps Canvas → Clip. All conversions are pure functions and
// invertible as long as zoom is positive, which [ClampZoom] guarantees.
// Round-trips recover the original point within floating-point tolerance.
//
// The validation helpers ([InCanvasBounds], [InClipBounds]) only report
// whether a point lies inside its space. Nothing in this package clamps
// positions; clamping input is upstream policy.
package canvas

import (
	"math"

	"github.com/kaleidodraw/kaleido/pkg/stroke"
)

// Canvas space dimensions. The drawing surface is a fixed logical square;
// device viewports of any size map onto it uniformly.
const (
	// Size is the side length of the canvas square.
	Size = 1024.0
	// CenterX, CenterY locate the default symmetry center.
	CenterX = Size / 2
	CenterY = Size / 2
)

// Center returns the canvas midpoint (512, 512).
func Center() stroke.Point { return stroke.Point{X: CenterX, Y: CenterY} }

// Viewport describes the device pixel area the canvas is displayed in.
type Viewport struct {
	Width  float64
	Height float64
}

// scale returns the uniform device-pixels-per-canvas-unit factor and the
// device offset that centers the canvas square inside the viewport.
func (v Viewport) scale() (s, ox, oy float64) {
	short := v.Width
	if v.Height < short {
		short = v.Height
	}
	s = short / Size
	ox = (v.Width - Size*s) / 2
	oy = (v.Height - Size*s) / 2
	return s, ox, oy
}

// =============================================================================
// Canvas ↔ View
// =============================================================================

// CanvasToView applies the view transform to a canvas-space point:
// scale by zoom, rotate by the view rotation, then translate by the pan
// offset. All operations are relative to the canvas origin.
func CanvasToView(p stroke.Point, vt ViewTransform) stroke.Point {
	x := p.X * vt.Zoom
	y := p.Y * vt.Zoom
	sin, cos := math.Sincos(vt.Rotation)
	return stroke.Point{
		X: x*cos - y*sin + vt.Pan.X,
		Y: x*sin + y*cos + vt.Pan.Y,
	}
}

// ViewToCanvas inverts [CanvasToView]. The inverse exists because zoom is
// clamped to a positive range.
func ViewToCanvas(p stroke.Point, vt ViewTransform) stroke.Point {
	x := p.X - vt.Pan.X
	y := p.Y - vt.Pan.Y
	sin, cos := math.Sincos(-vt.Rotation)
	return stroke.Point{
		X: (x*cos - y*sin) / vt.Zoom,
		Y: (x*sin + y*cos) / vt.Zoom,
	}
}

// =============================================================================
// Device ↔ Canvas
// =============================================================================

// DeviceToCanvas maps a device pixel position to canvas space: the viewport
// is first mapped uniformly onto view space, then the inverse view transform
// is applied. This is the conversion used by input handling.
func DeviceToCanvas(p stroke.Point, vp Viewport, vt ViewTransform) stroke.Point {
	s, ox, oy := vp.scale()
	view := stroke.Point{X: (p.X - ox) / s, Y: (p.Y - oy) / s}
	return ViewToCanvas(view, vt)
}

// CanvasToDevice inverts [DeviceToCanvas].
func CanvasToDevice(p stroke.Point, vp Viewport, vt ViewTransform) stroke.Point {
	view := CanvasToView(p, vt)
	s, ox, oy := vp.scale()
	return stroke.Point{X: view.X*s + ox, Y: view.Y*s + oy}
}

// =============================================================================
// Canvas ↔ Clip
// =============================================================================

// CanvasToClip maps canvas space to render-normalized clip space. Canvas is
// Y-down with x, y in [0, 1024]; clip is Y-up with both axes in [-1, 1], so
// the Y axis flips.
func CanvasToClip(p stroke.Point) stroke.Point {
	return stroke.Point{
		X: p.X/CenterX - 1,
		Y: 1 - p.Y/CenterY,
	}
}

// ClipToCanvas inverts [CanvasToClip].
func ClipToCanvas(p stroke.Point) stroke.Point {
	return stroke.Point{
		X: (p.X + 1) * CenterX,
		Y: (1 - p.Y) * CenterY,
	}
}

// =============================================================================
// Validation
// =============================================================================

// InCanvasBounds reports whether p lies inside the canvas square [0, 1024]².
func InCanvasBounds(p stroke.Point) bool {
	return p.X >= 0 && p.X <= Size && p.Y >= 0 && p.Y <= Size
}

// InClipBounds reports whether p lies inside clip space [-1, 1]².
func InClipBounds(p stroke.Point) bool {
	return p.X >= -1 && p.X <= 1 && p.Y >= -1 && p.Y <= 1
}
