package canvas

import (
	"math"

	"github.com/kaleidodraw/kaleido/pkg/stroke"
)

// Zoom limits. Values outside this range are clamped, never rejected.
const (
	MinZoom = 0.1
	MaxZoom = 10.0
)

// ViewTransform is the zoom/pan/rotation state applied between canvas and
// view space. The zero value is not usable; start from [IdentityView] and
// derive new states through the With* methods, which clamp and normalize
// their inputs. ViewTransform is a value type: mutations produce new values,
// so published snapshots stay immutable.
type ViewTransform struct {
	Zoom     float64      // scale factor, clamped to [MinZoom, MaxZoom]
	Pan      stroke.Point // translation applied after rotation, in canvas units
	Rotation float64      // radians, normalized to [0, 2π)
}

// IdentityView returns the neutral view transform (zoom 1, no pan, no
// rotation).
func IdentityView() ViewTransform {
	return ViewTransform{Zoom: 1}
}

// ClampZoom restricts z to the valid zoom range.
func ClampZoom(z float64) float64 {
	return math.Min(MaxZoom, math.Max(MinZoom, z))
}

// NormalizeRotation wraps r into [0, 2π).
func NormalizeRotation(r float64) float64 {
	r = math.Mod(r, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	return r
}

// Normalized returns a copy of vt with zoom clamped and rotation wrapped
// into range. Every write path into a stored view transform goes through
// this.
func (vt ViewTransform) Normalized() ViewTransform {
	vt.Zoom = ClampZoom(vt.Zoom)
	vt.Rotation = NormalizeRotation(vt.Rotation)
	return vt
}

// WithZoom returns vt with the zoom replaced (clamped).
func (vt ViewTransform) WithZoom(z float64) ViewTransform {
	vt.Zoom = ClampZoom(z)
	return vt
}

// WithPan returns vt with the pan offset replaced.
func (vt ViewTransform) WithPan(p stroke.Point) ViewTransform {
	vt.Pan = p
	return vt
}

// WithRotation returns vt with the rotation replaced (normalized).
func (vt ViewTransform) WithRotation(r float64) ViewTransform {
	vt.Rotation = NormalizeRotation(r)
	return vt
}

// IsIdentity reports whether vt performs no transformation.
func (vt ViewTransform) IsIdentity() bool {
	return vt.Zoom == 1 && vt.Pan == (stroke.Point{}) && vt.Rotation == 0
}
