// Package symmetry expands strokes into rotationally symmetric copies.
//
// The engine is a pure function: one stroke plus a [Config] produces
// axis-count rotated copies of that stroke about the configured center.
// Because it is stateless it can be applied identically to committed strokes
// (batch expansion during a full redraw) and to the in-progress stroke
// (incremental expansion while the pointer is still down) — the same input
// always yields the same output.
//
// Expanded copies carry derived ids of the form "<origin>#<axis>", so every
// copy is distinguishable but traceable to its source stroke.
package symmetry

import (
	"fmt"
	"math"

	"github.com/kaleidodraw/kaleido/pkg/canvas"
	"github.com/kaleidodraw/kaleido/pkg/stroke"
)

// Axis count limits. Writes outside this range are clamped, never rejected.
const (
	MinAxes = 2
	MaxAxes = 16
)

// DefaultAxes is the axis count used when no configuration is given.
const DefaultAxes = 6

// Config controls symmetry expansion. Use [NewConfig] for a valid default
// and the With* methods for clamped updates.
//
// Center is deliberately not restricted to the canvas bounds: an
// out-of-bounds center is legal and simply produces copies partially or
// fully outside the visible canvas.
type Config struct {
	Enabled bool         `json:"enabled" bson:"enabled" toml:"enabled"`
	Axes    int          `json:"axes" bson:"axes" toml:"axes"`
	Center  stroke.Point `json:"center" bson:"center" toml:"center"`
}

// NewConfig returns an enabled config with the default axis count and the
// center at the canvas midpoint.
func NewConfig() Config {
	return Config{Enabled: true, Axes: DefaultAxes, Center: canvas.Center()}
}

// ClampAxes restricts n to the valid axis-count range.
func ClampAxes(n int) int {
	if n < MinAxes {
		return MinAxes
	}
	if n > MaxAxes {
		return MaxAxes
	}
	return n
}

// WithEnabled returns c with expansion toggled.
func (c Config) WithEnabled(on bool) Config {
	c.Enabled = on
	return c
}

// WithAxes returns c with the axis count replaced (clamped).
func (c Config) WithAxes(n int) Config {
	c.Axes = ClampAxes(n)
	return c
}

// WithCenter returns c with the rotation center replaced.
func (c Config) WithCenter(p stroke.Point) Config {
	c.Center = p
	return c
}

// CopyID derives the id of the k-th rotational copy of the stroke id.
func CopyID(id string, k int) string {
	return fmt.Sprintf("%s#%d", id, k)
}

// Expand produces the rotationally symmetric copies of s under cfg.
//
// When expansion is disabled or the axis count is degenerate (≤ 1) the
// result is a single-element slice holding s itself, untouched. Otherwise
// the result holds cfg.Axes strokes; copy k rotates every point by
// 2π·k/axes about cfg.Center, copying pressure and timestamp unchanged.
// Copy 0 is the identity rotation and reproduces the original point values
// exactly.
//
// s is never mutated; each copy owns a fresh point slice.
func Expand(s *stroke.Stroke, cfg Config) []*stroke.Stroke {
	if !cfg.Enabled || cfg.Axes <= 1 {
		return []*stroke.Stroke{s}
	}

	out := make([]*stroke.Stroke, cfg.Axes)
	for k := 0; k < cfg.Axes; k++ {
		out[k] = rotate(s, cfg.Center, k, cfg.Axes)
	}
	return out
}

// rotate builds the k-th copy of s about center with n total axes.
// k == 0 copies the points verbatim: translating to the center and back
// would otherwise round when point and center magnitudes differ wildly,
// and copy 0 must be bit-identical to the source.
func rotate(s *stroke.Stroke, center stroke.Point, k, n int) *stroke.Stroke {
	theta := 2 * math.Pi * float64(k) / float64(n)
	sin, cos := math.Sincos(theta)

	points := make([]stroke.StrokePoint, len(s.Points))
	if k == 0 {
		copy(points, s.Points)
	} else {
		for i, p := range s.Points {
			dx := p.X - center.X
			dy := p.Y - center.Y
			points[i] = stroke.StrokePoint{
				X:        center.X + dx*cos - dy*sin,
				Y:        center.Y + dx*sin + dy*cos,
				Pressure: p.Pressure,
				TimeMs:   p.TimeMs,
			}
		}
	}

	return &stroke.Stroke{
		ID:          CopyID(s.ID, k),
		Points:      points,
		CommittedAt: s.CommittedAt,
		Meta:        s.Meta,
	}
}
