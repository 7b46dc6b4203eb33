// Package stroke defines the core data model for freehand drawing:
// pressure-sampled points, strokes, and the normalized input events that
// produce them.
//
// A [Stroke] is the unit of drawing: a timestamped, ordered sequence of
// [StrokePoint] samples captured during one continuous gesture. Strokes are
// append-only while a drawing session is in progress and deeply immutable
// once committed to history. Everything downstream (symmetry expansion,
// rendering, persistence) relies on that immutability: committed strokes are
// shared by reference and never copied defensively.
package stroke

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Point is a 2D point. The coordinate space it belongs to (device, canvas,
// view, or clip) is determined by context; see package canvas for the
// conversions between spaces.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// StrokePoint is a single pressure-sampled input position in canvas space.
// StrokePoints are immutable once created.
type StrokePoint struct {
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
	Pressure float64 `json:"pressure" bson:"pressure"` // normalized to [0,1] upstream
	TimeMs   int64   `json:"time_ms" bson:"time_ms"`   // capture time, unix milliseconds
}

// Pos returns the point's position as a [Point].
func (p StrokePoint) Pos() Point { return Point{X: p.X, Y: p.Y} }

// Meta carries descriptive stroke metadata. It is frozen at commit time
// together with the point sequence.
type Meta struct {
	DeviceType  string `json:"device_type,omitempty" bson:"device_type,omitempty"`
	TotalPoints int    `json:"total_points" bson:"total_points"`
}

// Stroke is one committed drawing gesture.
//
// Ownership rules: while in progress a stroke's point slice is owned by the
// drawing session and grows by appending; after commit the stroke is owned
// by the history buffer and must not be mutated by anyone. Consumers that
// need a modified variant (symmetry expansion, for example) build new
// Stroke values instead.
type Stroke struct {
	ID          string        `json:"id" bson:"id"`
	Points      []StrokePoint `json:"points" bson:"points"`
	CommittedAt int64         `json:"committed_at" bson:"committed_at"` // unix milliseconds
	Meta        Meta          `json:"meta" bson:"meta"`
}

// NewID generates a fresh unique stroke identifier.
func NewID() string { return uuid.NewString() }

// Len returns the number of points in the stroke.
func (s *Stroke) Len() int { return len(s.Points) }

// Bounds returns the axis-aligned bounding box of the stroke's points.
// The second return value is false for an empty stroke.
func (s *Stroke) Bounds() (min, max Point, ok bool) {
	if len(s.Points) == 0 {
		return Point{}, Point{}, false
	}
	min = s.Points[0].Pos()
	max = min
	for _, p := range s.Points[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max, true
}

// MarshalJSON is the canonical serialization used by the export command and
// the share server. It exists so that a nil point slice still serializes as
// an empty array, keeping the format stable for external consumers.
func (s Stroke) MarshalJSON() ([]byte, error) {
	type alias Stroke
	a := alias(s)
	if a.Points == nil {
		a.Points = []StrokePoint{}
	}
	return json.Marshal(a)
}
