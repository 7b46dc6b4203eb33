package stroke

// InputType identifies the phase of a normalized pointer gesture.
type InputType int

const (
	// InputStart begins a new drawing gesture.
	InputStart InputType = iota
	// InputMove extends the gesture with another sample.
	InputMove
	// InputEnd finishes the gesture, committing the stroke.
	InputEnd
	// InputCancel aborts the gesture, discarding the stroke.
	InputCancel
)

// String returns the event name used in logs and debug output.
func (t InputType) String() string {
	switch t {
	case InputStart:
		return "start"
	case InputMove:
		return "move"
	case InputEnd:
		return "end"
	case InputCancel:
		return "cancel"
	}
	return "unknown"
}

// InputEvent is one normalized pointer sample, already resampled, smoothed,
// and converted to canvas space by the input collaborator. The drawing core
// consumes these in arrival order; it never sees raw device events.
type InputEvent struct {
	Type       InputType
	X, Y       float64 // canvas-space position
	Pressure   float64 // normalized to [0,1]
	TimeMs     int64   // unix milliseconds
	DeviceType string  // "mouse", "pen", "touch"; informational only
}

// Sample converts the event position into a [StrokePoint].
func (e InputEvent) Sample() StrokePoint {
	return StrokePoint{X: e.X, Y: e.Y, Pressure: e.Pressure, TimeMs: e.TimeMs}
}
