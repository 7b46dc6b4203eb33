package board

import (
	"time"

	"github.com/kaleidodraw/kaleido/pkg/stroke"
)

// sessionState enumerates the stroke-session states.
type sessionState int

const (
	stateIdle sessionState = iota
	stateDrawing
)

// session is the finite-state machine that turns a sequence of positioned
// input samples into a committed stroke. Exactly one stroke can be in
// progress at a time.
//
// Transition table:
//
//	Idle    --start--> Drawing   (session stroke initialized to [point])
//	Drawing --move-->  Drawing   (point appended)
//	Drawing --end-->   Idle      (point appended, stroke frozen and returned)
//	Drawing --cancel-> Idle      (stroke discarded)
//
// A move or end received while Idle is a silent no-op; upstream event
// ordering is not guaranteed to be clean and misordered tails of a gesture
// must not be treated as errors. A start received while Drawing implicitly
// cancels the previous stroke before starting the new one, so a lost end
// event can never wedge the session.
type session struct {
	state  sessionState
	points []stroke.StrokePoint
	device string
}

// drawing reports whether a stroke is in progress.
func (s *session) drawing() bool { return s.state == stateDrawing }

// start begins a new stroke. If one is already in progress it is discarded
// first; the number of discarded points is returned so the caller can report
// the implicit cancel.
func (s *session) start(ev stroke.InputEvent) (discarded int) {
	discarded = 0
	if s.state == stateDrawing {
		discarded = len(s.points)
	}
	s.state = stateDrawing
	s.points = []stroke.StrokePoint{ev.Sample()}
	s.device = ev.DeviceType
	return discarded
}

// move appends a sample to the in-progress stroke. No-op while Idle.
func (s *session) move(ev stroke.InputEvent) bool {
	if s.state != stateDrawing {
		return false
	}
	s.points = append(s.points, ev.Sample())
	return true
}

// end appends the final sample and freezes the stroke. The returned stroke
// carries a freshly generated id and owns its point slice outright; the
// session releases all references to it. Returns nil while Idle.
func (s *session) end(ev stroke.InputEvent) *stroke.Stroke {
	if s.state != stateDrawing {
		return nil
	}
	points := append(s.points, ev.Sample())
	s.state = stateIdle
	s.points = nil

	return &stroke.Stroke{
		ID:          stroke.NewID(),
		Points:      points,
		CommittedAt: time.Now().UnixMilli(),
		Meta: stroke.Meta{
			DeviceType:  s.device,
			TotalPoints: len(points),
		},
	}
}

// cancel discards the in-progress stroke, returning how many points were
// dropped. No-op while Idle.
func (s *session) cancel() (discarded int) {
	discarded = len(s.points)
	s.state = stateIdle
	s.points = nil
	return discarded
}

// current returns a frozen copy of the in-progress points, or nil while
// Idle. The copy keeps published snapshots immune to later appends.
func (s *session) current() *stroke.Stroke {
	if s.state != stateDrawing {
		return nil
	}
	points := make([]stroke.StrokePoint, len(s.points))
	copy(points, s.points)
	return &stroke.Stroke{
		ID:     currentStrokeID,
		Points: points,
		Meta: stroke.Meta{
			DeviceType:  s.device,
			TotalPoints: len(points),
		},
	}
}

// currentStrokeID is the placeholder id carried by in-progress snapshot
// strokes. The real id is generated when the stroke is frozen at commit.
const currentStrokeID = "__current__"
