package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kaleidodraw/kaleido/pkg/board"
	"github.com/kaleidodraw/kaleido/pkg/symmetry"
)

func newTestModel() DrawModel {
	m := NewDrawModel(board.New(board.Options{}), nil, 3)
	m.width, m.height = 40, 12
	return m
}

func pressAt(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motionAt(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion}
}

func releaseAt(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{}
}

func TestMouseGestureCommitsStroke(t *testing.T) {
	m := newTestModel()

	m = m.updateMouse(pressAt(5, 5))
	m = m.updateMouse(motionAt(6, 5))
	m = m.updateMouse(releaseAt(7, 5))

	snap := m.board.Snapshot()
	if len(snap.Strokes) != 1 {
		t.Fatalf("committed strokes = %d, want 1", len(snap.Strokes))
	}
	if snap.Strokes[0].Len() != 3 {
		t.Errorf("points = %d, want 3", snap.Strokes[0].Len())
	}
	if m.pressed {
		t.Error("pressed = true after release")
	}
}

func TestMotionWithoutPressIsIgnored(t *testing.T) {
	m := newTestModel()

	m = m.updateMouse(motionAt(5, 5))
	m = m.updateMouse(releaseAt(5, 5))

	if n := len(m.board.Snapshot().Strokes); n != 0 {
		t.Errorf("committed strokes = %d, want 0", n)
	}
}

func TestStatusBarRowsDoNotDraw(t *testing.T) {
	m := newTestModel()

	// Bottom two rows are the status bar.
	m = m.updateMouse(pressAt(5, m.height-1))

	if m.board.Drawing() {
		t.Error("press on the status bar started a stroke")
	}
}

func TestKeySymmetryToggle(t *testing.T) {
	m := newTestModel()
	if m.board.Symmetry().Enabled {
		t.Fatal("symmetry enabled at start")
	}

	model, _ := m.updateKey(key("s"))
	m = model.(DrawModel)

	if !m.board.Symmetry().Enabled {
		t.Error("s did not enable symmetry")
	}
}

func TestKeyAxisAdjustClamps(t *testing.T) {
	m := newTestModel()

	for i := 0; i < 30; i++ {
		model, _ := m.updateKey(key("]"))
		m = model.(DrawModel)
	}
	if got := m.board.Symmetry().Axes; got != symmetry.MaxAxes {
		t.Errorf("Axes = %d, want clamped to %d", got, symmetry.MaxAxes)
	}

	for i := 0; i < 30; i++ {
		model, _ := m.updateKey(key("["))
		m = model.(DrawModel)
	}
	if got := m.board.Symmetry().Axes; got != symmetry.MinAxes {
		t.Errorf("Axes = %d, want clamped to %d", got, symmetry.MinAxes)
	}
}

func TestKeyEscCancelsStroke(t *testing.T) {
	m := newTestModel()
	m = m.updateMouse(pressAt(5, 5))

	model, _ := m.updateKey(key("esc"))
	m = model.(DrawModel)

	if m.board.Drawing() {
		t.Error("esc did not cancel the stroke")
	}
	if n := len(m.board.Snapshot().Strokes); n != 0 {
		t.Errorf("committed strokes = %d, want 0", n)
	}
}

func TestKeyZoom(t *testing.T) {
	m := newTestModel()

	model, _ := m.updateKey(key("+"))
	m = model.(DrawModel)
	if got := m.board.View().Zoom; got != 1.25 {
		t.Errorf("Zoom = %v, want 1.25", got)
	}

	model, _ = m.updateKey(key("0"))
	m = model.(DrawModel)
	if !m.board.View().IsIdentity() {
		t.Error("0 did not reset the view")
	}
}

func TestViewRendersStatusBar(t *testing.T) {
	m := newTestModel()
	out := m.View()

	if !strings.Contains(out, "0 strokes") {
		t.Errorf("status bar missing stroke count:\n%s", out)
	}
	if !strings.Contains(out, "symmetry off") {
		t.Errorf("status bar missing symmetry state:\n%s", out)
	}
}

func TestRenderCanvasPlotsStroke(t *testing.T) {
	m := newTestModel()
	m = m.updateMouse(pressAt(10, 3))
	m = m.updateMouse(motionAt(20, 3))
	m = m.updateMouse(releaseAt(30, 3))

	out := m.renderCanvas()
	if !strings.ContainsAny(out, "█▀▄") {
		t.Error("rendered canvas contains no drawn cells")
	}
}

func TestPlotLine(t *testing.T) {
	var cells [][2]int
	set := func(x, y int) { cells = append(cells, [2]int{x, y}) }

	plotLine(0, 0, 3, 0, set)
	if len(cells) != 4 {
		t.Errorf("horizontal line plotted %d cells, want 4", len(cells))
	}

	cells = nil
	plotLine(2, 2, 2, 2, set)
	if len(cells) != 1 {
		t.Errorf("degenerate line plotted %d cells, want 1", len(cells))
	}

	cells = nil
	plotLine(0, 0, 2, 2, set)
	if len(cells) != 3 {
		t.Errorf("diagonal line plotted %d cells, want 3", len(cells))
	}
}

func TestCellToCanvasRoundTrip(t *testing.T) {
	m := newTestModel()
	p := m.cellToCanvas(m.width/2, m.canvasRows()/2)

	// The middle of the drawing area should land near the canvas center.
	if p.X < 256 || p.X > 768 || p.Y < 256 || p.Y > 768 {
		t.Errorf("center cell maps to %v, want near (512, 512)", p)
	}
}
