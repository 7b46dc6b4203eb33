package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kaleidodraw/kaleido/pkg/board"
	"github.com/kaleidodraw/kaleido/pkg/canvas"
	"github.com/kaleidodraw/kaleido/pkg/render"
	"github.com/kaleidodraw/kaleido/pkg/store"
	"github.com/kaleidodraw/kaleido/pkg/stroke"
)

// Status bar styles.
var (
	statusBarStyle  = lipgloss.NewStyle().Foreground(colorWhite).Background(lipgloss.Color("236"))
	statusKeyStyle  = lipgloss.NewStyle().Foreground(colorCyan).Background(lipgloss.Color("236"))
	statusWarnStyle = lipgloss.NewStyle().Foreground(colorYellow).Background(lipgloss.Color("236"))
)

// Terminal cells are roughly twice as tall as wide, so the drawing surface
// rasterizes two vertical pixels per cell using half-block characters.
const pixelsPerCell = 2

// DrawModel is the bubbletea model for the interactive drawing surface.
//
// All board mutations happen inside Update, which bubbletea runs on a
// single goroutine — the serialized-event-stream requirement of the drawing
// core holds by construction.
type DrawModel struct {
	board *board.Board
	store store.Store
	brush float64

	width  int // terminal cells
	height int

	pressed bool   // left button currently down
	status  string // transient status message
	saved   string // id of the last saved drawing, if any
}

// NewDrawModel creates the drawing surface model.
func NewDrawModel(b *board.Board, st store.Store, brush float64) DrawModel {
	return DrawModel{board: b, store: st, brush: brush, width: 80, height: 24}
}

// SavedDrawingID returns the id of the drawing saved during the session,
// or empty if nothing was saved.
func (m DrawModel) SavedDrawingID() string { return m.saved }

func (m DrawModel) Init() tea.Cmd {
	return nil
}

// saveResultMsg reports the outcome of an async gallery save.
type saveResultMsg struct {
	id  string
	err error
}

// saveCmd persists the current committed strokes to the gallery.
func (m DrawModel) saveCmd() tea.Cmd {
	snap := m.board.Snapshot()
	st := m.store
	return func() tea.Msg {
		name := "drawing " + time.Now().Format("2006-01-02 15:04:05")
		d := store.New(name, snap.Strokes, snap.Symmetry)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := st.Put(ctx, d); err != nil {
			return saveResultMsg{err: err}
		}
		return saveResultMsg{id: d.ID}
	}
}

func (m DrawModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.MouseMsg:
		return m.updateMouse(msg), nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case saveResultMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.saved = msg.id
			m.status = "saved " + shortID(msg.id)
		}
	}
	return m, nil
}

// updateMouse translates terminal mouse events into stroke session input.
func (m DrawModel) updateMouse(msg tea.MouseMsg) DrawModel {
	// The bottom two rows are the status bar, not the drawing surface.
	if msg.Y >= m.canvasRows() && msg.Action != tea.MouseActionRelease {
		return m
	}

	ev := stroke.InputEvent{
		Pressure:   1,
		TimeMs:     time.Now().UnixMilli(),
		DeviceType: "mouse",
	}
	p := m.cellToCanvas(msg.X, msg.Y)
	ev.X, ev.Y = p.X, p.Y

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.pressed = true
		ev.Type = stroke.InputStart
	case msg.Action == tea.MouseActionMotion && m.pressed:
		ev.Type = stroke.InputMove
	case msg.Action == tea.MouseActionRelease && m.pressed:
		m.pressed = false
		ev.Type = stroke.InputEnd
	default:
		return m
	}

	m.board.HandleInput(ev)
	return m
}

func (m DrawModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	vt := m.board.View()
	sym := m.board.Symmetry()
	pan := canvas.Size * 0.05 / vt.Zoom

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.board.HandleInput(stroke.InputEvent{Type: stroke.InputCancel, TimeMs: time.Now().UnixMilli()})
		m.pressed = false
		m.status = "stroke cancelled"
	case "u":
		m.board.Undo()
	case "y":
		m.board.Redo()
	case "c":
		m.board.ClearHistory()
		m.status = "history cleared"
	case "s":
		m.board.SetSymmetryEnabled(!sym.Enabled)
	case "[":
		m.board.SetAxisCount(sym.Axes - 1)
	case "]":
		m.board.SetAxisCount(sym.Axes + 1)
	case "left":
		m.board.SetViewTransform(vt.WithPan(stroke.Point{X: vt.Pan.X + pan, Y: vt.Pan.Y}))
	case "right":
		m.board.SetViewTransform(vt.WithPan(stroke.Point{X: vt.Pan.X - pan, Y: vt.Pan.Y}))
	case "up":
		m.board.SetViewTransform(vt.WithPan(stroke.Point{X: vt.Pan.X, Y: vt.Pan.Y + pan}))
	case "down":
		m.board.SetViewTransform(vt.WithPan(stroke.Point{X: vt.Pan.X, Y: vt.Pan.Y - pan}))
	case "+", "=":
		m.board.SetViewTransform(vt.WithZoom(vt.Zoom * 1.25))
	case "-":
		m.board.SetViewTransform(vt.WithZoom(vt.Zoom / 1.25))
	case "0":
		m.board.SetViewTransform(canvas.IdentityView())
		m.status = "view reset"
	case "w":
		if m.store == nil {
			m.status = "no store configured"
			return m, nil
		}
		m.status = "saving..."
		return m, m.saveCmd()
	}
	return m, nil
}

// =============================================================================
// Rendering
// =============================================================================

// canvasRows returns the number of terminal rows used for drawing.
func (m DrawModel) canvasRows() int {
	rows := m.height - 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

// viewport maps the drawing cells onto a square-ish pixel grid.
func (m DrawModel) viewport() canvas.Viewport {
	return canvas.Viewport{
		Width:  float64(m.width),
		Height: float64(m.canvasRows() * pixelsPerCell),
	}
}

// cellToCanvas converts a terminal cell position to canvas space, sampling
// the vertical middle of the cell.
func (m DrawModel) cellToCanvas(x, y int) stroke.Point {
	device := stroke.Point{X: float64(x) + 0.5, Y: float64(y*pixelsPerCell) + 1}
	return canvas.DeviceToCanvas(device, m.viewport(), m.board.View())
}

func (m DrawModel) View() string {
	var b strings.Builder
	b.WriteString(m.renderCanvas())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

// renderCanvas rasterizes the expanded stroke list into half-block cells.
func (m DrawModel) renderCanvas() string {
	cols := m.width
	rows := m.canvasRows()
	grid := make([]bool, cols*rows*pixelsPerCell)

	vp := m.viewport()
	vt := m.board.View()
	set := func(x, y int) {
		if x >= 0 && x < cols && y >= 0 && y < rows*pixelsPerCell {
			grid[y*cols+x] = true
		}
	}

	for _, s := range render.List(m.board.Snapshot()) {
		var prevX, prevY int
		for i, p := range s.Points {
			d := canvas.CanvasToDevice(p.Pos(), vp, vt)
			x, y := int(d.X), int(d.Y)
			if i > 0 {
				plotLine(prevX, prevY, x, y, set)
			} else {
				set(x, y)
			}
			prevX, prevY = x, y
		}
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := grid[(row*pixelsPerCell)*cols+col]
			bottom := grid[(row*pixelsPerCell+1)*cols+col]
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if row < rows-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// renderStatus draws the two-row status bar.
func (m DrawModel) renderStatus() string {
	snap := m.board.Snapshot()
	sym := snap.Symmetry
	vt := snap.View

	symState := "off"
	if sym.Enabled {
		symState = fmt.Sprintf("%d-fold", sym.Axes)
	}

	left := fmt.Sprintf(" %d strokes · symmetry %s · pen %.1f · zoom %.2fx",
		len(snap.Strokes), symState, m.brush, vt.Zoom)
	if snap.Current != nil {
		left += " · drawing"
	}
	if m.status != "" {
		left += " · " + statusWarnStyle.Render(m.status)
	}

	help := statusKeyStyle.Render("s") + statusBarStyle.Render(" symmetry  ") +
		statusKeyStyle.Render("[ ]") + statusBarStyle.Render(" axes  ") +
		statusKeyStyle.Render("u/y") + statusBarStyle.Render(" undo/redo  ") +
		statusKeyStyle.Render("c") + statusBarStyle.Render(" clear  ") +
		statusKeyStyle.Render("w") + statusBarStyle.Render(" save  ") +
		statusKeyStyle.Render("q") + statusBarStyle.Render(" quit")

	line1 := statusBarStyle.Width(m.width).Render(left)
	line2 := statusBarStyle.Width(m.width).Render(" " + help)
	return line1 + "\n" + line2
}

// plotLine rasterizes a line segment with the integer midpoint algorithm.
func plotLine(x0, y0, x1, y1 int, set func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// shortID truncates an id for status display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
