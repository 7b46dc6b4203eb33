package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kaleidodraw/kaleido/pkg/board"
	"github.com/kaleidodraw/kaleido/pkg/canvas"
	"github.com/kaleidodraw/kaleido/pkg/stroke"
	"github.com/kaleidodraw/kaleido/pkg/symmetry"
)

func sampleStroke(id string, pts ...stroke.Point) *stroke.Stroke {
	s := &stroke.Stroke{ID: id}
	for _, p := range pts {
		s.Points = append(s.Points, stroke.StrokePoint{X: p.X, Y: p.Y, Pressure: 1})
	}
	return s
}

func sampleSnapshot(sym symmetry.Config, strokes ...*stroke.Stroke) board.Snapshot {
	return board.Snapshot{
		Strokes:  strokes,
		Symmetry: sym,
		View:     canvas.IdentityView(),
	}
}

// =============================================================================
// List
// =============================================================================

func TestListExpandsCommittedStrokes(t *testing.T) {
	sym := symmetry.NewConfig().WithAxes(4)
	snap := sampleSnapshot(sym,
		sampleStroke("a", stroke.Point{X: 600, Y: 512}),
		sampleStroke("b", stroke.Point{X: 512, Y: 600}),
	)

	out := List(snap)
	if len(out) != 8 {
		t.Fatalf("len = %d, want 2 strokes × 4 axes", len(out))
	}
	// Emission order: all copies of a, then all copies of b.
	if out[0].ID != "a#0" || out[3].ID != "a#3" || out[4].ID != "b#0" {
		t.Errorf("order = [%s ... %s %s ...], want grouped by source stroke",
			out[0].ID, out[3].ID, out[4].ID)
	}
}

func TestListIncludesCurrentStroke(t *testing.T) {
	snap := sampleSnapshot(symmetry.NewConfig().WithAxes(3),
		sampleStroke("a", stroke.Point{X: 1, Y: 1}))
	snap.Current = sampleStroke("cur", stroke.Point{X: 2, Y: 2})

	out := List(snap)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}
	if out[5].ID != "cur#2" {
		t.Errorf("last = %s, want the final copy of the in-progress stroke", out[5].ID)
	}
}

func TestListSymmetryDisabled(t *testing.T) {
	s := sampleStroke("a", stroke.Point{X: 1, Y: 1})
	snap := sampleSnapshot(symmetry.Config{}, s)

	out := List(snap)
	if len(out) != 1 || out[0] != s {
		t.Errorf("disabled symmetry should pass strokes through, got %d entries", len(out))
	}
}

// =============================================================================
// SVG
// =============================================================================

func TestWriteSVG(t *testing.T) {
	sym := symmetry.NewConfig().WithAxes(4)
	snap := sampleSnapshot(sym,
		sampleStroke("a", stroke.Point{X: 100, Y: 100}, stroke.Point{X: 200, Y: 200}))

	var buf bytes.Buffer
	if err := WriteSVG(&buf, snap); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	svg := buf.String()

	if !strings.Contains(svg, `viewBox="0 0 1024 1024"`) {
		t.Error("missing canvas view box")
	}
	if got := strings.Count(svg, "<polyline"); got != 4 {
		t.Errorf("polyline count = %d, want one per symmetry copy", got)
	}
	if !strings.Contains(svg, "100.00,100.00 200.00,200.00") {
		t.Error("identity copy's points not present verbatim")
	}
}

func TestWriteSVGSinglePointStroke(t *testing.T) {
	snap := sampleSnapshot(symmetry.Config{}, sampleStroke("dot", stroke.Point{X: 50, Y: 60}))

	var buf bytes.Buffer
	if err := WriteSVG(&buf, snap); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}

	if !strings.Contains(buf.String(), `<circle cx="50.00" cy="60.00"`) {
		t.Error("single-point stroke should render as a dot")
	}
	if strings.Contains(buf.String(), "<polyline") {
		t.Error("single-point stroke should not produce a polyline")
	}
}

func TestWriteSVGOptions(t *testing.T) {
	snap := sampleSnapshot(symmetry.NewConfig(), sampleStroke("a",
		stroke.Point{X: 1, Y: 1}, stroke.Point{X: 2, Y: 2}))

	var buf bytes.Buffer
	err := WriteSVG(&buf, snap,
		WithColor("#ff0000"),
		WithBackground("#000000"),
		WithStrokeWidth(7),
		WithCenterMark(),
	)
	if err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	svg := buf.String()

	for _, want := range []string{`stroke="#ff0000"`, `fill="#000000"`, `stroke-width="7.00"`, "<path"} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %q in output", want)
		}
	}
}

// =============================================================================
// JSON
// =============================================================================

func TestJSONRoundTrip(t *testing.T) {
	sym := symmetry.NewConfig().WithAxes(8).WithCenter(stroke.Point{X: 300, Y: 400})
	in := []*stroke.Stroke{
		{
			ID:          "s1",
			Points:      []stroke.StrokePoint{{X: 1.5, Y: 2.5, Pressure: 0.8, TimeMs: 123}},
			CommittedAt: 456,
			Meta:        stroke.Meta{DeviceType: "pen", TotalPoints: 1},
		},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleSnapshot(sym, in...)); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	strokes, gotSym, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if gotSym != sym {
		t.Errorf("symmetry = %+v, want %+v", gotSym, sym)
	}
	if len(strokes) != 1 {
		t.Fatalf("strokes = %d, want 1", len(strokes))
	}
	got := strokes[0]
	if got.ID != "s1" || got.CommittedAt != 456 || got.Meta != in[0].Meta {
		t.Errorf("stroke = %+v, want %+v", got, in[0])
	}
	if got.Points[0] != in[0].Points[0] {
		t.Errorf("point = %+v, want %+v", got.Points[0], in[0].Points[0])
	}
}

func TestWriteJSONExcludesCurrent(t *testing.T) {
	snap := sampleSnapshot(symmetry.Config{})
	snap.Current = sampleStroke("cur", stroke.Point{X: 1, Y: 1})

	var buf bytes.Buffer
	if err := WriteJSON(&buf, snap); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if strings.Contains(buf.String(), "cur") {
		t.Error("in-progress stroke leaked into the export")
	}

	strokes, _, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(strokes) != 0 {
		t.Errorf("strokes = %d, want 0", len(strokes))
	}
}

// =============================================================================
// Timeline
// =============================================================================

func TestHistoryDOT(t *testing.T) {
	strokes := []*stroke.Stroke{
		sampleStroke("aaaaaaaaaaaa", stroke.Point{X: 1, Y: 1}),
		sampleStroke("bbbbbbbbbbbb", stroke.Point{X: 2, Y: 2}),
		sampleStroke("cccccccccccc", stroke.Point{X: 3, Y: 3}),
	}

	dot := HistoryDOT(strokes, 2)

	if !strings.Contains(dot, "digraph history") {
		t.Fatal("not a DOT digraph")
	}
	if !strings.Contains(dot, "aaaaaaaa") {
		t.Error("missing truncated stroke id")
	}
	// s2 sits above the cursor: it is the dashed redo tail.
	if !strings.Contains(dot, `s2 [label="cccccccc\n1 pts", style="rounded,filled,dashed"`) {
		t.Error("redo tail stroke not rendered dashed")
	}
	if !strings.Contains(dot, "s0 -> s1;") {
		t.Error("missing solid edge between visible strokes")
	}
	if !strings.Contains(dot, "s1 -> s2 [style=dashed") {
		t.Error("edge into the redo tail should be dashed")
	}
	if !strings.Contains(dot, "cursor -> s1") {
		t.Error("cursor marker should point at the last visible stroke")
	}
}

func TestHistoryDOTEmpty(t *testing.T) {
	dot := HistoryDOT(nil, 0)
	if !strings.Contains(dot, "digraph history") || !strings.Contains(dot, "cursor") {
		t.Error("empty history should still produce a graph with the cursor marker")
	}
	if strings.Contains(dot, "s0") {
		t.Error("empty history must not emit stroke nodes")
	}
}
