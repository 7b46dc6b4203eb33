package render

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-graphviz"

	kerrors "github.com/kaleidodraw/kaleido/pkg/errors"
	"github.com/kaleidodraw/kaleido/pkg/stroke"
)

// HistoryDOT renders the undo history as a Graphviz DOT graph: one box per
// stored stroke in commit order, chained left to right. Strokes above the
// cursor (the redo tail) are drawn dashed and grey; the cursor itself is a
// small marker node pointing between the visible strokes and the tail.
//
// This is debug tooling for inspecting branch-on-write behavior; it is not
// part of the drawing render path.
func HistoryDOT(strokes []*stroke.Stroke, cursor int) string {
	var buf bytes.Buffer
	buf.WriteString("digraph history {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for i, s := range strokes {
		// Literal \n: the escape belongs to DOT, not Go.
		attrs := fmt.Sprintf(`label="%s\n%d pts"`, shortID(s.ID), len(s.Points))
		if i >= cursor {
			attrs += `, style="rounded,filled,dashed", fillcolor=lightgrey, fontcolor=black`
		}
		fmt.Fprintf(&buf, "  s%d [%s];\n", i, attrs)
	}

	buf.WriteString("\n")
	for i := 1; i < len(strokes); i++ {
		style := ""
		if i >= cursor {
			style = " [style=dashed, color=grey]"
		}
		fmt.Fprintf(&buf, "  s%d -> s%d%s;\n", i-1, i, style)
	}

	// Cursor marker.
	buf.WriteString("\n  cursor [shape=point, width=0.15, color=red];\n")
	switch {
	case len(strokes) == 0:
		// Lone marker on an empty history.
	case cursor == 0:
		fmt.Fprintf(&buf, "  cursor -> s0 [color=red, label=\"cursor\"];\n")
	default:
		fmt.Fprintf(&buf, "  cursor -> s%d [color=red, label=\"cursor\"];\n", cursor-1)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// shortID truncates a stroke id for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// TimelineSVG renders a DOT graph to SVG using Graphviz.
func TimelineSVG(dot string) ([]byte, error) {
	return renderDOT(dot, graphviz.SVG)
}

// TimelinePNG renders a DOT graph to PNG using Graphviz.
func TimelinePNG(dot string) ([]byte, error) {
	return renderDOT(dot, graphviz.PNG)
}

func renderDOT(dot string, format graphviz.Format) ([]byte, error) {
	gv := graphviz.New()
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(g, format, &buf); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeRender, err, "render timeline")
	}
	return buf.Bytes(), nil
}
