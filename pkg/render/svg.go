package render

import (
	"fmt"
	"io"

	"github.com/kaleidodraw/kaleido/pkg/board"
	"github.com/kaleidodraw/kaleido/pkg/canvas"
)

// Default visual parameters for vector and raster sinks.
const (
	defaultStrokeWidth = 3.0       // canvas units
	defaultStrokeColor = "#1a1a2e" // dark ink
	defaultBackground  = "#ffffff"
)

// Option configures the SVG, PNG, and PDF sinks.
type Option func(*renderer)

type renderer struct {
	width       float64 // output width in pixels (PNG) or user units (SVG)
	height      float64
	strokeWidth float64
	color       string
	background  string
	showCenter  bool
}

// WithSize sets the output dimensions. The canvas square is mapped uniformly
// onto the shorter side.
func WithSize(w, h float64) Option {
	return func(r *renderer) { r.width, r.height = w, h }
}

// WithStrokeWidth sets the pen width in canvas units.
func WithStrokeWidth(w float64) Option {
	return func(r *renderer) { r.strokeWidth = w }
}

// WithColor sets the stroke color (any SVG color string).
func WithColor(c string) Option {
	return func(r *renderer) { r.color = c }
}

// WithBackground sets the background fill.
func WithBackground(c string) Option {
	return func(r *renderer) { r.background = c }
}

// WithCenterMark draws a small cross at the symmetry center.
func WithCenterMark() Option {
	return func(r *renderer) { r.showCenter = true }
}

func newRenderer(opts ...Option) renderer {
	r := renderer{
		width:       canvas.Size,
		height:      canvas.Size,
		strokeWidth: defaultStrokeWidth,
		color:       defaultStrokeColor,
		background:  defaultBackground,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WriteSVG renders the snapshot's expanded stroke list as an SVG document.
// The view box is the 1024×1024 canvas square, so stroke coordinates pass
// through unchanged.
func WriteSVG(w io.Writer, snap board.Snapshot, opts ...Option) error {
	r := newRenderer(opts...)
	strokes := List(snap)

	if _, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		canvas.Size, canvas.Size, r.width, r.height); err != nil {
		return err
	}
	fmt.Fprintf(w, `  <rect width="%.0f" height="%.0f" fill="%s"/>`+"\n", canvas.Size, canvas.Size, r.background)

	for _, s := range strokes {
		if len(s.Points) == 0 {
			continue
		}
		if len(s.Points) == 1 {
			p := s.Points[0]
			fmt.Fprintf(w, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
				p.X, p.Y, r.strokeWidth/2, r.color)
			continue
		}
		fmt.Fprintf(w, `  <polyline fill="none" stroke="%s" stroke-width="%.2f" stroke-linecap="round" stroke-linejoin="round" points="`,
			r.color, r.strokeWidth)
		for i, p := range s.Points {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprintf(w, "%.2f,%.2f", p.X, p.Y)
		}
		fmt.Fprint(w, `"/>`+"\n")
	}

	if r.showCenter {
		c := snap.Symmetry.Center
		fmt.Fprintf(w, `  <path d="M %.1f %.1f h 16 M %.1f %.1f v 16" stroke="#e63946" stroke-width="2"/>`+"\n",
			c.X-8, c.Y, c.X, c.Y-8)
	}

	_, err := fmt.Fprintln(w, "</svg>")
	return err
}
