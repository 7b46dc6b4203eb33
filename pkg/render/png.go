package render

import (
	"io"

	"github.com/fogleman/gg"

	"github.com/kaleidodraw/kaleido/pkg/board"
	"github.com/kaleidodraw/kaleido/pkg/canvas"
	kerrors "github.com/kaleidodraw/kaleido/pkg/errors"
)

// WritePNG rasterizes the snapshot's expanded stroke list to a PNG image.
// The canvas square is scaled uniformly to fit the configured output size.
func WritePNG(w io.Writer, snap board.Snapshot, opts ...Option) error {
	r := newRenderer(opts...)
	strokes := List(snap)

	width, height := int(r.width), int(r.height)
	dc := gg.NewContext(width, height)

	// Uniform canvas→pixel mapping, centered.
	scale := float64(width) / canvas.Size
	if s := float64(height) / canvas.Size; s < scale {
		scale = s
	}
	dc.Translate((float64(width)-canvas.Size*scale)/2, (float64(height)-canvas.Size*scale)/2)
	dc.Scale(scale, scale)

	dc.SetHexColor(r.background)
	dc.DrawRectangle(0, 0, canvas.Size, canvas.Size)
	dc.Fill()

	dc.SetHexColor(r.color)
	dc.SetLineWidth(r.strokeWidth)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	for _, s := range strokes {
		switch {
		case len(s.Points) == 0:
			continue
		case len(s.Points) == 1:
			p := s.Points[0]
			dc.DrawCircle(p.X, p.Y, r.strokeWidth/2)
			dc.Fill()
		default:
			dc.MoveTo(s.Points[0].X, s.Points[0].Y)
			for _, p := range s.Points[1:] {
				dc.LineTo(p.X, p.Y)
			}
			dc.Stroke()
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeRender, err, "encode png")
	}
	return nil
}
