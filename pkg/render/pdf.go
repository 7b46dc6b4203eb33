package render

import (
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/kaleidodraw/kaleido/pkg/board"
	"github.com/kaleidodraw/kaleido/pkg/canvas"
	kerrors "github.com/kaleidodraw/kaleido/pkg/errors"
)

// pdfPageSize is the printable square on an A4 page, in millimeters.
// The 1024-unit canvas maps onto it uniformly.
const pdfPageSize = 190.0

// WritePDF renders the snapshot's expanded stroke list as a single-page A4
// PDF. Strokes are drawn as connected line segments, matching the vector
// sinks.
func WritePDF(w io.Writer, snap board.Snapshot, opts ...Option) error {
	r := newRenderer(opts...)
	strokes := List(snap)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetDrawColor(26, 26, 46)
	pdf.SetLineWidth(r.strokeWidth * pdfPageSize / canvas.Size)
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")

	// Center the drawing square on the page.
	pageW, pageH := pdf.GetPageSize()
	ox := (pageW - pdfPageSize) / 2
	oy := (pageH - pdfPageSize) / 2
	mm := func(v float64) float64 { return v * pdfPageSize / canvas.Size }

	for _, s := range strokes {
		for i := 1; i < len(s.Points); i++ {
			a, b := s.Points[i-1], s.Points[i]
			pdf.Line(ox+mm(a.X), oy+mm(a.Y), ox+mm(b.X), oy+mm(b.Y))
		}
	}

	if err := pdf.Output(w); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeRender, err, "write pdf")
	}
	return nil
}
