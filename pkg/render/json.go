package render

import (
	"encoding/json"
	"io"

	"github.com/kaleidodraw/kaleido/pkg/board"
	"github.com/kaleidodraw/kaleido/pkg/stroke"
	"github.com/kaleidodraw/kaleido/pkg/symmetry"
)

// document is the JSON export format. It carries the committed strokes (not
// the symmetry-expanded copies: expansion is cheap and re-importing should
// round-trip the source data) together with the configuration needed to
// reproduce the visual.
type document struct {
	Strokes  []*stroke.Stroke `json:"strokes"`
	Symmetry symmetry.Config  `json:"symmetry"`
}

// WriteJSON encodes the snapshot's visible strokes and symmetry
// configuration as indented JSON. The in-progress stroke is excluded: only
// committed state is exported.
func WriteJSON(w io.Writer, snap board.Snapshot) error {
	doc := document{
		Strokes:  snap.Strokes,
		Symmetry: snap.Symmetry,
	}
	if doc.Strokes == nil {
		doc.Strokes = []*stroke.Stroke{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ReadJSON decodes a document produced by [WriteJSON]. The strokes can be
// replayed into a board with [board.Board.LoadStrokes].
func ReadJSON(r io.Reader) ([]*stroke.Stroke, symmetry.Config, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, symmetry.Config{}, err
	}
	return doc.Strokes, doc.Symmetry, nil
}
