// Package store provides persistence for saved drawings.
//
// This package defines the [Store] interface and implementations for
// different backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI usage (the default)
//   - redis: Redis-backed storage for shared deployments
//   - mongo: MongoDB-backed storage for the hosted gallery
//
// # Architecture
//
// A [Drawing] is the persistent unit: the committed strokes of a board plus
// the symmetry configuration needed to reproduce the visual, under a
// user-chosen name. The drawing core never touches a Store; the gallery
// command and the share server load strokes from here and replay them into
// a board with [board.Board.LoadStrokes].
//
// All backends treat a missing drawing as a clean miss ([ErrNotFound]), not
// a backend failure, so callers can distinguish "no such drawing" from "the
// database is down".
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kaleidodraw/kaleido/pkg/stroke"
	"github.com/kaleidodraw/kaleido/pkg/symmetry"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a drawing does not exist.
	ErrNotFound = errors.New("drawing not found")
)

// Drawing is the persistent form of a board's committed state.
type Drawing struct {
	ID        string           `json:"id" bson:"id"`
	Name      string           `json:"name" bson:"name"`
	Strokes   []*stroke.Stroke `json:"strokes" bson:"strokes"`
	Symmetry  symmetry.Config  `json:"symmetry" bson:"symmetry"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" bson:"updated_at"`
}

// New creates a drawing with a fresh id and both timestamps set to now.
func New(name string, strokes []*stroke.Stroke, sym symmetry.Config) *Drawing {
	now := time.Now().UTC()
	return &Drawing{
		ID:        uuid.NewString(),
		Name:      name,
		Strokes:   strokes,
		Symmetry:  sym,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Info is the listing view of a drawing: everything except the strokes.
type Info struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Strokes   int       `json:"strokes" bson:"strokes"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// info derives the listing view from a drawing.
func (d *Drawing) info() Info {
	return Info{
		ID:        d.ID,
		Name:      d.Name,
		Strokes:   len(d.Strokes),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// Store is the interface for drawing persistence backends.
type Store interface {
	// Get retrieves a drawing by id.
	// Returns ErrNotFound if the drawing doesn't exist.
	Get(ctx context.Context, id string) (*Drawing, error)

	// Put stores a drawing, replacing any previous version with the same id.
	Put(ctx context.Context, d *Drawing) error

	// Delete removes a drawing. Deleting a missing drawing is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the listing view of all drawings, newest first.
	List(ctx context.Context) ([]Info, error)

	// Close releases backend resources.
	Close() error
}
