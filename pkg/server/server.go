// Package server implements the kaleido share server: a read-only HTTP and
// websocket surface over a live drawing board.
//
// # Architecture
//
// The server never mutates the board. It registers as a [board.Listener]
// and keeps the latest published [board.Snapshot]; HTTP handlers render
// from that snapshot and websocket viewers receive a JSON event on every
// board change. This keeps the single-owner rule intact: the drawing
// goroutine owns the board, the server owns only immutable snapshots.
//
// # Endpoints
//
//	GET /healthz       liveness probe
//	GET /api/drawing   committed strokes + symmetry config as JSON
//	GET /api/state     stroke/viewer counts and undo/redo capability
//	GET /render.svg    the expanded drawing as SVG
//	GET /ws            websocket stream of board-change events
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kaleidodraw/kaleido/pkg/board"
	"github.com/kaleidodraw/kaleido/pkg/render"
)

// Server serves a drawing over HTTP. Use [New] to create one, register it
// on a board with [board.Board.Subscribe], then call [Server.Run].
type Server struct {
	mu     sync.RWMutex
	snap   board.Snapshot
	hub    *Hub
	logger *log.Logger
}

// New creates a server seeded with an initial snapshot.
func New(initial board.Snapshot, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		snap:   initial,
		hub:    newHub(logger),
		logger: logger,
	}
}

// changeEvent is the JSON message pushed to websocket viewers whenever the
// board publishes a new snapshot.
type changeEvent struct {
	Type    string `json:"type"` // always "update"
	Strokes int    `json:"strokes"`
	Drawing bool   `json:"drawing"`
	CanUndo bool   `json:"can_undo"`
	CanRedo bool   `json:"can_redo"`
}

// BoardChanged implements [board.Listener]: it replaces the held snapshot
// and notifies websocket viewers.
func (s *Server) BoardChanged(snap board.Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.hub.broadcastJSON(changeEvent{
		Type:    "update",
		Strokes: len(snap.Strokes),
		Drawing: snap.Current != nil,
		CanUndo: snap.CanUndo,
		CanRedo: snap.CanRedo,
	})
}

// snapshot returns the latest published snapshot.
func (s *Server) snapshot() board.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Viewers returns the number of connected websocket viewers.
func (s *Server) Viewers() int { return s.hub.Viewers() }

// Handler builds the chi route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/drawing", s.handleDrawing)
	r.Get("/api/state", s.handleState)
	r.Get("/render.svg", s.handleSVG)
	r.Get("/ws", s.hub.handleWS)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("share server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleDrawing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := render.WriteJSON(w, s.snapshot()); err != nil {
		s.logger.Warn("write drawing json", "err", err)
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()
	state := struct {
		Strokes  int  `json:"strokes"`
		Expanded int  `json:"expanded"`
		Viewers  int  `json:"viewers"`
		Drawing  bool `json:"drawing"`
		CanUndo  bool `json:"can_undo"`
		CanRedo  bool `json:"can_redo"`
	}{
		Strokes:  len(snap.Strokes),
		Expanded: len(render.List(snap)),
		Viewers:  s.hub.Viewers(),
		Drawing:  snap.Current != nil,
		CanUndo:  snap.CanUndo,
		CanRedo:  snap.CanRedo,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(state); err != nil {
		s.logger.Warn("write state json", "err", err)
	}
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := render.WriteSVG(w, s.snapshot(), render.WithCenterMark()); err != nil {
		s.logger.Warn("write svg", "err", err)
	}
}
