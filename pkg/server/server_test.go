package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kaleidodraw/kaleido/pkg/board"
	"github.com/kaleidodraw/kaleido/pkg/stroke"
	"github.com/kaleidodraw/kaleido/pkg/symmetry"
)

func testSnapshot(strokes int) board.Snapshot {
	snap := board.Snapshot{Symmetry: symmetry.NewConfig().WithAxes(4)}
	for i := 0; i < strokes; i++ {
		snap.Strokes = append(snap.Strokes, &stroke.Stroke{
			ID:     stroke.NewID(),
			Points: []stroke.StrokePoint{{X: 100, Y: 100}, {X: 200, Y: 200}},
		})
	}
	return snap
}

func TestHealthEndpoint(t *testing.T) {
	srv := New(testSnapshot(0), nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestDrawingEndpoint(t *testing.T) {
	srv := New(testSnapshot(2), nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/drawing")
	if err != nil {
		t.Fatalf("GET /api/drawing: %v", err)
	}
	defer resp.Body.Close()

	var doc struct {
		Strokes  []*stroke.Stroke `json:"strokes"`
		Symmetry symmetry.Config  `json:"symmetry"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Strokes) != 2 {
		t.Errorf("strokes = %d, want 2", len(doc.Strokes))
	}
	if doc.Symmetry.Axes != 4 {
		t.Errorf("axes = %d, want 4", doc.Symmetry.Axes)
	}
}

func TestStateEndpoint(t *testing.T) {
	srv := New(testSnapshot(3), nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatalf("GET /api/state: %v", err)
	}
	defer resp.Body.Close()

	var state struct {
		Strokes  int `json:"strokes"`
		Expanded int `json:"expanded"`
		Viewers  int `json:"viewers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.Strokes != 3 {
		t.Errorf("strokes = %d, want 3", state.Strokes)
	}
	if state.Expanded != 12 {
		t.Errorf("expanded = %d, want 3 strokes × 4 axes", state.Expanded)
	}
	if state.Viewers != 0 {
		t.Errorf("viewers = %d, want 0", state.Viewers)
	}
}

func TestSVGEndpoint(t *testing.T) {
	srv := New(testSnapshot(1), nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/render.svg")
	if err != nil {
		t.Fatalf("GET /render.svg: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
}

func TestBoardChangedUpdatesSnapshot(t *testing.T) {
	srv := New(testSnapshot(0), nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	srv.BoardChanged(testSnapshot(5))

	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatalf("GET /api/state: %v", err)
	}
	defer resp.Body.Close()

	var state struct {
		Strokes int `json:"strokes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.Strokes != 5 {
		t.Errorf("strokes = %d, want the updated snapshot's 5", state.Strokes)
	}
}

func TestWebsocketReceivesUpdates(t *testing.T) {
	srv := New(testSnapshot(0), nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Registration happens on the handler goroutine after the handshake;
	// wait for the viewer to appear before broadcasting.
	deadline := time.Now().Add(2 * time.Second)
	for srv.Viewers() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("viewer never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	srv.BoardChanged(testSnapshot(2))

	var ev struct {
		Type    string `json:"type"`
		Strokes int    `json:"strokes"`
	}
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read: %v", err)
	}
	if ev.Type != "update" || ev.Strokes != 2 {
		t.Errorf("event = %+v, want update with 2 strokes", ev)
	}
}

func TestListenerInterface(t *testing.T) {
	var _ board.Listener = New(testSnapshot(0), nil)
}
