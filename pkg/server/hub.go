package server

import (
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Hub tracks connected websocket viewers and broadcasts board events to
// them. Connections are read-only from the viewer's side; anything a viewer
// sends is drained and discarded.
type Hub struct {
	mu     sync.RWMutex
	conns  map[*websocket.Conn]bool
	logger *log.Logger
}

// newHub creates an empty hub.
func newHub(logger *log.Logger) *Hub {
	return &Hub{
		conns:  make(map[*websocket.Conn]bool),
		logger: logger,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Viewers are local-network peers; the share server has no auth layer.
	CheckOrigin: func(*http.Request) bool { return true },
}

// handleWS upgrades the request and registers the connection until it
// closes.
func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	h.add(conn)
	defer h.remove(conn)

	// Drain incoming frames so pings and closes are processed.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = true
	h.logger.Debug("viewer connected", "remote", conn.RemoteAddr().String(), "viewers", len(h.conns))
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
	_ = conn.Close()
	h.logger.Debug("viewer disconnected", "remote", conn.RemoteAddr().String(), "viewers", len(h.conns))
}

// broadcastJSON sends v to every connected viewer. Write failures drop the
// connection; a slow viewer must not stall the board goroutine for long.
func (h *Hub) broadcastJSON(v any) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.WriteJSON(v); err != nil {
			h.logger.Warn("broadcast failed, dropping viewer", "remote", c.RemoteAddr().String(), "err", err)
			h.remove(c)
		}
	}
}

// Viewers returns the number of connected websocket viewers.
func (h *Hub) Viewers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
