package ws

import (
	"log/slog"
	"sync"

	"github.com/AeroX2/wordmarket/internal/model"
)

// Hub tracks live connections per room and fans room snapshots out to
// them. The registry is purely additive/removable bookkeeping, never a
// source of game state: a dropped connection is forgotten without
// touching the room.
type Hub struct {
	logger *slog.Logger

	mu    sync.Mutex
	rooms map[model.RoomCode]map[*client]struct{}
}

// NewHub creates an empty connection hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger,
		rooms:  make(map[model.RoomCode]map[*client]struct{}),
	}
}

// BroadcastState sends a snapshot to every connection on the room. A
// client whose send buffer is full is dropped rather than allowed to
// stall the rest.
func (h *Hub) BroadcastState(code model.RoomCode, state model.RoomSnapshot) {
	event := model.StateEvent(state)

	h.mu.Lock()
	var stalled []*client
	for c := range h.rooms[code] {
		select {
		case c.send <- event:
		default:
			stalled = append(stalled, c)
		}
	}
	for _, c := range stalled {
		h.removeLocked(c)
	}
	h.mu.Unlock()

	for _, c := range stalled {
		c.close()
	}
}

// ConnectionCount returns the number of live connections on a room
func (h *Hub) ConnectionCount(code model.RoomCode) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[code])
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[c.code] == nil {
		h.rooms[c.code] = make(map[*client]struct{})
	}
	h.rooms[c.code][c] = struct{}{}

	h.logger.Debug("connection registered",
		slog.String("room", string(c.code)),
		slog.String("player", string(c.playerID)),
	)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	clients, ok := h.rooms[c.code]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	if len(clients) == 0 {
		delete(h.rooms, c.code)
	}
}
