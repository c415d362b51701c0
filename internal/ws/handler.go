package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/AeroX2/wordmarket/internal/model"
	"github.com/AeroX2/wordmarket/internal/services/room"
)

// Handler upgrades live-connection requests and binds them to a room. A
// connection is only accepted for a player the room already knows.
type Handler struct {
	hub        *Hub
	controller *room.Controller
	logger     *slog.Logger
	upgrader   websocket.Upgrader
}

// NewHandler creates a websocket handler backed by the given hub
func NewHandler(hub *Hub, controller *room.Controller, logger *slog.Logger) *Handler {
	return &Handler{
		hub:        hub,
		controller: controller,
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Room codes are the only access control; origins are not
			// restricted.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP handles GET /rooms/{code}/ws?playerId=...
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])
	playerID := model.PlayerID(r.URL.Query().Get("playerId"))

	if err := h.controller.ValidatePlayer(r.Context(), code, playerID); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, model.ErrRoomNotFound) {
			status = http.StatusNotFound
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid player."})
		return
	}

	state, err := h.controller.GetSnapshot(r.Context(), code)
	if err != nil {
		http.Error(w, "failed to load room", http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed",
			slog.String("room", string(code)),
			slog.String("error", err.Error()),
		)
		return
	}

	c := newClient(h.hub, h, conn, code, playerID, h.logger)
	h.hub.register(c)

	go c.writePump()
	// Initial snapshot so a client renders without waiting for a change.
	c.enqueue(model.StateEvent(state))
	go c.readPump()
}
