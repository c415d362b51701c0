package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/AeroX2/wordmarket/internal/model"
)

const sendBufferSize = 16

// inboundMessage is the only shape clients may send: a word submission or
// a ping requesting a fresh snapshot
type inboundMessage struct {
	Type string `json:"type"`
	Word string `json:"word"`
}

// client is one live connection bound to a known player in a room
type client struct {
	hub      *Hub
	handler  *Handler
	conn     *websocket.Conn
	code     model.RoomCode
	playerID model.PlayerID
	logger   *slog.Logger

	send      chan model.RoomEvent
	closeOnce sync.Once
}

func newClient(hub *Hub, handler *Handler, conn *websocket.Conn, code model.RoomCode, playerID model.PlayerID, logger *slog.Logger) *client {
	return &client{
		hub:      hub,
		handler:  handler,
		conn:     conn,
		code:     code,
		playerID: playerID,
		logger:   logger,
		send:     make(chan model.RoomEvent, sendBufferSize),
	}
}

// enqueue offers an event to this connection only, dropping the client
// when its buffer is full
func (c *client) enqueue(event model.RoomEvent) {
	select {
	case c.send <- event:
	default:
		c.hub.unregister(c)
		c.close()
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
		_ = c.conn.Close()
	})
}

// writePump drains the send channel onto the wire. A write failure ends
// the connection; the room is never affected.
func (c *client) writePump() {
	for event := range c.send {
		if err := c.conn.WriteJSON(event); err != nil {
			c.hub.unregister(c)
			c.close()
			return
		}
	}
}

// readPump handles inbound messages until the connection drops. Errors in
// a client's own payloads are reported back to that connection alone.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.enqueue(model.ErrorEvent("Malformed websocket payload."))
			continue
		}

		switch msg.Type {
		case "submit":
			if msg.Word == "" {
				continue
			}
			result, err := c.handler.controller.SubmitWord(context.Background(), c.code, c.playerID, msg.Word)
			if err != nil {
				c.logger.Error("websocket word submission failed",
					slog.String("room", string(c.code)),
					slog.String("player", string(c.playerID)),
					slog.String("error", err.Error()),
				)
				c.enqueue(model.ErrorEvent("Internal error."))
				continue
			}
			if !result.OK {
				c.enqueue(model.ErrorEvent(result.Message))
			}
		case "ping":
			state, err := c.handler.controller.GetSnapshot(context.Background(), c.code)
			if err != nil {
				c.enqueue(model.ErrorEvent("Internal error."))
				continue
			}
			c.enqueue(model.StateEvent(state))
		default:
			// Unknown types are tolerated silently.
		}
	}
}
