// Package stream upgrades API clients to websocket and attaches them to
// the realtime hub.
package stream

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/soclink/notify/internal/api/respond"
	"github.com/soclink/notify/internal/realtime"
)

type Handler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

func NewHandler(hub *realtime.Hub) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// origin is enforced by the edge gateway
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Serve upgrades the connection and subscribes it to the requester's
// notification stream until the client disconnects.
func (h *Handler) Serve(c *ginext.Context) {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		raw = c.Query("user_id")
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid user id"))
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	sub := h.hub.Add(userID, conn)
	conn.SetPongHandler(func(string) error {
		sub.Touch()
		return nil
	})

	zlog.Logger.Info().Str("user_id", userID.String()).Msg("websocket subscriber connected")

	go h.readLoop(conn, sub, userID)
}

// readLoop drains inbound frames to keep the connection's control
// handlers running; the stream itself is one-way, server to client.
func (h *Handler) readLoop(conn *websocket.Conn, sub *realtime.Subscriber, userID uuid.UUID) {
	defer func() {
		h.hub.Remove(sub)
		_ = conn.Close()
		zlog.Logger.Info().Str("user_id", userID.String()).Msg("websocket subscriber disconnected")
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}

		sub.Touch()
	}
}
