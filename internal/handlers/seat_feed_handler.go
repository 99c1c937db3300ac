package handlers

import (
	coursews "github.com/alanluk2226/Workoutapp/internal/websocket"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type SeatFeedHandler struct {
	hub *coursews.Hub
}

func NewSeatFeedHandler(hub *coursews.Hub) *SeatFeedHandler {
	return &SeatFeedHandler{hub: hub}
}

func (h *SeatFeedHandler) RequireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return respondError(c, fiber.StatusUpgradeRequired, "WebSocket upgrade required")
	}
	return c.Next()
}

func (h *SeatFeedHandler) HandleWebSocket(conn *websocket.Conn) {
	client := coursews.NewClient(h.hub, conn)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump()
}
