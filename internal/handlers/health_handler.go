package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db pinger
}

func NewHealthHandler(db pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			return respondError(c, fiber.StatusServiceUnavailable, "Database unavailable")
		}
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"message":   "Fitness Workout Tracker API is running!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
