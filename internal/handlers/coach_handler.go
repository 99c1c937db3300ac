package handlers

import (
	"context"
	"errors"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/alanluk2226/Workoutapp/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CoachHandler struct {
	service coachDirectoryService
}

type coachDirectoryService interface {
	ListActive(ctx context.Context) ([]models.Coach, error)
	GetDetail(ctx context.Context, coachID int64) (*models.CoachDetail, error)
}

func NewCoachHandler(service *services.CoachService) *CoachHandler {
	return &CoachHandler{service: service}
}

func (h *CoachHandler) ListCoaches(c *fiber.Ctx) error {
	coaches, err := h.service.ListActive(c.UserContext())
	if err != nil {
		return mapCoachError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"coaches": coaches})
}

func (h *CoachHandler) GetCoach(c *fiber.Ctx) error {
	coachID, ok := parseIDParam(c, "coachId")
	if !ok {
		return mapCoachError(c, services.ErrCoachNotFound)
	}

	detail, err := h.service.GetDetail(c.UserContext(), coachID)
	if err != nil {
		return mapCoachError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"coach":   detail.Coach,
		"courses": detail.Courses,
	})
}

func mapCoachError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, "Invalid coach data")
	case errors.Is(err, services.ErrCoachNotFound):
		return respondError(c, fiber.StatusNotFound, "Coach not found")
	case errors.Is(err, services.ErrDuplicateCoach):
		return respondError(c, fiber.StatusConflict, "Coach email already exists")
	case errors.Is(err, services.ErrCoachInUse):
		return respondError(c, fiber.StatusConflict, "Coach is still assigned to courses")
	case errors.Is(err, services.ErrStorageUnavailable):
		return respondError(c, fiber.StatusServiceUnavailable, "Image storage is not configured")
	default:
		return respondError(c, fiber.StatusInternalServerError, "Server error")
	}
}
