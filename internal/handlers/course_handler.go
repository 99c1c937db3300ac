package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/alanluk2226/Workoutapp/internal/repository"
	"github.com/alanluk2226/Workoutapp/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CourseHandler struct {
	service courseEnrollmentService
}

type courseEnrollmentService interface {
	Enroll(ctx context.Context, userID, courseID int64) (*models.Enrollment, error)
	Unenroll(ctx context.Context, userID, courseID int64) error
	ListCourses(ctx context.Context, filter repository.CourseListFilter) ([]models.CourseDetail, error)
	ListEnrollmentsForUser(ctx context.Context, userID int64) ([]models.EnrollmentDetail, error)
}

func NewCourseHandler(service *services.EnrollmentService) *CourseHandler {
	return &CourseHandler{service: service}
}

func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	filter := repository.CourseListFilter{
		Type: models.Discipline(strings.ToLower(strings.TrimSpace(c.Query("type")))),
		Day:  models.Weekday(strings.ToLower(strings.TrimSpace(c.Query("day")))),
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return respondError(c, fiber.StatusBadRequest, "Invalid course type")
	}
	if filter.Day != "" && !filter.Day.Valid() {
		return respondError(c, fiber.StatusBadRequest, "Invalid day")
	}
	if raw := c.Query("coach_id"); raw != "" {
		coachID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || coachID <= 0 {
			return respondError(c, fiber.StatusBadRequest, "Invalid coach id")
		}
		filter.CoachID = coachID
	}

	courses, err := h.service.ListCourses(c.UserContext(), filter)
	if err != nil {
		return mapEnrollmentError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"courses": courses})
}

func (h *CourseHandler) MyCourses(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Invalid token")
	}

	enrollments, err := h.service.ListEnrollmentsForUser(c.UserContext(), userID)
	if err != nil {
		return mapEnrollmentError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"enrollments": enrollments})
}

func (h *CourseHandler) Enroll(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Invalid token")
	}
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return respondError(c, fiber.StatusNotFound, "Course not found")
	}

	enrollment, err := h.service.Enroll(c.UserContext(), userID, courseID)
	if err != nil {
		return mapEnrollmentError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"message":    "Successfully enrolled in the course",
		"enrollment": enrollment,
	})
}

func (h *CourseHandler) Unenroll(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Invalid token")
	}
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return respondError(c, fiber.StatusNotFound, "Enrollment not found")
	}

	if err := h.service.Unenroll(c.UserContext(), userID, courseID); err != nil {
		return mapEnrollmentError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "Successfully unenrolled from the course"})
}

// Enrollment conflicts answer 400 so existing clients keep working.
func mapEnrollmentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		// Account removed while its token is still valid.
		return respondError(c, fiber.StatusUnauthorized, "Invalid token")
	case errors.Is(err, services.ErrCourseNotFound):
		return respondError(c, fiber.StatusNotFound, "Course not found")
	case errors.Is(err, services.ErrEnrollmentNotFound):
		return respondError(c, fiber.StatusNotFound, "Enrollment not found")
	case errors.Is(err, services.ErrCourseUnavailable):
		return respondError(c, fiber.StatusBadRequest, "Course is not available for enrollment")
	case errors.Is(err, services.ErrCourseFull):
		return respondError(c, fiber.StatusBadRequest, "Course is full")
	case errors.Is(err, services.ErrAlreadyEnrolled):
		return respondError(c, fiber.StatusBadRequest, "Already enrolled in this course")
	default:
		return respondError(c, fiber.StatusInternalServerError, "Server error")
	}
}
