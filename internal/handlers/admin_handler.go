package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/alanluk2226/Workoutapp/internal/repository"
	"github.com/alanluk2226/Workoutapp/internal/services"
	"github.com/gofiber/fiber/v2"
)

const maxCoachImageBytes = 5 * 1024 * 1024

type adminCoachService interface {
	ListAll(ctx context.Context) ([]models.Coach, error)
	Create(ctx context.Context, input repository.CoachInput) (*models.Coach, error)
	Update(ctx context.Context, coachID int64, input repository.CoachInput) (*models.Coach, error)
	Delete(ctx context.Context, coachID int64) error
	UploadImage(ctx context.Context, coachID int64, file multipart.File, filename string) (*models.Coach, error)
}

type adminCourseService interface {
	Create(ctx context.Context, input repository.CreateCourseInput) (*models.Course, error)
}

type adminSeatService interface {
	ListAllCourses(ctx context.Context) ([]models.CourseDetail, error)
	CancelCourse(ctx context.Context, courseID int64) (*models.Course, error)
	SetCourseCapacity(ctx context.Context, courseID int64, maxParticipants int) (*models.Course, error)
	UpdateCourse(ctx context.Context, courseID int64, input repository.UpdateCourseInput, maxParticipants int) (*models.Course, error)
	DeleteCourse(ctx context.Context, courseID int64) error
}

type adminUserService interface {
	List(ctx context.Context) ([]models.User, error)
	ListEnrollments(ctx context.Context) ([]models.AdminEnrollment, error)
	ChangePassword(ctx context.Context, userID int64, password string) error
	Delete(ctx context.Context, actor models.Caller, userID int64) error
}

type AdminHandler struct {
	coaches adminCoachService
	courses adminCourseService
	seats   adminSeatService
	users   adminUserService
}

func NewAdminHandler(
	coaches *services.CoachService,
	courses *services.CourseService,
	seats *services.EnrollmentService,
	users *services.UserService,
) *AdminHandler {
	return &AdminHandler{coaches: coaches, courses: courses, seats: seats, users: users}
}

type coachRequest struct {
	Name            string   `json:"name" validate:"required,max=100"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           *string  `json:"phone" validate:"omitempty,max=30"`
	Specializations []string `json:"specializations" validate:"omitempty,dive,oneof=yoga bodyweight hii circuittraining pilates cardiokickboxing zumba"`
	Bio             *string  `json:"bio" validate:"omitempty,max=1000"`
	Experience      *string  `json:"experience" validate:"omitempty,max=200"`
	Image           string   `json:"image"`
	EmploymentType  string   `json:"employment_type" validate:"omitempty,oneof=full-time part-time"`
	Status          string   `json:"status" validate:"omitempty,oneof=active inactive"`
}

type courseRequest struct {
	Name            string  `json:"name" validate:"required,max=100"`
	Type            string  `json:"type" validate:"required,oneof=yoga bodyweight hii circuittraining pilates cardiokickboxing zumba"`
	CoachID         int64   `json:"coach_id" validate:"required,gt=0"`
	Day             string  `json:"day" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime       string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime         string  `json:"end_time" validate:"required,datetime=15:04"`
	MaxParticipants int     `json:"max_participants" validate:"omitempty,min=1"`
	Description     *string `json:"description" validate:"omitempty,max=1000"`
}

type capacityRequest struct {
	MaxParticipants int `json:"max_participants" validate:"required,min=1"`
}

type passwordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=72"`
}

func (r coachRequest) input() repository.CoachInput {
	specializations := make([]models.Discipline, 0, len(r.Specializations))
	for _, s := range r.Specializations {
		specializations = append(specializations, models.Discipline(s))
	}
	return repository.CoachInput{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Specializations: specializations,
		Bio:             r.Bio,
		Experience:      r.Experience,
		Image:           r.Image,
		EmploymentType:  r.EmploymentType,
		Status:          r.Status,
	}
}

func (r courseRequest) schedule() models.Schedule {
	return models.Schedule{
		Day:       models.Weekday(r.Day),
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

func (h *AdminHandler) ListCoaches(c *fiber.Ctx) error {
	coaches, err := h.coaches.ListAll(c.UserContext())
	if err != nil {
		return mapAdminError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"coaches": coaches})
}

func (h *AdminHandler) CreateCoach(c *fiber.Ctx) error {
	var req coachRequest
	if message := bindRequest(c, &req); message != "" {
		return respondError(c, fiber.StatusBadRequest, message)
	}

	coach, err := h.coaches.Create(c.UserContext(), req.input())
	if err != nil {
		return mapAdminError(c, err)
	}
	return respond(c, fiber.StatusCreated, fiber.Map{"coach": coach})
}

func (h *AdminHandler) UpdateCoach(c *fiber.Ctx) error {
	coachID, ok := parseIDParam(c, "coachId")
	if !ok {
		return mapAdminError(c, services.ErrCoachNotFound)
	}
	var req coachRequest
	if message := bindRequest(c, &req); message != "" {
		return respondError(c, fiber.StatusBadRequest, message)
	}

	coach, err := h.coaches.Update(c.UserContext(), coachID, req.input())
	if err != nil {
		return mapAdminError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"coach": coach})
}

func (h *AdminHandler) DeleteCoach(c *fiber.Ctx) error {
	coachID, ok := parseIDParam(c, "coachId")
	if !ok {
		return mapAdminError(c, services.ErrCoachNotFound)
	}
	if err := h.coaches.Delete(c.UserContext(), coachID); err != nil {
		return mapAdminError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "Coach deleted"})
}

func (h *AdminHandler) UploadCoachImage(c *fiber.Ctx) error {
	coachID, ok := parseIDParam(c, "coachId")
	if !ok {
		return mapAdminError(c, services.ErrCoachNotFound)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "image file is required")
	}
	if fileHeader.Size <= 0 {
		return respondError(c, fiber.StatusBadRequest, "image file is empty")
	}
	if fileHeader.Size > maxCoachImageBytes {
		return respondError(c, fiber.StatusBadRequest, "image file exceeds 5MB limit")
	}
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return respondError(c, fiber.StatusBadRequest, "image must be jpg, png or webp")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to open image file")
	}
	defer file.Close()

	coach, err := h.coaches.UploadImage(c.UserContext(), coachID, file, fileHeader.Filename)
	if err != nil {
		return mapAdminError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"coach": coach})
}

func (h *AdminHandler) ListCourses(c *fiber.Ctx) error {
	courses, err := h.seats.ListAllCourses(c.UserContext())
	if err != nil {
		return mapAdminError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"courses": courses})
}

func (h *AdminHandler) CreateCourse(c *fiber.Ctx) error {
	var req courseRequest
	if message := bindRequest(c, &req); message != "" {
		return respondError(c, fiber.StatusBadRequest, message)
	}

	course, err := h.courses.Create(c.UserContext(), repository.CreateCourseInput{
		Name:            req.Name,
		Type:            models.Discipline(req.Type),
		CoachID:         req.CoachID,
		Schedule:        req.schedule(),
		MaxParticipants: req.MaxParticipants,
		Description:     req.Description,
	})
	if err != nil {
		return mapAdminError(c, err)
	}
	return respond(c, fiber.StatusCreated, fiber.Map{"course": course})
}

func (h *AdminHandler) UpdateCourse(c *fiber.Ctx) error {
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return mapAdminError(c, services.ErrCourseNotFound)
	}
	var req courseRequest
	if message := bindRequest(c, &req); message != "" {
		return respondError(c, fiber.StatusBadRequest, message)
	}

	course, err := h.seats.UpdateCourse(c.UserContext(), courseID, repository.UpdateCourseInput{
		Name:        req.Name,
		Type:        models.Discipline(req.Type),
		CoachID:     req.CoachID,
		Schedule:    req.schedule(),
		Description: req.Description,
	}, req.MaxParticipants)
	if err != nil {
		return mapAdminError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"course": course})
}

func (h *AdminHandler) SetCourseCapacity(c *fiber.Ctx) error {
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return mapAdminError(c, services.ErrCourseNotFound)
	}
	var req capacityRequest
	if message := bindRequest(c, &req); message != "" {
		return respondError(c, fiber.StatusBadRequest, message)
	}

	course, err := h.seats.SetCourseCapacity(c.UserContext(), courseID, req.MaxParticipants)
	if err != nil {
		return mapAdminError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"course": course})
}

func (h *AdminHandler) CancelCourse(c *fiber.Ctx) error {
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return mapAdminError(c, services.ErrCourseNotFound)
	}

	course, err := h.seats.CancelCourse(c.UserContext(), courseID)
	if err != nil {
		return mapAdminError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"course": course})
}

func (h *AdminHandler) DeleteCourse(c *fiber.Ctx) error {
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return mapAdminError(c, services.ErrCourseNotFound)
	}
	if err := h.seats.DeleteCourse(c.UserContext(), courseID); err != nil {
		return mapAdminError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "Course deleted"})
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return mapAdminError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"users": users})
}

func (h *AdminHandler) ChangeUserPassword(c *fiber.Ctx) error {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return mapAdminError(c, services.ErrUserNotFound)
	}
	var req passwordRequest
	if message := bindRequest(c, &req); message != "" {
		return respondError(c, fiber.StatusBadRequest, message)
	}

	if err := h.users.ChangePassword(c.UserContext(), userID, req.Password); err != nil {
		return mapAdminError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "Password updated"})
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return mapAdminError(c, services.ErrUserNotFound)
	}
	actor, ok := c.Locals("caller").(models.Caller)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Invalid token")
	}

	if err := h.users.Delete(c.UserContext(), actor, userID); err != nil {
		return mapAdminError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "User deleted"})
}

func (h *AdminHandler) ListEnrollments(c *fiber.Ctx) error {
	enrollments, err := h.users.ListEnrollments(c.UserContext())
	if err != nil {
		return mapAdminError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"enrollments": enrollments})
}

// bindRequest parses and validates the body, returning the client message on failure.
func bindRequest(c *fiber.Ctx, req any) string {
	if err := c.BodyParser(req); err != nil {
		return "Invalid request body"
	}
	if err := validate.Struct(req); err != nil {
		return validationMessage(err)
	}
	return ""
}

func mapAdminError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, "Invalid request data")
	case errors.Is(err, services.ErrInvalidStateTransition):
		return respondError(c, fiber.StatusConflict, "Course is already cancelled")
	case errors.Is(err, services.ErrForbidden):
		return respondError(c, fiber.StatusForbidden, "Forbidden")
	case errors.Is(err, services.ErrCourseNotFound):
		return respondError(c, fiber.StatusNotFound, "Course not found")
	case errors.Is(err, services.ErrUserNotFound):
		return respondError(c, fiber.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrCourseHasMembers):
		return respondError(c, fiber.StatusConflict, "Course still has active enrollments")
	default:
		return mapCoachError(c, err)
	}
}
