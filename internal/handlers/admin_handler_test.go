package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/alanluk2226/Workoutapp/internal/repository"
	"github.com/alanluk2226/Workoutapp/internal/services"
	"github.com/gofiber/fiber/v2"
)

type stubAdminCoaches struct {
	deleteErr    error
	lastInput    repository.CoachInput
	uploadedName string
}

func (s *stubAdminCoaches) ListAll(_ context.Context) ([]models.Coach, error) {
	return []models.Coach{}, nil
}

func (s *stubAdminCoaches) Create(_ context.Context, input repository.CoachInput) (*models.Coach, error) {
	s.lastInput = input
	return &models.Coach{ID: 1, Name: input.Name}, nil
}

func (s *stubAdminCoaches) Update(_ context.Context, coachID int64, input repository.CoachInput) (*models.Coach, error) {
	s.lastInput = input
	return &models.Coach{ID: coachID}, nil
}

func (s *stubAdminCoaches) Delete(_ context.Context, _ int64) error {
	return s.deleteErr
}

func (s *stubAdminCoaches) UploadImage(_ context.Context, coachID int64, _ multipart.File, filename string) (*models.Coach, error) {
	s.uploadedName = filename
	return &models.Coach{ID: coachID}, nil
}

type stubAdminCourses struct {
	lastCreate repository.CreateCourseInput
}

func (s *stubAdminCourses) Create(_ context.Context, input repository.CreateCourseInput) (*models.Course, error) {
	s.lastCreate = input
	return &models.Course{ID: 1, Name: input.Name}, nil
}

type stubAdminSeats struct {
	cancelErr    error
	deleteErr    error
	capacityErr  error
	lastCapacity int
	updateErr    error
	updateCalls  int
	lastUpdate   repository.UpdateCourseInput
}

func (s *stubAdminSeats) ListAllCourses(_ context.Context) ([]models.CourseDetail, error) {
	return []models.CourseDetail{}, nil
}

func (s *stubAdminSeats) CancelCourse(_ context.Context, courseID int64) (*models.Course, error) {
	if s.cancelErr != nil {
		return nil, s.cancelErr
	}
	return &models.Course{ID: courseID, Status: models.CourseStatusCancelled}, nil
}

func (s *stubAdminSeats) SetCourseCapacity(_ context.Context, courseID int64, maxParticipants int) (*models.Course, error) {
	s.lastCapacity = maxParticipants
	if s.capacityErr != nil {
		return nil, s.capacityErr
	}
	return &models.Course{ID: courseID, MaxParticipants: maxParticipants}, nil
}

func (s *stubAdminSeats) UpdateCourse(_ context.Context, courseID int64, input repository.UpdateCourseInput, maxParticipants int) (*models.Course, error) {
	s.updateCalls++
	s.lastUpdate = input
	s.lastCapacity = maxParticipants
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &models.Course{ID: courseID, Name: input.Name, MaxParticipants: maxParticipants}, nil
}

func (s *stubAdminSeats) DeleteCourse(_ context.Context, _ int64) error {
	return s.deleteErr
}

type stubAdminUsers struct {
	lastActor   models.Caller
	lastDeleted int64
}

func (s *stubAdminUsers) List(_ context.Context) ([]models.User, error) {
	return []models.User{}, nil
}

func (s *stubAdminUsers) ListEnrollments(_ context.Context) ([]models.AdminEnrollment, error) {
	return []models.AdminEnrollment{}, nil
}

func (s *stubAdminUsers) ChangePassword(_ context.Context, _ int64, _ string) error {
	return nil
}

func (s *stubAdminUsers) Delete(_ context.Context, actor models.Caller, userID int64) error {
	s.lastActor = actor
	s.lastDeleted = userID
	return nil
}

type adminFixture struct {
	coaches *stubAdminCoaches
	courses *stubAdminCourses
	seats   *stubAdminSeats
	users   *stubAdminUsers
	app     *fiber.App
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		coaches: &stubAdminCoaches{},
		courses: &stubAdminCourses{},
		seats:   &stubAdminSeats{},
		users:   &stubAdminUsers{},
	}
	handler := &AdminHandler{coaches: f.coaches, courses: f.courses, seats: f.seats, users: f.users}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "1")
		c.Locals("role", models.RoleAdmin)
		c.Locals("caller", models.Caller{UserID: 1, Role: models.RoleAdmin})
		return c.Next()
	})
	app.Post("/api/admin/coaches", handler.CreateCoach)
	app.Delete("/api/admin/coaches/:coachId", handler.DeleteCoach)
	app.Post("/api/admin/coaches/:coachId/image", handler.UploadCoachImage)
	app.Post("/api/admin/courses", handler.CreateCourse)
	app.Put("/api/admin/courses/:courseId", handler.UpdateCourse)
	app.Put("/api/admin/courses/:courseId/capacity", handler.SetCourseCapacity)
	app.Post("/api/admin/courses/:courseId/cancel", handler.CancelCourse)
	app.Delete("/api/admin/courses/:courseId", handler.DeleteCourse)
	app.Delete("/api/admin/users/:userId", handler.DeleteUser)
	f.app = app
	return f
}

func (f *adminFixture) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := f.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestAdminCreateCoachValidatesSpecializations(t *testing.T) {
	f := newAdminFixture()

	resp := f.do(t, jsonRequest(http.MethodPost, "/api/admin/coaches", `{"name":"Amy Yip","email":"amy@example.com","specializations":["crossfit"]}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	resp = f.do(t, jsonRequest(http.MethodPost, "/api/admin/coaches", `{"name":"Amy Yip","email":"amy@example.com","specializations":["yoga","pilates"]}`))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if len(f.coaches.lastInput.Specializations) != 2 || f.coaches.lastInput.Specializations[0] != models.DisciplineYoga {
		t.Fatalf("unexpected input: %+v", f.coaches.lastInput)
	}
}

func TestAdminDeleteCoachInUseReturnsConflict(t *testing.T) {
	f := newAdminFixture()
	f.coaches.deleteErr = services.ErrCoachInUse

	resp := f.do(t, httptest.NewRequest(http.MethodDelete, "/api/admin/coaches/3", nil))
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestAdminUploadCoachImage(t *testing.T) {
	f := newAdminFixture()

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)
	part, err := writer.CreateFormFile("image", "portrait.png")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte("png-bytes")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/coaches/2/image", &requestBody)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp := f.do(t, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if f.coaches.uploadedName != "portrait.png" {
		t.Fatalf("unexpected filename %q", f.coaches.uploadedName)
	}
}

func TestAdminCreateCourseValidatesSchedule(t *testing.T) {
	f := newAdminFixture()

	resp := f.do(t, jsonRequest(http.MethodPost, "/api/admin/courses", `{"name":"Morning Yoga Flow","type":"yoga","coach_id":1,"day":"monday","start_time":"6am","end_time":"08:00"}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	resp = f.do(t, jsonRequest(http.MethodPost, "/api/admin/courses", `{"name":"Morning Yoga Flow","type":"yoga","coach_id":1,"day":"monday","start_time":"06:00","end_time":"08:00","max_participants":15}`))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if f.courses.lastCreate.Schedule.Day != models.Monday || f.courses.lastCreate.MaxParticipants != 15 {
		t.Fatalf("unexpected input: %+v", f.courses.lastCreate)
	}
}

func TestAdminUpdateCourseRoutesCapacityThroughSeats(t *testing.T) {
	f := newAdminFixture()

	resp := f.do(t, jsonRequest(http.MethodPut, "/api/admin/courses/4", `{"name":"Bootcamp","type":"bodyweight","coach_id":2,"day":"monday","start_time":"09:00","end_time":"10:00","max_participants":25}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if f.seats.updateCalls != 1 || f.seats.lastCapacity != 25 {
		t.Fatalf("expected one update with capacity 25, got %d calls with %d", f.seats.updateCalls, f.seats.lastCapacity)
	}
	if f.seats.lastUpdate.Name != "Bootcamp" || f.seats.lastUpdate.CoachID != 2 {
		t.Fatalf("unexpected input: %+v", f.seats.lastUpdate)
	}
}

func TestAdminUpdateCourseRejectedCapacityIsOneCall(t *testing.T) {
	f := newAdminFixture()
	f.seats.updateErr = services.ErrInvalidInput

	resp := f.do(t, jsonRequest(http.MethodPut, "/api/admin/courses/4", `{"name":"Bootcamp","type":"bodyweight","coach_id":2,"day":"monday","start_time":"09:00","end_time":"10:00","max_participants":1}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if f.seats.updateCalls != 1 {
		t.Fatalf("expected a single update call, got %d", f.seats.updateCalls)
	}
}

func TestAdminCourseStateErrors(t *testing.T) {
	f := newAdminFixture()
	f.seats.cancelErr = services.ErrInvalidStateTransition
	f.seats.deleteErr = services.ErrCourseHasMembers
	f.seats.capacityErr = services.ErrInvalidInput

	resp := f.do(t, httptest.NewRequest(http.MethodPost, "/api/admin/courses/4/cancel", nil))
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("cancel: expected 409, got %d", resp.StatusCode)
	}

	resp = f.do(t, httptest.NewRequest(http.MethodDelete, "/api/admin/courses/4", nil))
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("delete: expected 409, got %d", resp.StatusCode)
	}

	resp = f.do(t, jsonRequest(http.MethodPut, "/api/admin/courses/4/capacity", `{"max_participants":2}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("capacity: expected 400, got %d", resp.StatusCode)
	}
}

func TestAdminDeleteUserPassesActor(t *testing.T) {
	f := newAdminFixture()

	resp := f.do(t, httptest.NewRequest(http.MethodDelete, "/api/admin/users/9", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if f.users.lastDeleted != 9 || f.users.lastActor.UserID != 1 {
		t.Fatalf("unexpected delete: user=%d actor=%+v", f.users.lastDeleted, f.users.lastActor)
	}
}
