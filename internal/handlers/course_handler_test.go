package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/alanluk2226/Workoutapp/internal/repository"
	"github.com/alanluk2226/Workoutapp/internal/services"
	"github.com/gofiber/fiber/v2"
)

type stubEnrollmentService struct {
	enrollResult   *models.Enrollment
	enrollErr      error
	unenrollErr    error
	listResult     []models.CourseDetail
	myResult       []models.EnrollmentDetail
	lastUserID     int64
	lastCourseID   int64
	lastListFilter repository.CourseListFilter
}

func (s *stubEnrollmentService) Enroll(_ context.Context, userID, courseID int64) (*models.Enrollment, error) {
	s.lastUserID = userID
	s.lastCourseID = courseID
	return s.enrollResult, s.enrollErr
}

func (s *stubEnrollmentService) Unenroll(_ context.Context, userID, courseID int64) error {
	s.lastUserID = userID
	s.lastCourseID = courseID
	return s.unenrollErr
}

func (s *stubEnrollmentService) ListCourses(_ context.Context, filter repository.CourseListFilter) ([]models.CourseDetail, error) {
	s.lastListFilter = filter
	return s.listResult, nil
}

func (s *stubEnrollmentService) ListEnrollmentsForUser(_ context.Context, userID int64) ([]models.EnrollmentDetail, error) {
	s.lastUserID = userID
	return s.myResult, nil
}

func newCourseTestApp(handler *CourseHandler) *fiber.App {
	app := fiber.New()
	app.Get("/api/courses", handler.ListCourses)

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", "user")
		c.Locals("user_id", "42")
		return c.Next()
	})
	app.Get("/api/my-courses", handler.MyCourses)
	app.Post("/api/courses/:courseId/enroll", handler.Enroll)
	app.Post("/api/courses/:courseId/unenroll", handler.Unenroll)
	return app
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestEnrollReturnsEnrollment(t *testing.T) {
	service := &stubEnrollmentService{
		enrollResult: &models.Enrollment{ID: 3, UserID: 42, CourseID: 7, Status: models.EnrollmentStatusActive},
	}
	app := newCourseTestApp(&CourseHandler{service: service})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/courses/7/enroll", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastUserID != 42 || service.lastCourseID != 7 {
		t.Fatalf("unexpected ids: user=%d course=%d", service.lastUserID, service.lastCourseID)
	}
	body := decodeEnvelope(t, resp)
	if body["success"] != true {
		t.Fatalf("expected success envelope, got %v", body)
	}
	if _, ok := body["enrollment"]; !ok {
		t.Fatalf("expected enrollment in body, got %v", body)
	}
}

func TestEnrollMapsConflictsToBadRequest(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{services.ErrCourseFull, http.StatusBadRequest, "Course is full"},
		{services.ErrCourseUnavailable, http.StatusBadRequest, "Course is not available for enrollment"},
		{services.ErrAlreadyEnrolled, http.StatusBadRequest, "Already enrolled in this course"},
		{services.ErrCourseNotFound, http.StatusNotFound, "Course not found"},
		{services.ErrUnauthorized, http.StatusUnauthorized, "Invalid token"},
	}

	for _, tc := range cases {
		app := newCourseTestApp(&CourseHandler{service: &stubEnrollmentService{enrollErr: tc.err}})

		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/courses/7/enroll", nil))
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, resp.StatusCode)
		}
		body := decodeEnvelope(t, resp)
		resp.Body.Close()
		if body["success"] != false || body["error"] != tc.message {
			t.Fatalf("%v: unexpected body %v", tc.err, body)
		}
	}
}

func TestUnenrollWithoutEnrollmentReturnsNotFound(t *testing.T) {
	service := &stubEnrollmentService{unenrollErr: services.ErrEnrollmentNotFound}
	app := newCourseTestApp(&CourseHandler{service: service})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/courses/9/unenroll", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if service.lastCourseID != 9 {
		t.Fatalf("expected course 9, got %d", service.lastCourseID)
	}
}

func TestListCoursesPassesFilter(t *testing.T) {
	service := &stubEnrollmentService{}
	app := newCourseTestApp(&CourseHandler{service: service})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/courses?type=Yoga&day=monday&coach_id=4", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	filter := service.lastListFilter
	if filter.Type != models.DisciplineYoga || filter.Day != models.Monday || filter.CoachID != 4 {
		t.Fatalf("unexpected filter: %+v", filter)
	}
}

func TestListCoursesRejectsUnknownDay(t *testing.T) {
	app := newCourseTestApp(&CourseHandler{service: &stubEnrollmentService{}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/courses?day=someday", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestMyCoursesUsesCaller(t *testing.T) {
	service := &stubEnrollmentService{myResult: []models.EnrollmentDetail{}}
	app := newCourseTestApp(&CourseHandler{service: service})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/my-courses", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastUserID != 42 {
		t.Fatalf("expected user 42, got %d", service.lastUserID)
	}
}
