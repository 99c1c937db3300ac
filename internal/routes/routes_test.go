package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alanluk2226/Workoutapp/internal/config"
	coursews "github.com/alanluk2226/Workoutapp/internal/websocket"
	"github.com/alanluk2226/Workoutapp/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const routesTestSecret = "routes-test-secret"

// newRoutesTestApp wires every route without a database. Only requests
// rejected before reaching storage are safe to send.
func newRoutesTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{JWTSecret: routesTestSecret, JWTTTL: time.Hour, AppEnv: "test"}
	deps := Dependencies{
		Hub:    coursews.NewHub(zerolog.Nop()),
		Logger: zerolog.Nop(),
	}

	app := fiber.New()
	if err := RegisterRoutes(app, cfg, deps, NewServices(cfg, deps)); err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}
	return app
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()

	token, err := utils.GenerateToken(userID, role, routesTestSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return "Bearer " + token
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newRoutesTestApp(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/my-courses"},
		{http.MethodPost, "/api/courses/1/enroll"},
		{http.MethodPost, "/api/courses/1/unenroll"},
		{http.MethodGet, "/api/workouts"},
		{http.MethodGet, "/api/workouts/summary"},
		{http.MethodGet, "/api/current-user"},
		{http.MethodGet, "/api/admin/users"},
		{http.MethodPut, "/api/admin/courses/1/capacity"},
	}

	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil))
		if err != nil {
			t.Fatalf("%s %s: %v", tc.method, tc.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, resp.StatusCode)
		}
	}
}

func TestAdminRoutesRejectRegularUsers(t *testing.T) {
	app := newRoutesTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/enrollments", nil)
	req.Header.Set("Authorization", bearer(t, "5", "user"))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestWorkoutRoutesValidateBeforeStorage(t *testing.T) {
	app := newRoutesTestApp(t)

	body := `{"exercise_type":"cardio","exercise_name":"Run","start_time":"2026-03-02T18:00:00Z","end_time":"2026-03-02T17:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/workouts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, "5", "user"))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSeatFeedRequiresUpgrade(t *testing.T) {
	app := newRoutesTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ws/courses", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUpgradeRequired {
		t.Fatalf("expected 426, got %d", resp.StatusCode)
	}
}
