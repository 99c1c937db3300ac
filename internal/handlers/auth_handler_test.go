package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/alanluk2226/Workoutapp/internal/services"
	"github.com/alanluk2226/Workoutapp/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type stubAuthService struct {
	registerErr    error
	loginErr       error
	lastRegister   services.RegisterInput
	lastIdentifier string
	loggedOut      *utils.Claims
}

func (s *stubAuthService) Register(_ context.Context, input services.RegisterInput) (*services.AuthResult, error) {
	s.lastRegister = input
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &services.AuthResult{Token: "token", User: &models.User{ID: 1, Username: input.Username}}, nil
}

func (s *stubAuthService) Login(_ context.Context, identifier, _ string) (*services.AuthResult, error) {
	s.lastIdentifier = identifier
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &services.AuthResult{Token: "token", User: &models.User{ID: 1}}, nil
}

func (s *stubAuthService) Logout(_ context.Context, claims *utils.Claims) error {
	s.loggedOut = claims
	return nil
}

func (s *stubAuthService) CurrentUser(_ context.Context, userID int64) (*models.User, error) {
	return &models.User{ID: userID, Username: "jade"}, nil
}

func newAuthTestApp(handler *AuthHandler) *fiber.App {
	app := fiber.New()
	app.Post("/api/signup", handler.Register)
	app.Post("/api/login", handler.Login)
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "5")
		c.Locals("role", "user")
		c.Locals("claims", &utils.Claims{UserID: "5"})
		return c.Next()
	})
	app.Post("/api/logout", handler.Logout)
	app.Get("/api/current-user", handler.CurrentUser)
	return app
}

func TestSignupReturnsCreated(t *testing.T) {
	service := &stubAuthService{}
	app := newAuthTestApp(&AuthHandler{service: service})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/signup", `{"username":"jade","email":"jade@example.com","password":"secret123"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastRegister.Email != "jade@example.com" {
		t.Fatalf("unexpected input: %+v", service.lastRegister)
	}
	body := decodeEnvelope(t, resp)
	if body["token"] != "token" {
		t.Fatalf("expected token, got %v", body)
	}
}

func TestSignupValidatesBody(t *testing.T) {
	app := newAuthTestApp(&AuthHandler{service: &stubAuthService{}})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/signup", `{"username":"jade","email":"not-an-email","password":"secret123"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	body := decodeEnvelope(t, resp)
	if body["error"] != "email must be a valid email" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
}

func TestSignupDuplicateReturnsConflict(t *testing.T) {
	app := newAuthTestApp(&AuthHandler{service: &stubAuthService{registerErr: services.ErrDuplicateAccount}})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/signup", `{"username":"jade","email":"jade@example.com","password":"secret123"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestLoginFallsBackToEmail(t *testing.T) {
	service := &stubAuthService{loginErr: services.ErrUnauthorized}
	app := newAuthTestApp(&AuthHandler{service: service})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/login", `{"email":"jade@example.com","password":"nope"}`))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if service.lastIdentifier != "jade@example.com" {
		t.Fatalf("unexpected identifier %q", service.lastIdentifier)
	}
}

func TestLogoutRevokesCallerToken(t *testing.T) {
	service := &stubAuthService{}
	app := newAuthTestApp(&AuthHandler{service: service})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/logout", ""))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.loggedOut == nil || service.loggedOut.UserID != "5" {
		t.Fatalf("expected claims to be revoked, got %+v", service.loggedOut)
	}
}
