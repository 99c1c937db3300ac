package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/alanluk2226/Workoutapp/internal/repository"
	"github.com/alanluk2226/Workoutapp/pkg/utils"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type accountStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetByLogin(ctx context.Context, identifier string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AuthService struct {
	users    accountStore
	denylist TokenDenylist
	secret   string
	ttl      time.Duration
	logger   zerolog.Logger
}

func NewAuthService(
	users accountStore,
	denylist TokenDenylist,
	secret string,
	ttl time.Duration,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		denylist: denylist,
		secret:   secret,
		ttl:      ttl,
		logger:   logger.With().Str("component", "auth").Logger(),
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if username == "" || email == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateAccount
	}

	user, err := s.createUser(ctx, username, email, input.Password, models.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Login accepts either the username or the email address as identifier.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetByLogin(ctx, identifier)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !utils.CheckPassword(password, user.PasswordHash) {
		return nil, ErrUnauthorized
	}
	return s.issue(user)
}

// Authenticate turns a bearer token into the caller identity.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Caller, *utils.Claims, error) {
	claims, err := utils.ValidateToken(token, s.secret)
	if err != nil {
		return nil, nil, ErrUnauthorized
	}
	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, ErrUnauthorized
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil || userID <= 0 {
		return nil, nil, ErrUnauthorized
	}
	return &models.Caller{UserID: userID, Role: claims.Role}, claims, nil
}

func (s *AuthService) Logout(ctx context.Context, claims *utils.Claims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return ErrUnauthorized
	}
	return s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// EnsureAdmin creates the bootstrap admin account unless the username or email is taken.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil || exists {
		return err
	}
	if _, err := s.createUser(ctx, username, email, password, models.RoleAdmin); err != nil {
		if errors.Is(err, ErrDuplicateAccount) {
			return nil
		}
		return err
	}
	s.logger.Info().Str("username", username).Msg("bootstrap admin created")
	return nil
}

func (s *AuthService) createUser(ctx context.Context, username, email, password, role string) (*models.User, error) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(strconv.FormatInt(user.ID, 10), user.Role, s.secret, s.ttl)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
