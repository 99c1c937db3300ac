package services

import (
	"context"
	"errors"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/alanluk2226/Workoutapp/pkg/utils"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type userAdminStore interface {
	List(ctx context.Context) ([]models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type enrollmentAdminLister interface {
	ListAll(ctx context.Context) ([]models.AdminEnrollment, error)
}

type accountRemover interface {
	RemoveUser(ctx context.Context, userID int64) (int, error)
}

type UserService struct {
	users       userAdminStore
	enrollments enrollmentAdminLister
	accounts    accountRemover
	logger      zerolog.Logger
}

func NewUserService(
	users userAdminStore,
	enrollments enrollmentAdminLister,
	accounts accountRemover,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:       users,
		enrollments: enrollments,
		accounts:    accounts,
		logger:      logger.With().Str("component", "user_admin").Logger(),
	}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) ListEnrollments(ctx context.Context) ([]models.AdminEnrollment, error) {
	return s.enrollments.ListAll(ctx)
}

func (s *UserService) ChangePassword(ctx context.Context, userID int64, password string) error {
	if len(password) < 6 {
		return ErrInvalidInput
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hashed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// Delete gives back the user's course seats and removes the account together;
// workouts and enrollment history go with it.
func (s *UserService) Delete(ctx context.Context, actor models.Caller, userID int64) error {
	if actor.UserID == userID {
		return ErrForbidden
	}

	released, err := s.accounts.RemoveUser(ctx, userID)
	if err != nil {
		return err
	}

	s.logger.Info().
		Int64("user_id", userID).
		Int64("deleted_by", actor.UserID).
		Int("seats_released", released).
		Msg("user deleted")
	return nil
}
