package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/alanluk2226/Workoutapp/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type coachStore interface {
	Create(ctx context.Context, input repository.CoachInput) (*models.Coach, error)
	GetByID(ctx context.Context, id int64) (*models.Coach, error)
	List(ctx context.Context, activeOnly bool) ([]models.Coach, error)
	Update(ctx context.Context, id int64, input repository.CoachInput) (*models.Coach, error)
	UpdateImage(ctx context.Context, id int64, image string) (*models.Coach, error)
	Delete(ctx context.Context, id int64) error
}

type coachCourseLister interface {
	List(ctx context.Context, filter repository.CourseListFilter) ([]models.Course, error)
}

type CoachService struct {
	coaches        coachStore
	courses        coachCourseLister
	storageService StorageService
	logger         zerolog.Logger
}

func NewCoachService(
	coaches coachStore,
	courses coachCourseLister,
	storageService StorageService,
	logger zerolog.Logger,
) *CoachService {
	return &CoachService{
		coaches:        coaches,
		courses:        courses,
		storageService: storageService,
		logger:         logger.With().Str("component", "coach").Logger(),
	}
}

func (s *CoachService) ListActive(ctx context.Context) ([]models.Coach, error) {
	coaches, err := s.coaches.List(ctx, true)
	if err != nil {
		return nil, err
	}
	s.resolveImages(ctx, coaches)
	return coaches, nil
}

func (s *CoachService) ListAll(ctx context.Context) ([]models.Coach, error) {
	coaches, err := s.coaches.List(ctx, false)
	if err != nil {
		return nil, err
	}
	s.resolveImages(ctx, coaches)
	return coaches, nil
}

// GetDetail returns the coach with their open courses in weekly order.
func (s *CoachService) GetDetail(ctx context.Context, coachID int64) (*models.CoachDetail, error) {
	coach, err := s.get(ctx, coachID)
	if err != nil {
		return nil, err
	}

	courses, err := s.courses.List(ctx, repository.CourseListFilter{
		Status:  models.CourseStatusActive,
		CoachID: coachID,
	})
	if err != nil {
		return nil, err
	}

	details := make([]models.CourseDetail, 0, len(courses))
	for _, course := range courses {
		details = append(details, models.CourseDetail{Course: course})
	}
	models.SortBySchedule(details)

	ordered := make([]models.Course, 0, len(details))
	for _, detail := range details {
		ordered = append(ordered, detail.Course)
	}

	single := []models.Coach{*coach}
	s.resolveImages(ctx, single)
	return &models.CoachDetail{Coach: single[0], Courses: ordered}, nil
}

func (s *CoachService) Create(ctx context.Context, input repository.CoachInput) (*models.Coach, error) {
	input, err := normalizeCoachInput(input)
	if err != nil {
		return nil, err
	}
	if input.Image == "" {
		input.Image = models.DefaultCoachImage
	}

	coach, err := s.coaches.Create(ctx, input)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateCoach
		}
		return nil, err
	}
	return coach, nil
}

func (s *CoachService) Update(ctx context.Context, coachID int64, input repository.CoachInput) (*models.Coach, error) {
	input, err := normalizeCoachInput(input)
	if err != nil {
		return nil, err
	}

	coach, err := s.coaches.Update(ctx, coachID, input)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, ErrCoachNotFound
		case repository.IsUniqueViolation(err):
			return nil, ErrDuplicateCoach
		}
		return nil, err
	}
	return coach, nil
}

// Delete refuses while any course still references the coach.
func (s *CoachService) Delete(ctx context.Context, coachID int64) error {
	coach, err := s.get(ctx, coachID)
	if err != nil {
		return err
	}

	if err := s.coaches.Delete(ctx, coachID); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return ErrCoachNotFound
		case repository.IsForeignKeyViolation(err):
			return ErrCoachInUse
		}
		return err
	}

	if s.storageService != nil && IsStoredObject(coach.Image) {
		if err := s.storageService.DeleteFile(ctx, coach.Image); err != nil {
			s.logger.Warn().Err(err).Int64("coach_id", coachID).Msg("remove coach image")
		}
	}
	return nil
}

func (s *CoachService) UploadImage(
	ctx context.Context,
	coachID int64,
	file multipart.File,
	filename string,
) (*models.Coach, error) {
	if s.storageService == nil {
		return nil, ErrStorageUnavailable
	}
	if file == nil {
		return nil, ErrInvalidInput
	}

	previous, err := s.get(ctx, coachID)
	if err != nil {
		return nil, err
	}

	fileURL, err := s.storageService.UploadFile(ctx, file, buildCoachImageFilename(coachID, filename), "coaches")
	if err != nil {
		return nil, err
	}

	coach, err := s.coaches.UpdateImage(ctx, coachID, fileURL)
	if err != nil {
		cleanupErr := s.storageService.DeleteFile(ctx, fileURL)
		if errors.Is(err, pgx.ErrNoRows) {
			err = ErrCoachNotFound
		}
		if cleanupErr != nil {
			return nil, errors.Join(err, fmt.Errorf("cleanup failed: %w", cleanupErr))
		}
		return nil, err
	}

	if IsStoredObject(previous.Image) && previous.Image != fileURL {
		if err := s.storageService.DeleteFile(ctx, previous.Image); err != nil {
			s.logger.Warn().Err(err).Int64("coach_id", coachID).Msg("remove previous coach image")
		}
	}

	single := []models.Coach{*coach}
	s.resolveImages(ctx, single)
	return &single[0], nil
}

func (s *CoachService) get(ctx context.Context, coachID int64) (*models.Coach, error) {
	coach, err := s.coaches.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}
	return coach, nil
}

// resolveImages swaps stored object references for short-lived download links.
func (s *CoachService) resolveImages(ctx context.Context, coaches []models.Coach) {
	if s.storageService == nil {
		return
	}
	for i := range coaches {
		if !IsStoredObject(coaches[i].Image) {
			continue
		}
		signed, err := s.storageService.GetSignedURL(ctx, coaches[i].Image)
		if err != nil {
			s.logger.Warn().Err(err).Int64("coach_id", coaches[i].ID).Msg("sign coach image")
			coaches[i].Image = models.DefaultCoachImage
			continue
		}
		coaches[i].Image = signed
	}
}

func normalizeCoachInput(input repository.CoachInput) (repository.CoachInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" || input.Email == "" {
		return input, ErrInvalidInput
	}
	for _, specialization := range input.Specializations {
		if !specialization.Valid() {
			return input, ErrInvalidInput
		}
	}
	if input.EmploymentType == "" {
		input.EmploymentType = models.EmploymentFullTime
	}
	if input.Status == "" {
		input.Status = models.CoachStatusActive
	}
	return input, nil
}

func buildCoachImageFilename(coachID int64, original string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(original)))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%d-%d%s", coachID, time.Now().UnixNano(), ext)
}
