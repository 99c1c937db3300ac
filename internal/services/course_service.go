package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/alanluk2226/Workoutapp/internal/repository"
	"github.com/jackc/pgx/v5"
)

const scheduleLayout = "15:04"

type courseWriter interface {
	Create(ctx context.Context, input repository.CreateCourseInput) (*models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// CourseService creates and reads courses. Edits to an existing course go
// through EnrollmentService, which owns seats, capacity and status.
type CourseService struct {
	courses courseWriter
}

func NewCourseService(courses courseWriter) *CourseService {
	return &CourseService{courses: courses}
}

func (s *CourseService) Create(ctx context.Context, input repository.CreateCourseInput) (*models.Course, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.MaxParticipants == 0 {
		input.MaxParticipants = models.DefaultMaxParticipants
	}
	if err := validateCourseFields(input.Name, input.Type, input.CoachID, input.Schedule); err != nil {
		return nil, err
	}
	if input.MaxParticipants < 1 {
		return nil, ErrInvalidInput
	}

	course, err := s.courses.Create(ctx, input)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Get(ctx context.Context, courseID int64) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func validateCourseFields(name string, courseType models.Discipline, coachID int64, schedule models.Schedule) error {
	if name == "" || coachID <= 0 || !courseType.Valid() || !schedule.Day.Valid() {
		return ErrInvalidInput
	}
	// Stored as zero-padded HH:MM so the strings sort in time order.
	if len(schedule.StartTime) != len(scheduleLayout) || len(schedule.EndTime) != len(scheduleLayout) {
		return ErrInvalidInput
	}
	start, err := time.Parse(scheduleLayout, schedule.StartTime)
	if err != nil {
		return ErrInvalidInput
	}
	end, err := time.Parse(scheduleLayout, schedule.EndTime)
	if err != nil || !end.After(start) {
		return ErrInvalidInput
	}
	return nil
}
