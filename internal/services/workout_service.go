package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/jackc/pgx/v5"
)

type workoutStore interface {
	Create(ctx context.Context, w *models.Workout) (*models.Workout, error)
	GetByIDForUser(ctx context.Context, id, userID int64) (*models.Workout, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Workout, int, error)
	ListByDateRange(ctx context.Context, userID int64, from, to time.Time) ([]models.Workout, error)
	Summary(ctx context.Context, userID int64, from, to time.Time) (*models.WorkoutSummary, error)
	Update(ctx context.Context, w *models.Workout) (*models.Workout, error)
	Delete(ctx context.Context, id, userID int64) error
}

// WorkoutPatch holds the fields of a partial workout update. Nil means unchanged.
type WorkoutPatch struct {
	ExerciseType        *string
	ExerciseName        *string
	Date                *time.Time
	StartTime           *time.Time
	EndTime             *time.Time
	Duration            *int
	CaloriesBurned      *float64
	Intensity           *string
	MetabolicEquivalent *float64
	Sets                *int
	Reps                *int
	Weight              *float64
	Distance            *float64
	DistanceUnit        *string
	AverageHeartRate    *int
	MaxHeartRate        *int
	MuscleGroups        *[]string
	Equipment           *[]string
	Notes               *string
	Rating              *int
	PerceivedExertion   *int
	Status              *string
}

type WorkoutService struct {
	workouts workoutStore
}

func NewWorkoutService(workouts workoutStore) *WorkoutService {
	return &WorkoutService{workouts: workouts}
}

func (s *WorkoutService) Create(ctx context.Context, userID int64, workout models.Workout) (*models.Workout, error) {
	workout.UserID = userID
	if err := workout.Normalize(); err != nil {
		return nil, invalidInput(err)
	}
	return s.workouts.Create(ctx, &workout)
}

func (s *WorkoutService) List(ctx context.Context, userID int64, page, limit int) ([]models.Workout, int, error) {
	if page < 1 || limit < 1 {
		return nil, 0, ErrInvalidInput
	}
	return s.workouts.ListByUser(ctx, userID, limit, (page-1)*limit)
}

func (s *WorkoutService) Get(ctx context.Context, userID, workoutID int64) (*models.Workout, error) {
	workout, err := s.workouts.GetByIDForUser(ctx, workoutID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// Update applies the patch to the stored workout and validates the merged record.
func (s *WorkoutService) Update(ctx context.Context, userID, workoutID int64, patch WorkoutPatch) (*models.Workout, error) {
	workout, err := s.Get(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}

	timesChanged := patch.StartTime != nil || patch.EndTime != nil
	applyWorkoutPatch(workout, patch)
	if timesChanged && patch.Duration == nil {
		workout.Duration = 0
	}
	if err := workout.Normalize(); err != nil {
		return nil, invalidInput(err)
	}

	updated, err := s.workouts.Update(ctx, workout)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *WorkoutService) Delete(ctx context.Context, userID, workoutID int64) error {
	if err := s.workouts.Delete(ctx, workoutID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

func (s *WorkoutService) ListByDateRange(ctx context.Context, userID int64, from, to time.Time) ([]models.Workout, error) {
	if to.Before(from) {
		return nil, ErrInvalidInput
	}
	return s.workouts.ListByDateRange(ctx, userID, from, to)
}

func (s *WorkoutService) Summary(ctx context.Context, userID int64, from, to time.Time) (*models.WorkoutSummary, error) {
	if to.Before(from) {
		return nil, ErrInvalidInput
	}
	return s.workouts.Summary(ctx, userID, from, to)
}

func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

func applyWorkoutPatch(w *models.Workout, p WorkoutPatch) {
	if p.ExerciseType != nil {
		w.ExerciseType = *p.ExerciseType
	}
	if p.ExerciseName != nil {
		w.ExerciseName = *p.ExerciseName
	}
	if p.Date != nil {
		w.Date = *p.Date
	}
	if p.StartTime != nil {
		w.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		w.EndTime = *p.EndTime
	}
	if p.Duration != nil {
		w.Duration = *p.Duration
	}
	if p.CaloriesBurned != nil {
		w.CaloriesBurned = *p.CaloriesBurned
	}
	if p.Intensity != nil {
		w.Intensity = *p.Intensity
	}
	if p.MetabolicEquivalent != nil {
		w.MetabolicEquivalent = p.MetabolicEquivalent
	}
	if p.Sets != nil {
		w.Sets = p.Sets
	}
	if p.Reps != nil {
		w.Reps = p.Reps
	}
	if p.Weight != nil {
		w.Weight = p.Weight
	}
	if p.Distance != nil {
		w.Distance = p.Distance
	}
	if p.DistanceUnit != nil {
		w.DistanceUnit = *p.DistanceUnit
	}
	if p.AverageHeartRate != nil {
		w.AverageHeartRate = p.AverageHeartRate
	}
	if p.MaxHeartRate != nil {
		w.MaxHeartRate = p.MaxHeartRate
	}
	if p.MuscleGroups != nil {
		w.MuscleGroups = *p.MuscleGroups
	}
	if p.Equipment != nil {
		w.Equipment = *p.Equipment
	}
	if p.Notes != nil {
		w.Notes = p.Notes
	}
	if p.Rating != nil {
		w.Rating = p.Rating
	}
	if p.PerceivedExertion != nil {
		w.PerceivedExertion = p.PerceivedExertion
	}
	if p.Status != nil {
		w.Status = *p.Status
	}
}
