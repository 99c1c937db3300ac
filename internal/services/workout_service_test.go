package services

import (
	"context"
	"testing"
	"time"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWorkoutRepo struct {
	stored       *models.Workout
	getErr       error
	deleteErr    error
	lastCreated  *models.Workout
	lastUpdated  *models.Workout
	lastLimit    int
	lastOffset   int
	listResult   []models.Workout
	listTotal    int
	summary      *models.WorkoutSummary
	rangeCalled  bool
	lastRangeTo  time.Time
	lastDeleteID int64
}

func (r *stubWorkoutRepo) Create(_ context.Context, w *models.Workout) (*models.Workout, error) {
	r.lastCreated = w
	created := *w
	created.ID = 1
	return &created, nil
}

func (r *stubWorkoutRepo) GetByIDForUser(_ context.Context, id, userID int64) (*models.Workout, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.stored == nil || r.stored.ID != id || r.stored.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	copied := *r.stored
	return &copied, nil
}

func (r *stubWorkoutRepo) ListByUser(_ context.Context, _ int64, limit, offset int) ([]models.Workout, int, error) {
	r.lastLimit = limit
	r.lastOffset = offset
	return r.listResult, r.listTotal, nil
}

func (r *stubWorkoutRepo) ListByDateRange(_ context.Context, _ int64, _, to time.Time) ([]models.Workout, error) {
	r.rangeCalled = true
	r.lastRangeTo = to
	return r.listResult, nil
}

func (r *stubWorkoutRepo) Summary(_ context.Context, _ int64, _, _ time.Time) (*models.WorkoutSummary, error) {
	return r.summary, nil
}

func (r *stubWorkoutRepo) Update(_ context.Context, w *models.Workout) (*models.Workout, error) {
	r.lastUpdated = w
	return w, nil
}

func (r *stubWorkoutRepo) Delete(_ context.Context, id, _ int64) error {
	r.lastDeleteID = id
	return r.deleteErr
}

var workoutStart = time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

func TestWorkoutCreateDerivesDuration(t *testing.T) {
	repo := &stubWorkoutRepo{}
	service := NewWorkoutService(repo)

	created, err := service.Create(context.Background(), 42, models.Workout{
		ExerciseType:   "strength",
		ExerciseName:   "Deadlift",
		StartTime:      workoutStart,
		EndTime:        workoutStart.Add(40 * time.Minute),
		CaloriesBurned: 310,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), repo.lastCreated.UserID)
	assert.Equal(t, 40, created.Duration)
	assert.Equal(t, "moderate", created.Intensity)
}

func TestWorkoutCreateRejectsEndBeforeStart(t *testing.T) {
	repo := &stubWorkoutRepo{}
	service := NewWorkoutService(repo)

	_, err := service.Create(context.Background(), 42, models.Workout{
		ExerciseType: "cardio",
		ExerciseName: "Row",
		StartTime:    workoutStart,
		EndTime:      workoutStart.Add(-10 * time.Minute),
		Duration:     20,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, models.ErrEndBeforeStart)
	assert.Nil(t, repo.lastCreated)
}

func TestWorkoutGetHidesOtherUsersEntries(t *testing.T) {
	repo := &stubWorkoutRepo{stored: &models.Workout{ID: 5, UserID: 1}}
	service := NewWorkoutService(repo)

	_, err := service.Get(context.Background(), 2, 5)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)

	workout, err := service.Get(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), workout.ID)
}

func TestWorkoutUpdateRederivesDurationWhenTimesChange(t *testing.T) {
	repo := &stubWorkoutRepo{stored: &models.Workout{
		ID:        5,
		UserID:    1,
		StartTime: workoutStart,
		EndTime:   workoutStart.Add(30 * time.Minute),
		Duration:  30,
		Intensity: "light",
	}}
	service := NewWorkoutService(repo)

	end := workoutStart.Add(75 * time.Minute)
	updated, err := service.Update(context.Background(), 1, 5, WorkoutPatch{EndTime: &end})
	require.NoError(t, err)
	assert.Equal(t, 75, updated.Duration)
	assert.Equal(t, "light", updated.Intensity)
}

func TestWorkoutUpdateValidatesMergedRecord(t *testing.T) {
	repo := &stubWorkoutRepo{stored: &models.Workout{
		ID:        5,
		UserID:    1,
		StartTime: workoutStart,
		EndTime:   workoutStart.Add(30 * time.Minute),
		Duration:  30,
	}}
	service := NewWorkoutService(repo)

	start := workoutStart.Add(2 * time.Hour)
	_, err := service.Update(context.Background(), 1, 5, WorkoutPatch{StartTime: &start})
	assert.ErrorIs(t, err, models.ErrEndBeforeStart)
	assert.Nil(t, repo.lastUpdated)
}

func TestWorkoutDeleteMapsMissingRow(t *testing.T) {
	repo := &stubWorkoutRepo{deleteErr: pgx.ErrNoRows}
	service := NewWorkoutService(repo)

	assert.ErrorIs(t, service.Delete(context.Background(), 1, 9), ErrWorkoutNotFound)
	assert.Equal(t, int64(9), repo.lastDeleteID)
}

func TestWorkoutListComputesOffset(t *testing.T) {
	repo := &stubWorkoutRepo{listTotal: 23}
	service := NewWorkoutService(repo)

	_, total, err := service.List(context.Background(), 1, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 23, total)
	assert.Equal(t, 10, repo.lastLimit)
	assert.Equal(t, 20, repo.lastOffset)
}

func TestWorkoutRangeRejectsInvertedRange(t *testing.T) {
	repo := &stubWorkoutRepo{}
	service := NewWorkoutService(repo)

	_, err := service.ListByDateRange(context.Background(), 1, workoutStart, workoutStart.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, repo.rangeCalled)

	_, err = service.Summary(context.Background(), 1, workoutStart, workoutStart.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
