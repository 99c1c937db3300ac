package repository

import (
	"context"
	"time"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/jackc/pgx/v5"
)

const workoutColumns = `id, user_id, exercise_type, exercise_name, date, start_time, end_time, duration,
	calories_burned, intensity, metabolic_equivalent, sets, reps, weight, distance, distance_unit,
	average_heart_rate, max_heart_rate, muscle_groups, equipment, notes, rating, perceived_exertion,
	status, created_at, updated_at`

type WorkoutRepository struct {
	db DBTX
}

func NewWorkoutRepository(db DBTX) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func scanWorkout(row rowScanner) (*models.Workout, error) {
	var w models.Workout
	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.ExerciseType,
		&w.ExerciseName,
		&w.Date,
		&w.StartTime,
		&w.EndTime,
		&w.Duration,
		&w.CaloriesBurned,
		&w.Intensity,
		&w.MetabolicEquivalent,
		&w.Sets,
		&w.Reps,
		&w.Weight,
		&w.Distance,
		&w.DistanceUnit,
		&w.AverageHeartRate,
		&w.MaxHeartRate,
		&w.MuscleGroups,
		&w.Equipment,
		&w.Notes,
		&w.Rating,
		&w.PerceivedExertion,
		&w.Status,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func workoutArgs(w *models.Workout) []any {
	return []any{
		w.ExerciseType,
		w.ExerciseName,
		w.Date,
		w.StartTime,
		w.EndTime,
		w.Duration,
		w.CaloriesBurned,
		w.Intensity,
		w.MetabolicEquivalent,
		w.Sets,
		w.Reps,
		w.Weight,
		w.Distance,
		w.DistanceUnit,
		w.AverageHeartRate,
		w.MaxHeartRate,
		w.MuscleGroups,
		w.Equipment,
		w.Notes,
		w.Rating,
		w.PerceivedExertion,
		w.Status,
	}
}

func (r *WorkoutRepository) Create(ctx context.Context, w *models.Workout) (*models.Workout, error) {
	query := `
		INSERT INTO workouts (
			user_id, exercise_type, exercise_name, date, start_time, end_time, duration,
			calories_burned, intensity, metabolic_equivalent, sets, reps, weight, distance, distance_unit,
			average_heart_rate, max_heart_rate, muscle_groups, equipment, notes, rating, perceived_exertion, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING ` + workoutColumns
	args := append([]any{w.UserID}, workoutArgs(w)...)
	return scanWorkout(r.db.QueryRow(ctx, query, args...))
}

func (r *WorkoutRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*models.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE id = $1 AND user_id = $2`
	return scanWorkout(r.db.QueryRow(ctx, query, id, userID))
}

func (r *WorkoutRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Workout, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM workouts WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + workoutColumns + `
		FROM workouts
		WHERE user_id = $1
		ORDER BY date DESC, start_time DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	workouts, err := r.list(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return workouts, total, nil
}

// ListByDateRange returns workouts dated within [from, to], oldest first.
func (r *WorkoutRepository) ListByDateRange(ctx context.Context, userID int64, from, to time.Time) ([]models.Workout, error) {
	query := `
		SELECT ` + workoutColumns + `
		FROM workouts
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC, start_time ASC, id ASC
	`
	return r.list(ctx, query, userID, from, to)
}

func (r *WorkoutRepository) Summary(ctx context.Context, userID int64, from, to time.Time) (*models.WorkoutSummary, error) {
	query := `
		SELECT COALESCE(SUM(calories_burned), 0), COUNT(*), COALESCE(SUM(duration), 0)
		FROM workouts
		WHERE user_id = $1 AND date >= $2 AND date <= $3
	`
	var summary models.WorkoutSummary
	if err := r.db.QueryRow(ctx, query, userID, from, to).
		Scan(&summary.TotalCalories, &summary.TotalWorkouts, &summary.TotalDuration); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *WorkoutRepository) Update(ctx context.Context, w *models.Workout) (*models.Workout, error) {
	query := `
		UPDATE workouts
		SET exercise_type = $3,
			exercise_name = $4,
			date = $5,
			start_time = $6,
			end_time = $7,
			duration = $8,
			calories_burned = $9,
			intensity = $10,
			metabolic_equivalent = $11,
			sets = $12,
			reps = $13,
			weight = $14,
			distance = $15,
			distance_unit = $16,
			average_heart_rate = $17,
			max_heart_rate = $18,
			muscle_groups = $19,
			equipment = $20,
			notes = $21,
			rating = $22,
			perceived_exertion = $23,
			status = $24,
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + workoutColumns
	args := append([]any{w.ID, w.UserID}, workoutArgs(w)...)
	return scanWorkout(r.db.QueryRow(ctx, query, args...))
}

func (r *WorkoutRepository) Delete(ctx context.Context, id, userID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *WorkoutRepository) list(ctx context.Context, query string, args ...any) ([]models.Workout, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]models.Workout, 0)
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return workouts, nil
}
