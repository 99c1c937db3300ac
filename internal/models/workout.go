package models

import (
	"errors"
	"math"
	"time"
)

var (
	ErrEndBeforeStart   = errors.New("end time must be after start time")
	ErrInvalidDuration  = errors.New("duration must be at least 1 minute")
	ErrNegativeCalories = errors.New("calories burned cannot be negative")
)

const (
	IntensityModerate      = "moderate"
	DistanceUnitKm         = "km"
	WorkoutStatusCompleted = "completed"
)

type Workout struct {
	ID                  int64     `json:"id"`
	UserID              int64     `json:"user_id"`
	ExerciseType        string    `json:"exercise_type"`
	ExerciseName        string    `json:"exercise_name"`
	Date                time.Time `json:"date"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	Duration            int       `json:"duration"`
	CaloriesBurned      float64   `json:"calories_burned"`
	Intensity           string    `json:"intensity"`
	MetabolicEquivalent *float64  `json:"metabolic_equivalent"`
	Sets                *int      `json:"sets"`
	Reps                *int      `json:"reps"`
	Weight              *float64  `json:"weight"`
	Distance            *float64  `json:"distance"`
	DistanceUnit        string    `json:"distance_unit"`
	AverageHeartRate    *int      `json:"average_heart_rate"`
	MaxHeartRate        *int      `json:"max_heart_rate"`
	MuscleGroups        []string  `json:"muscle_groups"`
	Equipment           []string  `json:"equipment"`
	Notes               *string   `json:"notes"`
	Rating              *int      `json:"rating"`
	PerceivedExertion   *int      `json:"perceived_exertion"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Normalize fills defaults and checks the cross-field rules of a workout entry.
// A zero Duration is derived from the start and end times.
func (w *Workout) Normalize() error {
	if !w.EndTime.After(w.StartTime) {
		return ErrEndBeforeStart
	}
	if w.Duration == 0 {
		w.Duration = int(math.Round(w.EndTime.Sub(w.StartTime).Minutes()))
	}
	if w.Duration < 1 {
		return ErrInvalidDuration
	}
	if w.CaloriesBurned < 0 {
		return ErrNegativeCalories
	}
	if w.Intensity == "" {
		w.Intensity = IntensityModerate
	}
	if w.DistanceUnit == "" {
		w.DistanceUnit = DistanceUnitKm
	}
	if w.Status == "" {
		w.Status = WorkoutStatusCompleted
	}
	if w.Date.IsZero() {
		w.Date = w.StartTime
	}
	w.Date = time.Date(w.Date.Year(), w.Date.Month(), w.Date.Day(), 0, 0, 0, 0, time.UTC)
	if w.MuscleGroups == nil {
		w.MuscleGroups = []string{}
	}
	if w.Equipment == nil {
		w.Equipment = []string{}
	}
	return nil
}

type WorkoutSummary struct {
	TotalCalories float64 `json:"total_calories"`
	TotalWorkouts int     `json:"total_workouts"`
	TotalDuration int     `json:"total_duration"`
}
