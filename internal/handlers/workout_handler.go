package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/alanluk2226/Workoutapp/internal/services"
	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

type WorkoutHandler struct {
	service workoutApplicationService
}

type workoutApplicationService interface {
	Create(ctx context.Context, userID int64, workout models.Workout) (*models.Workout, error)
	List(ctx context.Context, userID int64, page, limit int) ([]models.Workout, int, error)
	Get(ctx context.Context, userID, workoutID int64) (*models.Workout, error)
	Update(ctx context.Context, userID, workoutID int64, patch services.WorkoutPatch) (*models.Workout, error)
	Delete(ctx context.Context, userID, workoutID int64) error
	ListByDateRange(ctx context.Context, userID int64, from, to time.Time) ([]models.Workout, error)
	Summary(ctx context.Context, userID int64, from, to time.Time) (*models.WorkoutSummary, error)
}

func NewWorkoutHandler(service *services.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{service: service}
}

type createWorkoutRequest struct {
	ExerciseType        string   `json:"exercise_type" validate:"required,oneof=cardio strength flexibility balance high-intensity-interval-training sports other"`
	ExerciseName        string   `json:"exercise_name" validate:"required,max=100"`
	Date                string   `json:"date"`
	StartTime           string   `json:"start_time" validate:"required"`
	EndTime             string   `json:"end_time" validate:"required"`
	Duration            int      `json:"duration" validate:"gte=0"`
	CaloriesBurned      float64  `json:"calories_burned" validate:"gte=0"`
	Intensity           string   `json:"intensity" validate:"omitempty,oneof=light moderate vigorous"`
	MetabolicEquivalent *float64 `json:"metabolic_equivalent" validate:"omitempty,gte=0"`
	Sets                *int     `json:"sets" validate:"omitempty,gte=0"`
	Reps                *int     `json:"reps" validate:"omitempty,gte=0"`
	Weight              *float64 `json:"weight" validate:"omitempty,gte=0"`
	Distance            *float64 `json:"distance" validate:"omitempty,gte=0"`
	DistanceUnit        string   `json:"distance_unit" validate:"omitempty,oneof=km miles meters yards"`
	AverageHeartRate    *int     `json:"average_heart_rate" validate:"omitempty,gte=0"`
	MaxHeartRate        *int     `json:"max_heart_rate" validate:"omitempty,gte=0"`
	MuscleGroups        []string `json:"muscle_groups" validate:"omitempty,dive,oneof=chest back shoulders biceps triceps quadriceps hamstrings glutes calves abdominals obliques full-body upper-body lower-body"`
	Equipment           []string `json:"equipment" validate:"omitempty,dive,oneof=barbell dumbbell kettlebell resistance-band yoga-mat treadmill stationary-bike elliptical rower pull-up-bar weight-machine bodyweight other"`
	Notes               *string  `json:"notes" validate:"omitempty,max=500"`
	Rating              *int     `json:"rating" validate:"omitempty,min=1,max=10"`
	PerceivedExertion   *int     `json:"perceived_exertion" validate:"omitempty,min=1,max=10"`
	Status              string   `json:"status" validate:"omitempty,oneof=completed in-progress planned cancelled"`
}

type updateWorkoutRequest struct {
	ExerciseType        *string   `json:"exercise_type" validate:"omitempty,oneof=cardio strength flexibility balance high-intensity-interval-training sports other"`
	ExerciseName        *string   `json:"exercise_name" validate:"omitempty,min=1,max=100"`
	Date                *string   `json:"date"`
	StartTime           *string   `json:"start_time"`
	EndTime             *string   `json:"end_time"`
	Duration            *int      `json:"duration" validate:"omitempty,gte=0"`
	CaloriesBurned      *float64  `json:"calories_burned" validate:"omitempty,gte=0"`
	Intensity           *string   `json:"intensity" validate:"omitempty,oneof=light moderate vigorous"`
	MetabolicEquivalent *float64  `json:"metabolic_equivalent" validate:"omitempty,gte=0"`
	Sets                *int      `json:"sets" validate:"omitempty,gte=0"`
	Reps                *int      `json:"reps" validate:"omitempty,gte=0"`
	Weight              *float64  `json:"weight" validate:"omitempty,gte=0"`
	Distance            *float64  `json:"distance" validate:"omitempty,gte=0"`
	DistanceUnit        *string   `json:"distance_unit" validate:"omitempty,oneof=km miles meters yards"`
	AverageHeartRate    *int      `json:"average_heart_rate" validate:"omitempty,gte=0"`
	MaxHeartRate        *int      `json:"max_heart_rate" validate:"omitempty,gte=0"`
	MuscleGroups        *[]string `json:"muscle_groups" validate:"omitempty,dive,oneof=chest back shoulders biceps triceps quadriceps hamstrings glutes calves abdominals obliques full-body upper-body lower-body"`
	Equipment           *[]string `json:"equipment" validate:"omitempty,dive,oneof=barbell dumbbell kettlebell resistance-band yoga-mat treadmill stationary-bike elliptical rower pull-up-bar weight-machine bodyweight other"`
	Notes               *string   `json:"notes" validate:"omitempty,max=500"`
	Rating              *int      `json:"rating" validate:"omitempty,min=1,max=10"`
	PerceivedExertion   *int      `json:"perceived_exertion" validate:"omitempty,min=1,max=10"`
	Status              *string   `json:"status" validate:"omitempty,oneof=completed in-progress planned cancelled"`
}

func (h *WorkoutHandler) Create(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Invalid token")
	}

	var req createWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	start, startErr := parseTimestamp(req.StartTime)
	end, endErr := parseTimestamp(req.EndTime)
	if startErr == nil && endErr == nil && !end.After(start) {
		return respondError(c, fiber.StatusBadRequest, msgEndBeforeStart)
	}
	if err := validate.Struct(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, validationMessage(err))
	}
	if startErr != nil {
		return respondError(c, fiber.StatusBadRequest, "start_time must be an RFC3339 timestamp")
	}
	if endErr != nil {
		return respondError(c, fiber.StatusBadRequest, "end_time must be an RFC3339 timestamp")
	}

	workout := models.Workout{
		ExerciseType:        req.ExerciseType,
		ExerciseName:        strings.TrimSpace(req.ExerciseName),
		StartTime:           start,
		EndTime:             end,
		Duration:            req.Duration,
		CaloriesBurned:      req.CaloriesBurned,
		Intensity:           req.Intensity,
		MetabolicEquivalent: req.MetabolicEquivalent,
		Sets:                req.Sets,
		Reps:                req.Reps,
		Weight:              req.Weight,
		Distance:            req.Distance,
		DistanceUnit:        req.DistanceUnit,
		AverageHeartRate:    req.AverageHeartRate,
		MaxHeartRate:        req.MaxHeartRate,
		MuscleGroups:        req.MuscleGroups,
		Equipment:           req.Equipment,
		Notes:               req.Notes,
		Rating:              req.Rating,
		PerceivedExertion:   req.PerceivedExertion,
		Status:              req.Status,
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD or an RFC3339 timestamp")
		}
		workout.Date = date
	}

	created, err := h.service.Create(c.UserContext(), userID, workout)
	if err != nil {
		return mapWorkoutError(c, err)
	}
	return respond(c, fiber.StatusCreated, fiber.Map{
		"message": "Workout created successfully!",
		"workout": created,
	})
}

func (h *WorkoutHandler) List(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Invalid token")
	}

	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	workouts, total, err := h.service.List(c.UserContext(), userID, page, limit)
	if err != nil {
		return mapWorkoutError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"workouts":   workouts,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

func (h *WorkoutHandler) Get(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Invalid token")
	}
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return mapWorkoutError(c, services.ErrWorkoutNotFound)
	}

	workout, err := h.service.Get(c.UserContext(), userID, workoutID)
	if err != nil {
		return mapWorkoutError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"workout": workout})
}

func (h *WorkoutHandler) Update(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Invalid token")
	}
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return mapWorkoutError(c, services.ErrWorkoutNotFound)
	}

	var req updateWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, validationMessage(err))
	}

	patch, message := buildWorkoutPatch(req)
	if message != "" {
		return respondError(c, fiber.StatusBadRequest, message)
	}

	workout, err := h.service.Update(c.UserContext(), userID, workoutID, patch)
	if err != nil {
		return mapWorkoutError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"message": "Workout updated successfully!",
		"workout": workout,
	})
}

func (h *WorkoutHandler) Delete(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Invalid token")
	}
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return mapWorkoutError(c, services.ErrWorkoutNotFound)
	}

	if err := h.service.Delete(c.UserContext(), userID, workoutID); err != nil {
		return mapWorkoutError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"message": "Workout deleted successfully!"})
}

func (h *WorkoutHandler) Range(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Invalid token")
	}
	from, to, ok := parseDateRange(c)
	if !ok {
		return respondError(c, fiber.StatusBadRequest, "from and to must be YYYY-MM-DD dates")
	}

	workouts, err := h.service.ListByDateRange(c.UserContext(), userID, from, to)
	if err != nil {
		return mapWorkoutError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"workouts": workouts})
}

func (h *WorkoutHandler) Summary(c *fiber.Ctx) error {
	userID, err := parseProfileUserID(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Invalid token")
	}
	from, to, ok := parseDateRange(c)
	if !ok {
		return respondError(c, fiber.StatusBadRequest, "from and to must be YYYY-MM-DD dates")
	}

	summary, err := h.service.Summary(c.UserContext(), userID, from, to)
	if err != nil {
		return mapWorkoutError(c, err)
	}
	return respond(c, fiber.StatusOK, fiber.Map{"summary": summary})
}

func buildWorkoutPatch(req updateWorkoutRequest) (services.WorkoutPatch, string) {
	patch := services.WorkoutPatch{
		ExerciseType:        req.ExerciseType,
		ExerciseName:        req.ExerciseName,
		Duration:            req.Duration,
		CaloriesBurned:      req.CaloriesBurned,
		Intensity:           req.Intensity,
		MetabolicEquivalent: req.MetabolicEquivalent,
		Sets:                req.Sets,
		Reps:                req.Reps,
		Weight:              req.Weight,
		Distance:            req.Distance,
		DistanceUnit:        req.DistanceUnit,
		AverageHeartRate:    req.AverageHeartRate,
		MaxHeartRate:        req.MaxHeartRate,
		MuscleGroups:        req.MuscleGroups,
		Equipment:           req.Equipment,
		Notes:               req.Notes,
		Rating:              req.Rating,
		PerceivedExertion:   req.PerceivedExertion,
		Status:              req.Status,
	}

	if req.StartTime != nil {
		start, err := parseTimestamp(*req.StartTime)
		if err != nil {
			return patch, "start_time must be an RFC3339 timestamp"
		}
		patch.StartTime = &start
	}
	if req.EndTime != nil {
		end, err := parseTimestamp(*req.EndTime)
		if err != nil {
			return patch, "end_time must be an RFC3339 timestamp"
		}
		patch.EndTime = &end
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return patch, "date must be YYYY-MM-DD or an RFC3339 timestamp"
		}
		patch.Date = &date
	}
	return patch, ""
}

func parseTimestamp(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, strings.TrimSpace(raw))
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if date, err := time.Parse(dateLayout, raw); err == nil {
		return date, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	ts = ts.UTC()
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
}

func parseDateRange(c *fiber.Ctx) (time.Time, time.Time, bool) {
	from, err := time.Parse(dateLayout, c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(dateLayout, c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

const msgEndBeforeStart = "End time must be after start time"

var workoutRuleMessages = []struct {
	rule    error
	message string
}{
	{models.ErrEndBeforeStart, msgEndBeforeStart},
	{models.ErrInvalidDuration, "Duration must be at least 1 minute"},
	{models.ErrNegativeCalories, "Calories burned cannot be negative"},
}

func mapWorkoutError(c *fiber.Ctx, err error) error {
	for _, m := range workoutRuleMessages {
		if errors.Is(err, m.rule) {
			return respondError(c, fiber.StatusBadRequest, m.message)
		}
	}

	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, "Invalid workout data")
	case errors.Is(err, services.ErrWorkoutNotFound):
		return respondError(c, fiber.StatusNotFound, "Workout schedule not found")
	default:
		return respondError(c, fiber.StatusInternalServerError, "Workout request failed")
	}
}
