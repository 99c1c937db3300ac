// Command seed loads the starter coaches and weekly courses. Running it again
// refreshes coach profiles and skips courses that already exist.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alanluk2226/Workoutapp/internal/database"
	"github.com/alanluk2226/Workoutapp/internal/logger"
	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/alanluk2226/Workoutapp/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()
	log := logger.New(os.Getenv("APP_ENV"))

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		log.Fatal().Msg("DB_URL environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.ConnectDB(ctx, dbURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	if err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		return seed(ctx, tx, log)
	}); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Msg("seed complete")
}

func seed(ctx context.Context, tx pgx.Tx, log zerolog.Logger) error {
	coachRepo := repository.NewCoachRepository(tx)
	courseRepo := repository.NewCourseRepository(tx)

	coachIDs := make(map[string]int64, len(coaches))
	for _, c := range coaches {
		phone, bio, experience := c.Phone, c.Bio, c.Experience
		coach, err := coachRepo.Upsert(ctx, repository.CoachInput{
			Name:            c.Name,
			Email:           c.Email,
			Phone:           &phone,
			Specializations: c.Specializations,
			Bio:             &bio,
			Experience:      &experience,
			Image:           c.Image,
			EmploymentType:  c.EmploymentType,
			Status:          models.CoachStatusActive,
		})
		if err != nil {
			return fmt.Errorf("upsert coach %s: %w", c.Email, err)
		}
		coachIDs[c.Email] = coach.ID
		log.Info().Int64("coach_id", coach.ID).Str("name", coach.Name).Msg("coach ready")
	}

	for _, c := range courses {
		coachID, ok := coachIDs[c.CoachEmail]
		if !ok {
			return fmt.Errorf("course %q references unknown coach %s", c.Name, c.CoachEmail)
		}

		existing, err := courseRepo.List(ctx, repository.CourseListFilter{CoachID: coachID})
		if err != nil {
			return fmt.Errorf("list courses for coach %d: %w", coachID, err)
		}
		if hasCourse(existing, c.Name) {
			log.Debug().Str("name", c.Name).Msg("course exists, skipping")
			continue
		}

		description := c.Description
		course, err := courseRepo.Create(ctx, repository.CreateCourseInput{
			Name:    c.Name,
			Type:    c.Type,
			CoachID: coachID,
			Schedule: models.Schedule{
				Day:       c.Day,
				StartTime: c.Start,
				EndTime:   c.End,
			},
			MaxParticipants: c.Max,
			Description:     &description,
		})
		if err != nil {
			return fmt.Errorf("create course %q: %w", c.Name, err)
		}
		log.Info().Int64("course_id", course.ID).Str("name", course.Name).Msg("course created")
	}
	return nil
}

func hasCourse(existing []models.Course, name string) bool {
	for _, course := range existing {
		if course.Name == name {
			return true
		}
	}
	return false
}
