package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/jackc/pgx/v5"
)

const courseColumns = `id, name, type, coach_id, schedule_day, start_time, end_time,
	max_participants, current_participants, description, status, created_at, updated_at`

type CreateCourseInput struct {
	Name            string
	Type            models.Discipline
	CoachID         int64
	Schedule        models.Schedule
	MaxParticipants int
	Description     *string
}

// UpdateCourseInput carries the descriptive fields an admin may edit directly.
// Seat counts and status are written only through UpdateSeats.
type UpdateCourseInput struct {
	Name        string
	Type        models.Discipline
	CoachID     int64
	Schedule    models.Schedule
	Description *string
}

type CourseListFilter struct {
	Status  models.CourseStatus
	Type    models.Discipline
	Day     models.Weekday
	CoachID int64
}

type CourseRepository struct {
	db DBTX
}

func NewCourseRepository(db DBTX) *CourseRepository {
	return &CourseRepository{db: db}
}

func scanCourse(row rowScanner) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID,
		&course.Name,
		&course.Type,
		&course.CoachID,
		&course.Schedule.Day,
		&course.Schedule.StartTime,
		&course.Schedule.EndTime,
		&course.MaxParticipants,
		&course.CurrentParticipants,
		&course.Description,
		&course.Status,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Create(ctx context.Context, input CreateCourseInput) (*models.Course, error) {
	query := `
		INSERT INTO courses (name, type, coach_id, schedule_day, start_time, end_time, max_participants, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + courseColumns
	return scanCourse(r.db.QueryRow(
		ctx,
		query,
		input.Name,
		string(input.Type),
		input.CoachID,
		string(input.Schedule.Day),
		input.Schedule.StartTime,
		input.Schedule.EndTime,
		input.MaxParticipants,
		input.Description,
	))
}

func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	return scanCourse(r.db.QueryRow(ctx, query, id))
}

func (r *CourseRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1 FOR UPDATE`
	return scanCourse(r.db.QueryRow(ctx, query, id))
}

func (r *CourseRepository) List(ctx context.Context, filter CourseListFilter) ([]models.Course, error) {
	args := []any{}
	whereParts := []string{}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		whereParts = append(whereParts, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		whereParts = append(whereParts, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.Day != "" {
		args = append(args, string(filter.Day))
		whereParts = append(whereParts, fmt.Sprintf("schedule_day = $%d", len(args)))
	}
	if filter.CoachID > 0 {
		args = append(args, filter.CoachID)
		whereParts = append(whereParts, fmt.Sprintf("coach_id = $%d", len(args)))
	}

	query := `SELECT ` + courseColumns + ` FROM courses`
	if len(whereParts) > 0 {
		query += ` WHERE ` + strings.Join(whereParts, " AND ")
	}
	query += ` ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepository) ListByIDs(ctx context.Context, ids []int64) (map[int64]models.Course, error) {
	courses := make(map[int64]models.Course, len(ids))
	if len(ids) == 0 {
		return courses, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses[course.ID] = *course
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepository) UpdateDetails(ctx context.Context, id int64, input UpdateCourseInput) (*models.Course, error) {
	query := `
		UPDATE courses
		SET name = $2,
			type = $3,
			coach_id = $4,
			schedule_day = $5,
			start_time = $6,
			end_time = $7,
			description = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + courseColumns
	return scanCourse(r.db.QueryRow(
		ctx,
		query,
		id,
		input.Name,
		string(input.Type),
		input.CoachID,
		string(input.Schedule.Day),
		input.Schedule.StartTime,
		input.Schedule.EndTime,
		input.Description,
	))
}

// UpdateSeats persists the counter, capacity and status of a course locked in the current transaction.
func (r *CourseRepository) UpdateSeats(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET current_participants = $2,
			max_participants = $3,
			status = $4,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.db.QueryRow(
		ctx,
		query,
		course.ID,
		course.CurrentParticipants,
		course.MaxParticipants,
		string(course.Status),
	).Scan(&course.UpdatedAt)
}

func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
