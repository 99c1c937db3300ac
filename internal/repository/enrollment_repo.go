package repository

import (
	"context"

	"github.com/alanluk2226/Workoutapp/internal/models"
)

const enrollmentColumns = `id, user_id, course_id, enrolled_at, status, updated_at`

type EnrollmentRepository struct {
	db DBTX
}

func NewEnrollmentRepository(db DBTX) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func scanEnrollment(row rowScanner) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := row.Scan(
		&enrollment.ID,
		&enrollment.UserID,
		&enrollment.CourseID,
		&enrollment.EnrolledAt,
		&enrollment.Status,
		&enrollment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// Create inserts an active enrollment. A second active row for the same pair
// fails with a unique violation.
func (r *EnrollmentRepository) Create(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	query := `
		INSERT INTO enrollments (user_id, course_id, status)
		VALUES ($1, $2, 'active')
		RETURNING ` + enrollmentColumns
	return scanEnrollment(r.db.QueryRow(ctx, query, userID, courseID))
}

func (r *EnrollmentRepository) GetActiveForUpdate(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	query := `
		SELECT ` + enrollmentColumns + `
		FROM enrollments
		WHERE user_id = $1 AND course_id = $2 AND status = 'active'
		FOR UPDATE
	`
	return scanEnrollment(r.db.QueryRow(ctx, query, userID, courseID))
}

func (r *EnrollmentRepository) Cancel(ctx context.Context, enrollmentID int64) (*models.Enrollment, error) {
	query := `
		UPDATE enrollments
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status = 'active'
		RETURNING ` + enrollmentColumns
	return scanEnrollment(r.db.QueryRow(ctx, query, enrollmentID))
}

func (r *EnrollmentRepository) ListActiveByUser(ctx context.Context, userID int64) ([]models.Enrollment, error) {
	query := `
		SELECT ` + enrollmentColumns + `
		FROM enrollments
		WHERE user_id = $1 AND status = 'active'
		ORDER BY enrolled_at ASC, id ASC
	`
	return r.list(ctx, query, userID)
}

func (r *EnrollmentRepository) CountActiveByCourse(ctx context.Context, courseID int64) (int, error) {
	var count int
	err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM enrollments WHERE course_id = $1 AND status = 'active'`,
		courseID,
	).Scan(&count)
	return count, err
}

func (r *EnrollmentRepository) ListAll(ctx context.Context) ([]models.AdminEnrollment, error) {
	query := `
		SELECT e.id, e.user_id, e.course_id, e.enrolled_at, e.status, e.updated_at, u.username, c.name
		FROM enrollments e
		JOIN users u ON u.id = e.user_id
		JOIN courses c ON c.id = e.course_id
		ORDER BY e.enrolled_at DESC, e.id DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments := make([]models.AdminEnrollment, 0)
	for rows.Next() {
		var item models.AdminEnrollment
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.CourseID,
			&item.EnrolledAt,
			&item.Status,
			&item.UpdatedAt,
			&item.Username,
			&item.CourseName,
		); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *EnrollmentRepository) list(ctx context.Context, query string, args ...any) ([]models.Enrollment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments := make([]models.Enrollment, 0)
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, *enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return enrollments, nil
}
