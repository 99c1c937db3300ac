package repository

import (
	"context"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/jackc/pgx/v5"
)

const coachColumns = `id, name, email, phone, specializations, bio, experience, image,
	employment_type, status, created_at, updated_at`

type CoachInput struct {
	Name            string
	Email           string
	Phone           *string
	Specializations []models.Discipline
	Bio             *string
	Experience      *string
	Image           string
	EmploymentType  string
	Status          string
}

type CoachRepository struct {
	db DBTX
}

func NewCoachRepository(db DBTX) *CoachRepository {
	return &CoachRepository{db: db}
}

func scanCoach(row rowScanner) (*models.Coach, error) {
	var coach models.Coach
	var specializations []string
	err := row.Scan(
		&coach.ID,
		&coach.Name,
		&coach.Email,
		&coach.Phone,
		&specializations,
		&coach.Bio,
		&coach.Experience,
		&coach.Image,
		&coach.EmploymentType,
		&coach.Status,
		&coach.CreatedAt,
		&coach.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	coach.Specializations = make([]models.Discipline, 0, len(specializations))
	for _, s := range specializations {
		coach.Specializations = append(coach.Specializations, models.Discipline(s))
	}
	return &coach, nil
}

func disciplineStrings(values []models.Discipline) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

func (r *CoachRepository) Create(ctx context.Context, input CoachInput) (*models.Coach, error) {
	query := `
		INSERT INTO coaches (name, email, phone, specializations, bio, experience, image, employment_type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + coachColumns
	return scanCoach(r.db.QueryRow(
		ctx,
		query,
		input.Name,
		input.Email,
		input.Phone,
		disciplineStrings(input.Specializations),
		input.Bio,
		input.Experience,
		input.Image,
		input.EmploymentType,
		input.Status,
	))
}

// Upsert creates the coach or refreshes the profile registered under the same email.
func (r *CoachRepository) Upsert(ctx context.Context, input CoachInput) (*models.Coach, error) {
	query := `
		INSERT INTO coaches (name, email, phone, specializations, bio, experience, image, employment_type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			specializations = EXCLUDED.specializations,
			bio = EXCLUDED.bio,
			experience = EXCLUDED.experience,
			employment_type = EXCLUDED.employment_type,
			updated_at = NOW()
		RETURNING ` + coachColumns
	return scanCoach(r.db.QueryRow(
		ctx,
		query,
		input.Name,
		input.Email,
		input.Phone,
		disciplineStrings(input.Specializations),
		input.Bio,
		input.Experience,
		input.Image,
		input.EmploymentType,
		input.Status,
	))
}

func (r *CoachRepository) GetByID(ctx context.Context, id int64) (*models.Coach, error) {
	query := `SELECT ` + coachColumns + ` FROM coaches WHERE id = $1`
	return scanCoach(r.db.QueryRow(ctx, query, id))
}

func (r *CoachRepository) ListByIDs(ctx context.Context, ids []int64) (map[int64]models.Coach, error) {
	coaches := make(map[int64]models.Coach, len(ids))
	if len(ids) == 0 {
		return coaches, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+coachColumns+` FROM coaches WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		coach, err := scanCoach(rows)
		if err != nil {
			return nil, err
		}
		coaches[coach.ID] = *coach
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return coaches, nil
}

func (r *CoachRepository) List(ctx context.Context, activeOnly bool) ([]models.Coach, error) {
	query := `SELECT ` + coachColumns + ` FROM coaches`
	if activeOnly {
		query += ` WHERE status = 'active'`
	}
	query += ` ORDER BY name ASC, id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	coaches := make([]models.Coach, 0)
	for rows.Next() {
		coach, err := scanCoach(rows)
		if err != nil {
			return nil, err
		}
		coaches = append(coaches, *coach)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return coaches, nil
}

func (r *CoachRepository) Update(ctx context.Context, id int64, input CoachInput) (*models.Coach, error) {
	query := `
		UPDATE coaches
		SET name = $2,
			email = $3,
			phone = $4,
			specializations = $5,
			bio = $6,
			experience = $7,
			employment_type = $8,
			status = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + coachColumns
	return scanCoach(r.db.QueryRow(
		ctx,
		query,
		id,
		input.Name,
		input.Email,
		input.Phone,
		disciplineStrings(input.Specializations),
		input.Bio,
		input.Experience,
		input.EmploymentType,
		input.Status,
	))
}

func (r *CoachRepository) UpdateImage(ctx context.Context, id int64, image string) (*models.Coach, error) {
	query := `UPDATE coaches SET image = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + coachColumns
	return scanCoach(r.db.QueryRow(ctx, query, id, image))
}

// Delete fails with a foreign key violation while courses still reference the coach.
func (r *CoachRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM coaches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
