package repository

import (
	"context"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultTxAttempts = 3

// EnrollmentStore is what an enrollment transaction may read and write. Every
// call made through one store runs inside the same database transaction.
type EnrollmentStore interface {
	GetCourseForUpdate(ctx context.Context, courseID int64) (*models.Course, error)
	SaveCourseSeats(ctx context.Context, course *models.Course) error
	UpdateCourseDetails(ctx context.Context, courseID int64, input UpdateCourseInput) (*models.Course, error)
	DeleteCourse(ctx context.Context, courseID int64) error
	LockUser(ctx context.Context, userID int64) error
	LockUserForDelete(ctx context.Context, userID int64) error
	DeleteUser(ctx context.Context, userID int64) error
	GetActiveEnrollmentForUpdate(ctx context.Context, userID, courseID int64) (*models.Enrollment, error)
	CreateEnrollment(ctx context.Context, userID, courseID int64) (*models.Enrollment, error)
	CancelEnrollment(ctx context.Context, enrollmentID int64) (*models.Enrollment, error)
	ListActiveEnrollments(ctx context.Context, userID int64) ([]models.Enrollment, error)
	CountActiveEnrollments(ctx context.Context, courseID int64) (int, error)
}

type txEnrollmentStore struct {
	courses     *CourseRepository
	enrollments *EnrollmentRepository
	users       *UserRepository
}

func newTxEnrollmentStore(tx pgx.Tx) *txEnrollmentStore {
	return &txEnrollmentStore{
		courses:     NewCourseRepository(tx),
		enrollments: NewEnrollmentRepository(tx),
		users:       NewUserRepository(tx),
	}
}

func (s *txEnrollmentStore) GetCourseForUpdate(ctx context.Context, courseID int64) (*models.Course, error) {
	return s.courses.GetByIDForUpdate(ctx, courseID)
}

func (s *txEnrollmentStore) SaveCourseSeats(ctx context.Context, course *models.Course) error {
	return s.courses.UpdateSeats(ctx, course)
}

func (s *txEnrollmentStore) UpdateCourseDetails(ctx context.Context, courseID int64, input UpdateCourseInput) (*models.Course, error) {
	return s.courses.UpdateDetails(ctx, courseID, input)
}

func (s *txEnrollmentStore) LockUser(ctx context.Context, userID int64) error {
	return s.users.LockForShare(ctx, userID)
}

func (s *txEnrollmentStore) LockUserForDelete(ctx context.Context, userID int64) error {
	return s.users.LockForUpdate(ctx, userID)
}

func (s *txEnrollmentStore) DeleteUser(ctx context.Context, userID int64) error {
	return s.users.Delete(ctx, userID)
}

func (s *txEnrollmentStore) DeleteCourse(ctx context.Context, courseID int64) error {
	return s.courses.Delete(ctx, courseID)
}

func (s *txEnrollmentStore) GetActiveEnrollmentForUpdate(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	return s.enrollments.GetActiveForUpdate(ctx, userID, courseID)
}

func (s *txEnrollmentStore) CreateEnrollment(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	return s.enrollments.Create(ctx, userID, courseID)
}

func (s *txEnrollmentStore) CancelEnrollment(ctx context.Context, enrollmentID int64) (*models.Enrollment, error) {
	return s.enrollments.Cancel(ctx, enrollmentID)
}

func (s *txEnrollmentStore) ListActiveEnrollments(ctx context.Context, userID int64) ([]models.Enrollment, error) {
	return s.enrollments.ListActiveByUser(ctx, userID)
}

func (s *txEnrollmentStore) CountActiveEnrollments(ctx context.Context, courseID int64) (int, error) {
	return s.enrollments.CountActiveByCourse(ctx, courseID)
}

type EnrollmentTxRunner struct {
	db          *pgxpool.Pool
	maxAttempts int
}

func NewEnrollmentTxRunner(db *pgxpool.Pool) *EnrollmentTxRunner {
	return &EnrollmentTxRunner{db: db, maxAttempts: defaultTxAttempts}
}

// RunInTx runs fn in one transaction and commits when it returns nil.
// Serialization failures and deadlocks rerun the whole function.
func (r *EnrollmentTxRunner) RunInTx(ctx context.Context, fn func(EnrollmentStore) error) error {
	return retryTx(ctx, r.maxAttempts, func() error {
		tx, err := r.db.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() {
			_ = tx.Rollback(ctx)
		}()

		if err := fn(newTxEnrollmentStore(tx)); err != nil {
			return err
		}
		return tx.Commit(ctx)
	})
}

func retryTx(ctx context.Context, attempts int, run func() error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = run()
		if err == nil || !IsRetryable(err) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	return err
}
