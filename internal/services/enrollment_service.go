package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/alanluk2226/Workoutapp/internal/models"
	"github.com/alanluk2226/Workoutapp/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type enrollmentTxRunner interface {
	RunInTx(ctx context.Context, fn func(repository.EnrollmentStore) error) error
}

type courseLister interface {
	List(ctx context.Context, filter repository.CourseListFilter) ([]models.Course, error)
	ListByIDs(ctx context.Context, ids []int64) (map[int64]models.Course, error)
}

type coachLookup interface {
	ListByIDs(ctx context.Context, ids []int64) (map[int64]models.Coach, error)
}

type activeEnrollmentLister interface {
	ListActiveByUser(ctx context.Context, userID int64) ([]models.Enrollment, error)
}

// SeatNotifier receives the course state after every committed seat change.
type SeatNotifier interface {
	CourseSeatsChanged(course models.Course)
}

// EnrollmentService is the only writer of course seat counters and course status.
type EnrollmentService struct {
	tx          enrollmentTxRunner
	courses     courseLister
	coaches     coachLookup
	enrollments activeEnrollmentLister
	notifier    SeatNotifier
	logger      zerolog.Logger
}

func NewEnrollmentService(
	tx enrollmentTxRunner,
	courses courseLister,
	coaches coachLookup,
	enrollments activeEnrollmentLister,
	notifier SeatNotifier,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		tx:          tx,
		courses:     courses,
		coaches:     coaches,
		enrollments: enrollments,
		notifier:    notifier,
		logger:      logger.With().Str("component", "enrollment").Logger(),
	}
}

func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	var (
		enrollment *models.Enrollment
		course     *models.Course
	)

	err := s.tx.RunInTx(ctx, func(store repository.EnrollmentStore) error {
		// User before course, the same order RemoveUser takes.
		if err := store.LockUser(ctx, userID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrUnauthorized
			}
			return err
		}
		locked, err := lockCourse(ctx, store, courseID)
		if err != nil {
			return err
		}
		if err := locked.ReserveSeat(); err != nil {
			return err
		}

		if _, err := store.GetActiveEnrollmentForUpdate(ctx, userID, courseID); err == nil {
			return ErrAlreadyEnrolled
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		created, err := store.CreateEnrollment(ctx, userID, courseID)
		if err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrAlreadyEnrolled
			}
			return err
		}
		if err := store.SaveCourseSeats(ctx, locked); err != nil {
			return err
		}

		enrollment, course = created, locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", userID).
		Int64("course_id", courseID).
		Int("current_participants", course.CurrentParticipants).
		Msg("enrolled")
	s.publish(course)
	return enrollment, nil
}

func (s *EnrollmentService) Unenroll(ctx context.Context, userID, courseID int64) error {
	var (
		course  *models.Course
		clamped bool
	)

	err := s.tx.RunInTx(ctx, func(store repository.EnrollmentStore) error {
		locked, err := store.GetCourseForUpdate(ctx, courseID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrEnrollmentNotFound
			}
			return err
		}

		wasClamped, err := releaseEnrollment(ctx, store, locked, userID)
		if err != nil {
			return err
		}

		course, clamped = locked, wasClamped
		return nil
	})
	if err != nil {
		return err
	}

	if clamped {
		s.logger.Warn().
			Int64("user_id", userID).
			Int64("course_id", courseID).
			Msg("seat counter underflow")
	}
	s.publish(course)
	return nil
}

// RemoveUser gives back every seat the user holds and deletes the account in
// one transaction. The user row stays locked throughout, so no enrollment can
// be added between the release and the delete.
func (s *EnrollmentService) RemoveUser(ctx context.Context, userID int64) (int, error) {
	var (
		released []*models.Course
		clamped  []int64
	)

	err := s.tx.RunInTx(ctx, func(store repository.EnrollmentStore) error {
		released, clamped = released[:0], clamped[:0]

		if err := store.LockUserForDelete(ctx, userID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrUserNotFound
			}
			return err
		}

		active, err := store.ListActiveEnrollments(ctx, userID)
		if err != nil {
			return err
		}
		for _, enrollment := range sortedByCourse(active) {
			locked, err := store.GetCourseForUpdate(ctx, enrollment.CourseID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					continue
				}
				return err
			}
			wasClamped, err := releaseEnrollment(ctx, store, locked, userID)
			if err != nil {
				// Unenrolled after the list was read.
				if errors.Is(err, ErrEnrollmentNotFound) {
					continue
				}
				return err
			}
			if wasClamped {
				clamped = append(clamped, locked.ID)
			}
			released = append(released, locked)
		}

		if err := store.DeleteUser(ctx, userID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrUserNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, courseID := range clamped {
		s.logger.Warn().
			Int64("user_id", userID).
			Int64("course_id", courseID).
			Msg("seat counter underflow")
	}
	for _, course := range released {
		s.publish(course)
	}
	return len(released), nil
}

// UpdateCourse edits the descriptive fields and, when maxParticipants is
// positive, the capacity. Both land together or not at all.
func (s *EnrollmentService) UpdateCourse(
	ctx context.Context,
	courseID int64,
	input repository.UpdateCourseInput,
	maxParticipants int,
) (*models.Course, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateCourseFields(input.Name, input.Type, input.CoachID, input.Schedule); err != nil {
		return nil, err
	}

	var course *models.Course
	err := s.tx.RunInTx(ctx, func(store repository.EnrollmentStore) error {
		locked, err := lockCourse(ctx, store, courseID)
		if err != nil {
			return err
		}
		resized := maxParticipants > 0 && maxParticipants != locked.MaxParticipants
		if resized && !locked.SetCapacity(maxParticipants) {
			return ErrInvalidInput
		}

		updated, err := store.UpdateCourseDetails(ctx, courseID, input)
		if err != nil {
			if repository.IsForeignKeyViolation(err) {
				return ErrCoachNotFound
			}
			return err
		}
		if resized {
			if err := store.SaveCourseSeats(ctx, locked); err != nil {
				return err
			}
			updated.MaxParticipants = locked.MaxParticipants
			updated.Status = locked.Status
			updated.UpdatedAt = locked.UpdatedAt
		}
		course = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	if maxParticipants > 0 {
		s.publish(course)
	}
	return course, nil
}

func (s *EnrollmentService) CancelCourse(ctx context.Context, courseID int64) (*models.Course, error) {
	var course *models.Course

	err := s.tx.RunInTx(ctx, func(store repository.EnrollmentStore) error {
		locked, err := lockCourse(ctx, store, courseID)
		if err != nil {
			return err
		}
		if locked.Status == models.CourseStatusCancelled {
			return ErrInvalidStateTransition
		}
		locked.Status = models.CourseStatusCancelled
		if err := store.SaveCourseSeats(ctx, locked); err != nil {
			return err
		}
		course = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(course)
	return course, nil
}

func (s *EnrollmentService) SetCourseCapacity(ctx context.Context, courseID int64, maxParticipants int) (*models.Course, error) {
	var course *models.Course

	err := s.tx.RunInTx(ctx, func(store repository.EnrollmentStore) error {
		locked, err := lockCourse(ctx, store, courseID)
		if err != nil {
			return err
		}
		if !locked.SetCapacity(maxParticipants) {
			return ErrInvalidInput
		}
		if err := store.SaveCourseSeats(ctx, locked); err != nil {
			return err
		}
		course = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(course)
	return course, nil
}

// DeleteCourse removes a course that nobody is actively enrolled in.
func (s *EnrollmentService) DeleteCourse(ctx context.Context, courseID int64) error {
	return s.tx.RunInTx(ctx, func(store repository.EnrollmentStore) error {
		if _, err := lockCourse(ctx, store, courseID); err != nil {
			return err
		}
		active, err := store.CountActiveEnrollments(ctx, courseID)
		if err != nil {
			return err
		}
		if active > 0 {
			return ErrCourseHasMembers
		}
		return store.DeleteCourse(ctx, courseID)
	})
}

func (s *EnrollmentService) ListEnrollmentsForUser(ctx context.Context, userID int64) ([]models.EnrollmentDetail, error) {
	enrollments, err := s.enrollments.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	courseIDs := make([]int64, 0, len(enrollments))
	for _, enrollment := range enrollments {
		courseIDs = append(courseIDs, enrollment.CourseID)
	}
	courses, err := s.courses.ListByIDs(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	coachIDs := make([]int64, 0, len(courses))
	for _, course := range courses {
		coachIDs = append(coachIDs, course.CoachID)
	}
	coaches, err := s.coaches.ListByIDs(ctx, coachIDs)
	if err != nil {
		return nil, err
	}

	details := make([]models.EnrollmentDetail, 0, len(enrollments))
	for _, enrollment := range enrollments {
		course, ok := courses[enrollment.CourseID]
		if !ok {
			continue
		}
		details = append(details, models.EnrollmentDetail{
			Enrollment: enrollment,
			Course:     withCoach(course, coaches),
		})
	}
	return details, nil
}

// ListCourses returns open courses ordered by weekday and start time.
func (s *EnrollmentService) ListCourses(ctx context.Context, filter repository.CourseListFilter) ([]models.CourseDetail, error) {
	filter.Status = models.CourseStatusActive
	return s.listCourseDetails(ctx, filter)
}

// ListAllCourses returns courses in any status for the admin views.
func (s *EnrollmentService) ListAllCourses(ctx context.Context) ([]models.CourseDetail, error) {
	return s.listCourseDetails(ctx, repository.CourseListFilter{})
}

func (s *EnrollmentService) listCourseDetails(ctx context.Context, filter repository.CourseListFilter) ([]models.CourseDetail, error) {
	courses, err := s.courses.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	coachIDs := make([]int64, 0, len(courses))
	for _, course := range courses {
		coachIDs = append(coachIDs, course.CoachID)
	}
	coaches, err := s.coaches.ListByIDs(ctx, coachIDs)
	if err != nil {
		return nil, err
	}

	details := make([]models.CourseDetail, 0, len(courses))
	for _, course := range courses {
		details = append(details, withCoach(course, coaches))
	}
	models.SortBySchedule(details)
	return details, nil
}

func (s *EnrollmentService) publish(course *models.Course) {
	if s.notifier == nil || course == nil {
		return
	}
	s.notifier.CourseSeatsChanged(*course)
}

func lockCourse(ctx context.Context, store repository.EnrollmentStore, courseID int64) (*models.Course, error) {
	course, err := store.GetCourseForUpdate(ctx, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// releaseEnrollment expects the course row to be locked already.
func releaseEnrollment(
	ctx context.Context,
	store repository.EnrollmentStore,
	course *models.Course,
	userID int64,
) (bool, error) {
	enrollment, err := store.GetActiveEnrollmentForUpdate(ctx, userID, course.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrEnrollmentNotFound
		}
		return false, err
	}
	if _, err := store.CancelEnrollment(ctx, enrollment.ID); err != nil {
		return false, err
	}

	clamped := course.ReleaseSeat()
	if err := store.SaveCourseSeats(ctx, course); err != nil {
		return false, err
	}
	return clamped, nil
}

func withCoach(course models.Course, coaches map[int64]models.Coach) models.CourseDetail {
	detail := models.CourseDetail{Course: course}
	if coach, ok := coaches[course.CoachID]; ok {
		detail.Coach = &coach
	}
	return detail
}

func sortedByCourse(enrollments []models.Enrollment) []models.Enrollment {
	sorted := make([]models.Enrollment, len(enrollments))
	copy(sorted, enrollments)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CourseID < sorted[j].CourseID
	})
	return sorted
}
