package services

import (
	"errors"

	"github.com/alanluk2226/Workoutapp/internal/models"
)

var (
	ErrForbidden              = errors.New("forbidden")
	ErrConflict               = errors.New("conflict")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrStorageUnavailable     = errors.New("storage service is not configured")
)

var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrCoachNotFound      = errors.New("coach not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrWorkoutNotFound    = errors.New("workout schedule not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
)

var (
	ErrCourseUnavailable = models.ErrCourseUnavailable
	ErrCourseFull        = models.ErrCourseFull
	ErrAlreadyEnrolled   = errors.New("already enrolled in this course")
	ErrCourseHasMembers  = errors.New("course has active enrollments")
	ErrCoachInUse        = errors.New("coach is assigned to courses")
	ErrDuplicateAccount  = errors.New("username or email already exists")
	ErrDuplicateCoach    = errors.New("coach email already exists")
)
