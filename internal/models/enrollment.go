package models

import "time"

type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusCancelled EnrollmentStatus = "cancelled"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
)

type Enrollment struct {
	ID         int64            `json:"id"`
	UserID     int64            `json:"user_id"`
	CourseID   int64            `json:"course_id"`
	EnrolledAt time.Time        `json:"enrolled_at"`
	Status     EnrollmentStatus `json:"status"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

type EnrollmentDetail struct {
	Enrollment
	Course CourseDetail `json:"course"`
}

// AdminEnrollment is the admin listing row with the user and course names resolved.
type AdminEnrollment struct {
	Enrollment
	Username   string `json:"username"`
	CourseName string `json:"course_name"`
}
