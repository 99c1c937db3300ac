package models

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrCourseUnavailable = errors.New("course is not available for enrollment")
	ErrCourseFull        = errors.New("course is full")
)

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

var weekdayIndex = map[Weekday]int{
	Monday:    0,
	Tuesday:   1,
	Wednesday: 2,
	Thursday:  3,
	Friday:    4,
	Saturday:  5,
	Sunday:    6,
}

// Index returns the position of the day in a monday-first week, or -1.
func (d Weekday) Index() int {
	idx, ok := weekdayIndex[d]
	if !ok {
		return -1
	}
	return idx
}

func (d Weekday) Valid() bool {
	return d.Index() >= 0
}

type CourseStatus string

const (
	CourseStatusActive    CourseStatus = "active"
	CourseStatusFull      CourseStatus = "full"
	CourseStatusCancelled CourseStatus = "cancelled"
)

const DefaultMaxParticipants = 20

type Schedule struct {
	Day       Weekday `json:"day"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
}

type Course struct {
	ID                  int64        `json:"id"`
	Name                string       `json:"name"`
	Type                Discipline   `json:"type"`
	CoachID             int64        `json:"coach_id"`
	Schedule            Schedule     `json:"schedule"`
	MaxParticipants     int          `json:"max_participants"`
	CurrentParticipants int          `json:"current_participants"`
	Description         *string      `json:"description"`
	Status              CourseStatus `json:"status"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

type CourseDetail struct {
	Course
	Coach *Coach `json:"coach"`
}

// ReserveSeat takes one seat and moves the course to full when the last one goes.
func (c *Course) ReserveSeat() error {
	switch c.Status {
	case CourseStatusActive, CourseStatusFull:
	default:
		return ErrCourseUnavailable
	}
	if c.Status == CourseStatusFull || c.CurrentParticipants >= c.MaxParticipants {
		return ErrCourseFull
	}
	c.CurrentParticipants++
	c.Status = c.capacityStatus()
	return nil
}

// ReleaseSeat gives one seat back. The counter never goes below zero; clamped
// reports whether it was already zero.
func (c *Course) ReleaseSeat() (clamped bool) {
	if c.CurrentParticipants <= 0 {
		c.CurrentParticipants = 0
		clamped = true
	} else {
		c.CurrentParticipants--
	}
	if c.Status != CourseStatusCancelled {
		c.Status = c.capacityStatus()
	}
	return clamped
}

// SetCapacity changes the maximum while keeping the status consistent with the counter.
func (c *Course) SetCapacity(limit int) bool {
	if limit < 1 || limit < c.CurrentParticipants {
		return false
	}
	c.MaxParticipants = limit
	if c.Status != CourseStatusCancelled {
		c.Status = c.capacityStatus()
	}
	return true
}

func (c *Course) capacityStatus() CourseStatus {
	if c.CurrentParticipants >= c.MaxParticipants {
		return CourseStatusFull
	}
	return CourseStatusActive
}

// SortBySchedule orders courses by weekday index, then start time.
func SortBySchedule(courses []CourseDetail) {
	sort.SliceStable(courses, func(i, j int) bool {
		di, dj := courses[i].Schedule.Day.Index(), courses[j].Schedule.Day.Index()
		if di != dj {
			return di < dj
		}
		return courses[i].Schedule.StartTime < courses[j].Schedule.StartTime
	})
}
