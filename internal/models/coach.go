package models

import "time"

// Discipline is shared by coach specializations and course types.
type Discipline string

const (
	DisciplineYoga             Discipline = "yoga"
	DisciplineBodyweight       Discipline = "bodyweight"
	DisciplineHII              Discipline = "hii"
	DisciplineCircuitTraining  Discipline = "circuittraining"
	DisciplinePilates          Discipline = "pilates"
	DisciplineCardioKickboxing Discipline = "cardiokickboxing"
	DisciplineZumba            Discipline = "zumba"
)

func (d Discipline) Valid() bool {
	switch d {
	case DisciplineYoga, DisciplineBodyweight, DisciplineHII, DisciplineCircuitTraining,
		DisciplinePilates, DisciplineCardioKickboxing, DisciplineZumba:
		return true
	}
	return false
}

const (
	EmploymentFullTime = "full-time"
	EmploymentPartTime = "part-time"

	CoachStatusActive   = "active"
	CoachStatusInactive = "inactive"

	DefaultCoachImage = "/images/default-coach.jpg"
)

type Coach struct {
	ID              int64        `json:"id"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Phone           *string      `json:"phone"`
	Specializations []Discipline `json:"specializations"`
	Bio             *string      `json:"bio"`
	Experience      *string      `json:"experience"`
	Image           string       `json:"image"`
	EmploymentType  string       `json:"employment_type"`
	Status          string       `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

type CoachDetail struct {
	Coach
	Courses []Course `json:"courses"`
}
