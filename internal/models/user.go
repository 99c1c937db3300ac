package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	JoinDate     time.Time `json:"join_date"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Caller is the authenticated identity attached to a request.
type Caller struct {
	UserID int64
	Role   string
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
