package domain

import "time"

// User is a person that can be assigned to projects.
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser carries the fields required to register a user.
type NewUser struct {
	Name  string
	Email string
}

// UserPatch lists the fields an update may change. A nil field is left untouched.
type UserPatch struct {
	Name  *string
	Email *string
}
