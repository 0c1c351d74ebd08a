package domain

import "time"

// Project groups users. Users is only populated by operations that load members.
type Project struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Users       []User
}

// NewProject carries the fields required to create a project.
type NewProject struct {
	Name        string
	Description string
}

// ProjectPatch lists the fields an update may change. A nil field is left untouched.
type ProjectPatch struct {
	Name        *string
	Description *string
}

// HasMember reports whether userID is among the loaded members.
func (p *Project) HasMember(userID int64) bool {
	for _, u := range p.Users {
		if u.ID == userID {
			return true
		}
	}
	return false
}
