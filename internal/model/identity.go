package model

import "time"

// Role is the closed set of identity roles.
type Role string

const (
	RoleLearner Role = "learner"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleLearner, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// Identity is a learner, teacher or admin account.
// Phone is the informal natural key; duplicates are tolerated and resolved by first match (lowest ID).
type Identity struct {
	ID           int64     `json:"id"`
	Phone        string    `json:"phone"`
	Name         string    `json:"name"`
	PasswordHash []byte    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

func (i *Identity) IsTeacher() bool {
	return i != nil && i.Role == RoleTeacher
}

// NewIdentity holds registration input
type NewIdentity struct {
	Phone    string `json:"phone" validate:"required,max=100"`
	Name     string `json:"name" validate:"max=1000"`
	Password string `json:"password" validate:"required,max=72"` // bcrypt reads at most 72 bytes
}
