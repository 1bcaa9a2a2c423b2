package entity

import "time"

type Role string

const (
	RoleAdmin          Role = "admin"
	RoleITLead         Role = "it_lead"
	RoleDepartmentHead Role = "department_head"
	RoleRespondent     Role = "respondent"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleITLead, RoleDepartmentHead, RoleRespondent:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PassHash     []byte    `json:"-" db:"pass_hash"`
	Role         Role      `json:"role" db:"role"`
	DepartmentID *int64    `json:"department_id,omitempty" db:"department_id"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID    int64
	Email string
	Role  Role
}

func (a Actor) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
