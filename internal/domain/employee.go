package domain

import (
	"strings"
	"time"
)

// Role enumerates the access levels derived from an employee's title.
type Role string

const (
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleManager || r == RoleEmployee
}

// Employee is the domain model for staff who operate the CRM.
type Employee struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	Title        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role derives the employee's access level from their title.
// Any title containing "manager" grants manager privileges.
func (e *Employee) Role() Role {
	if strings.Contains(strings.ToLower(e.Title), "manager") {
		return RoleManager
	}
	return RoleEmployee
}

// IsManager reports whether the employee holds manager privileges.
func (e *Employee) IsManager() bool {
	return e.Role() == RoleManager
}
