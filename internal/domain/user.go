package domain

import "time"

// Role is the closed set of user roles.
type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleManager, RoleEmployee}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleManager, RoleEmployee:
		return true
	default:
		return false
	}
}

// User is the persisted identity that owns projects.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether the account can authenticate with a password.
func (u *User) HasPassword() bool {
	return u != nil && u.PasswordHash != ""
}
