package domain

import "time"

// Role is the closed set of permission tiers a user can hold.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleReporter Role = "reporter"
)

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleReporter:
		return true
	}
	return false
}

// User models an authenticated actor in the system. Passwords are stored as
// bcrypt hashes only; the hash never appears in JSON output.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserInfo is the password-free projection returned by user listings.
type UserInfo struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
