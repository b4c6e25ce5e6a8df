package models

import (
	"fmt"
	"strings"
	"time"
)

// Role represents a user's access level
type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// ParseRole converts a stored role value into a Role.
// Legacy rows carry mixed case and sometimes trailing whitespace
// ("Manager "), so the value is normalized before matching.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleCustomer:
		return RoleCustomer, nil
	case RoleEmployee:
		return RoleEmployee, nil
	case RoleManager:
		return RoleManager, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// IsStaff reports whether the role belongs to cafe staff.
func (r Role) IsStaff() bool {
	return r == RoleEmployee || r == RoleManager
}

// User represents an entry in the user directory
type User struct {
	Login     string    `json:"login" db:"login"`
	Password  string    `json:"-" db:"password"`
	Phone     string    `json:"phone" db:"phone"`
	FavItems  string    `json:"fav_items" db:"fav_items"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at,omitempty" db:"created_at"`
}

// Session identifies the authenticated actor for the duration of an
// interaction. It is produced at login and threaded explicitly into
// every core call.
type Session struct {
	Login string `json:"login"`
	Role  Role   `json:"role"`
}
