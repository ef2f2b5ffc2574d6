package goldbook

import (
	"time"

	"github.com/etnz/goldbook/date"
)

// Employee is a shop staff member. Technicians are referenced by analyses.
type Employee struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required"`
	Code     string `json:"code" validate:"required"`
	JobTitle string `json:"jobTitle"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
}

// Partner is a shop owner sharing the net profit pro rata of its capital.
type Partner struct {
	ID      string `json:"id"`
	Name    string `json:"name" validate:"required"`
	Capital Amount `json:"capital"`
	// Percentage is kept for compatibility with older backups, shares are
	// always derived from capital.
	Percentage Amount `json:"percentage"`
}

// PermissionStatus is the two-state status of an exit permission.
type PermissionStatus string

const (
	Pending   PermissionStatus = "PENDING"
	Completed PermissionStatus = "COMPLETED"
)

// Permission is an exit permission (gate pass) letting an employee leave
// the shop with items.
type Permission struct {
	ID           string           `json:"id"`
	EmployeeID   string           `json:"employeeId"`
	EmployeeName string           `json:"employeeName" validate:"required"`
	Date         date.Date        `json:"date"`
	Destination  string           `json:"destination" validate:"required"`
	Items        string           `json:"items" validate:"required"`
	Status       PermissionStatus `json:"status" validate:"oneof=PENDING COMPLETED"`
}

// Toggled returns a copy of p with the other status.
func (p Permission) Toggled() Permission {
	if p.Status == Pending {
		p.Status = Completed
	} else {
		p.Status = Pending
	}
	return p
}

// Role of a user.
type Role string

const (
	Admin   Role = "Admin"
	Limited Role = "Limited"
)

// User is an application account. Passwords are stored and compared in
// plain text.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password,omitempty" validate:"required"`
	Role      Role   `json:"role" validate:"oneof=Admin Limited"`
	LastLogin string `json:"lastLogin"`
}

// IsAdmin reports whether the user can access admin only operations.
func (u User) IsAdmin() bool { return u.Role == Admin }

// Touch returns a copy of u with LastLogin set to now.
func (u User) Touch(now time.Time) User {
	u.LastLogin = now.UTC().Format(time.RFC3339)
	return u
}

// DefaultUsers seeds an empty user collection with one user per role, so a
// fresh shop can sign in both at the counter and as an admin. Change their
// passwords after the first login.
func DefaultUsers() []User {
	return []User{
		{ID: "1", Username: "admin", Password: "admin", Role: Admin},
		{ID: "2", Username: "cashier", Password: "cashier", Role: Limited},
	}
}
