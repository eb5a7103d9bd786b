package models

import "errors"

var (
	// ErrEmployeeNotFound is returned when no employee matches the lookup.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrDuplicateEmail is returned when another employee already uses the email.
	ErrDuplicateEmail = errors.New("employee with this email already exists")
)

// Employee represents an employee entity.
type Employee struct {
	ID        int64  `json:"id"        db:"id"`
	FirstName string `json:"firstName" db:"first_name"`
	LastName  string `json:"lastName"  db:"last_name"`
	Email     string `json:"email"     db:"email"`
}
