// Package models defines the client-side data model of the users console:
// the user record as served by the API, the list query state, and the raw
// form input of the create/edit dialog.
package models

import "fmt"

// Status is the lifecycle state of a user record.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Toggle returns the status a toggle action moves the record to.
func (s Status) Toggle() Status {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

// User is one record as stored by the backend. The console never owns it:
// the cached slice is replaced wholesale on every successful fetch.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Status    Status    `json:"status"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

func (u User) String() string {
	return fmt.Sprintf("#%d %s (%s)", u.ID, u.Username, u.Status)
}

// UserPage is the body of a list response.
type UserPage struct {
	Data  []User `json:"data"`
	Total int    `json:"total"`
}

// CreateUserRequest is the POST /users body.
type CreateUserRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// UpdateUserRequest is the PUT /users/:id body. Password fields are left out
// entirely when the password is not being changed.
type UpdateUserRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

// StatusRequest is the PATCH /users/:id body.
type StatusRequest struct {
	Status Status `json:"status"`
}
