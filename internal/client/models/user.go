// Package models defines the records exchanged with the consultation API and
// the locally persisted session.
package models

import "strings"

// UserType values assigned by the server.
const (
	UserTypePatient = "patient"
	UserTypeDoctor  = "doctor"
)

// User is the server representation of an account. ID is server-assigned and
// Username cannot change after creation.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	UserType    string `json:"user_type,omitempty"`
	Age         int    `json:"age"`
	PhoneNumber string `json:"phone_number"`
}

// FullName joins first and last name, skipping empty parts.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Registration is the body of POST /api/users/.
type Registration struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Age         int    `json:"age"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// ProfileUpdate is a partial user for PATCH /api/users/{id}/. Nil fields are
// left untouched by the server.
type ProfileUpdate struct {
	Email       *string `json:"email,omitempty"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Age         *int    `json:"age,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// Empty reports whether no field is set.
func (p ProfileUpdate) Empty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil && p.Age == nil && p.PhoneNumber == nil
}
