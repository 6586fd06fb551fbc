// Package validation holds the client-side checks run before any request is
// sent. Failures are reported as a field-scoped *ValidationError.
package validation

import (
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/gynecare/internal/client/models"
)

const (
	MinPasswordLength = 8
	MinReasonLength   = 10
	MinPainScale      = 1
	MaxPainScale      = 10
)

// ValidationError maps a field name to its messages.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field has at least one message.
func (e *ValidationError) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

// collector accumulates field messages and yields nil when none were added.
type collector struct {
	fields map[string][]string
}

func (c *collector) add(field, msg string) {
	if c.fields == nil {
		c.fields = make(map[string][]string)
	}
	c.fields[field] = append(c.fields[field], msg)
}

func (c *collector) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: c.fields}
}

func (c *collector) required(field, value, msg string) bool {
	if strings.TrimSpace(value) == "" {
		c.add(field, msg)
		return false
	}
	return true
}

func (c *collector) email(field, value string) {
	if !c.required(field, value, "Email is required") {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		c.add(field, "Invalid email address")
	}
}

func (c *collector) age(field string, age int) {
	if age <= 0 {
		c.add(field, "Age must be positive")
	}
}

// Login checks the credentials form.
func Login(email, password string) error {
	var c collector
	c.email("email", email)
	c.required("password", password, "Password is required")
	return c.err()
}

// Registration checks the sign-up form; confirm is the repeated password.
func Registration(r models.Registration, confirm string) error {
	var c collector
	c.email("email", r.Email)
	c.required("username", r.Username, "Username is required")
	if c.required("password", r.Password, "Password is required") && len(r.Password) < MinPasswordLength {
		c.add("password", fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}
	if c.required("confirmPassword", confirm, "Confirm password is required") && confirm != r.Password {
		c.add("confirmPassword", "Passwords must match")
	}
	c.required("first_name", r.FirstName, "First name is required")
	c.required("last_name", r.LastName, "Last name is required")
	c.age("age", r.Age)
	return c.err()
}

// Profile checks the fields present in a partial update.
func Profile(p models.ProfileUpdate) error {
	var c collector
	if p.Empty() {
		c.add("profile", "Nothing to update")
		return c.err()
	}
	if p.FirstName != nil {
		c.required("first_name", *p.FirstName, "First name is required")
	}
	if p.LastName != nil {
		c.required("last_name", *p.LastName, "Last name is required")
	}
	if p.Email != nil {
		c.email("email", *p.Email)
	}
	if p.Age != nil {
		c.age("age", *p.Age)
	}
	return c.err()
}

// Message checks a chat message and its optional pain rating.
func Message(text string, painScale *int) error {
	var c collector
	c.required("text", text, "Message is required")
	if painScale != nil && (*painScale < MinPainScale || *painScale > MaxPainScale) {
		c.add("pain_scale", fmt.Sprintf("Pain scale must be between %d and %d", MinPainScale, MaxPainScale))
	}
	return c.err()
}

// Appointment checks a booking request against the current time.
func Appointment(req models.AppointmentRequest, now time.Time) error {
	var c collector
	if req.Doctor <= 0 {
		c.add("doctor", "Doctor is required")
	}
	if req.AppointmentTime.IsZero() {
		c.add("appointment_time", "Appointment time is required")
	} else if !req.AppointmentTime.After(now) {
		c.add("appointment_time", "Appointment time must be in the future")
	}
	if c.required("reason", req.Reason, "Please provide a reason for the appointment") &&
		len([]rune(strings.TrimSpace(req.Reason))) < MinReasonLength {
		c.add("reason", fmt.Sprintf("Reason should be at least %d characters", MinReasonLength))
	}
	return c.err()
}
