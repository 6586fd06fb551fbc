package models

import (
	"strings"
	"time"
)

// Appointment statuses.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

type Doctor struct {
	ID              int64          `json:"id"`
	User            int64          `json:"user"`
	FirstName       string         `json:"first_name"`
	LastName        string         `json:"last_name"`
	Email           string         `json:"email"`
	Specialization  string         `json:"specialization"`
	Qualification   string         `json:"qualification"`
	ExperienceYears int            `json:"experience_years"`
	Bio             string         `json:"bio"`
	Availability    map[string]any `json:"availability"`
}

func (d Doctor) FullName() string {
	return strings.TrimSpace("Dr. " + d.FirstName + " " + d.LastName)
}

type Appointment struct {
	ID              int64     `json:"id"`
	Patient         int64     `json:"patient"`
	Doctor          int64     `json:"doctor"`
	DoctorName      string    `json:"doctor_name"`
	PatientName     string    `json:"patient_name"`
	AppointmentTime time.Time `json:"appointment_time"`
	Reason          string    `json:"reason"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AppointmentRequest is the body of POST /api/appointments/.
type AppointmentRequest struct {
	Doctor          int64     `json:"doctor"`
	AppointmentTime time.Time `json:"appointment_time"`
	Reason          string    `json:"reason"`
	Status          string    `json:"status"`
}
