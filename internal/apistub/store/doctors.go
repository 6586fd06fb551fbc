package store

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gynecare/internal/client/models"
)

func (s *Store) Doctors() []models.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Doctor(nil), s.doctors...)
}

func (s *Store) doctorLocked(id int64) (models.Doctor, bool) {
	for _, d := range s.doctors {
		if d.ID == id {
			return d, true
		}
	}
	return models.Doctor{}, false
}

// CreateAppointment books a pending appointment for patientID.
func (s *Store) CreateAppointment(patientID int64, req models.AppointmentRequest) (models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	fe := FieldErrors{}

	doctor, ok := s.doctorLocked(req.Doctor)
	if !ok {
		fe.add("doctor", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", req.Doctor))
	}
	if req.AppointmentTime.IsZero() {
		fe.add("appointment_time", fieldRequired)
	} else if !req.AppointmentTime.After(now) {
		fe.add("appointment_time", "Appointment time must be in the future.")
	}
	if len([]rune(strings.TrimSpace(req.Reason))) < minReasonLength {
		fe.add("reason", fmt.Sprintf("Ensure this field has at least %d characters.", minReasonLength))
	}
	if err := fe.err(); err != nil {
		return models.Appointment{}, err
	}

	patient := s.users[patientID]
	status := req.Status
	if status == "" {
		status = models.AppointmentPending
	}

	s.nextAppointmentID++
	a := &models.Appointment{
		ID:              s.nextAppointmentID,
		Patient:         patientID,
		Doctor:          doctor.ID,
		DoctorName:      doctor.FullName(),
		AppointmentTime: req.AppointmentTime.UTC(),
		Reason:          strings.TrimSpace(req.Reason),
		Status:          status,
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	}
	if patient != nil {
		a.PatientName = patient.user.FullName()
	}
	s.appointments[a.ID] = a
	return *a, nil
}

// Appointments lists the patient's appointments in booking order.
func (s *Store) Appointments(patientID int64) []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Appointment, 0)
	for id := int64(1); id <= s.nextAppointmentID; id++ {
		if a, ok := s.appointments[id]; ok && a.Patient == patientID {
			out = append(out, *a)
		}
	}
	return out
}
