package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/gynecare/internal/client/client"
	"github.com/dmitrijs2005/gynecare/internal/client/models"
	"github.com/dmitrijs2005/gynecare/internal/client/validation"
	"github.com/dmitrijs2005/gynecare/internal/logging"
)

// DoctorService lists doctors and books appointments with them.
type DoctorService interface {
	List(ctx context.Context) ([]models.Doctor, error)
	Book(ctx context.Context, doctorID int64, at time.Time, reason string) (*models.Appointment, error)
	Appointments(ctx context.Context) ([]models.Appointment, error)
}

type doctorService struct {
	client client.Client
	logger logging.Logger
	now    func() time.Time
}

func NewDoctorService(c client.Client, logger logging.Logger) DoctorService {
	return &doctorService{client: c, logger: logger.With("module", "doctors"), now: time.Now}
}

func (s *doctorService) List(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := s.client.ListDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, nil
}

// Book requests a pending appointment; the doctor confirms it later.
func (s *doctorService) Book(ctx context.Context, doctorID int64, at time.Time, reason string) (*models.Appointment, error) {
	req := models.AppointmentRequest{
		Doctor:          doctorID,
		AppointmentTime: at,
		Reason:          strings.TrimSpace(reason),
		Status:          models.AppointmentPending,
	}
	if err := validation.Appointment(req, s.now()); err != nil {
		return nil, err
	}

	a, err := s.client.CreateAppointment(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("book appointment: %w", err)
	}

	s.logger.Info(ctx, "appointment requested", "appointment_id", a.ID, "doctor_id", doctorID)
	return a, nil
}

// Appointments lists the current user's appointments, soonest first.
func (s *doctorService) Appointments(ctx context.Context) ([]models.Appointment, error) {
	list, err := s.client.ListAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].AppointmentTime.Before(list[j].AppointmentTime)
	})
	return list, nil
}
