package cli

import (
	"context"
	"fmt"
	"time"
)

// appointmentLayout is the input format for 'book'; times are local.
const appointmentLayout = "2006-01-02 15:04"

func (a *App) Doctors(ctx context.Context) error {
	doctors, err := a.doctorService.List(ctx)
	if err != nil {
		return err
	}
	if len(doctors) == 0 {
		a.println("No doctors available.")
		return nil
	}
	for _, d := range doctors {
		a.printf("#%d  %s, %s (%d years)\n", d.ID, d.FullName(), d.Specialization, d.ExperienceYears)
		if d.Qualification != "" {
			a.printf("     %s\n", d.Qualification)
		}
	}
	return nil
}

// Book asks for a time and a reason and requests an appointment.
func (a *App) Book(ctx context.Context, doctorID int64) error {
	raw, err := getSimpleText(a.reader, "Appointment time ("+appointmentLayout+")", a.out)
	if err != nil {
		return err
	}
	at, err := time.ParseInLocation(appointmentLayout, raw, time.Local)
	if err != nil {
		return fmt.Errorf("invalid appointment time %q, expected %s", raw, appointmentLayout)
	}

	reason, err := getSimpleText(a.reader, "Reason for the visit", a.out)
	if err != nil {
		return err
	}

	appt, err := a.doctorService.Book(ctx, doctorID, at, reason)
	if err != nil {
		return err
	}

	who := appt.DoctorName
	if who == "" {
		who = fmt.Sprintf("doctor #%d", doctorID)
	}
	a.printf("Appointment #%d with %s on %s requested (status: %s).\n",
		appt.ID, who, appt.AppointmentTime.Local().Format(appointmentLayout), appt.Status)
	return nil
}

// Appointments lists the user's appointment requests.
func (a *App) Appointments(ctx context.Context) error {
	list, err := a.doctorService.Appointments(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No appointments yet. Use 'book <doctor id>'.")
		return nil
	}
	for _, appt := range list {
		a.printf("#%d  %s  %s  [%s]\n", appt.ID, appt.AppointmentTime.Local().Format(appointmentLayout), appt.DoctorName, appt.Status)
		if appt.Reason != "" {
			a.printf("     %s\n", appt.Reason)
		}
	}
	return nil
}
