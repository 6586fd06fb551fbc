package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gynecare/internal/client/models"
	"github.com/dmitrijs2005/gynecare/internal/client/validation"
	"github.com/dmitrijs2005/gynecare/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoctors(fc *fakeClient) DoctorService {
	svc := NewDoctorService(fc, logging.Nop())
	svc.(*doctorService).now = fixedClock
	return svc
}

func TestDoctorService_List(t *testing.T) {
	fc := &fakeClient{DoctorsRet: []models.Doctor{{ID: 1, FirstName: "Maria", LastName: "Holm"}}}
	doctors, err := newDoctors(fc).List(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Dr. Maria Holm", doctors[0].FullName())

	_, err = newDoctors(&fakeClient{DoctorsErr: errors.New("down")}).List(context.Background())
	assert.Error(t, err)
}

func TestDoctorService_Book(t *testing.T) {
	future := testNow.Add(48 * time.Hour)

	tests := []struct {
		name      string
		doctorID  int64
		at        time.Time
		reason    string
		wantField string
	}{
		{name: "ok", doctorID: 2, at: future, reason: "Annual check-up visit"},
		{name: "past time", doctorID: 2, at: testNow.Add(-time.Minute), reason: "Annual check-up visit", wantField: "appointment_time"},
		{name: "now", doctorID: 2, at: testNow, reason: "Annual check-up visit", wantField: "appointment_time"},
		{name: "zero time", doctorID: 2, reason: "Annual check-up visit", wantField: "appointment_time"},
		{name: "short reason", doctorID: 2, at: future, reason: "pain", wantField: "reason"},
		{name: "padded short reason", doctorID: 2, at: future, reason: "   pain     ", wantField: "reason"},
		{name: "no doctor", at: future, reason: "Annual check-up visit", wantField: "doctor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{AppointmentRet: &models.Appointment{ID: 9, Status: models.AppointmentPending}}
			a, err := newDoctors(fc).Book(context.Background(), tt.doctorID, tt.at, tt.reason)
			if tt.wantField != "" {
				var verr *validation.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.True(t, verr.Has(tt.wantField), verr.Error())
				assert.Zero(t, fc.Calls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(9), a.ID)
			assert.Equal(t, models.AppointmentRequest{
				Doctor: 2, AppointmentTime: future, Reason: "Annual check-up visit", Status: models.AppointmentPending,
			}, fc.LastAppointmentReq)
		})
	}
}

func TestDoctorService_Appointments(t *testing.T) {
	later := models.Appointment{ID: 1, AppointmentTime: testNow.Add(72 * time.Hour)}
	sooner := models.Appointment{ID: 2, AppointmentTime: testNow.Add(24 * time.Hour)}
	fc := &fakeClient{AppointmentsRet: []models.Appointment{later, sooner}}

	list, err := newDoctors(fc).Appointments(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []int64{2, 1}, []int64{list[0].ID, list[1].ID})

	_, err = newDoctors(&fakeClient{AppointmentErr: errors.New("down")}).Appointments(context.Background())
	assert.ErrorContains(t, err, "list appointments")
}
