package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gynecare/internal/client/models"
	"github.com/dmitrijs2005/gynecare/internal/client/services"
)

// ------------ helpers ------------

func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 || lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

// stubPasswords makes getPassword return the given answers in order.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	orig := getPassword
	t.Cleanup(func() { getPassword = orig })
	getPassword = func(_ *bufio.Reader, _ string, _ io.Writer) ([]byte, error) {
		if len(answers) == 0 {
			return nil, io.EOF
		}
		pw := answers[0]
		answers = answers[1:]
		return []byte(pw), nil
	}
}

func newTestApp(auth *fakeAuth, r *bufio.Reader) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		authService:   auth,
		chatService:   &fakeChats{},
		doctorService: &fakeDoctors{},
		reader:        r,
		out:           &out,
	}, &out
}

func sampleUser() *models.User {
	return &models.User{ID: 7, Username: "anna", Email: "a@b.com", FirstName: "Anna", LastName: "Berg", Age: 29}
}

// ------------ fakes ------------

type fakeAuth struct {
	state services.State

	loginErr    error
	registerErr error
	updateErr   error

	loginEmail    string
	loginPassword string
	registration  models.Registration
	confirm       string
	update        *models.ProfileUpdate
	logoutCalls   int
}

func authedFake() *fakeAuth {
	return &fakeAuth{state: services.State{Status: services.StatusAuthenticated, User: sampleUser()}}
}

func (f *fakeAuth) Token(context.Context) string          { return "T" }
func (f *fakeAuth) SessionExpired(context.Context)        {}
func (f *fakeAuth) Restore(context.Context) error         { return nil }
func (f *fakeAuth) State() services.State                 { return f.state }
func (f *fakeAuth) Subscribe(func(services.State)) func() { return func() {} }

func (f *fakeAuth) Login(_ context.Context, email, password string) error {
	f.loginEmail, f.loginPassword = email, password
	if f.loginErr != nil {
		return f.loginErr
	}
	f.state = services.State{Status: services.StatusAuthenticated, User: sampleUser()}
	return nil
}

func (f *fakeAuth) Register(_ context.Context, reg models.Registration, confirm string) error {
	f.registration, f.confirm = reg, confirm
	return f.registerErr
}

func (f *fakeAuth) Logout(context.Context) {
	f.logoutCalls++
	f.state = services.State{Status: services.StatusAnonymous}
}

func (f *fakeAuth) UpdateProfile(_ context.Context, upd models.ProfileUpdate) error {
	f.update = &upd
	return f.updateErr
}

type fakeChats struct {
	list    []models.ChatSession
	session *models.ChatSession
	result  *models.SendMessageResult
	err     error

	sentID   int64
	sentText string
	sentPain *int
	sends    int
}

func (f *fakeChats) List(context.Context) ([]models.ChatSession, error) { return f.list, f.err }

func (f *fakeChats) Get(context.Context, int64) (*models.ChatSession, error) {
	return f.session, f.err
}

func (f *fakeChats) Start(context.Context) (*models.ChatSession, error) { return f.session, f.err }

func (f *fakeChats) Send(_ context.Context, id int64, text string, pain *int) (*models.SendMessageResult, error) {
	f.sends++
	f.sentID, f.sentText, f.sentPain = id, text, pain
	return f.result, f.err
}

type fakeDoctors struct {
	list []models.Doctor
	appt *models.Appointment
	err  error

	bookedID     int64
	bookedAt     time.Time
	bookedReason string
	books        int

	appointments []models.Appointment
}

func (f *fakeDoctors) List(context.Context) ([]models.Doctor, error) { return f.list, f.err }

func (f *fakeDoctors) Book(_ context.Context, id int64, at time.Time, reason string) (*models.Appointment, error) {
	f.books++
	f.bookedID, f.bookedAt, f.bookedReason = id, at, reason
	return f.appt, f.err
}

func (f *fakeDoctors) Appointments(context.Context) ([]models.Appointment, error) {
	return f.appointments, f.err
}
