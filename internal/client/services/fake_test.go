package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/gynecare/internal/client/models"
	"github.com/dmitrijs2005/gynecare/internal/client/session"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func setupStore(t *testing.T) (*session.SQLiteStore, *sql.DB) {
	t.Helper()
	db, err := session.OpenDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return session.NewSQLiteStore(db), db
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

// ---- fake client ----

// fakeClient implements client.Client for service unit tests. Every call is
// counted; arguments of the last call are kept for assertions.
type fakeClient struct {
	RequestTokenRet *models.TokenResponse
	RequestTokenErr error

	CurrentUserRet *models.User
	CurrentUserErr error

	CreateUserRet *models.User
	CreateUserErr error

	UpdateUserRet *models.User
	UpdateUserErr error

	ChatSessionsRet []models.ChatSession
	ChatSessionRet  *models.ChatSession
	ChatErr         error

	SendMessageRet *models.SendMessageResult
	SendMessageErr error

	DoctorsRet      []models.Doctor
	DoctorsErr      error
	AppointmentRet  *models.Appointment
	AppointmentErr  error
	AppointmentsRet []models.Appointment

	Calls int

	// Hooks run inside the call, before it returns.
	OnRequestToken func()
	OnCreateUser   func()
	OnUpdateUser   func()

	LastTokenRequest   models.TokenRequest
	LastRegistration   models.Registration
	LastUpdateID       int64
	LastUpdate         models.ProfileUpdate
	LastNewChat        models.NewChatSession
	LastSessionID      int64
	LastMessage        models.SendMessageRequest
	LastAppointmentReq models.AppointmentRequest
}

func (f *fakeClient) RequestToken(ctx context.Context, req models.TokenRequest) (*models.TokenResponse, error) {
	f.Calls++
	f.LastTokenRequest = req
	if f.OnRequestToken != nil {
		f.OnRequestToken()
	}
	return f.RequestTokenRet, f.RequestTokenErr
}

func (f *fakeClient) GetCurrentUser(ctx context.Context) (*models.User, error) {
	f.Calls++
	return f.CurrentUserRet, f.CurrentUserErr
}

func (f *fakeClient) CreateUser(ctx context.Context, reg models.Registration) (*models.User, error) {
	f.Calls++
	f.LastRegistration = reg
	if f.OnCreateUser != nil {
		f.OnCreateUser()
	}
	return f.CreateUserRet, f.CreateUserErr
}

func (f *fakeClient) UpdateUser(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.User, error) {
	f.Calls++
	f.LastUpdateID = id
	f.LastUpdate = upd
	if f.OnUpdateUser != nil {
		f.OnUpdateUser()
	}
	return f.UpdateUserRet, f.UpdateUserErr
}

func (f *fakeClient) ListChatSessions(ctx context.Context) ([]models.ChatSession, error) {
	f.Calls++
	return f.ChatSessionsRet, f.ChatErr
}

func (f *fakeClient) GetChatSession(ctx context.Context, id int64) (*models.ChatSession, error) {
	f.Calls++
	f.LastSessionID = id
	return f.ChatSessionRet, f.ChatErr
}

func (f *fakeClient) CreateChatSession(ctx context.Context, req models.NewChatSession) (*models.ChatSession, error) {
	f.Calls++
	f.LastNewChat = req
	return f.ChatSessionRet, f.ChatErr
}

func (f *fakeClient) SendMessage(ctx context.Context, sessionID int64, req models.SendMessageRequest) (*models.SendMessageResult, error) {
	f.Calls++
	f.LastSessionID = sessionID
	f.LastMessage = req
	return f.SendMessageRet, f.SendMessageErr
}

func (f *fakeClient) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	f.Calls++
	return f.DoctorsRet, f.DoctorsErr
}

func (f *fakeClient) CreateAppointment(ctx context.Context, req models.AppointmentRequest) (*models.Appointment, error) {
	f.Calls++
	f.LastAppointmentReq = req
	return f.AppointmentRet, f.AppointmentErr
}

func (f *fakeClient) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	f.Calls++
	return f.AppointmentsRet, f.AppointmentErr
}
