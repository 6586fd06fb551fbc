package client

import (
	"context"

	"github.com/dmitrijs2005/gynecare/internal/client/models"
)

// Client is the remote API as seen by the services.
type Client interface {
	RequestToken(ctx context.Context, req models.TokenRequest) (*models.TokenResponse, error)
	GetCurrentUser(ctx context.Context) (*models.User, error)
	CreateUser(ctx context.Context, reg models.Registration) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, upd models.ProfileUpdate) (*models.User, error)

	ListChatSessions(ctx context.Context) ([]models.ChatSession, error)
	GetChatSession(ctx context.Context, id int64) (*models.ChatSession, error)
	CreateChatSession(ctx context.Context, req models.NewChatSession) (*models.ChatSession, error)
	SendMessage(ctx context.Context, sessionID int64, req models.SendMessageRequest) (*models.SendMessageResult, error)

	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	ListAppointments(ctx context.Context) ([]models.Appointment, error)
	CreateAppointment(ctx context.Context, req models.AppointmentRequest) (*models.Appointment, error)
}

// TokenSource yields the access token to attach to the next request, or ""
// when there is no session.
type TokenSource interface {
	Token(ctx context.Context) string
}

// SessionBinding is the session owner the client reports to: it supplies the
// token and is told when the server rejects it.
type SessionBinding interface {
	TokenSource
	SessionExpired(ctx context.Context)
}
