package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gynecare/internal/client/client"
	"github.com/dmitrijs2005/gynecare/internal/client/models"
	"github.com/dmitrijs2005/gynecare/internal/client/validation"
	"github.com/dmitrijs2005/gynecare/internal/logging"
)

const chatTitleLayout = "2006-01-02 15:04"

// ChatService drives conversations with the consultation assistant.
type ChatService interface {
	List(ctx context.Context) ([]models.ChatSession, error)
	Get(ctx context.Context, id int64) (*models.ChatSession, error)
	Start(ctx context.Context) (*models.ChatSession, error)
	Send(ctx context.Context, sessionID int64, text string, painScale *int) (*models.SendMessageResult, error)
}

type chatService struct {
	client client.Client
	auth   AuthService
	logger logging.Logger
	now    func() time.Time
}

func NewChatService(c client.Client, auth AuthService, logger logging.Logger) ChatService {
	return &chatService{client: c, auth: auth, logger: logger.With("module", "chat"), now: time.Now}
}

func (s *chatService) List(ctx context.Context) ([]models.ChatSession, error) {
	sessions, err := s.client.ListChatSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chat sessions: %w", err)
	}
	return sessions, nil
}

func (s *chatService) Get(ctx context.Context, id int64) (*models.ChatSession, error) {
	cs, err := s.client.GetChatSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get chat session %d: %w", id, err)
	}
	return cs, nil
}

// Start opens a new conversation owned by the current user.
func (s *chatService) Start(ctx context.Context) (*models.ChatSession, error) {
	st := s.auth.State()
	if st.User == nil {
		return nil, ErrNotAuthenticated
	}

	cs, err := s.client.CreateChatSession(ctx, models.NewChatSession{
		Title: "Chat " + s.now().Format(chatTitleLayout),
		User:  st.User.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("create chat session: %w", err)
	}

	s.logger.Info(ctx, "chat session started", "session_id", cs.ID)
	return cs, nil
}

func (s *chatService) Send(ctx context.Context, sessionID int64, text string, painScale *int) (*models.SendMessageResult, error) {
	if err := validation.Message(text, painScale); err != nil {
		return nil, err
	}

	res, err := s.client.SendMessage(ctx, sessionID, models.SendMessageRequest{Text: text, PainScale: painScale})
	if err != nil {
		return nil, fmt.Errorf("send message to session %d: %w", sessionID, err)
	}
	return res, nil
}
