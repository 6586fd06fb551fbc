package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/gynecare/internal/client/models"
)

const aiProvider = "stub"

func copySession(cs *models.ChatSession) models.ChatSession {
	out := *cs
	out.Messages = append([]models.Message(nil), cs.Messages...)
	return out
}

// ChatSessions lists the user's sessions, most recently updated first.
func (s *Store) ChatSessions(userID int64) []models.ChatSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ChatSession, 0)
	for _, cs := range s.chats {
		if cs.User == userID {
			out = append(out, copySession(cs))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// ChatSession returns a session owned by userID. Sessions of other users are
// reported as missing.
func (s *Store) ChatSession(userID, id int64) (models.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cs, ok := s.chats[id]
	if !ok || cs.User != userID {
		return models.ChatSession{}, ErrNotFound
	}
	return copySession(cs), nil
}

func (s *Store) CreateChatSession(userID int64, title string) models.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(title) == "" {
		title = "New chat"
	}
	now := s.now().UTC()
	s.nextChatID++
	cs := &models.ChatSession{
		ID:        s.nextChatID,
		User:      userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  []models.Message{},
	}
	s.chats[cs.ID] = cs
	return copySession(cs)
}

// AddMessage appends the user's message and the assistant's reply.
func (s *Store) AddMessage(userID, sessionID int64, text string, painScale *int) (models.Message, models.Message, error) {
	fe := FieldErrors{}
	if strings.TrimSpace(text) == "" {
		fe.add("text", fieldRequired)
	}
	if painScale != nil && (*painScale < 1 || *painScale > 10) {
		fe.add("pain_scale", "Ensure this value is between 1 and 10.")
	}
	if err := fe.err(); err != nil {
		return models.Message{}, models.Message{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cs, ok := s.chats[sessionID]
	if !ok || cs.User != userID {
		return models.Message{}, models.Message{}, ErrNotFound
	}

	now := s.now().UTC()

	s.nextMessageID++
	userMsg := models.Message{
		ID:          s.nextMessageID,
		MessageType: models.MessageTypeUser,
		Text:        text,
		Timestamp:   now,
		PainScale:   painScale,
	}
	s.nextMessageID++
	botMsg := models.Message{
		ID:          s.nextMessageID,
		MessageType: models.MessageTypeBot,
		Text:        reply(text, painScale),
		Timestamp:   now,
		AIProvider:  aiProvider,
	}

	cs.Messages = append(cs.Messages, userMsg, botMsg)
	cs.UpdatedAt = now
	return userMsg, botMsg, nil
}

// reply is the canned assistant answer.
func reply(text string, painScale *int) string {
	var b strings.Builder
	b.WriteString("Thank you for sharing. ")
	switch {
	case painScale == nil:
		b.WriteString("How would you rate your pain on a scale from 1 to 10?")
	case *painScale >= 8:
		fmt.Fprintf(&b, "A pain level of %d/10 is severe. If it came on suddenly or comes with fever or heavy bleeding, please seek urgent care.", *painScale)
	case *painScale >= 4:
		fmt.Fprintf(&b, "A pain level of %d/10 is worth discussing with a doctor. Consider booking an appointment.", *painScale)
	default:
		fmt.Fprintf(&b, "A pain level of %d/10 is mild. Rest, warmth and hydration often help.", *painScale)
	}
	if strings.Contains(strings.ToLower(text), "bleed") {
		b.WriteString(" Please note how long the bleeding lasts and how heavy it is.")
	}
	return b.String()
}
