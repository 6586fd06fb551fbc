package models

import "time"

// Message types.
const (
	MessageTypeUser = "user"
	MessageTypeBot  = "bot"
)

type Message struct {
	ID          int64     `json:"id"`
	MessageType string    `json:"message_type"`
	Text        string    `json:"text"`
	Timestamp   time.Time `json:"timestamp"`
	PainScale   *int      `json:"pain_scale"`
	AIProvider  string    `json:"ai_provider"`
}

type ChatSession struct {
	ID        int64     `json:"id"`
	User      int64     `json:"user"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Messages  []Message `json:"messages"`
}

// NewChatSession is the body of POST /api/chat-sessions/.
type NewChatSession struct {
	Title string `json:"title"`
	User  int64  `json:"user"`
}

// SendMessageRequest is the body of the send-message action. A nil PainScale
// is sent as null.
type SendMessageRequest struct {
	Text      string `json:"text"`
	PainScale *int   `json:"pain_scale"`
}

type SendMessageResult struct {
	UserMessage Message `json:"user_message"`
	BotMessage  Message `json:"bot_message"`
}
