package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gynecare/internal/client/models"
)

const timeLayout = "2006-01-02 15:04"

// getOptionalInt is a test seam for GetOptionalInt.
var getOptionalInt = GetOptionalInt

func (a *App) Chats(ctx context.Context) error {
	sessions, err := a.chatService.List(ctx)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		a.println("No chats yet. Type 'new' to start one.")
		return nil
	}
	for _, s := range sessions {
		a.printf("#%d  %s  (%d messages, updated %s)\n",
			s.ID, s.Title, len(s.Messages), s.UpdatedAt.Local().Format(timeLayout))
	}
	return nil
}

// OpenChat prints the history of a conversation and makes it the target of
// 'send'.
func (a *App) OpenChat(ctx context.Context, id int64) error {
	s, err := a.chatService.Get(ctx, id)
	if err != nil {
		return err
	}
	a.activeChat = s.ID

	a.printf("== %s ==\n", s.Title)
	for _, m := range s.Messages {
		a.printMessage(m)
	}
	if len(s.Messages) == 0 {
		a.println("(no messages)")
	}
	return nil
}

func (a *App) NewChat(ctx context.Context) error {
	s, err := a.chatService.Start(ctx)
	if err != nil {
		return err
	}
	a.activeChat = s.ID
	a.printf("Started %s (#%d). Type 'send' to describe your symptoms.\n", s.Title, s.ID)
	return nil
}

// Send asks for a message and an optional pain rating and prints the
// assistant's reply.
func (a *App) Send(ctx context.Context) error {
	if a.activeChat == 0 {
		a.println("Open a chat first: 'chat <id>' or 'new'.")
		return nil
	}

	text, err := GetMultiline(a.reader, "Your message:", a.out)
	if err != nil {
		return err
	}
	pain, err := getOptionalInt(a.reader, "Pain scale 1-10 (Enter to skip)", a.out)
	if err != nil {
		return err
	}

	res, err := a.chatService.Send(ctx, a.activeChat, text, pain)
	if err != nil {
		return err
	}
	a.printMessage(res.BotMessage)
	return nil
}

func (a *App) printMessage(m models.Message) {
	who := "You"
	if m.MessageType == models.MessageTypeBot {
		who = "Assistant"
	}

	var extra []string
	if m.PainScale != nil {
		extra = append(extra, fmt.Sprintf("pain %d/10", *m.PainScale))
	}
	if !m.Timestamp.IsZero() {
		extra = append(extra, m.Timestamp.Local().Format(timeLayout))
	}

	header := who
	if len(extra) > 0 {
		header += " (" + strings.Join(extra, ", ") + ")"
	}
	a.printf("%s:\n%s\n\n", header, m.Text)
}
