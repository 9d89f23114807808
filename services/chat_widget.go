package services

import (
	"context"
	"strings"

	"portfolio/models"
)

// ChatView is the page surface the chat widget renders into
type ChatView interface {
	// AppendTurn adds a message to the visible transcript.
	AppendTurn(turn models.ConversationTurn)
	// ShowPending shows the "typing" placeholder while a reply is awaited.
	ShowPending()
	// Resolve replaces the placeholder with the reply or the fallback text.
	Resolve(reply Reply)
}

// ChatWidget binds one conversation to one view
type ChatWidget struct {
	bot  *Chatbot
	conv *Conversation
	view ChatView
}

// NewChatWidget creates a widget; a nil conv starts a fresh conversation
func NewChatWidget(bot *Chatbot, conv *Conversation, view ChatView) *ChatWidget {
	if conv == nil {
		conv = bot.NewConversation()
	}
	return &ChatWidget{bot: bot, conv: conv, view: view}
}

// Submit renders the user's message, signals pending, and resolves with
// the reply. Blank input does nothing.
func (w *ChatWidget) Submit(ctx context.Context, text string) (Reply, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, false
	}

	w.view.AppendTurn(models.ConversationTurn{Role: models.RoleUser, Content: text})
	w.view.ShowPending()

	reply, ok := w.bot.Submit(ctx, w.conv, text)
	if ok {
		w.view.Resolve(reply)
	}
	return reply, ok
}

// Conversation returns the widget's transcript
func (w *ChatWidget) Conversation() *Conversation {
	return w.conv
}
