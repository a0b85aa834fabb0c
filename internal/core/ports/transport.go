package ports

import "context"

// Button is an inline keyboard cell; CallbackData is echoed back on press.
type Button struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

// Message is a rendered results message.
type Message struct {
	Text     string     `json:"text"`
	Keyboard [][]Button `json:"keyboard,omitempty"`
}

// ChatTarget addresses a chat, and optionally a message in it to replace.
type ChatTarget struct {
	ChatID int64
	// MessageID selects edit mode when non-zero.
	MessageID int64
}

// Transport delivers rendered messages to users.
type Transport interface {
	// SendOrEdit sends msg as a new message, or edits target.MessageID in place.
	SendOrEdit(ctx context.Context, target ChatTarget, msg Message) error
}
