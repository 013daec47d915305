package domain

import "time"

// MessageType distinguishes direct messages from session chat.
type MessageType string

const (
	MessageDirect  MessageType = "DIRECT"
	MessageSession MessageType = "SESSION"
)

type Message struct {
	ID          int64       `json:"id"`
	SenderID    string      `json:"sender_id"`
	RecipientID string      `json:"recipient_id,omitempty"`
	SessionID   string      `json:"session_id,omitempty"`
	MessageType MessageType `json:"message_type"`
	Content     string      `json:"content"`
	IsRead      bool        `json:"is_read"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ConversationPage holds the messages exchanged with one user.
type ConversationPage struct {
	Messages   []Message   `json:"messages"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Conversation is an inbox entry.
type Conversation struct {
	UserID             string    `json:"user_id"`
	Name               string    `json:"name"`
	AvatarURL          string    `json:"avatar_url,omitempty"`
	LastMessageContent string    `json:"last_message_content"`
	LastMessageAt      time.Time `json:"last_message_at"`
	IsRead             bool      `json:"is_read"`
	UnreadCount        int       `json:"unread_count"`
}

type UnreadCount struct {
	TotalCount int `json:"total_count"`
}

// UnreadFrom returns the unread messages in msgs that were sent to userID.
func UnreadFrom(msgs []Message, userID string) []Message {
	var out []Message
	for _, m := range msgs {
		if !m.IsRead && m.SenderID != userID {
			out = append(out, m)
		}
	}
	return out
}
