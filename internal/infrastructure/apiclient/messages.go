package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/skillswap/skillswap-web/internal/core/domain"
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

type messagesAPI struct {
	c *Client
}

type sendMessageBody struct {
	RecipientID string `json:"recipient_id"`
	Content     string `json:"content"`
}

func (m *messagesAPI) Send(ctx context.Context, recipientID, content string) (*domain.Message, error) {
	return call[*domain.Message](ctx, m.c, Request{
		Op:     "messages.send",
		Method: http.MethodPost,
		Path:   "/api/messages",
		Body:   sendMessageBody{RecipientID: recipientID, Content: content},
	})
}

func (m *messagesAPI) Conversation(ctx context.Context, userID string, page ports.PageInput) (*domain.ConversationPage, error) {
	return call[*domain.ConversationPage](ctx, m.c, Request{
		Op:     "messages.conversation",
		Method: http.MethodGet,
		Path:   "/api/messages",
		Query: params{}.
			str("conversation_with", userID).
			num("page", page.Page).
			num("limit", page.Limit).
			values(),
	})
}

func (m *messagesAPI) Conversations(ctx context.Context) ([]domain.Conversation, error) {
	return call[[]domain.Conversation](ctx, m.c, Request{
		Op:     "messages.conversations",
		Method: http.MethodGet,
		Path:   "/api/messages/conversations",
	})
}

func (m *messagesAPI) MarkRead(ctx context.Context, messageID int64) error {
	return exec(ctx, m.c, Request{
		Op:     "messages.mark_read",
		Method: http.MethodPost,
		Path:   "/api/messages/" + strconv.FormatInt(messageID, 10) + "/read",
	})
}

func (m *messagesAPI) UnreadCount(ctx context.Context) (*domain.UnreadCount, error) {
	return call[*domain.UnreadCount](ctx, m.c, Request{
		Op:     "messages.unread_count",
		Method: http.MethodGet,
		Path:   "/api/messages/unread_count",
	})
}
