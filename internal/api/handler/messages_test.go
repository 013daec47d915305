package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/skillswap/skillswap-web/internal/core/domain"
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

func TestMessagesHandler_Inbox_EmptyIsList(t *testing.T) {
	msgs := &stubMessagesAPI{conversationsFn: func(ctx context.Context) ([]domain.Conversation, error) {
		return nil, nil
	}}
	h := NewMessagesHandler(&stubUsersAPI{}, msgs, &stubReceipts{})
	c, rec := newPageContext(t, http.MethodGet, "/messages", "")

	if err := h.Inbox(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); body != "{\"conversations\":[]}\n" {
		t.Fatalf("unexpected body %q", body)
	}
}

type stubReceipts struct {
	peerID string
	ids    []int64
	accept int
}

func (r *stubReceipts) Enqueue(ctx context.Context, peerID string, messageIDs ...int64) int {
	r.peerID = peerID
	r.ids = append(r.ids, messageIDs...)
	return min(r.accept, len(messageIDs))
}

func TestMessagesHandler_Conversation_QueuesIncomingUnread(t *testing.T) {
	users := &stubUsersAPI{getByIDFn: func(ctx context.Context, userID string) (*domain.User, error) {
		return &domain.User{ID: userID, Name: "Grace"}, nil
	}}
	msgs := &stubMessagesAPI{
		conversationFn: func(ctx context.Context, userID string, page ports.PageInput) (*domain.ConversationPage, error) {
			if userID != "u-2" || page.Page != 2 || page.Limit != 10 {
				t.Errorf("unexpected conversation args %q %+v", userID, page)
			}
			return &domain.ConversationPage{Messages: []domain.Message{
				{ID: 1, SenderID: "u-2", IsRead: true},
				{ID: 2, SenderID: "u-2"},
				{ID: 3, SenderID: testUser.ID},
				{ID: 4, SenderID: "u-2"},
			}}, nil
		},
	}
	receipts := &stubReceipts{accept: 1}
	h := NewMessagesHandler(users, msgs, receipts)
	c, rec := newPageContext(t, http.MethodGet, "/messages/u-2?page=2&limit=10", "")
	c.SetParamNames("user_id")
	c.SetParamValues("u-2")

	if err := h.Conversation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if receipts.peerID != "u-2" || len(receipts.ids) != 2 || receipts.ids[0] != 2 || receipts.ids[1] != 4 {
		t.Fatalf("expected messages 2 and 4 queued for u-2, got %q %v", receipts.peerID, receipts.ids)
	}

	var resp conversationResponse
	decodeBody(t, rec, &resp)
	if resp.With == nil || resp.With.Name != "Grace" || len(resp.Messages) != 4 {
		t.Fatalf("unexpected conversation: %+v", resp)
	}
	if resp.QueuedReads != 1 {
		t.Fatalf("expected one accepted receipt, got %d", resp.QueuedReads)
	}
}

func TestMessagesHandler_Conversation_NothingUnread(t *testing.T) {
	users := &stubUsersAPI{getByIDFn: func(ctx context.Context, userID string) (*domain.User, error) {
		return &domain.User{ID: userID}, nil
	}}
	msgs := &stubMessagesAPI{conversationFn: func(ctx context.Context, userID string, page ports.PageInput) (*domain.ConversationPage, error) {
		return &domain.ConversationPage{}, nil
	}}
	receipts := &stubReceipts{}
	h := NewMessagesHandler(users, msgs, receipts)
	c, rec := newPageContext(t, http.MethodGet, "/messages/u-2", "")
	c.SetParamNames("user_id")
	c.SetParamValues("u-2")

	if err := h.Conversation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if receipts.peerID != "" {
		t.Fatal("nothing should be queued")
	}
	var resp conversationResponse
	decodeBody(t, rec, &resp)
	if resp.Messages == nil {
		t.Fatal("expected empty message list, got null")
	}
}

func TestMessagesHandler_Send(t *testing.T) {
	msgs := &stubMessagesAPI{sendFn: func(ctx context.Context, recipientID, content string) (*domain.Message, error) {
		if recipientID != "u-2" || content != "hello" {
			t.Fatalf("unexpected send %q %q", recipientID, content)
		}
		return &domain.Message{ID: 9, Content: content}, nil
	}}
	h := NewMessagesHandler(&stubUsersAPI{}, msgs, &stubReceipts{})
	c, rec := newPageContext(t, http.MethodPost, "/messages/u-2", `{"content":"hello"}`)
	c.SetParamNames("user_id")
	c.SetParamValues("u-2")

	if err := h.Send(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestMessagesHandler_Send_Empty(t *testing.T) {
	h := NewMessagesHandler(&stubUsersAPI{}, &stubMessagesAPI{}, &stubReceipts{})
	c, _ := newPageContext(t, http.MethodPost, "/messages/u-2", `{"content":""}`)
	c.SetParamNames("user_id")
	c.SetParamValues("u-2")

	msgs := formMessages(t, h.Send(c))
	if len(msgs) != 1 || msgs[0] != "Message cannot be empty" {
		t.Fatalf("unexpected messages: %v", msgs)
	}
}
