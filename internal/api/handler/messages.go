package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/skillswap/skillswap-web/internal/core/domain"
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

// MessagesHandler serves the inbox and conversation pages.
type MessagesHandler struct {
	users    ports.UsersAPI
	messages ports.MessagesAPI
	receipts ports.ReadReceipts
}

func NewMessagesHandler(users ports.UsersAPI, messages ports.MessagesAPI, receipts ports.ReadReceipts) *MessagesHandler {
	return &MessagesHandler{users: users, messages: messages, receipts: receipts}
}

// Inbox handles GET /messages.
//
// @Summary      Conversation list
// @Tags         messages
// @Produce      json
// @Success      200  {object}  conversationsResponse
// @Failure      502  {object}  errorResponse
// @Router       /messages [get]
func (h *MessagesHandler) Inbox(c echo.Context) error {
	convs, err := h.messages.Conversations(c.Request().Context())
	if err != nil {
		return err
	}
	if convs == nil {
		convs = []domain.Conversation{}
	}
	return c.JSON(http.StatusOK, conversationsResponse{Conversations: convs})
}

// Conversation handles GET /messages/:user_id. Incoming unread messages on
// the returned page are queued to be marked read.
//
// @Summary      Conversation with one user
// @Tags         messages
// @Produce      json
// @Param        user_id  path      string  true   "Peer user id"
// @Param        page     query     int     false  "Page number"
// @Param        limit    query     int     false  "Page size"
// @Success      200      {object}  conversationResponse
// @Failure      404      {object}  errorResponse
// @Router       /messages/{user_id} [get]
func (h *MessagesHandler) Conversation(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	peerID := c.Param("user_id")
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	var (
		resp conversationResponse
		conv *domain.ConversationPage
	)
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		peer, err := h.users.GetByID(ctx, peerID)
		resp.With = peer
		return err
	})
	g.Go(func() error {
		var err error
		conv, err = h.messages.Conversation(ctx, peerID, ports.PageInput{Page: page, Limit: limit})
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if conv != nil {
		resp.Messages = conv.Messages
		resp.Pagination = conv.Pagination
	}
	if resp.Messages == nil {
		resp.Messages = []domain.Message{}
	}

	unread := domain.UnreadFrom(resp.Messages, me.ID)
	if len(unread) > 0 {
		ids := make([]int64, len(unread))
		for i, m := range unread {
			ids[i] = m.ID
		}
		resp.QueuedReads = h.receipts.Enqueue(c.Request().Context(), peerID, ids...)
	}
	return c.JSON(http.StatusOK, resp)
}

// Send handles POST /messages/:user_id.
//
// @Summary      Send a direct message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        user_id  path      string              true  "Recipient user id"
// @Param        body     body      sendMessageRequest  true  "Message"
// @Success      201      {object}  domain.Message
// @Failure      422      {object}  errorResponse
// @Router       /messages/{user_id} [post]
func (h *MessagesHandler) Send(c echo.Context) error {
	var req sendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.messages.Send(c.Request().Context(), c.Param("user_id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}
