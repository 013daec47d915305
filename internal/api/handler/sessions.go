package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skillswap/skillswap-web/internal/core/domain"
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

// Session list tabs.
const (
	tabUpcoming  = "upcoming"
	tabPast      = "past"
	tabCancelled = "cancelled"
)

// SessionsHandler serves the sessions pages, invitations and reviews.
type SessionsHandler struct {
	sessions ports.SessionsAPI
	reviews  ports.ReviewsAPI
	now      func() time.Time
}

func NewSessionsHandler(sessions ports.SessionsAPI, reviews ports.ReviewsAPI) *SessionsHandler {
	return &SessionsHandler{sessions: sessions, reviews: reviews, now: time.Now}
}

// List handles GET /sessions.
//
// @Summary      Sessions list
// @Tags         sessions
// @Produce      json
// @Param        tab  query     string  false  "upcoming (default), past or cancelled"
// @Success      200  {object}  sessionsResponse
// @Failure      400  {object}  errorResponse
// @Router       /sessions [get]
func (h *SessionsHandler) List(c echo.Context) error {
	tab := c.QueryParam("tab")
	if tab == "" {
		tab = tabUpcoming
	}

	var in ports.ListSessionsInput
	switch tab {
	case tabUpcoming:
		in.Upcoming = true
	case tabPast:
		in.Past = true
	case tabCancelled:
		in.Status = domain.StatusCancelled
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "tab must be upcoming, past or cancelled")
	}

	sessions, err := h.sessions.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	if sessions == nil {
		sessions = []domain.Session{}
	}
	return c.JSON(http.StatusOK, sessionsResponse{Tab: tab, Sessions: sessions})
}

// Create handles POST /sessions.
//
// @Summary      Schedule a session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      createSessionRequest  true  "Session"
// @Success      201   {object}  domain.Session
// @Failure      422   {object}  errorResponse
// @Router       /sessions [post]
func (h *SessionsHandler) Create(c echo.Context) error {
	var req createSessionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.sessions.Create(c.Request().Context(), toCreateSessionInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, session)
}

// Detail handles GET /sessions/:id.
//
// @Summary      Session detail
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  sessionDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /sessions/{id} [get]
func (h *SessionsHandler) Detail(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	session, err := h.sessions.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if session == nil {
		return &domain.APIError{Status: http.StatusNotFound, Message: domain.FallbackMessage}
	}

	resp := sessionDetailResponse{
		Session:   session,
		CanJoin:   session.CanJoin(h.now()),
		CanCancel: session.CanCancel(me.ID),
		IsCreator: session.CreatedBy == me.ID,
	}
	if p, ok := session.Participant(me.ID); ok {
		resp.Participation = &p
	}
	resp.CanReview = session.Status == domain.StatusCompleted && (resp.IsCreator || resp.Participation != nil)
	return c.JSON(http.StatusOK, resp)
}

// Cancel handles POST /sessions/:id/cancel.
//
// @Summary      Cancel a session
// @Tags         sessions
// @Param        id  path  string  true  "Session id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Router       /sessions/{id}/cancel [post]
func (h *SessionsHandler) Cancel(c echo.Context) error {
	if err := h.sessions.Cancel(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Respond handles POST /sessions/:id/respond.
//
// @Summary      Accept or decline an invitation
// @Tags         sessions
// @Accept       json
// @Param        id    path  string          true  "Session id"
// @Param        body  body  respondRequest  true  "Answer"
// @Success      204
// @Failure      422  {object}  errorResponse
// @Router       /sessions/{id}/respond [post]
func (h *SessionsHandler) Respond(c echo.Context) error {
	var req respondRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.sessions.UpdateParticipant(c.Request().Context(), c.Param("id"), me.ID, req.Status); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Review handles POST /sessions/:id/reviews.
//
// @Summary      Review a session participant
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Session id"
// @Param        body  body      reviewRequest  true  "Review"
// @Success      201   {object}  domain.Review
// @Failure      422   {object}  errorResponse
// @Router       /sessions/{id}/reviews [post]
func (h *SessionsHandler) Review(c echo.Context) error {
	var req reviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	if req.RevieweeID == me.ID {
		return domain.NewFormError("You cannot review yourself")
	}

	review, err := h.reviews.Create(c.Request().Context(), toCreateReviewInput(c.Param("id"), req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}
