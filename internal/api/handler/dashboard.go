package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/skillswap/skillswap-web/internal/core/domain"
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

// dashboardSuggestions is how many match suggestions the dashboard shows.
const dashboardSuggestions = 5

// DashboardHandler renders the signed-in home page.
type DashboardHandler struct {
	api ports.Catalog
}

func NewDashboardHandler(api ports.Catalog) *DashboardHandler {
	return &DashboardHandler{api: api}
}

// Show handles GET /dashboard.
//
// @Summary      Dashboard
// @Tags         pages
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Success      303  "Signed-out visitors are sent to /auth/signin"
// @Failure      502  {object}  errorResponse
// @Router       /dashboard [get]
func (h *DashboardHandler) Show(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	resp := dashboardResponse{User: me}
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		sessions, err := h.api.Sessions.List(ctx, ports.ListSessionsInput{Upcoming: true})
		resp.UpcomingSessions = sessions
		return err
	})
	g.Go(func() error {
		suggestions, err := h.api.Matches.Suggestions(ctx, dashboardSuggestions)
		resp.Suggestions = suggestions
		return err
	})
	g.Go(func() error {
		unread, err := h.api.Messages.UnreadCount(ctx)
		if unread != nil {
			resp.UnreadMessages = unread.TotalCount
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if resp.UpcomingSessions == nil {
		resp.UpcomingSessions = []domain.Session{}
	}
	if resp.Suggestions == nil {
		resp.Suggestions = []domain.MatchSuggestion{}
	}
	return c.JSON(http.StatusOK, resp)
}
