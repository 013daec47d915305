package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/skillswap/skillswap-web/internal/core/domain"
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

const matchSuggestionLimit = 20

// MatchesHandler serves the matches page and connection requests.
type MatchesHandler struct {
	matches ports.MatchesAPI
}

func NewMatchesHandler(matches ports.MatchesAPI) *MatchesHandler {
	return &MatchesHandler{matches: matches}
}

// List handles GET /matches.
//
// @Summary      Suggestions, connections and pending requests
// @Tags         matches
// @Produce      json
// @Success      200  {object}  matchesResponse
// @Failure      502  {object}  errorResponse
// @Router       /matches [get]
func (h *MatchesHandler) List(c echo.Context) error {
	var resp matchesResponse
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		s, err := h.matches.Suggestions(ctx, matchSuggestionLimit)
		resp.Suggestions = s
		return err
	})
	g.Go(func() error {
		m, err := h.matches.List(ctx, domain.MatchAccepted)
		resp.Connections = m
		return err
	})
	g.Go(func() error {
		m, err := h.matches.List(ctx, domain.MatchPending)
		resp.Pending = m
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if resp.Suggestions == nil {
		resp.Suggestions = []domain.MatchSuggestion{}
	}
	if resp.Connections == nil {
		resp.Connections = []domain.Match{}
	}
	if resp.Pending == nil {
		resp.Pending = []domain.Match{}
	}
	return c.JSON(http.StatusOK, resp)
}

// Connect handles POST /matches.
//
// @Summary      Send a connection request
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        body  body      connectRequest  true  "Peer to connect with"
// @Success      201   {object}  domain.Match
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /matches [post]
func (h *MatchesHandler) Connect(c echo.Context) error {
	var req connectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	me, err := currentUser(c)
	if err != nil {
		return err
	}
	if req.UserID == me.ID {
		return domain.NewFormError("You cannot connect with yourself")
	}

	match, err := h.matches.Create(c.Request().Context(), req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, match)
}
