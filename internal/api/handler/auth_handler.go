package handler

import (
	"errors"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/skillswap/skillswap-web/internal/api/metrics"
	"github.com/skillswap/skillswap-web/internal/core/domain"
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

// AuthHandler serves the landing and sign-in pages and the OAuth round trip.
type AuthHandler struct {
	api       ports.AuthAPI
	state     ports.AuthState
	providers map[string]ports.IdentityProvider
	states    ports.StateIssuer
	log       zerolog.Logger
}

func NewAuthHandler(api ports.AuthAPI, state ports.AuthState, providers map[string]ports.IdentityProvider, states ports.StateIssuer, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		api:       api,
		state:     state,
		providers: providers,
		states:    states,
		log:       log.With().Str("component", "auth_handler").Logger(),
	}
}

// Landing handles GET /.
//
// @Summary      Landing page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  landingResponse
// @Success      303  "Signed-in users are sent to /dashboard"
// @Router       / [get]
func (h *AuthHandler) Landing(c echo.Context) error {
	return c.JSON(http.StatusOK, landingResponse{
		Name:    "SkillSwap",
		Tagline: "Teach what you know, learn what you don't",
		SignIn:  domain.SignInPath,
	})
}

// SignIn lists the enabled providers.
//
// @Summary      Sign-in page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  signInResponse
// @Router       /auth/signin [get]
func (h *AuthHandler) SignIn(c echo.Context) error {
	resp := signInResponse{Providers: make([]signInProvider, 0, len(h.providers))}
	for name := range h.providers {
		resp.Providers = append(resp.Providers, signInProvider{Name: name, URL: domain.SignInPath + "/" + name})
	}
	sort.Slice(resp.Providers, func(i, j int) bool { return resp.Providers[i].Name < resp.Providers[j].Name })
	return c.JSON(http.StatusOK, resp)
}

// Start redirects to the provider's consent screen.
//
// @Summary      Start OAuth sign-in
// @Tags         auth
// @Param        provider  path  string  true  "google or github"
// @Success      302
// @Failure      404  {object}  errorResponse
// @Router       /auth/signin/{provider} [get]
func (h *AuthHandler) Start(c echo.Context) error {
	name := c.Param("provider")
	p, ok := h.providers[name]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown sign-in provider")
	}

	state, nonce, err := h.states.Issue(c.Request().Context(), name)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, p.AuthCodeURL(state, nonce))
}

// Callback completes the OAuth round trip and opens an API session.
//
// @Summary      OAuth callback
// @Tags         auth
// @Param        provider  path   string  true  "google or github"
// @Param        code      query  string  true  "Authorization code"
// @Param        state     query  string  true  "State issued by /auth/signin/{provider}"
// @Success      303  "Redirects to /dashboard"
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/callback/{provider} [get]
func (h *AuthHandler) Callback(c echo.Context) error {
	ctx := c.Request().Context()
	name := c.Param("provider")
	p, ok := h.providers[name]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown sign-in provider")
	}

	if reason := c.QueryParam("error"); reason != "" {
		metrics.SignInTotal.WithLabelValues(name, "denied").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "sign-in was cancelled")
	}

	nonce, err := h.states.Verify(ctx, c.QueryParam("state"), name)
	if err != nil {
		metrics.SignInTotal.WithLabelValues(name, "bad_state").Inc()
		h.log.Warn().Err(err).Str("provider", name).Msg("rejected oauth state")
		return echo.NewHTTPError(http.StatusBadRequest, "sign-in link expired, please try again")
	}

	id, err := p.Authenticate(ctx, c.QueryParam("code"), nonce)
	if err != nil {
		metrics.SignInTotal.WithLabelValues(name, "identity").Inc()
		h.log.Warn().Err(err).Str("provider", name).Msg("oauth identity failed")
		return echo.NewHTTPError(http.StatusBadRequest, "could not verify your account with "+name)
	}

	if err := h.api.Verify(ctx, ports.VerifyInput{
		Provider:  id.Provider,
		OAuthID:   id.OAuthID,
		Email:     id.Email,
		Name:      id.Name,
		AvatarURL: id.AvatarURL,
	}); err != nil {
		metrics.SignInTotal.WithLabelValues(name, "verify").Inc()
		return err
	}

	h.state.Reset()
	if snap := h.state.Ensure(ctx); !snap.IsAuthenticated {
		metrics.SignInTotal.WithLabelValues(name, "session").Inc()
		return &domain.APIError{Status: http.StatusUnauthorized, Message: "Sign-in failed, please try again", Err: errors.New("no session after verify")}
	}

	metrics.SignInTotal.WithLabelValues(name, "success").Inc()
	h.log.Info().Str("provider", name).Msg("signed in")
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Logout ends the session and returns to the landing page.
//
// @Summary      Sign out
// @Tags         auth
// @Success      303  "Redirects to /"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.state.Logout(c.Request().Context())
	return nil
}
