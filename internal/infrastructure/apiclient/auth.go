package apiclient

import (
	"context"
	"net/http"

	"github.com/skillswap/skillswap-web/internal/core/ports"
)

type authAPI struct {
	c *Client
}

// Verify exchanges an OAuth identity for API session cookies.
func (a *authAPI) Verify(ctx context.Context, in ports.VerifyInput) error {
	return exec(ctx, a.c, Request{
		Op:     "auth.verify",
		Method: http.MethodPost,
		Path:   "/api/auth/verify",
		Body:   in,
	})
}

// Refresh renews the API session. It is never itself refreshed.
func (a *authAPI) Refresh(ctx context.Context) error {
	return exec(ctx, a.c, refreshRequest)
}

func (a *authAPI) Logout(ctx context.Context) error {
	return exec(ctx, a.c, Request{
		Op:     "auth.logout",
		Method: http.MethodPost,
		Path:   "/api/auth/logout",
	})
}
