package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/skillswap/skillswap-web/internal/core/domain"
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

// ContextUserKey is where RequireAuth stores the signed-in *domain.User.
const ContextUserKey = "user"

// RequireAuth resolves the auth state and sends signed-out visitors to the
// sign-in page.
func RequireAuth(state ports.AuthState, nav ports.Navigator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			snap := state.Ensure(ctx)
			if !snap.IsAuthenticated || snap.User == nil {
				nav.Navigate(ctx, domain.SignInPath)
				return nil
			}

			c.Set(ContextUserKey, snap.User)
			return next(c)
		}
	}
}

// GuestOnly sends signed-in visitors to target instead of the guest page.
func GuestOnly(state ports.AuthState, nav ports.Navigator, target string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if state.Ensure(ctx).IsAuthenticated {
				nav.Navigate(ctx, target)
				return nil
			}
			return next(c)
		}
	}
}
