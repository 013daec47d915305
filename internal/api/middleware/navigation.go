package middleware

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
)

type navigationKey struct{}

type pendingNavigation struct {
	mu     sync.Mutex
	target string
}

func (p *pendingNavigation) set(target string) {
	p.mu.Lock()
	p.target = target
	p.mu.Unlock()
}

func (p *pendingNavigation) get() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.target
}

// Navigator records hard navigations on the page request carried by ctx.
// Navigations outside a page request are dropped.
type Navigator struct{}

func (Navigator) Navigate(ctx context.Context, target string) {
	if p, ok := ctx.Value(navigationKey{}).(*pendingNavigation); ok {
		p.set(target)
	}
}

// Navigation turns a navigation recorded while handling the request into a
// 303 redirect that replaces whatever the handler returned. The last
// recorded target wins.
func Navigation() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := &pendingNavigation{}
			req := c.Request()
			c.SetRequest(req.WithContext(context.WithValue(req.Context(), navigationKey{}, p)))

			err := next(c)

			target := p.get()
			if target == "" || c.Response().Committed {
				return err
			}
			return c.Redirect(http.StatusSeeOther, target)
		}
	}
}
