package ports

import (
	"context"

	"github.com/skillswap/skillswap-web/internal/core/domain"
)

// AuthState is the process-wide cache of the signed-in identity.
// Pages read it; only its implementation mutates it.
type AuthState interface {
	Snapshot() domain.AuthSnapshot
	Ensure(ctx context.Context) domain.AuthSnapshot
	RefreshUser(ctx context.Context) error
	Logout(ctx context.Context)
	// Reset forgets the identity so the next Ensure fetches it again.
	Reset()
}
