package ports

import (
	"context"

	"github.com/skillswap/skillswap-web/internal/core/domain"
)

// IdentityProvider is an OAuth provider users can sign in with.
type IdentityProvider interface {
	AuthCodeURL(state, nonce string) string
	// Authenticate exchanges the callback code and returns the verified identity.
	Authenticate(ctx context.Context, code, nonce string) (domain.Identity, error)
}

// StateIssuer protects the OAuth round trip with a single-use state value.
type StateIssuer interface {
	Issue(ctx context.Context, provider string) (state, nonce string, err error)
	Verify(ctx context.Context, state, provider string) (nonce string, err error)
}
