package apiclient

import (
	"context"
	"net/http"

	"github.com/skillswap/skillswap-web/internal/core/domain"
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

type matchesAPI struct {
	c *Client
}

func (m *matchesAPI) Suggestions(ctx context.Context, limit int) ([]domain.MatchSuggestion, error) {
	return call[[]domain.MatchSuggestion](ctx, m.c, Request{
		Op:     "matches.suggestions",
		Method: http.MethodGet,
		Path:   "/api/matches/suggestions",
		Query:  params{}.num("limit", limit).values(),
	})
}

// Search finds users by skill name. It lives under /api/users on the server.
func (m *matchesAPI) Search(ctx context.Context, in ports.SearchUsersInput) (*domain.UserSearchResult, error) {
	return call[*domain.UserSearchResult](ctx, m.c, Request{
		Op:     "matches.search",
		Method: http.MethodGet,
		Path:   "/api/users/search",
		Query: params{}.
			str("skill", in.Skill).
			str("type", in.Type).
			num("page", in.Page).
			num("limit", in.Limit).
			values(),
	})
}

func (m *matchesAPI) Create(ctx context.Context, userID string) (*domain.Match, error) {
	return call[*domain.Match](ctx, m.c, Request{
		Op:     "matches.create",
		Method: http.MethodPost,
		Path:   "/api/matches",
		Body:   map[string]string{"user_id": userID},
	})
}

func (m *matchesAPI) List(ctx context.Context, status domain.MatchStatus) ([]domain.Match, error) {
	return call[[]domain.Match](ctx, m.c, Request{
		Op:     "matches.list",
		Method: http.MethodGet,
		Path:   "/api/matches",
		Query:  params{}.str("status", string(status)).values(),
	})
}
