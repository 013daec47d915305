package apiclient

import (
	"context"
	"net/http"

	"github.com/skillswap/skillswap-web/internal/core/domain"
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

type sessionsAPI struct {
	c *Client
}

func (s *sessionsAPI) Create(ctx context.Context, in ports.CreateSessionInput) (*domain.Session, error) {
	return call[*domain.Session](ctx, s.c, Request{
		Op:     "sessions.create",
		Method: http.MethodPost,
		Path:   "/api/sessions",
		Body:   in,
	})
}

func (s *sessionsAPI) List(ctx context.Context, in ports.ListSessionsInput) ([]domain.Session, error) {
	return call[[]domain.Session](ctx, s.c, Request{
		Op:     "sessions.list",
		Method: http.MethodGet,
		Path:   "/api/sessions",
		Query: params{}.
			str("status", string(in.Status)).
			flag("upcoming", in.Upcoming).
			flag("past", in.Past).
			values(),
	})
}

func (s *sessionsAPI) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	return call[*domain.Session](ctx, s.c, Request{
		Op:     "sessions.get",
		Method: http.MethodGet,
		Path:   "/api/sessions/" + segment(sessionID),
	})
}

func (s *sessionsAPI) Cancel(ctx context.Context, sessionID string) error {
	return exec(ctx, s.c, Request{
		Op:     "sessions.cancel",
		Method: http.MethodPost,
		Path:   "/api/sessions/" + segment(sessionID) + "/cancel",
	})
}

// UpdateParticipant accepts or declines an invitation on behalf of userID.
func (s *sessionsAPI) UpdateParticipant(ctx context.Context, sessionID, userID string, status domain.ParticipantStatus) error {
	return exec(ctx, s.c, Request{
		Op:     "sessions.update_participant",
		Method: http.MethodPatch,
		Path:   "/api/sessions/" + segment(sessionID) + "/participants/" + segment(userID),
		Body:   map[string]domain.ParticipantStatus{"status": status},
	})
}
