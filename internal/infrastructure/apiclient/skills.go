package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/skillswap/skillswap-web/internal/core/domain"
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

type skillsAPI struct {
	c *Client
}

func (s *skillsAPI) List(ctx context.Context, in ports.ListSkillsInput) ([]domain.Skill, error) {
	return call[[]domain.Skill](ctx, s.c, Request{
		Op:     "skills.list",
		Method: http.MethodGet,
		Path:   "/api/skills",
		Query:  params{}.str("category", in.Category).str("search", in.Search).values(),
	})
}

func (s *skillsAPI) AddToProfile(ctx context.Context, in ports.AddSkillInput) (*domain.UserSkill, error) {
	return call[*domain.UserSkill](ctx, s.c, Request{
		Op:     "skills.add_to_profile",
		Method: http.MethodPost,
		Path:   "/api/users/me/skills",
		Body:   in,
	})
}

func (s *skillsAPI) RemoveFromProfile(ctx context.Context, userSkillID int64) error {
	return exec(ctx, s.c, Request{
		Op:     "skills.remove_from_profile",
		Method: http.MethodDelete,
		Path:   "/api/users/me/skills/" + strconv.FormatInt(userSkillID, 10),
	})
}
