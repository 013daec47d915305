package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/skillswap/skillswap-web/internal/core/domain"
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

const searchPageSize = 20

// SearchHandler serves the skill search page.
type SearchHandler struct {
	skills  ports.SkillsAPI
	matches ports.MatchesAPI
}

func NewSearchHandler(skills ports.SkillsAPI, matches ports.MatchesAPI) *SearchHandler {
	return &SearchHandler{skills: skills, matches: matches}
}

// Search handles GET /search. Without a query only the skill catalog is
// returned.
//
// @Summary      Search people by skill
// @Tags         search
// @Produce      json
// @Param        q     query     string  false  "Skill name"
// @Param        type  query     string  false  "TEACH or LEARN"
// @Param        page  query     int     false  "Page number"
// @Success      200   {object}  searchResponse
// @Failure      400   {object}  errorResponse
// @Router       /search [get]
func (h *SearchHandler) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	kind := strings.ToUpper(c.QueryParam("type"))
	if kind != "" && kind != string(domain.SkillTeach) && kind != string(domain.SkillLearn) {
		return echo.NewHTTPError(http.StatusBadRequest, "type must be TEACH or LEARN")
	}
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}

	resp := searchResponse{Query: q}
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		skills, err := h.skills.List(ctx, ports.ListSkillsInput{Search: q})
		resp.Skills = skills
		return err
	})
	if q != "" {
		g.Go(func() error {
			res, err := h.matches.Search(ctx, ports.SearchUsersInput{
				Skill: q,
				Type:  kind,
				Page:  page,
				Limit: searchPageSize,
			})
			resp.Results = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if resp.Skills == nil {
		resp.Skills = []domain.Skill{}
	}
	return c.JSON(http.StatusOK, resp)
}
