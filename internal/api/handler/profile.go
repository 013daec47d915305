package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/skillswap/skillswap-web/internal/core/domain"
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

// MaxAvatarBytes is the largest avatar the page accepts.
const MaxAvatarBytes = 5 << 20

const (
	msgAvatarNotImage = "Please select an image file"
	msgAvatarTooLarge = "Image size must be less than 5MB"
)

// ProfileHandler serves the profile pages and the profile editors. Every
// write refreshes the cached identity so the next page sees the change.
type ProfileHandler struct {
	users   ports.UsersAPI
	skills  ports.SkillsAPI
	reviews ports.ReviewsAPI
	state   ports.AuthState
	log     zerolog.Logger
}

func NewProfileHandler(users ports.UsersAPI, skills ports.SkillsAPI, reviews ports.ReviewsAPI, state ports.AuthState, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		users:   users,
		skills:  skills,
		reviews: reviews,
		state:   state,
		log:     log.With().Str("component", "profile_handler").Logger(),
	}
}

// refreshIdentity runs after a write that already succeeded, so a failed
// refresh is logged and the page still reports the save.
func (h *ProfileHandler) refreshIdentity(ctx context.Context) {
	if err := h.state.RefreshUser(ctx); err != nil {
		h.log.Warn().Err(err).Msg("refresh after profile write failed")
	}
}

// Own handles GET /profile.
//
// @Summary      Own profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  profileResponse
// @Router       /profile [get]
func (h *ProfileHandler) Own(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	resp := profileResponse{IsOwn: true}
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		u, err := h.users.GetMe(ctx)
		resp.User = u
		return err
	})
	g.Go(func() error {
		r, err := h.reviews.ForUser(ctx, me.ID, ports.PageInput{})
		resp.Reviews = r
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Public handles GET /profile/:user_id.
//
// @Summary      Public profile
// @Tags         profile
// @Produce      json
// @Param        user_id  path      string  true  "User id"
// @Success      200      {object}  profileResponse
// @Failure      404      {object}  errorResponse
// @Router       /profile/{user_id} [get]
func (h *ProfileHandler) Public(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	userID := c.Param("user_id")

	resp := profileResponse{IsOwn: userID == me.ID}
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		u, err := h.users.GetByID(ctx, userID)
		resp.User = u
		return err
	})
	g.Go(func() error {
		r, err := h.reviews.ForUser(ctx, userID, ports.PageInput{})
		resp.Reviews = r
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Edit handles POST /profile/edit.
//
// @Summary      Update name, bio and timezone
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Failure      422   {object}  errorResponse
// @Router       /profile/edit [post]
func (h *ProfileHandler) Edit(c echo.Context) error {
	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := h.users.UpdateMe(ctx, toUpdateProfileInput(req))
	if err != nil {
		return err
	}
	h.refreshIdentity(ctx)
	return c.JSON(http.StatusOK, user)
}

// AddSkill handles POST /profile/skills.
//
// @Summary      Add a skill to the profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      addSkillRequest  true  "Skill"
// @Success      201   {object}  domain.UserSkill
// @Failure      422   {object}  errorResponse
// @Router       /profile/skills [post]
func (h *ProfileHandler) AddSkill(c echo.Context) error {
	var req addSkillRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	skill, err := h.skills.AddToProfile(ctx, toAddSkillInput(req))
	if err != nil {
		return err
	}
	h.refreshIdentity(ctx)
	return c.JSON(http.StatusCreated, skill)
}

// RemoveSkill handles DELETE /profile/skills/:id.
//
// @Summary      Remove a skill from the profile
// @Tags         profile
// @Param        id  path  int  true  "Profile skill id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Router       /profile/skills/{id} [delete]
func (h *ProfileHandler) RemoveSkill(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid skill id")
	}

	ctx := c.Request().Context()
	if err := h.skills.RemoveFromProfile(ctx, id); err != nil {
		return err
	}
	h.refreshIdentity(ctx)
	return c.NoContent(http.StatusNoContent)
}

// Avatar handles POST /profile/avatar. The file must be an image of at most
// MaxAvatarBytes.
//
// @Summary      Upload a profile picture
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Param        avatar  formData  file  true  "Image file"
// @Success      200     {object}  domain.AvatarUpload
// @Failure      422     {object}  errorResponse
// @Router       /profile/avatar [post]
func (h *ProfileHandler) Avatar(c echo.Context) error {
	fh, err := c.FormFile("avatar")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return domain.NewFormError(msgAvatarNotImage)
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
	}
	if fh.Size > MaxAvatarBytes {
		return domain.NewFormError(msgAvatarTooLarge)
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open avatar: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, MaxAvatarBytes+1))
	if err != nil {
		return fmt.Errorf("read avatar: %w", err)
	}
	if len(content) > MaxAvatarBytes {
		return domain.NewFormError(msgAvatarTooLarge)
	}

	mt := mimetype.Detect(content)
	if !strings.HasPrefix(mt.String(), "image/") {
		return domain.NewFormError(msgAvatarNotImage)
	}

	ctx := c.Request().Context()
	res, err := h.users.UploadAvatar(ctx, ports.AvatarFile{
		Filename:    fh.Filename,
		ContentType: mt.String(),
		Content:     content,
	})
	if err != nil {
		return err
	}
	h.refreshIdentity(ctx)
	return c.JSON(http.StatusOK, res)
}
