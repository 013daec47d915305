package apiclient

import (
	"context"
	"net/http"

	"github.com/skillswap/skillswap-web/internal/core/domain"
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

type usersAPI struct {
	c *Client
}

func (u *usersAPI) GetMe(ctx context.Context) (*domain.User, error) {
	return call[*domain.User](ctx, u.c, Request{
		Op:     "users.get_me",
		Method: http.MethodGet,
		Path:   "/api/users/me",
	})
}

func (u *usersAPI) UpdateMe(ctx context.Context, in ports.UpdateProfileInput) (*domain.User, error) {
	return call[*domain.User](ctx, u.c, Request{
		Op:     "users.update_me",
		Method: http.MethodPatch,
		Path:   "/api/users/me",
		Body:   in,
	})
}

func (u *usersAPI) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return call[*domain.User](ctx, u.c, Request{
		Op:     "users.get_by_id",
		Method: http.MethodGet,
		Path:   "/api/users/" + segment(userID),
	})
}

// UploadAvatar sends the image as the multipart field "avatar".
func (u *usersAPI) UploadAvatar(ctx context.Context, file ports.AvatarFile) (*domain.AvatarUpload, error) {
	return call[*domain.AvatarUpload](ctx, u.c, Request{
		Op:     "users.upload_avatar",
		Method: http.MethodPost,
		Path:   "/api/users/me/avatar",
		File: &MultipartFile{
			Field:       "avatar",
			Filename:    file.Filename,
			ContentType: file.ContentType,
			Content:     file.Content,
		},
	})
}
