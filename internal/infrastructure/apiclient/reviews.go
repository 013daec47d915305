package apiclient

import (
	"context"
	"net/http"

	"github.com/skillswap/skillswap-web/internal/core/domain"
	"github.com/skillswap/skillswap-web/internal/core/ports"
)

type reviewsAPI struct {
	c *Client
}

func (r *reviewsAPI) Create(ctx context.Context, in ports.CreateReviewInput) (*domain.Review, error) {
	return call[*domain.Review](ctx, r.c, Request{
		Op:     "reviews.create",
		Method: http.MethodPost,
		Path:   "/api/reviews",
		Body:   in,
	})
}

func (r *reviewsAPI) ForUser(ctx context.Context, userID string, page ports.PageInput) (*domain.UserReviews, error) {
	return call[*domain.UserReviews](ctx, r.c, Request{
		Op:     "reviews.for_user",
		Method: http.MethodGet,
		Path:   "/api/reviews",
		Query: params{}.
			str("user_id", userID).
			num("page", page.Page).
			num("limit", page.Limit).
			values(),
	})
}
