package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
)

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	return list[models.User](ctx, c, "user", "/auth/users")
}

func (c *Client) CheckEmail(ctx context.Context, email string) (*models.EmailCheckResponse, error) {
	var check models.EmailCheckResponse
	if err := c.do(ctx, http.MethodGet, "/auth/check?email="+url.QueryEscape(email), nil, &check); err != nil {
		return nil, err
	}

	return &check, nil
}

func (c *Client) AddToWishlist(ctx context.Context, entry models.WishlistEntry) error {
	return c.do(ctx, http.MethodPost, "/wishlist", entry, nil)
}

// ListWishlist returns the templates the user liked.
func (c *Client) ListWishlist(ctx context.Context, userID models.ID) ([]models.Template, error) {
	return list[models.Template](ctx, c, "template", "/wishlist/"+url.PathEscape(userID.String()))
}
