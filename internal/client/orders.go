package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
)

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	return list[models.Order](ctx, c, "order", "/orders")
}

func (c *Client) GetOrder(ctx context.Context, id models.ID) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id.String()), nil, &order); err != nil {
		return nil, err
	}

	if err := c.validOne("order", order); err != nil {
		return nil, err
	}

	return &order, nil
}

// CreateOrder posts the draft once. There is no idempotency key: posting
// the same draft twice creates two orders.
func (c *Client) CreateOrder(ctx context.Context, draft *models.OrderDraft) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", draft, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (c *Client) UpdateOrder(ctx context.Context, id models.ID, req *models.UpdateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id.String()), req, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, "/orders/"+url.PathEscape(id.String()), nil, nil)
}

func (c *Client) OrderStats(ctx context.Context) (*models.OrderStats, error) {
	var stats models.OrderStats
	if err := c.do(ctx, http.MethodGet, "/orders/stats", nil, &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}
