package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
)

func (c *Client) ListTemplates(ctx context.Context) ([]models.Template, error) {
	return list[models.Template](ctx, c, "template", "/templates")
}

func (c *Client) GetTemplate(ctx context.Context, id models.ID) (*models.Template, error) {
	var template models.Template
	if err := c.do(ctx, http.MethodGet, "/templates/"+url.PathEscape(id.String()), nil, &template); err != nil {
		return nil, err
	}

	if err := c.validOne("template", template); err != nil {
		return nil, err
	}

	return &template, nil
}

func (c *Client) CreateTemplate(ctx context.Context, req *models.TemplateRequest) (*models.Template, error) {
	var template models.Template
	if err := c.do(ctx, http.MethodPost, "/templates", req, &template); err != nil {
		return nil, err
	}

	return &template, nil
}

func (c *Client) UpdateTemplate(ctx context.Context, id models.ID, req *models.TemplateRequest) (*models.Template, error) {
	var template models.Template
	if err := c.do(ctx, http.MethodPut, "/templates/"+url.PathEscape(id.String()), req, &template); err != nil {
		return nil, err
	}

	return &template, nil
}

func (c *Client) DeleteTemplate(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, "/templates/"+url.PathEscape(id.String()), nil, nil)
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	return list[models.Category](ctx, c, "category", "/categories")
}

func (c *Client) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := c.do(ctx, http.MethodPost, "/categories", req, &category); err != nil {
		return nil, err
	}

	return &category, nil
}

func (c *Client) ListInvitations(ctx context.Context) ([]models.Invitation, error) {
	return list[models.Invitation](ctx, c, "invitation", "/invitations")
}

func (c *Client) CreateInvitation(ctx context.Context, req *models.InvitationRequest) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := c.do(ctx, http.MethodPost, "/invitations", req, &invitation); err != nil {
		return nil, err
	}

	return &invitation, nil
}

func (c *Client) UpdateInvitation(ctx context.Context, id models.ID, req *models.InvitationRequest) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/invitations/%s", url.PathEscape(id.String())), req, &invitation); err != nil {
		return nil, err
	}

	return &invitation, nil
}

func (c *Client) DeleteInvitation(ctx context.Context, id models.ID) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/invitations/%s", url.PathEscape(id.String())), nil, nil)
}
