package service

import (
	"context"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/catalog"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/errors"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
)

type CatalogService interface {
	// ListTemplates returns every template, or only the category's page when
	// category is not empty.
	ListTemplates(ctx context.Context, category string) ([]models.Template, error)
	GetTemplate(ctx context.Context, id models.ID) (*models.TemplateDetail, error)
}

type catalogService struct {
	api CatalogAPI
}

func NewCatalogService(api CatalogAPI) CatalogService {
	return &catalogService{api: api}
}

func (s *catalogService) ListTemplates(ctx context.Context, category string) ([]models.Template, error) {

	var page catalog.Category
	if category != "" {
		c, err := catalog.ParseCategory(category)
		if err != nil {
			return nil, errors.BadRequestError("Unknown category").WithDetail(err.Error())
		}
		page = c
	}

	templates, err := s.api.ListTemplates(ctx)
	if err != nil {
		return nil, upstreamError(err, "Failed to fetch templates")
	}

	if page == "" {
		if templates == nil {
			templates = []models.Template{}
		}
		return templates, nil
	}

	return catalog.Filter(page, templates), nil
}

func (s *catalogService) GetTemplate(ctx context.Context, id models.ID) (*models.TemplateDetail, error) {

	template, err := s.api.GetTemplate(ctx, id)
	if err != nil {
		return nil, upstreamError(err, "Template not found")
	}

	detail := catalog.Detail(*template)

	return &detail, nil
}
