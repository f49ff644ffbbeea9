package service

import (
	"context"
	stdErrors "errors"
	"io"
	"log/slog"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/catalog"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/client"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/errors"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

// DefaultCreatedBy is the author id templates are created under.
const DefaultCreatedBy = 1

type AdminService interface {
	ListTemplates(ctx context.Context) ([]models.Template, error)
	CreateTemplate(ctx context.Context, req *models.TemplateRequest) (*models.Template, error)
	UpdateTemplate(ctx context.Context, id models.ID, req *models.UpdateTemplateRequest) (*models.Template, error)
	DeleteTemplate(ctx context.Context, id models.ID) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)

	ListInvitations(ctx context.Context) ([]models.Invitation, error)
	CreateInvitation(ctx context.Context, req *models.InvitationRequest) (*models.Invitation, error)
	UpdateInvitation(ctx context.Context, id models.ID, req *models.InvitationRequest) (*models.Invitation, error)
	DeleteInvitation(ctx context.Context, id models.ID) error

	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id models.ID) (*models.Order, error)
	UpdateOrder(ctx context.Context, id models.ID, req *models.UpdateOrderRequest) (*models.Order, error)
	DeleteOrder(ctx context.Context, id models.ID) error

	UploadImage(ctx context.Context, filename string, r io.Reader) (*models.UploadResponse, error)
}

type adminService struct {
	api    AdminAPI
	policy *bluemonday.Policy
}

func NewAdminService(api AdminAPI) AdminService {
	return &adminService{
		api:    api,
		policy: bluemonday.UGCPolicy(),
	}
}

func (s *adminService) ListTemplates(ctx context.Context) ([]models.Template, error) {

	templates, err := s.api.ListTemplates(ctx)
	if err != nil {
		return nil, upstreamError(err, "Failed to fetch templates")
	}

	return nonNil(templates), nil
}

func (s *adminService) CreateTemplate(ctx context.Context, req *models.TemplateRequest) (*models.Template, error) {

	payload := *req
	payload.Description = s.policy.Sanitize(payload.Description)
	if payload.CreatedBy == 0 {
		payload.CreatedBy = DefaultCreatedBy
	}

	template, err := s.api.CreateTemplate(ctx, &payload)
	if err != nil {
		return nil, upstreamError(err, "Failed to create template")
	}

	middleware.LoggerFromContext(ctx).Info("Template created", slog.String("templateId", template.ID.String()))

	return template, nil
}

// UpdateTemplate applies the changed fields onto the current template and
// sends the whole record back.
func (s *adminService) UpdateTemplate(ctx context.Context, id models.ID, req *models.UpdateTemplateRequest) (*models.Template, error) {

	existing, err := s.api.GetTemplate(ctx, id)
	if err != nil {
		return nil, upstreamError(err, "Template not found")
	}

	payload := models.TemplateRequest{
		Title:       existing.Title,
		CategoryID:  existing.CategoryID,
		Price:       existing.Price.Float64(),
		ImageURL:    existing.ImageURL,
		Description: existing.Description,
		CreatedBy:   existing.CreatedBy,
	}

	if payload.CategoryID == 0 {
		payload.CategoryID = catalog.CategoryIDByName(existing.CategoryName)
	}
	if payload.CreatedBy == 0 {
		payload.CreatedBy = DefaultCreatedBy
	}

	if req.Title != nil {
		payload.Title = *req.Title
	}
	if req.CategoryID != nil {
		payload.CategoryID = *req.CategoryID
	} else if req.CategoryName != nil {
		payload.CategoryID = catalog.CategoryIDByName(*req.CategoryName)
	}
	if req.Price != nil {
		payload.Price = *req.Price
	}
	if req.ImageURL != nil {
		payload.ImageURL = *req.ImageURL
	}
	if req.Description != nil {
		payload.Description = *req.Description
	}

	payload.Description = s.policy.Sanitize(payload.Description)

	template, err := s.api.UpdateTemplate(ctx, id, &payload)
	if err != nil {
		return nil, upstreamError(err, "Failed to update template")
	}

	return template, nil
}

func (s *adminService) DeleteTemplate(ctx context.Context, id models.ID) error {
	if err := s.api.DeleteTemplate(ctx, id); err != nil {
		return upstreamError(err, "Failed to delete template")
	}

	return nil
}

func (s *adminService) ListCategories(ctx context.Context) ([]models.Category, error) {

	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		return nil, upstreamError(err, "Failed to fetch categories")
	}

	return nonNil(categories), nil
}

func (s *adminService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {

	payload := *req
	payload.Description = s.policy.Sanitize(payload.Description)

	category, err := s.api.CreateCategory(ctx, &payload)
	if err != nil {
		return nil, upstreamError(err, "Failed to create category")
	}

	return category, nil
}

func (s *adminService) ListInvitations(ctx context.Context) ([]models.Invitation, error) {

	invitations, err := s.api.ListInvitations(ctx)
	if err != nil {
		return nil, upstreamError(err, "Failed to fetch invitations")
	}

	return nonNil(invitations), nil
}

func (s *adminService) CreateInvitation(ctx context.Context, req *models.InvitationRequest) (*models.Invitation, error) {

	invitation, err := s.api.CreateInvitation(ctx, req)
	if err != nil {
		return nil, upstreamError(err, "Failed to create invitation")
	}

	return invitation, nil
}

func (s *adminService) UpdateInvitation(ctx context.Context, id models.ID, req *models.InvitationRequest) (*models.Invitation, error) {

	invitation, err := s.api.UpdateInvitation(ctx, id, req)
	if err != nil {
		return nil, upstreamError(err, "Failed to update invitation")
	}

	return invitation, nil
}

func (s *adminService) DeleteInvitation(ctx context.Context, id models.ID) error {
	if err := s.api.DeleteInvitation(ctx, id); err != nil {
		return upstreamError(err, "Failed to delete invitation")
	}

	return nil
}

func (s *adminService) ListOrders(ctx context.Context) ([]models.Order, error) {

	orders, err := s.api.ListOrders(ctx)
	if err != nil {
		return nil, upstreamError(err, "Failed to fetch orders")
	}

	return nonNil(orders), nil
}

func (s *adminService) GetOrder(ctx context.Context, id models.ID) (*models.Order, error) {

	order, err := s.api.GetOrder(ctx, id)
	if err != nil {
		return nil, upstreamError(err, "Order not found")
	}

	return order, nil
}

func (s *adminService) UpdateOrder(ctx context.Context, id models.ID, req *models.UpdateOrderRequest) (*models.Order, error) {

	order, err := s.api.UpdateOrder(ctx, id, req)
	if err != nil {
		return nil, upstreamError(err, "Failed to update order")
	}

	return order, nil
}

func (s *adminService) DeleteOrder(ctx context.Context, id models.ID) error {
	if err := s.api.DeleteOrder(ctx, id); err != nil {
		return upstreamError(err, "Failed to delete order")
	}

	return nil
}

func (s *adminService) UploadImage(ctx context.Context, filename string, r io.Reader) (*models.UploadResponse, error) {

	result, err := s.api.UploadImage(ctx, filename, r)
	if err != nil {
		if stdErrors.Is(err, client.ErrNotAnImage) {
			return nil, errors.BadRequestError("Only image files can be uploaded").WithError(err)
		}
		if stdErrors.Is(err, client.ErrUploadTooLarge) {
			return nil, errors.BadRequestError("Image is too large").WithDetail(err.Error()).WithError(err)
		}
		return nil, upstreamError(err, "Failed to upload image")
	}

	return result, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}

	return items
}
