package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/client"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/errors"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
	service "github.com/aaravmahajanofficial/invitation-storefront/internal/services"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/utils"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// AdminHandler proxies the dashboard's management screens to the remote
// API. Authorization is the remote API's business: the caller's bearer
// token is forwarded unchanged.
type AdminHandler struct {
	adminService service.AdminService
	validator    *validator.Validate
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService, validator: validator.New()}
}

func (h *AdminHandler) ListTemplates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		templates, err := h.adminService.ListTemplates(apiContext(r))
		if err != nil {
			writeError(w, middleware.LoggerFromContext(r.Context()), "Failed to list templates", err)
			return
		}

		response.Success(w, http.StatusOK, templates)
	}
}

// CreateTemplate godoc
//
//	@Summary		Create a template
//	@Description	The description is sanitized; created_by defaults to 1.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			template	body		models.TemplateRequest	true	"Template"
//	@Success		201			{object}	models.Template			"Created"
//	@Failure		400			{object}	response.ErrorResponse	"Validation error"
//	@Router			/admin/templates [post]
func (h *AdminHandler) CreateTemplate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.TemplateRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		template, err := h.adminService.CreateTemplate(apiContext(r), &req)
		if err != nil {
			writeError(w, logger, "Failed to create template", err)
			return
		}

		response.Success(w, http.StatusCreated, template)
	}
}

func (h *AdminHandler) UpdateTemplate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateTemplateRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		template, err := h.adminService.UpdateTemplate(apiContext(r), id, &req)
		if err != nil {
			writeError(w, logger.With(slog.String("templateId", id.String())), "Failed to update template", err)
			return
		}

		response.Success(w, http.StatusOK, template)
	}
}

func (h *AdminHandler) DeleteTemplate() http.HandlerFunc {
	return h.deleteByID("template", h.adminService.DeleteTemplate)
}

func (h *AdminHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categories, err := h.adminService.ListCategories(apiContext(r))
		if err != nil {
			writeError(w, middleware.LoggerFromContext(r.Context()), "Failed to list categories", err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

func (h *AdminHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.CreateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		category, err := h.adminService.CreateCategory(apiContext(r), &req)
		if err != nil {
			writeError(w, middleware.LoggerFromContext(r.Context()), "Failed to create category", err)
			return
		}

		response.Success(w, http.StatusCreated, category)
	}
}

func (h *AdminHandler) ListInvitations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		invitations, err := h.adminService.ListInvitations(apiContext(r))
		if err != nil {
			writeError(w, middleware.LoggerFromContext(r.Context()), "Failed to list invitations", err)
			return
		}

		response.Success(w, http.StatusOK, invitations)
	}
}

func (h *AdminHandler) CreateInvitation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.InvitationRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		invitation, err := h.adminService.CreateInvitation(apiContext(r), &req)
		if err != nil {
			writeError(w, middleware.LoggerFromContext(r.Context()), "Failed to create invitation", err)
			return
		}

		response.Success(w, http.StatusCreated, invitation)
	}
}

func (h *AdminHandler) UpdateInvitation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.InvitationRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		invitation, err := h.adminService.UpdateInvitation(apiContext(r), id, &req)
		if err != nil {
			writeError(w, middleware.LoggerFromContext(r.Context()), "Failed to update invitation", err)
			return
		}

		response.Success(w, http.StatusOK, invitation)
	}
}

func (h *AdminHandler) DeleteInvitation() http.HandlerFunc {
	return h.deleteByID("invitation", h.adminService.DeleteInvitation)
}

func (h *AdminHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		orders, err := h.adminService.ListOrders(apiContext(r))
		if err != nil {
			writeError(w, middleware.LoggerFromContext(r.Context()), "Failed to list orders", err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

func (h *AdminHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.adminService.GetOrder(apiContext(r), id)
		if err != nil {
			writeError(w, middleware.LoggerFromContext(r.Context()), "Failed to get order", err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// UpdateOrder godoc
//
//	@Summary	Update an order's status, notes or amount
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Order ID"
//	@Param		order	body		models.UpdateOrderRequest	true	"Changes"
//	@Success	200		{object}	models.Order				"Updated"
//	@Router		/admin/orders/{id} [put]
func (h *AdminHandler) UpdateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.adminService.UpdateOrder(apiContext(r), id, &req)
		if err != nil {
			writeError(w, middleware.LoggerFromContext(r.Context()), "Failed to update order", err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *AdminHandler) DeleteOrder() http.HandlerFunc {
	return h.deleteByID("order", h.adminService.DeleteOrder)
}

// UploadImage godoc
//
//	@Summary	Upload a template image
//	@Tags		Admin
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		image	formData	file					true	"Image"
//	@Success	201		{object}	models.UploadResponse	"Public URL"
//	@Failure	400		{object}	response.ErrorResponse	"Not an image"
//	@Router		/admin/uploads [post]
func (h *AdminHandler) UploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		r.Body = http.MaxBytesReader(w, r.Body, client.MaxUploadSize+(1<<20))

		file, header, err := r.FormFile("image")
		if err != nil {
			logger.Warn("Missing upload", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("An image file is required").WithDetail(err.Error()))
			return
		}
		defer file.Close()

		uploaded, err := h.adminService.UploadImage(apiContext(r), header.Filename, file)
		if err != nil {
			writeError(w, logger, "Failed to upload image", err)
			return
		}

		logger.Info("Image uploaded", slog.String("url", uploaded.ImageURL))
		response.Success(w, http.StatusCreated, uploaded)
	}
}

func (h *AdminHandler) deleteByID(kind string, del func(ctx context.Context, id models.ID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := del(apiContext(r), id); err != nil {
			writeError(w, logger.With(slog.String("id", id.String())), "Failed to delete "+kind, err)
			return
		}

		logger.Info("Deleted "+kind, slog.String("id", id.String()))
		w.WriteHeader(http.StatusNoContent)
	}
}
