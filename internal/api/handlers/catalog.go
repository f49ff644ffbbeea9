package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/middleware"
	service "github.com/aaravmahajanofficial/invitation-storefront/internal/services"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/utils"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/utils/response"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListTemplates godoc
//
//	@Summary		List templates
//	@Description	Lists every template, or only the templates of one category page.
//	@Tags			Catalog
//	@Produce		json
//	@Param			category	query		string					false	"wedding, corporate, baby-shower or e-invitation"
//	@Success		200			{array}		models.Template			"Templates"
//	@Failure		400			{object}	response.ErrorResponse	"Unknown category"
//	@Failure		502			{object}	response.ErrorResponse	"Storefront API failure"
//	@Router			/templates [get]
func (h *CatalogHandler) ListTemplates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		category := r.URL.Query().Get("category")

		templates, err := h.catalogService.ListTemplates(apiContext(r), category)
		if err != nil {
			writeError(w, logger, "Failed to list templates", err)
			return
		}

		logger.Info("Templates listed", slog.String("category", category), slog.Int("count", len(templates)))
		response.Success(w, http.StatusOK, templates)
	}
}

// ListCategoryTemplates godoc
//
//	@Summary		List a category page
//	@Tags			Catalog
//	@Produce		json
//	@Param			category	path		string					true	"Category"
//	@Success		200			{array}		models.Template			"Templates"
//	@Failure		400			{object}	response.ErrorResponse	"Unknown category"
//	@Router			/categories/{category}/templates [get]
func (h *CatalogHandler) ListCategoryTemplates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		category, err := utils.ParseID(r, "category")
		if err != nil {
			response.Error(w, err)
			return
		}

		templates, err := h.catalogService.ListTemplates(apiContext(r), category.String())
		if err != nil {
			writeError(w, logger, "Failed to list category templates", err)
			return
		}

		response.Success(w, http.StatusOK, templates)
	}
}

// GetTemplate godoc
//
//	@Summary		Get a template
//	@Description	Returns the template with display defaults for sizes, colors, rating and reviews filled in.
//	@Tags			Catalog
//	@Produce		json
//	@Param			id	path		string					true	"Template ID"
//	@Success		200	{object}	models.TemplateDetail	"Template"
//	@Failure		404	{object}	response.ErrorResponse	"Template not found"
//	@Router			/templates/{id} [get]
func (h *CatalogHandler) GetTemplate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		detail, err := h.catalogService.GetTemplate(apiContext(r), id)
		if err != nil {
			writeError(w, logger.With(slog.String("templateId", id.String())), "Failed to get template", err)
			return
		}

		response.Success(w, http.StatusOK, detail)
	}
}
