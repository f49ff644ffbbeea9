package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
	service "github.com/aaravmahajanofficial/invitation-storefront/internal/services"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func catalogFixture() []models.Template {
	return []models.Template{
		{ID: "1", Title: "Vows", CategoryName: "Wedding", CategoryID: 1},
		{ID: "2", Title: "Little One", CategoryName: "Baby Shower", CategoryID: 2},
		{ID: "3", Title: "Quarterly", CategoryName: "Corporate", CategoryID: 3},
		{ID: "4", Title: "Party Time", CategoryName: "Birthday", CategoryID: 5},
	}
}

func TestCatalogHandler(t *testing.T) {
	t.Run("Success - Category Page", func(t *testing.T) {
		// Arrange
		api := mocks.NewAPI(t)
		api.On("ListTemplates", mock.Anything).Return(catalogFixture(), nil).Once()
		catalogHandler := handlers.NewCatalogHandler(service.NewCatalogService(api))
		req := testutils.CreateTestRequestWithSession(http.MethodGet, "/api/v1/categories/baby-shower/templates", nil, nil,
			map[string]string{"category": "baby-shower"})
		recorder := httptest.NewRecorder()

		// Act
		catalogHandler.ListCategoryTemplates()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		var templates []models.Template
		decodeResponse(t, recorder, &templates)
		require.Len(t, templates, 1)
		assert.Equal(t, "Little One", templates[0].Title)
	})

	t.Run("Success - E-Invitation Excludes Known Categories", func(t *testing.T) {
		// Arrange
		api := mocks.NewAPI(t)
		api.On("ListTemplates", mock.Anything).Return(catalogFixture(), nil).Once()
		catalogHandler := handlers.NewCatalogHandler(service.NewCatalogService(api))
		req := testutils.CreateTestRequestWithSession(http.MethodGet, "/api/v1/templates?category=e-invitation", nil, nil, nil)
		recorder := httptest.NewRecorder()

		// Act
		catalogHandler.ListTemplates()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		var templates []models.Template
		decodeResponse(t, recorder, &templates)
		require.Len(t, templates, 1)
		assert.Equal(t, "Party Time", templates[0].Title)
	})

	t.Run("Failure - Unknown Category", func(t *testing.T) {
		// Arrange
		catalogHandler := handlers.NewCatalogHandler(service.NewCatalogService(mocks.NewAPI(t)))
		req := testutils.CreateTestRequestWithSession(http.MethodGet, "/api/v1/templates?category=gala", nil, nil, nil)
		recorder := httptest.NewRecorder()

		// Act
		catalogHandler.ListTemplates()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Success - Template Detail Defaults", func(t *testing.T) {
		// Arrange
		api := mocks.NewAPI(t)
		api.On("GetTemplate", mock.Anything, models.ID("1")).
			Return(&models.Template{ID: "1", Title: "Vows & Roses", Price: 120, ImageURL: "https://cdn.example.com/v.png"}, nil).Once()
		catalogHandler := handlers.NewCatalogHandler(service.NewCatalogService(api))
		req := testutils.CreateTestRequestWithSession(http.MethodGet, "/api/v1/templates/1", nil, nil, map[string]string{"id": "1"})
		recorder := httptest.NewRecorder()

		// Act
		catalogHandler.GetTemplate()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		var detail models.TemplateDetail
		decodeResponse(t, recorder, &detail)
		assert.Equal(t, []string{"5x7 inches", "4x6 inches"}, detail.Sizes)
		assert.Equal(t, []string{"https://cdn.example.com/v.png"}, detail.Images)
		assert.Equal(t, models.Amount(120), detail.OriginalPrice)
		assert.Equal(t, "vows-and-roses", detail.Slug)
	})
}
