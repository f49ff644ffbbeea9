package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/client"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/resource"
	service "github.com/aaravmahajanofficial/invitation-storefront/internal/services"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDashboardHandler(t *testing.T) {
	t.Run("Success - Refresh Recovers From Error", func(t *testing.T) {
		// Arrange
		api := mocks.NewAPI(t)
		api.On("ListTemplates", mock.Anything).Return(nil, &client.APIError{StatusCode: 503, Message: "HTTP error! status: 503"}).Once()
		api.On("ListTemplates", mock.Anything).Return([]models.Template{{ID: "1", Title: "Vows"}}, nil).Once()
		api.On("ListInvitations", mock.Anything).Return([]models.Invitation{}, nil)
		api.On("ListOrders", mock.Anything).Return([]models.Order{}, nil)
		api.On("OrderStats", mock.Anything).Return(&models.OrderStats{}, nil)
		api.On("ListUsers", mock.Anything).Return([]models.User{}, nil).Once()

		dashboardService := service.NewDashboardService(api, "")
		dashboardService.Start(t.Context())
		dashboardHandler := handlers.NewDashboardHandler(dashboardService)

		getRec := httptest.NewRecorder()
		refreshRec := httptest.NewRecorder()

		// Act
		dashboardHandler.GetDashboard()(getRec, testutils.CreateTestRequestWithSession(http.MethodGet, "/api/v1/admin/dashboard", nil, nil, nil))
		dashboardHandler.RefreshDashboard()(refreshRec, testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/admin/dashboard/refresh", nil, nil, nil))

		// Assert
		var failed resource.State[*models.DashboardStats]
		decodeResponse(t, getRec, &failed)
		assert.Equal(t, http.StatusOK, getRec.Code)
		assert.Equal(t, "HTTP error! status: 503", failed.Error)
		assert.False(t, failed.Loading)

		var recovered resource.State[*models.DashboardStats]
		decodeResponse(t, refreshRec, &recovered)
		assert.Empty(t, recovered.Error)
		assert.Equal(t, 1, recovered.Data.TotalTemplates)
	})

	t.Run("Success - Customers Refresh Query", func(t *testing.T) {
		// Arrange
		api := mocks.NewAPI(t)
		api.On("ListUsers", mock.Anything).Return([]models.User{{ID: "1", Name: "Ada"}}, nil).Twice()
		dashboardHandler := handlers.NewDashboardHandler(service.NewDashboardService(api, ""))

		// Act
		first := httptest.NewRecorder()
		dashboardHandler.GetCustomers()(first, testutils.CreateTestRequestWithSession(http.MethodGet, "/api/v1/admin/customers", nil, nil, nil))
		cached := httptest.NewRecorder()
		dashboardHandler.GetCustomers()(cached, testutils.CreateTestRequestWithSession(http.MethodGet, "/api/v1/admin/customers", nil, nil, nil))
		refreshed := httptest.NewRecorder()
		dashboardHandler.GetCustomers()(refreshed, testutils.CreateTestRequestWithSession(http.MethodGet, "/api/v1/admin/customers?refresh=true", nil, nil, nil))

		// Assert
		var state resource.State[[]models.Customer]
		decodeResponse(t, refreshed, &state)
		assert.Len(t, state.Data, 1)
		assert.Equal(t, "Regular", state.Data[0].Segment)
	})

	t.Run("Failure - Anonymous Customers Request", func(t *testing.T) {
		// Arrange
		api := mocks.NewAPI(t)
		dashboardHandler := handlers.NewDashboardHandler(service.NewDashboardService(api, "admin-secret"))
		handler := middleware.RequireAdmin(dashboardHandler.GetCustomers())
		recorder := httptest.NewRecorder()

		// Act
		handler(recorder, testutils.CreateTestRequestWithSession(http.MethodGet, "/api/v1/admin/customers?refresh=true", nil, nil, nil))

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		api.AssertNotCalled(t, "ListUsers", mock.Anything)
	})

	t.Run("Failure - Non-Admin Refresh Leaves Snapshot", func(t *testing.T) {
		// Arrange
		api := mocks.NewAPI(t)
		api.On("ListTemplates", mock.Anything).Return([]models.Template{{ID: "1", Title: "Vows"}}, nil).Once()
		api.On("ListInvitations", mock.Anything).Return([]models.Invitation{}, nil).Once()
		api.On("ListOrders", mock.Anything).Return([]models.Order{}, nil).Once()
		api.On("OrderStats", mock.Anything).Return(&models.OrderStats{}, nil).Once()
		api.On("ListUsers", mock.Anything).Return([]models.User{}, nil).Once()

		dashboardService := service.NewDashboardService(api, "admin-secret")
		dashboardService.Start(t.Context())
		dashboardHandler := handlers.NewDashboardHandler(dashboardService)

		refreshRec := httptest.NewRecorder()
		getRec := httptest.NewRecorder()

		// Act
		middleware.RequireAdmin(dashboardHandler.RefreshDashboard())(refreshRec,
			testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/admin/dashboard/refresh", nil, testutils.VerifiedSession("2", "customer"), nil))
		middleware.RequireAdmin(dashboardHandler.GetDashboard())(getRec,
			testutils.CreateTestRequestWithSession(http.MethodGet, "/api/v1/admin/dashboard", nil, testutils.VerifiedSession("1", "admin"), nil))

		// Assert
		assert.Equal(t, http.StatusForbidden, refreshRec.Code)
		assert.Equal(t, http.StatusOK, getRec.Code)

		var state resource.State[*models.DashboardStats]
		decodeResponse(t, getRec, &state)
		assert.Empty(t, state.Error)
		assert.Equal(t, 1, state.Data.TotalTemplates)
	})
}
