package handlers

import (
	"net/http"
	"strconv"

	service "github.com/aaravmahajanofficial/invitation-storefront/internal/services"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/utils/response"
)

// DashboardHandler exposes the dashboard resources as snapshots. A failed
// load is still a 200: the snapshot carries the error message.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard godoc
//
//	@Summary	Dashboard stats snapshot
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	resource.State[models.DashboardStats]	"Snapshot"
//	@Router		/admin/dashboard [get]
func (h *DashboardHandler) GetDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.dashboardService.DashboardState())
	}
}

// RefreshDashboard godoc
//
//	@Summary	Refetch the dashboard stats
//	@Tags		Admin
//	@Produce	json
//	@Success	200	{object}	resource.State[models.DashboardStats]	"Snapshot"
//	@Router		/admin/dashboard/refresh [post]
func (h *DashboardHandler) RefreshDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.dashboardService.RefreshDashboard(apiContext(r)))
	}
}

// GetCustomers godoc
//
//	@Summary	Customers snapshot
//	@Tags		Admin
//	@Produce	json
//	@Param		refresh	query		bool									false	"Refetch first"
//	@Success	200		{object}	resource.State[[]models.Customer]	"Snapshot"
//	@Router		/admin/customers [get]
func (h *DashboardHandler) GetCustomers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
		response.Success(w, http.StatusOK, h.dashboardService.CustomersState(apiContext(r), refresh))
	}
}
