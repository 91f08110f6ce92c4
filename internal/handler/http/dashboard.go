package http

import (
	"net/http"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/officehr-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetAdminStats returns organisation wide counters
	GetAdminStats(w http.ResponseWriter, r *http.Request)
	// GetEmployeeStats returns the caller's own counters
	GetEmployeeStats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetAdminStats handles GET /dashboard/admin
func (h *dashboardHandlerImpl) GetAdminStats(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.GetAdminStats(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployeeStats handles GET /dashboard/employee
func (h *dashboardHandlerImpl) GetEmployeeStats(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.dashboardService.GetEmployeeStats(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
