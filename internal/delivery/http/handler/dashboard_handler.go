package handler

import (
	"net/http"

	"campus-clinic-api/internal/delivery/http/middleware"
	"campus-clinic-api/internal/usecase"
	"campus-clinic-api/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

// Admin serves the admin stat cards and charts. Sections that failed to
// load come back zeroed with the failure listed under errors.
func (h *DashboardHandler) Admin(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardUsecase.AdminDashboard(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", stats)
}

// Student serves the calling student's own counters.
func (h *DashboardHandler) Student(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	stats, err := h.dashboardUsecase.StudentDashboard(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to load dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", stats)
}

// Clinic serves the shared doctor/nurse/secretary work queue counters.
func (h *DashboardHandler) Clinic(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardUsecase.ClinicDashboard(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", stats)
}
