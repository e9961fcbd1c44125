package handler

import (
	"net/http"

	"campus-clinic-api/internal/usecase"
	"campus-clinic-api/pkg/pagination"
	"campus-clinic-api/pkg/response"
)

type ActivityLogHandler struct {
	activityLogUsecase usecase.ActivityLogUsecase
}

func NewActivityLogHandler(activityLogUsecase usecase.ActivityLogUsecase) *ActivityLogHandler {
	return &ActivityLogHandler{
		activityLogUsecase: activityLogUsecase,
	}
}

// List returns a page of the activity trail. The search parameter matches
// the full dataset, not just the current page.
func (h *ActivityLogHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)
	search := r.URL.Query().Get("search")
	role := r.URL.Query().Get("role")

	logs, total, err := h.activityLogUsecase.ListPage(r.Context(), search, role, page)
	if err != nil {
		response.InternalServerError(w, "Failed to list activity logs")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Activity logs retrieved successfully", logs, page.Meta(total))
}
