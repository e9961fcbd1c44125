package handler

import (
	"encoding/json"
	"net/http"

	"campus-clinic-api/internal/delivery/dto"
	"campus-clinic-api/internal/delivery/http/middleware"
	"campus-clinic-api/internal/usecase"
	"campus-clinic-api/pkg/pagination"
	"campus-clinic-api/pkg/response"
	"campus-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	validator           *validator.CustomValidator
}

func NewConsultationHandler(consultationUsecase usecase.ConsultationUsecase, validator *validator.CustomValidator) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		validator:           validator,
	}
}

// Create submits a new consultation request for the calling student.
func (h *ConsultationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	consultation, err := h.consultationUsecase.Create(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD", nil)
		case usecase.ErrDateInPast:
			response.Error(w, http.StatusBadRequest, "Preferred date must not be in the past", nil)
		case usecase.ErrNoStudentProfile:
			response.Error(w, http.StatusBadRequest, "Submit a health record before requesting a consultation", nil)
		default:
			response.InternalServerError(w, "Failed to create consultation")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Consultation requested successfully", consultation)
}

// ListMine returns the calling student's own consultations.
func (h *ConsultationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	consultations, err := h.consultationUsecase.ListByProfile(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list consultations")
		return
	}

	response.Success(w, http.StatusOK, "Consultations retrieved successfully", consultations)
}

// List returns a page of consultations for clinic staff, optionally
// filtered by status.
func (h *ConsultationHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)
	status := r.URL.Query().Get("status")

	consultations, total, err := h.consultationUsecase.ListPage(r.Context(), status, page)
	if err != nil {
		response.InternalServerError(w, "Failed to list consultations")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Consultations retrieved successfully", consultations, page.Meta(total))
}

// UpdateStatus moves a consultation through its lifecycle.
func (h *ConsultationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	var req dto.UpdateConsultationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	consultation, err := h.consultationUsecase.UpdateStatus(r.Context(), actorID, roleID, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrInvalidTransition:
			response.Conflict(w, "Invalid consultation status transition")
		default:
			response.InternalServerError(w, "Failed to update consultation")
		}
		return
	}

	response.Success(w, http.StatusOK, "Consultation updated successfully", consultation)
}
