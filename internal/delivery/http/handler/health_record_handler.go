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

type HealthRecordHandler struct {
	recordUsecase usecase.HealthRecordUsecase
	validator     *validator.CustomValidator
}

func NewHealthRecordHandler(recordUsecase usecase.HealthRecordUsecase, validator *validator.CustomValidator) *HealthRecordHandler {
	return &HealthRecordHandler{
		recordUsecase: recordUsecase,
		validator:     validator,
	}
}

// Submit accepts the whole multi-step health record form in one request,
// from a student or from a doctor filing on a student's behalf.
func (h *HealthRecordHandler) Submit(w http.ResponseWriter, r *http.Request) {
	submitterID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())

	var req dto.SubmitHealthRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.Submit(r.Context(), submitterID, roleID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD", nil)
		case usecase.ErrUnknownCondition:
			response.Error(w, http.StatusBadRequest, "Unknown medical history condition", nil)
		default:
			response.InternalServerError(w, "Failed to submit health record")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Health record submitted successfully", record)
}

// Get returns one record with its student and history rows.
func (h *HealthRecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	record, err := h.recordUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrRecordNotFound:
			response.NotFound(w, "Health record not found")
		default:
			response.InternalServerError(w, "Failed to get health record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Health record retrieved successfully", record)
}

// List returns a page of records for clinic staff.
func (h *HealthRecordHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)

	records, total, err := h.recordUsecase.ListPage(r.Context(), page)
	if err != nil {
		response.InternalServerError(w, "Failed to list health records")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Health records retrieved successfully", records, page.Meta(total))
}

// ListMine returns the calling student's own submission history.
func (h *HealthRecordHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	records, err := h.recordUsecase.ListByProfile(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list health records")
		return
	}

	response.Success(w, http.StatusOK, "Health records retrieved successfully", records)
}

// Update edits the free-text fields of a record.
func (h *HealthRecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	var req dto.UpdateHealthRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.Update(r.Context(), actorID, roleID, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrRecordNotFound:
			response.NotFound(w, "Health record not found")
		default:
			response.InternalServerError(w, "Failed to update health record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Health record updated successfully", record)
}

// Review marks a pending record as reviewed.
func (h *HealthRecordHandler) Review(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	record, err := h.recordUsecase.Review(r.Context(), actorID, roleID, id)
	if err != nil {
		switch err {
		case usecase.ErrRecordNotFound:
			response.NotFound(w, "Health record not found")
		case usecase.ErrAlreadyReviewed:
			response.Conflict(w, "Health record already reviewed")
		default:
			response.InternalServerError(w, "Failed to review health record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Health record reviewed successfully", record)
}
