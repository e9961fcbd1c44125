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

type UserHandler struct {
	userAdminUsecase usecase.UserAdminUsecase
	validator        *validator.CustomValidator
}

func NewUserHandler(userAdminUsecase usecase.UserAdminUsecase, validator *validator.CustomValidator) *UserHandler {
	return &UserHandler{
		userAdminUsecase: userAdminUsecase,
		validator:        validator,
	}
}

// ListUsers returns a page of user accounts for the admin table.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)

	users, total, err := h.userAdminUsecase.ListUsers(r.Context(), page)
	if err != nil {
		response.InternalServerError(w, "Failed to list users")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Users retrieved successfully", users, page.Meta(total))
}

// ListRoles returns the role catalogue for the role picker.
func (h *UserHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.userAdminUsecase.ListRoles(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list roles")
		return
	}

	response.Success(w, http.StatusOK, "Roles retrieved successfully", roles)
}

// ChangeRole updates a user's role.
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	var req dto.UpdateUserRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userAdminUsecase.ChangeRole(r.Context(), actorID, userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrUnknownRole:
			response.Error(w, http.StatusBadRequest, "Unknown role", nil)
		case usecase.ErrCannotDemoteSelf:
			response.Error(w, http.StatusBadRequest, "Cannot change own role", nil)
		default:
			response.InternalServerError(w, "Failed to change role")
		}
		return
	}

	response.Success(w, http.StatusOK, "Role updated successfully", user)
}

// ToggleActive activates or deactivates a user account.
func (h *UserHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	var req dto.ToggleUserActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userAdminUsecase.ToggleActive(r.Context(), actorID, userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrCannotDisableSelf:
			response.Error(w, http.StatusBadRequest, "Cannot deactivate own account", nil)
		default:
			response.InternalServerError(w, "Failed to update account")
		}
		return
	}

	response.Success(w, http.StatusOK, "Account updated successfully", user)
}
