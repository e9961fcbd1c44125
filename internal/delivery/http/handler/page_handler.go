package handler

import (
	"net/http"

	"campus-clinic-api/internal/domain/entity"
	"campus-clinic-api/pkg/response"
)

// PageHandler serves the public page stubs and static form data that do
// not belong to any domain usecase.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Login is the public login page stub the guard redirects to.
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Login page", map[string]string{
		"page": "login",
	})
}

// Error is the fallback page for unverifiable sessions and unknown roles.
func (h *PageHandler) Error(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Something went wrong", map[string]string{
		"page": "error",
	})
}

// RecordForm returns the static data backing the health record form:
// the past-medical-history condition catalogue and the enumerated
// academic levels.
func (h *PageHandler) RecordForm(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Record form data", map[string]interface{}{
		"conditions": entity.MedicalHistoryConditions,
		"academic_levels": []string{
			entity.AcademicLevelJuniorHigh,
			entity.AcademicLevelSeniorHigh,
			entity.AcademicLevelCollege,
			entity.AcademicLevelGraduate,
		},
	})
}
