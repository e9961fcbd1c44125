package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-clinic-api/internal/delivery/dto"
	"campus-clinic-api/internal/delivery/http/middleware"
	"campus-clinic-api/internal/usecase"
	"campus-clinic-api/pkg/pagination"
	"campus-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

type fakeConsultationUsecase struct {
	updateErr error
	updated   *dto.UpdateConsultationStatusRequest
}

func (f *fakeConsultationUsecase) Create(ctx context.Context, profileID uuid.UUID, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error) {
	return nil, nil
}
func (f *fakeConsultationUsecase) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]dto.ConsultationResponse, error) {
	return nil, nil
}
func (f *fakeConsultationUsecase) ListPage(ctx context.Context, status string, page pagination.Page) ([]dto.ConsultationResponse, int64, error) {
	return nil, 0, nil
}
func (f *fakeConsultationUsecase) UpdateStatus(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID, req *dto.UpdateConsultationStatusRequest) (*dto.ConsultationResponse, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updated = req
	return &dto.ConsultationResponse{ID: id, Status: req.Status}, nil
}

func patchStatusRequest(t *testing.T, id, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/consultations/"+id+"/status", bytes.NewBufferString(body))
	req = mux.SetURLVars(req, map[string]string{"id": id})
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, uuid.New())
	ctx = context.WithValue(ctx, middleware.RoleIDKey, 5)
	return req.WithContext(ctx)
}

func TestUpdateStatusApprovesConsultation(t *testing.T) {
	fake := &fakeConsultationUsecase{}
	h := NewConsultationHandler(fake, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, patchStatusRequest(t, uuid.New().String(), `{"status":"Approved"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Approved", fake.updated.Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	fake := &fakeConsultationUsecase{}
	h := NewConsultationHandler(fake, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, patchStatusRequest(t, uuid.New().String(), `{"status":"Cancelled"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, fake.updated)
}

func TestUpdateStatusMapsInvalidTransitionToConflict(t *testing.T) {
	fake := &fakeConsultationUsecase{updateErr: usecase.ErrInvalidTransition}
	h := NewConsultationHandler(fake, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, patchStatusRequest(t, uuid.New().String(), `{"status":"Completed"}`))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateStatusMapsMissingConsultationToNotFound(t *testing.T) {
	fake := &fakeConsultationUsecase{updateErr: usecase.ErrConsultationNotFound}
	h := NewConsultationHandler(fake, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, patchStatusRequest(t, uuid.New().String(), `{"status":"Approved"}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateStatusRejectsBadID(t *testing.T) {
	fake := &fakeConsultationUsecase{}
	h := NewConsultationHandler(fake, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, patchStatusRequest(t, "not-a-uuid", `{"status":"Approved"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
