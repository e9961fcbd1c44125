package handler

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-clinic-api/internal/delivery/dto"
	"campus-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fakeAuthUsecase stubs the auth usecase for handler tests.
type fakeAuthUsecase struct {
	events       []dto.IdentityEventRequest
	err          error
	loginResp    *dto.TokenResponse
	loginErr     error
	logoutUserID uuid.UUID
	logoutRoleID int
}

func (f *fakeAuthUsecase) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	return nil, nil
}
func (f *fakeAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	return f.loginResp, f.loginErr
}
func (f *fakeAuthUsecase) Logout(ctx context.Context, userID uuid.UUID, roleID int, accessTokenID, refreshTokenID string) error {
	f.logoutUserID = userID
	f.logoutRoleID = roleID
	return nil
}
func (f *fakeAuthUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return nil, nil
}
func (f *fakeAuthUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	return nil, nil
}
func (f *fakeAuthUsecase) RequestPasswordReset(ctx context.Context, req *dto.ResetPasswordRequest) error {
	return nil
}
func (f *fakeAuthUsecase) ConfirmPasswordReset(ctx context.Context, req *dto.ConfirmResetPasswordRequest) error {
	return nil
}
func (f *fakeAuthUsecase) GoogleAuthURL(state string) string { return "" }
func (f *fakeAuthUsecase) LoginWithGoogle(ctx context.Context, code string) (*dto.TokenResponse, error) {
	return nil, nil
}
func (f *fakeAuthUsecase) HandleIdentityEvent(ctx context.Context, req *dto.IdentityEventRequest) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, *req)
	return nil
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestWebhookAcceptsSignedEvent(t *testing.T) {
	fake := &fakeAuthUsecase{}
	h := NewWebhookHandler(fake, validator.NewValidator(), "hook-secret")

	body := []byte(`{"type":"user.created","data":{"id":"ext-1","email":"new@campus.edu","first_name":"New","last_name":"Student"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/identity", bytes.NewReader(body))
	req.Header.Set("X-Webhook-Signature", sign("hook-secret", body))

	rec := httptest.NewRecorder()
	h.HandleIdentityEvent(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, fake.events, 1)
	assert.Equal(t, "user.created", fake.events[0].Type)
	assert.Equal(t, "new@campus.edu", fake.events[0].Data.Email)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	fake := &fakeAuthUsecase{}
	h := NewWebhookHandler(fake, validator.NewValidator(), "hook-secret")

	body := []byte(`{"type":"user.created","data":{"id":"ext-1","email":"new@campus.edu"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/identity", bytes.NewReader(body))
	req.Header.Set("X-Webhook-Signature", sign("wrong-secret", body))

	rec := httptest.NewRecorder()
	h.HandleIdentityEvent(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, fake.events)
}

func TestWebhookRejectsMalformedPayload(t *testing.T) {
	fake := &fakeAuthUsecase{}
	h := NewWebhookHandler(fake, validator.NewValidator(), "hook-secret")

	body := []byte(`{"type":`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/identity", bytes.NewReader(body))
	req.Header.Set("X-Webhook-Signature", sign("hook-secret", body))

	rec := httptest.NewRecorder()
	h.HandleIdentityEvent(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookRequiresValidEmail(t *testing.T) {
	fake := &fakeAuthUsecase{}
	h := NewWebhookHandler(fake, validator.NewValidator(), "hook-secret")

	body := []byte(`{"type":"user.created","data":{"id":"ext-1","email":"not-an-email"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/identity", bytes.NewReader(body))
	req.Header.Set("X-Webhook-Signature", sign("hook-secret", body))

	rec := httptest.NewRecorder()
	h.HandleIdentityEvent(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, fake.events)
}
