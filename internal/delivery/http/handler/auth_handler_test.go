package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campus-clinic-api/config"
	"campus-clinic-api/internal/delivery/dto"
	"campus-clinic-api/internal/delivery/http/middleware"
	"campus-clinic-api/internal/domain/entity"
	"campus-clinic-api/internal/usecase"
	"campus-clinic-api/pkg/jwt"
	"campus-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthHandler(fake *fakeAuthUsecase) *AuthHandler {
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})
	return NewAuthHandler(fake, validator.NewValidator(), jwtService)
}

func TestLoginSetsSessionCookieAndRedirectTarget(t *testing.T) {
	fake := &fakeAuthUsecase{
		loginResp: &dto.TokenResponse{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresIn:    900,
			RedirectTo:   "/student-dashboard",
		},
	}
	h := newAuthHandler(fake)

	body := []byte(`{"email":"student@campus.edu","password":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "access_token", cookies[0].Name)
	assert.Equal(t, "access", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	var resp struct {
		Data dto.TokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/student-dashboard", resp.Data.RedirectTo)
}

func TestLoginMapsThrottleLockTo429(t *testing.T) {
	fake := &fakeAuthUsecase{
		loginErr: &usecase.LockedError{RetryAfter: 17 * time.Second},
	}
	h := newAuthHandler(fake)

	body := []byte(`{"email":"student@campus.edu","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "18", rec.Header().Get("Retry-After"))
}

func TestLoginMapsBadCredentialsTo401(t *testing.T) {
	fake := &fakeAuthUsecase{loginErr: usecase.ErrInvalidCredentials}
	h := newAuthHandler(fake)

	body := []byte(`{"email":"student@campus.edu","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginValidatesRequestBody(t *testing.T) {
	h := newAuthHandler(&fakeAuthUsecase{})

	body := []byte(`{"email":"not-an-email","password":""}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutForwardsSessionClaims(t *testing.T) {
	fake := &fakeAuthUsecase{}
	h := newAuthHandler(fake)

	userID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", bytes.NewReader(nil))
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	ctx = context.WithValue(ctx, middleware.RoleIDKey, entity.RoleIDDoctor)
	ctx = context.WithValue(ctx, middleware.TokenIDKey, "token-1")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, fake.logoutUserID)
	assert.Equal(t, entity.RoleIDDoctor, fake.logoutRoleID)
}

func TestLoginMapsInactiveAccountTo403(t *testing.T) {
	fake := &fakeAuthUsecase{loginErr: usecase.ErrUserInactive}
	h := newAuthHandler(fake)

	body := []byte(`{"email":"student@campus.edu","password":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
