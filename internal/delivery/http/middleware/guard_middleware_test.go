package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campus-clinic-api/config"
	"campus-clinic-api/internal/domain/entity"
	"campus-clinic-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithSession(t *testing.T, svc *jwt.JWTService, userID uuid.UUID, roleID int) *http.Request {
	t.Helper()
	token, _, err := svc.GenerateAccessToken(userID, "user@example.com", roleID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin-dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	return req
}

func TestGuardRedirectsAnonymousToLogin(t *testing.T) {
	svc := testJWTService()
	guard := NewGuardMiddleware(svc, func(ctx context.Context, userID uuid.UUID) (int, error) {
		t.Fatal("role resolver must not run without a session")
		return 0, nil
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-dashboard", nil)
	guard.Guard(entity.RoleIDAdmin)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, entity.RouteLogin, rec.Header().Get("Location"))
}

func TestGuardRedirectsInvalidTokenToLogin(t *testing.T) {
	svc := testJWTService()
	guard := NewGuardMiddleware(svc, func(ctx context.Context, userID uuid.UUID) (int, error) {
		return entity.RoleIDAdmin, nil
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "not-a-token"})
	guard.Guard(entity.RoleIDAdmin)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, entity.RouteLogin, rec.Header().Get("Location"))
}

func TestGuardRedirectsLookupFailureToError(t *testing.T) {
	svc := testJWTService()
	guard := NewGuardMiddleware(svc, func(ctx context.Context, userID uuid.UUID) (int, error) {
		return 0, errors.New("connection refused")
	})

	rec := httptest.NewRecorder()
	req := requestWithSession(t, svc, uuid.New(), entity.RoleIDAdmin)
	guard.Guard(entity.RoleIDAdmin)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, entity.RouteError, rec.Header().Get("Location"))
}

func TestGuardRedirectsWrongRoleToOwnDashboard(t *testing.T) {
	svc := testJWTService()
	guard := NewGuardMiddleware(svc, func(ctx context.Context, userID uuid.UUID) (int, error) {
		return entity.RoleIDNurse, nil
	})

	rec := httptest.NewRecorder()
	req := requestWithSession(t, svc, uuid.New(), entity.RoleIDNurse)
	guard.Guard(entity.RoleIDAdmin)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/nurse-dashboard", rec.Header().Get("Location"))
}

func TestGuardUsesFreshRoleNotTokenRole(t *testing.T) {
	svc := testJWTService()
	// token still claims Admin, but the database now says Student
	guard := NewGuardMiddleware(svc, func(ctx context.Context, userID uuid.UUID) (int, error) {
		return entity.RoleIDStudent, nil
	})

	rec := httptest.NewRecorder()
	req := requestWithSession(t, svc, uuid.New(), entity.RoleIDAdmin)
	guard.Guard(entity.RoleIDAdmin)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/student-dashboard", rec.Header().Get("Location"))
}

func TestGuardAllowsMatchingRole(t *testing.T) {
	svc := testJWTService()
	userID := uuid.New()
	guard := NewGuardMiddleware(svc, func(ctx context.Context, id uuid.UUID) (int, error) {
		assert.Equal(t, userID, id)
		return entity.RoleIDAdmin, nil
	})

	var ctxUserID uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxUserID, _ = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := requestWithSession(t, svc, userID, entity.RoleIDAdmin)
	guard.Guard(entity.RoleIDAdmin)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, ctxUserID)
}

func TestGuardRejectsRefreshTokenCookie(t *testing.T) {
	svc := testJWTService()
	guard := NewGuardMiddleware(svc, func(ctx context.Context, userID uuid.UUID) (int, error) {
		return entity.RoleIDAdmin, nil
	})

	token, _, err := svc.GenerateRefreshToken(uuid.New(), "user@example.com", entity.RoleIDAdmin)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	guard.Guard(entity.RoleIDAdmin)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, entity.RouteLogin, rec.Header().Get("Location"))
}
