package middleware

import (
	"context"
	"net/http"

	"campus-clinic-api/internal/domain/entity"
	"campus-clinic-api/pkg/jwt"

	"github.com/google/uuid"
)

// RoleResolver returns the current role for a user, read fresh from the
// database. The guard never trusts the role baked into the token, so a
// role change by an admin takes effect on the next navigation.
type RoleResolver func(ctx context.Context, userID uuid.UUID) (int, error)

// GuardMiddleware protects role-prefixed page routes. Every outcome is a
// render or a 303 redirect, never an error page:
//
//	no session            -> /login
//	role lookup failed    -> /error
//	wrong role            -> that role's own dashboard
//	correct role          -> next handler
type GuardMiddleware struct {
	jwtService  *jwt.JWTService
	resolveRole RoleResolver
}

func NewGuardMiddleware(jwtService *jwt.JWTService, resolveRole RoleResolver) *GuardMiddleware {
	return &GuardMiddleware{
		jwtService:  jwtService,
		resolveRole: resolveRole,
	}
}

// Guard wraps a page handler that only the given role may see.
func (m *GuardMiddleware) Guard(requiredRoleID int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := m.sessionClaims(r)
			if !ok {
				http.Redirect(w, r, entity.RouteLogin, http.StatusSeeOther)
				return
			}

			roleID, err := m.resolveRole(r.Context(), claims.UserID)
			if err != nil {
				// fail closed: an unverifiable role never renders
				http.Redirect(w, r, entity.RouteError, http.StatusSeeOther)
				return
			}

			if roleID != requiredRoleID {
				http.Redirect(w, r, entity.DashboardRouteForRole(roleID), http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

func (m *GuardMiddleware) sessionClaims(r *http.Request) (*jwt.Claims, bool) {
	cookie, err := r.Cookie("access_token")
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	claims, err := m.jwtService.ValidateToken(cookie.Value)
	if err != nil {
		return nil, false
	}
	if claims.TokenType != jwt.AccessToken {
		return nil, false
	}
	return claims, true
}
