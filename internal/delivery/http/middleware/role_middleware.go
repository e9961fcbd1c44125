package middleware

import (
	"net/http"

	"campus-clinic-api/internal/domain/entity"
	"campus-clinic-api/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the required roles
// Role is read from context (set by AuthMiddleware from JWT claims)
func RequireRole(allowedRoleIDs ...int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, ok := GetRoleIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, allowedRoleID := range allowedRoleIDs {
				if roleID == allowedRoleID {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin)(next)
}

// RequireStudent is a convenience middleware for student-only endpoints
func RequireStudent(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDStudent)(next)
}

// RequireClinicStaff allows doctors, nurses and secretaries
func RequireClinicStaff(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDDoctor, entity.RoleIDNurse, entity.RoleIDSecretary)(next)
}

// RequireStaffOrAdmin allows clinic staff plus admins
func RequireStaffOrAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin, entity.RoleIDDoctor, entity.RoleIDNurse, entity.RoleIDSecretary)(next)
}
