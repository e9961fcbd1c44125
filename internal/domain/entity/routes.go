package entity

// Route constants shared by the login flow and the navigation guard.
const (
	RouteLogin = "/login"
	RouteError = "/error"
)

// dashboardRoutesByRoleID is the total role -> landing page mapping.
// Every enumerated role has an entry; anything else falls back to the
// error route.
var dashboardRoutesByRoleID = map[int]string{
	RoleIDAdmin:     "/admin-dashboard",
	RoleIDStudent:   "/student-dashboard",
	RoleIDDoctor:    "/doctor-dashboard",
	RoleIDNurse:     "/nurse-dashboard",
	RoleIDSecretary: "/secretary-dashboard",
}

// DashboardRouteForRole returns the landing page for a role, or the
// error route for values outside the enumerated set.
func DashboardRouteForRole(roleID int) string {
	if route, ok := dashboardRoutesByRoleID[roleID]; ok {
		return route
	}
	return RouteError
}
