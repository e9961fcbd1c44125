package http

import (
	"net/http"

	"campus-clinic-api/internal/delivery/http/handler"
	"campus-clinic-api/internal/delivery/http/middleware"
	"campus-clinic-api/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	pageHandler         *handler.PageHandler
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	healthRecordHandler *handler.HealthRecordHandler
	consultationHandler *handler.ConsultationHandler
	activityLogHandler  *handler.ActivityLogHandler
	dashboardHandler    *handler.DashboardHandler
	medicineHandler     *handler.MedicineHandler
	webhookHandler      *handler.WebhookHandler
	authMiddleware      *middleware.AuthMiddleware
	guardMiddleware     *middleware.GuardMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	pageHandler *handler.PageHandler,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	healthRecordHandler *handler.HealthRecordHandler,
	consultationHandler *handler.ConsultationHandler,
	activityLogHandler *handler.ActivityLogHandler,
	dashboardHandler *handler.DashboardHandler,
	medicineHandler *handler.MedicineHandler,
	webhookHandler *handler.WebhookHandler,
	authMiddleware *middleware.AuthMiddleware,
	guardMiddleware *middleware.GuardMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		pageHandler:         pageHandler,
		authHandler:         authHandler,
		userHandler:         userHandler,
		healthRecordHandler: healthRecordHandler,
		consultationHandler: consultationHandler,
		activityLogHandler:  activityLogHandler,
		dashboardHandler:    dashboardHandler,
		medicineHandler:     medicineHandler,
		webhookHandler:      webhookHandler,
		authMiddleware:      authMiddleware,
		guardMiddleware:     guardMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	r.setupAPIRoutes()
	r.setupPageRoutes()

	// Identity-provider webhook (signature-verified, outside /api/v1)
	r.router.HandleFunc("/api/webhooks/identity", r.webhookHandler.HandleIdentityEvent).Methods(http.MethodPost)

	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) setupAPIRoutes() {
	api := r.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", r.authHandler.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)
	auth.HandleFunc("/reset-password", r.authHandler.RequestPasswordReset).Methods(http.MethodPost)
	auth.HandleFunc("/reset-password/confirm", r.authHandler.ConfirmPasswordReset).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/users", r.userHandler.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/roles", r.userHandler.ListRoles).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/role", r.userHandler.ChangeRole).Methods(http.MethodPatch)
	admin.HandleFunc("/users/{id}/active", r.userHandler.ToggleActive).Methods(http.MethodPatch)
	admin.HandleFunc("/activity-logs", r.activityLogHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/dashboard", r.dashboardHandler.Admin).Methods(http.MethodGet)

	// Student routes
	student := api.PathPrefix("/student").Subrouter()
	student.Use(r.authMiddleware.Authenticate)
	student.Use(middleware.RequireStudent)
	student.HandleFunc("/health-records", r.healthRecordHandler.Submit).Methods(http.MethodPost)
	student.HandleFunc("/health-records", r.healthRecordHandler.ListMine).Methods(http.MethodGet)
	student.HandleFunc("/consultations", r.consultationHandler.Create).Methods(http.MethodPost)
	student.HandleFunc("/consultations", r.consultationHandler.ListMine).Methods(http.MethodGet)
	student.HandleFunc("/dashboard", r.dashboardHandler.Student).Methods(http.MethodGet)

	// Clinic staff routes (doctor, nurse, secretary)
	clinic := api.PathPrefix("/clinic").Subrouter()
	clinic.Use(r.authMiddleware.Authenticate)
	clinic.Use(middleware.RequireClinicStaff)
	clinic.HandleFunc("/health-records", r.healthRecordHandler.List).Methods(http.MethodGet)
	// filing a record on a student's behalf is a doctor action
	clinic.Handle("/health-records",
		middleware.RequireRole(entity.RoleIDDoctor)(http.HandlerFunc(r.healthRecordHandler.Submit))).Methods(http.MethodPost)
	clinic.HandleFunc("/health-records/{id}", r.healthRecordHandler.Get).Methods(http.MethodGet)
	clinic.HandleFunc("/health-records/{id}", r.healthRecordHandler.Update).Methods(http.MethodPut)
	clinic.HandleFunc("/health-records/{id}/review", r.healthRecordHandler.Review).Methods(http.MethodPatch)
	clinic.HandleFunc("/consultations", r.consultationHandler.List).Methods(http.MethodGet)
	clinic.HandleFunc("/consultations/{id}/status", r.consultationHandler.UpdateStatus).Methods(http.MethodPatch)
	clinic.HandleFunc("/medicines", r.medicineHandler.Create).Methods(http.MethodPost)
	clinic.HandleFunc("/medicines", r.medicineHandler.List).Methods(http.MethodGet)
	clinic.HandleFunc("/medicines/{id}", r.medicineHandler.Get).Methods(http.MethodGet)
	clinic.HandleFunc("/medicines/{id}", r.medicineHandler.Update).Methods(http.MethodPut)
	clinic.HandleFunc("/medicines/{id}", r.medicineHandler.Delete).Methods(http.MethodDelete)
	clinic.HandleFunc("/dashboard", r.dashboardHandler.Clinic).Methods(http.MethodGet)
}

// setupPageRoutes registers the role-prefixed page routes. Each one sits
// behind the navigation guard, which answers with a 303 redirect instead
// of a JSON error when the session or role does not fit.
func (r *Router) setupPageRoutes() {
	// Public pages
	r.router.HandleFunc(entity.RouteLogin, r.pageHandler.Login).Methods(http.MethodGet)
	r.router.HandleFunc(entity.RouteError, r.pageHandler.Error).Methods(http.MethodGet)

	// Form submissions from the public pages
	r.router.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	r.router.HandleFunc("/signup", r.authHandler.Signup).Methods(http.MethodPost)
	r.router.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)
	r.router.HandleFunc("/reset-password", r.authHandler.RequestPasswordReset).Methods(http.MethodPost)
	r.router.HandleFunc("/reset-password/confirm", r.authHandler.ConfirmPasswordReset).Methods(http.MethodPost)

	logout := r.router.PathPrefix("/logout").Subrouter()
	logout.Use(r.authMiddleware.Authenticate)
	logout.HandleFunc("", r.authHandler.Logout).Methods(http.MethodPost)

	// OAuth flow (session established via redirect, not JSON)
	r.router.HandleFunc("/oauth/google", r.authHandler.GoogleLogin).Methods(http.MethodGet)
	r.router.HandleFunc("/oauth/google/callback", r.authHandler.GoogleCallback).Methods(http.MethodGet)

	admin := r.guardMiddleware.Guard(entity.RoleIDAdmin)
	studentG := r.guardMiddleware.Guard(entity.RoleIDStudent)
	doctor := r.guardMiddleware.Guard(entity.RoleIDDoctor)
	nurse := r.guardMiddleware.Guard(entity.RoleIDNurse)
	secretary := r.guardMiddleware.Guard(entity.RoleIDSecretary)

	// Admin pages
	r.page("/admin-dashboard", admin, r.dashboardHandler.Admin, http.MethodGet)
	r.page("/manage-users", admin, r.userHandler.ListUsers, http.MethodGet)
	r.page("/manage-users/{id}/role", admin, r.userHandler.ChangeRole, http.MethodPatch)
	r.page("/manage-users/{id}/active", admin, r.userHandler.ToggleActive, http.MethodPatch)
	r.page("/activity", admin, r.activityLogHandler.List, http.MethodGet)

	// Student pages
	r.page("/student-dashboard", studentG, r.dashboardHandler.Student, http.MethodGet)
	r.page("/student-record", studentG, r.pageHandler.RecordForm, http.MethodGet)
	r.page("/student-record", studentG, r.healthRecordHandler.Submit, http.MethodPost)
	r.page("/student-history", studentG, r.healthRecordHandler.ListMine, http.MethodGet)
	r.page("/consultation-request", studentG, r.consultationHandler.ListMine, http.MethodGet)
	r.page("/consultation-request", studentG, r.consultationHandler.Create, http.MethodPost)

	// Doctor pages
	r.page("/doctor-dashboard", doctor, r.dashboardHandler.Clinic, http.MethodGet)
	r.page("/medical-records", doctor, r.healthRecordHandler.List, http.MethodGet)
	r.page("/medical-records", doctor, r.healthRecordHandler.Submit, http.MethodPost)
	r.page("/medical-records/{id}", doctor, r.healthRecordHandler.Get, http.MethodGet)
	r.page("/medical-records/{id}", doctor, r.healthRecordHandler.Update, http.MethodPut)
	r.page("/medical-records/{id}/review", doctor, r.healthRecordHandler.Review, http.MethodPatch)

	// Nurse pages
	r.page("/nurse-dashboard", nurse, r.dashboardHandler.Clinic, http.MethodGet)
	r.page("/medicine-inventory", nurse, r.medicineHandler.List, http.MethodGet)
	r.page("/medicine-inventory", nurse, r.medicineHandler.Create, http.MethodPost)
	r.page("/medicine-inventory/{id}", nurse, r.medicineHandler.Update, http.MethodPut)
	r.page("/medicine-inventory/{id}", nurse, r.medicineHandler.Delete, http.MethodDelete)

	// Secretary pages
	r.page("/secretary-dashboard", secretary, r.dashboardHandler.Clinic, http.MethodGet)
	r.page("/consultation-schedules", secretary, r.consultationHandler.List, http.MethodGet)
	r.page("/consultation-schedules/{id}", secretary, r.consultationHandler.UpdateStatus, http.MethodPatch)
}

func (r *Router) page(path string, guard func(http.Handler) http.Handler, h http.HandlerFunc, method string) {
	r.router.Handle(path, guard(h)).Methods(method)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
