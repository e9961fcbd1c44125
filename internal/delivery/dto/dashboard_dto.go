package dto

import "campus-clinic-api/internal/domain/entity"

// Response DTOs

// AdminDashboardResponse carries the fixed batch of aggregate stats.
// Sections that failed to load are zero-valued and listed in Errors so
// the rest of the dashboard still renders.
type AdminDashboardResponse struct {
	TotalUsers       int64              `json:"total_users"`
	StudentCount     int64              `json:"student_count"`
	StaffCount       int64              `json:"staff_count"`
	RoleDistribution []entity.RoleCount `json:"role_distribution"`
	ActivityLast7    []entity.DateCount `json:"activity_last_7_days"`
	Errors           map[string]string  `json:"errors,omitempty"`
}

type StudentDashboardResponse struct {
	PendingConsultations int64             `json:"pending_consultations"`
	TotalConsultations   int64             `json:"total_consultations"`
	HealthRecords        int64             `json:"health_records"`
	Errors               map[string]string `json:"errors,omitempty"`
}

type ClinicDashboardResponse struct {
	PendingConsultations  int64             `json:"pending_consultations"`
	ApprovedConsultations int64             `json:"approved_consultations"`
	PendingRecords        int64             `json:"pending_records"`
	Errors                map[string]string `json:"errors,omitempty"`
}
