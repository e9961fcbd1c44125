package repository

import (
	"time"

	"campus-clinic-api/internal/domain/entity"

	"gorm.io/gorm"
)

// DashboardRepository serves the fixed batch of aggregate queries behind
// the dashboard stat cards and charts.
type DashboardRepository interface {
	CountUsersExcludingAdmin(db *gorm.DB) (int64, error)
	CountUsersByRole(db *gorm.DB, roleID int) (int64, error)
	CountUsersByRoles(db *gorm.DB, roleIDs []int) (int64, error)
	RoleDistribution(db *gorm.DB) ([]entity.RoleCount, error)
	ActivityCountsSince(db *gorm.DB, since time.Time) ([]entity.DateCount, error)
	CountConsultationsByStatus(db *gorm.DB, status entity.ConsultationStatus) (int64, error)
	CountHealthRecordsByStatus(db *gorm.DB, status entity.HealthRecordStatus) (int64, error)
}
