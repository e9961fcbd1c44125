package repository

import (
	"time"

	"campus-clinic-api/internal/domain/entity"
	domainRepo "campus-clinic-api/internal/domain/repository"

	"gorm.io/gorm"
)

type dashboardRepository struct{}

func NewDashboardRepository() domainRepo.DashboardRepository {
	return &dashboardRepository{}
}

func (r *dashboardRepository) CountUsersExcludingAdmin(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.User{}).Where("role_id <> ?", entity.RoleIDAdmin).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountUsersByRole(db *gorm.DB, roleID int) (int64, error) {
	var count int64
	err := db.Model(&entity.User{}).Where("role_id = ?", roleID).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountUsersByRoles(db *gorm.DB, roleIDs []int) (int64, error) {
	var count int64
	err := db.Model(&entity.User{}).Where("role_id IN ?", roleIDs).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) RoleDistribution(db *gorm.DB) ([]entity.RoleCount, error) {
	var counts []entity.RoleCount
	err := db.Model(&entity.User{}).
		Select("roles.role_name AS role, COUNT(users.id) AS count").
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("users.role_id <> ?", entity.RoleIDAdmin).
		Group("roles.role_name").
		Order("roles.role_name ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *dashboardRepository) ActivityCountsSince(db *gorm.DB, since time.Time) ([]entity.DateCount, error) {
	var counts []entity.DateCount
	err := db.Model(&entity.ActivityLog{}).
		Select("TO_CHAR(created_at::date, 'YYYY-MM-DD') AS date, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("created_at::date").
		Order("date ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *dashboardRepository) CountConsultationsByStatus(db *gorm.DB, status entity.ConsultationStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.Consultation{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountHealthRecordsByStatus(db *gorm.DB, status entity.HealthRecordStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.HealthRecord{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
