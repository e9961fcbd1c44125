package repository

import (
	"campus-clinic-api/internal/domain/entity"
	domainRepo "campus-clinic-api/internal/domain/repository"

	"gorm.io/gorm"
)

type activityLogRepository struct{}

func NewActivityLogRepository() domainRepo.ActivityLogRepository {
	return &activityLogRepository{}
}

func (r *activityLogRepository) Create(db *gorm.DB, log *entity.ActivityLog) error {
	return db.Create(log).Error
}

// FindPage runs the range query behind the activity viewer. The search
// filter matches the full remote set, not just the requested page.
func (r *activityLogRepository) FindPage(db *gorm.DB, filter entity.LogFilter, limit, offset int) ([]entity.ActivityLog, int64, error) {
	var logs []entity.ActivityLog
	var total int64

	query := db.Model(&entity.ActivityLog{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.
			Joins("LEFT JOIN users ON users.id = activity_logs.user_id").
			Where("activity_logs.action ILIKE ? OR activity_logs.role ILIKE ? OR users.full_name ILIKE ?",
				pattern, pattern, pattern)
	}
	if filter.Role != "" {
		query = query.Where("activity_logs.role = ?", filter.Role)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").
		Limit(limit).
		Offset(offset).
		Order("activity_logs.created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
