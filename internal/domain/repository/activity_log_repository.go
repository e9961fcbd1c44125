package repository

import (
	"campus-clinic-api/internal/domain/entity"

	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	Create(db *gorm.DB, log *entity.ActivityLog) error
	FindPage(db *gorm.DB, filter entity.LogFilter, limit, offset int) ([]entity.ActivityLog, int64, error)
}
