package repository

import (
	"campus-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HealthRecordRepository interface {
	Create(db *gorm.DB, record *entity.HealthRecord) error
	CreateHistories(db *gorm.DB, histories []entity.MedicalHistory) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.HealthRecord, error)
	FindByStudentID(db *gorm.DB, studentID uuid.UUID) ([]entity.HealthRecord, error)
	FindPage(db *gorm.DB, limit, offset int) ([]entity.HealthRecord, int64, error)
	Update(db *gorm.DB, record *entity.HealthRecord) error
}
