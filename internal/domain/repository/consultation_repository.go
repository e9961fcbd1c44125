package repository

import (
	"campus-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConsultationRepository interface {
	Create(db *gorm.DB, consultation *entity.Consultation) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Consultation, error)
	FindByStudentID(db *gorm.DB, studentID uuid.UUID) ([]entity.Consultation, error)
	FindPage(db *gorm.DB, status entity.ConsultationStatus, limit, offset int) ([]entity.Consultation, int64, error)
	Update(db *gorm.DB, consultation *entity.Consultation) error
}
