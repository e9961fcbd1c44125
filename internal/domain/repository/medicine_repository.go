package repository

import (
	"campus-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicineRepository interface {
	Create(db *gorm.DB, medicine *entity.Medicine) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Medicine, error)
	FindPage(db *gorm.DB, limit, offset int) ([]entity.Medicine, int64, error)
	Update(db *gorm.DB, medicine *entity.Medicine) error
	Delete(db *gorm.DB, id uuid.UUID) error
}
