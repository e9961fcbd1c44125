package repository

import (
	"campus-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentRepository interface {
	Create(db *gorm.DB, student *entity.Student) error
	Update(db *gorm.DB, student *entity.Student) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Student, error)
	FindByRollNumber(db *gorm.DB, rollNumber string) (*entity.Student, error)
	FindByProfileID(db *gorm.DB, profileID uuid.UUID) (*entity.Student, error)
}
