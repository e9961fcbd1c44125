package repository

import (
	"campus-clinic-api/internal/domain/entity"

	"gorm.io/gorm"
)

type GuardianRepository interface {
	Create(db *gorm.DB, guardian *entity.Guardian) error
	FindByEmail(db *gorm.DB, email string) (*entity.Guardian, error)
	LinkStudent(db *gorm.DB, link *entity.StudentGuardian) error
}
