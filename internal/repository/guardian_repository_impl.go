package repository

import (
	"errors"

	"campus-clinic-api/internal/domain/entity"
	domainRepo "campus-clinic-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type guardianRepository struct{}

func NewGuardianRepository() domainRepo.GuardianRepository {
	return &guardianRepository{}
}

func (r *guardianRepository) Create(db *gorm.DB, guardian *entity.Guardian) error {
	return db.Create(guardian).Error
}

func (r *guardianRepository) FindByEmail(db *gorm.DB, email string) (*entity.Guardian, error) {
	var guardian entity.Guardian
	err := db.Where("email = ?", email).First(&guardian).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &guardian, nil
}

// LinkStudent inserts the join row; re-linking the same pair is a no-op.
func (r *guardianRepository) LinkStudent(db *gorm.DB, link *entity.StudentGuardian) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(link).Error
}
