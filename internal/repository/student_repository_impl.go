package repository

import (
	"errors"

	"campus-clinic-api/internal/domain/entity"
	domainRepo "campus-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type studentRepository struct{}

func NewStudentRepository() domainRepo.StudentRepository {
	return &studentRepository{}
}

func (r *studentRepository) Create(db *gorm.DB, student *entity.Student) error {
	return db.Create(student).Error
}

func (r *studentRepository) Update(db *gorm.DB, student *entity.Student) error {
	return db.Save(student).Error
}

func (r *studentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Student, error) {
	var student entity.Student
	err := db.Where("id = ?", id).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByRollNumber(db *gorm.DB, rollNumber string) (*entity.Student, error) {
	var student entity.Student
	err := db.Where("roll_number = ?", rollNumber).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByProfileID(db *gorm.DB, profileID uuid.UUID) (*entity.Student, error) {
	var student entity.Student
	err := db.Where("profile_id = ?", profileID).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}
