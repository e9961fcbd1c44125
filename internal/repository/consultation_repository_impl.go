package repository

import (
	"errors"

	"campus-clinic-api/internal/domain/entity"
	domainRepo "campus-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type consultationRepository struct{}

func NewConsultationRepository() domainRepo.ConsultationRepository {
	return &consultationRepository{}
}

func (r *consultationRepository) Create(db *gorm.DB, consultation *entity.Consultation) error {
	return db.Create(consultation).Error
}

func (r *consultationRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Consultation, error) {
	var consultation entity.Consultation
	err := db.Preload("Student").Where("id = ?", id).First(&consultation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &consultation, nil
}

func (r *consultationRepository) FindByStudentID(db *gorm.DB, studentID uuid.UUID) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := db.Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) FindPage(db *gorm.DB, status entity.ConsultationStatus, limit, offset int) ([]entity.Consultation, int64, error) {
	var consultations []entity.Consultation
	var total int64

	query := db.Model(&entity.Consultation{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Student").
		Limit(limit).
		Offset(offset).
		Order("created_at DESC").
		Find(&consultations).Error
	if err != nil {
		return nil, 0, err
	}
	return consultations, total, nil
}

func (r *consultationRepository) Update(db *gorm.DB, consultation *entity.Consultation) error {
	return db.Save(consultation).Error
}
