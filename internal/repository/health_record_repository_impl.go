package repository

import (
	"errors"

	"campus-clinic-api/internal/domain/entity"
	domainRepo "campus-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type healthRecordRepository struct{}

func NewHealthRecordRepository() domainRepo.HealthRecordRepository {
	return &healthRecordRepository{}
}

func (r *healthRecordRepository) Create(db *gorm.DB, record *entity.HealthRecord) error {
	return db.Create(record).Error
}

func (r *healthRecordRepository) CreateHistories(db *gorm.DB, histories []entity.MedicalHistory) error {
	if len(histories) == 0 {
		return nil
	}
	return db.Create(&histories).Error
}

func (r *healthRecordRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.HealthRecord, error) {
	var record entity.HealthRecord
	err := db.Preload("Student.Guardians").Preload("Histories").Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *healthRecordRepository) FindByStudentID(db *gorm.DB, studentID uuid.UUID) ([]entity.HealthRecord, error) {
	var records []entity.HealthRecord
	err := db.Preload("Histories").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *healthRecordRepository) FindPage(db *gorm.DB, limit, offset int) ([]entity.HealthRecord, int64, error) {
	var records []entity.HealthRecord
	var total int64

	if err := db.Model(&entity.HealthRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Student").
		Limit(limit).
		Offset(offset).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *healthRecordRepository) Update(db *gorm.DB, record *entity.HealthRecord) error {
	return db.Save(record).Error
}
