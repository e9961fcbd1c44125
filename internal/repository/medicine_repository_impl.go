package repository

import (
	"errors"

	"campus-clinic-api/internal/domain/entity"
	domainRepo "campus-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type medicineRepository struct{}

func NewMedicineRepository() domainRepo.MedicineRepository {
	return &medicineRepository{}
}

func (r *medicineRepository) Create(db *gorm.DB, medicine *entity.Medicine) error {
	return db.Create(medicine).Error
}

func (r *medicineRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Medicine, error) {
	var medicine entity.Medicine
	err := db.Where("id = ?", id).First(&medicine).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medicine, nil
}

func (r *medicineRepository) FindPage(db *gorm.DB, limit, offset int) ([]entity.Medicine, int64, error) {
	var medicines []entity.Medicine
	var total int64

	if err := db.Model(&entity.Medicine{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Limit(limit).Offset(offset).Order("created_at DESC").Find(&medicines).Error
	if err != nil {
		return nil, 0, err
	}
	return medicines, total, nil
}

func (r *medicineRepository) Update(db *gorm.DB, medicine *entity.Medicine) error {
	return db.Save(medicine).Error
}

func (r *medicineRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Delete(&entity.Medicine{}, "id = ?", id).Error
}
