package usecase

import (
	"context"
	"errors"
	"time"

	"campus-clinic-api/internal/converter"
	"campus-clinic-api/internal/delivery/dto"
	"campus-clinic-api/internal/domain/entity"
	"campus-clinic-api/internal/domain/repository"
	"campus-clinic-api/internal/service"
	"campus-clinic-api/pkg/pagination"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrMedicineNotFound = errors.New("medicine not found")

type MedicineUsecase interface {
	Create(ctx context.Context, actorID uuid.UUID, actorRoleID int, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error)
	ListPage(ctx context.Context, page pagination.Page) ([]dto.MedicineResponse, int64, error)
	Update(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID, req *dto.UpdateMedicineRequest) (*dto.MedicineResponse, error)
	Delete(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID) error
}

type medicineUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	medicineRepo repository.MedicineRepository
	activity     service.ActivityService
}

func NewMedicineUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	medicineRepo repository.MedicineRepository,
	activity service.ActivityService,
) MedicineUsecase {
	return &medicineUsecase{
		db:           db,
		log:          log,
		medicineRepo: medicineRepo,
		activity:     activity,
	}
}

func parseExpiryDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	return &parsed, nil
}

func (u *medicineUsecase) Create(ctx context.Context, actorID uuid.UUID, actorRoleID int, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	expiryDate, err := parseExpiryDate(req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	medicine := &entity.Medicine{
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		Stock:       req.Stock,
		ExpiryDate:  expiryDate,
	}
	if err := u.medicineRepo.Create(tx, medicine); err != nil {
		u.log.Warnf("Failed to create medicine: %+v", err)
		return nil, err
	}

	metadata := entity.JSON{"medicine_id": medicine.ID.String(), "name": medicine.Name}
	if err := u.activity.Log(tx, &actorID, actorRoleID, entity.ActivityActionMedicineCreate, metadata); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error) {
	medicine, err := u.medicineRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medicine: %+v", err)
		return nil, err
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}

	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) ListPage(ctx context.Context, page pagination.Page) ([]dto.MedicineResponse, int64, error) {
	medicines, total, err := u.medicineRepo.FindPage(u.db.WithContext(ctx), page.Limit, page.Offset())
	if err != nil {
		u.log.Warnf("Failed to list medicines: %+v", err)
		return nil, 0, err
	}

	return converter.MedicinesToResponses(medicines), total, nil
}

func (u *medicineUsecase) Update(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID, req *dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	expiryDate, err := parseExpiryDate(req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	medicine, err := u.medicineRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find medicine: %+v", err)
		return nil, err
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}

	medicine.Name = req.Name
	medicine.Description = req.Description
	medicine.UnitPrice = req.UnitPrice
	medicine.Stock = req.Stock
	medicine.ExpiryDate = expiryDate
	if err := u.medicineRepo.Update(tx, medicine); err != nil {
		u.log.Warnf("Failed to update medicine: %+v", err)
		return nil, err
	}

	metadata := entity.JSON{"medicine_id": medicine.ID.String(), "name": medicine.Name}
	if err := u.activity.Log(tx, &actorID, actorRoleID, entity.ActivityActionMedicineUpdate, metadata); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) Delete(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	medicine, err := u.medicineRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find medicine: %+v", err)
		return err
	}
	if medicine == nil {
		return ErrMedicineNotFound
	}

	if err := u.medicineRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete medicine: %+v", err)
		return err
	}

	metadata := entity.JSON{"medicine_id": id.String(), "name": medicine.Name}
	if err := u.activity.Log(tx, &actorID, actorRoleID, entity.ActivityActionMedicineDelete, metadata); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
