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

var (
	ErrConsultationNotFound = errors.New("consultation not found")
	ErrDateInPast           = errors.New("preferred date must not be in the past")
	ErrInvalidTransition    = errors.New("invalid consultation status transition")
	ErrNoStudentProfile     = errors.New("no student profile linked to this account")
)

type ConsultationUsecase interface {
	Create(ctx context.Context, profileID uuid.UUID, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]dto.ConsultationResponse, error)
	ListPage(ctx context.Context, status string, page pagination.Page) ([]dto.ConsultationResponse, int64, error)
	UpdateStatus(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID, req *dto.UpdateConsultationStatusRequest) (*dto.ConsultationResponse, error)
}

type consultationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	consultationRepo repository.ConsultationRepository
	studentRepo      repository.StudentRepository
	activity         service.ActivityService
}

func NewConsultationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	consultationRepo repository.ConsultationRepository,
	studentRepo repository.StudentRepository,
	activity service.ActivityService,
) ConsultationUsecase {
	return &consultationUsecase{
		db:               db,
		log:              log,
		consultationRepo: consultationRepo,
		studentRepo:      studentRepo,
		activity:         activity,
	}
}

func (u *consultationUsecase) Create(ctx context.Context, profileID uuid.UUID, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error) {
	preferredDate, err := time.Parse("2006-01-02", req.PreferredDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if preferredDate.Before(dayStart(time.Now())) {
		return nil, ErrDateInPast
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	student, err := u.studentRepo.FindByProfileID(tx, profileID)
	if err != nil {
		u.log.Warnf("Failed to find student by profile: %+v", err)
		return nil, err
	}
	if student == nil {
		return nil, ErrNoStudentProfile
	}

	consultation := &entity.Consultation{
		StudentID:     student.ID,
		PreferredDate: preferredDate,
		Reason:        req.Reason,
		Notes:         req.Notes,
		Status:        entity.ConsultationStatusPending,
	}
	if err := u.consultationRepo.Create(tx, consultation); err != nil {
		u.log.Warnf("Failed to create consultation: %+v", err)
		return nil, err
	}

	metadata := entity.JSON{"consultation_id": consultation.ID.String()}
	if err := u.activity.Log(tx, &profileID, entity.RoleIDStudent, entity.ActivityActionConsultationCreate, metadata); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	consultation.Student = *student
	return converter.ConsultationToResponse(consultation), nil
}

// dayStart maps t to midnight UTC of its calendar day in t's own
// location. Submitted dates parse to midnight UTC, so a locally valid
// same-day date compares equal regardless of the server timezone.
func dayStart(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (u *consultationUsecase) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]dto.ConsultationResponse, error) {
	student, err := u.studentRepo.FindByProfileID(u.db.WithContext(ctx), profileID)
	if err != nil {
		u.log.Warnf("Failed to find student by profile: %+v", err)
		return nil, err
	}
	if student == nil {
		return []dto.ConsultationResponse{}, nil
	}

	consultations, err := u.consultationRepo.FindByStudentID(u.db.WithContext(ctx), student.ID)
	if err != nil {
		u.log.Warnf("Failed to list consultations by student: %+v", err)
		return nil, err
	}

	return converter.ConsultationsToResponses(consultations), nil
}

func (u *consultationUsecase) ListPage(ctx context.Context, status string, page pagination.Page) ([]dto.ConsultationResponse, int64, error) {
	consultations, total, err := u.consultationRepo.FindPage(u.db.WithContext(ctx), entity.ConsultationStatus(status), page.Limit, page.Offset())
	if err != nil {
		u.log.Warnf("Failed to list consultations: %+v", err)
		return nil, 0, err
	}

	return converter.ConsultationsToResponses(consultations), total, nil
}

func (u *consultationUsecase) UpdateStatus(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID, req *dto.UpdateConsultationStatusRequest) (*dto.ConsultationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	consultation, err := u.consultationRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find consultation: %+v", err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}

	target := entity.ConsultationStatus(req.Status)
	if !consultation.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}
	consultation.Status = target

	if err := u.consultationRepo.Update(tx, consultation); err != nil {
		u.log.Warnf("Failed to update consultation status: %+v", err)
		return nil, err
	}

	action := map[entity.ConsultationStatus]string{
		entity.ConsultationStatusApproved:  entity.ActivityActionConsultationApprove,
		entity.ConsultationStatusRejected:  entity.ActivityActionConsultationReject,
		entity.ConsultationStatusCompleted: entity.ActivityActionConsultationComplete,
	}[target]

	metadata := entity.JSON{"consultation_id": consultation.ID.String(), "status": req.Status}
	if err := u.activity.Log(tx, &actorID, actorRoleID, action, metadata); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ConsultationToResponse(consultation), nil
}
