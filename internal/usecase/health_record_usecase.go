package usecase

import (
	"context"
	"errors"
	"strings"
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
	ErrRecordNotFound    = errors.New("health record not found")
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrUnknownCondition  = errors.New("unknown medical history condition")
	ErrAlreadyReviewed   = errors.New("health record already reviewed")
)

type HealthRecordUsecase interface {
	Submit(ctx context.Context, submitterID uuid.UUID, submitterRoleID int, req *dto.SubmitHealthRecordRequest) (*dto.HealthRecordResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.HealthRecordResponse, error)
	ListPage(ctx context.Context, page pagination.Page) ([]dto.HealthRecordResponse, int64, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]dto.HealthRecordResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID, req *dto.UpdateHealthRecordRequest) (*dto.HealthRecordResponse, error)
	Review(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID) (*dto.HealthRecordResponse, error)
}

type healthRecordUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	recordRepo   repository.HealthRecordRepository
	studentRepo  repository.StudentRepository
	guardianRepo repository.GuardianRepository
	activity     service.ActivityService
}

func NewHealthRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	recordRepo repository.HealthRecordRepository,
	studentRepo repository.StudentRepository,
	guardianRepo repository.GuardianRepository,
	activity service.ActivityService,
) HealthRecordUsecase {
	return &healthRecordUsecase{
		db:           db,
		log:          log,
		recordRepo:   recordRepo,
		studentRepo:  studentRepo,
		guardianRepo: guardianRepo,
		activity:     activity,
	}
}

// Submit runs the whole multi-step form in one transaction: upsert the
// student by roll number, look up or create both guardians by email, then
// insert the record and its history rows. A failure at any step rolls
// back everything, so no half-submitted record is ever visible.
// Students submit their own form; doctors may also file a record on a
// student's behalf.
func (u *healthRecordUsecase) Submit(ctx context.Context, submitterID uuid.UUID, submitterRoleID int, req *dto.SubmitHealthRecordRequest) (*dto.HealthRecordResponse, error) {
	var dateOfBirth *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		dateOfBirth = &parsed
	}

	for _, condition := range req.PastMedicalHistory {
		if !entity.IsKnownCondition(condition) {
			return nil, ErrUnknownCondition
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	student, err := u.upsertStudent(tx, submitterID, submitterRoleID, dateOfBirth, req)
	if err != nil {
		return nil, err
	}

	for _, link := range []struct {
		input        dto.GuardianInput
		relationship entity.GuardianRelationship
	}{
		{req.Father, entity.RelationshipFather},
		{req.Mother, entity.RelationshipMother},
	} {
		if err := u.attachGuardian(tx, student.ID, link.input, link.relationship); err != nil {
			return nil, err
		}
	}

	record := &entity.HealthRecord{
		StudentID:   student.ID,
		Allergies:   req.Allergies,
		Notes:       req.Notes,
		Status:      entity.HealthRecordStatusPending,
		SubmittedBy: &submitterID,
	}
	if err := u.recordRepo.Create(tx, record); err != nil {
		u.log.Warnf("Failed to create health record: %+v", err)
		return nil, err
	}

	// One row per checked condition; unchecked catalogue entries get
	// no row.
	histories := make([]entity.MedicalHistory, 0, len(req.PastMedicalHistory))
	for _, condition := range req.PastMedicalHistory {
		histories = append(histories, entity.MedicalHistory{
			HealthRecordID: record.ID,
			Condition:      condition,
			HadCondition:   true,
		})
	}
	if len(histories) > 0 {
		if err := u.recordRepo.CreateHistories(tx, histories); err != nil {
			u.log.Warnf("Failed to create medical histories: %+v", err)
			return nil, err
		}
	}

	metadata := entity.JSON{"record_id": record.ID.String(), "student_id": student.ID.String()}
	if err := u.activity.Log(tx, &submitterID, submitterRoleID, entity.ActivityActionRecordSubmit, metadata); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	record.Student = *student
	record.Histories = histories
	return converter.HealthRecordToResponse(record), nil
}

func (u *healthRecordUsecase) upsertStudent(tx *gorm.DB, submitterID uuid.UUID, submitterRoleID int, dateOfBirth *time.Time, req *dto.SubmitHealthRecordRequest) (*entity.Student, error) {
	student, err := u.studentRepo.FindByRollNumber(tx, req.RollNumber)
	if err != nil {
		u.log.Warnf("Failed to find student by roll number: %+v", err)
		return nil, err
	}

	// only a student's own submission links the row to their account;
	// a doctor filing on a student's behalf leaves the profile unlinked
	var profileID *uuid.UUID
	if submitterRoleID == entity.RoleIDStudent {
		profileID = &submitterID
	}

	if student == nil {
		student = &entity.Student{
			ProfileID:       profileID,
			FullName:        req.StudentName,
			RollNumber:      req.RollNumber,
			DateOfBirth:     dateOfBirth,
			Sex:             req.Sex,
			HomeAddress:     req.HomeAddress,
			Contact:         req.StudentContact,
			AcademicLevel:   req.AcademicLevel,
			YearLevel:       req.YearLevel,
			AcademicProgram: req.AcademicProgram,
		}
		if err := u.studentRepo.Create(tx, student); err != nil {
			u.log.Warnf("Failed to create student: %+v", err)
			return nil, err
		}
		return student, nil
	}

	student.FullName = req.StudentName
	student.DateOfBirth = dateOfBirth
	student.Sex = req.Sex
	student.HomeAddress = req.HomeAddress
	student.Contact = req.StudentContact
	student.AcademicLevel = req.AcademicLevel
	student.YearLevel = req.YearLevel
	student.AcademicProgram = req.AcademicProgram
	if student.ProfileID == nil && profileID != nil {
		student.ProfileID = profileID
	}
	if err := u.studentRepo.Update(tx, student); err != nil {
		u.log.Warnf("Failed to update student: %+v", err)
		return nil, err
	}
	return student, nil
}

func (u *healthRecordUsecase) attachGuardian(tx *gorm.DB, studentID uuid.UUID, input dto.GuardianInput, relationship entity.GuardianRelationship) error {
	email := strings.ToLower(input.Email)
	guardian, err := u.guardianRepo.FindByEmail(tx, email)
	if err != nil {
		u.log.Warnf("Failed to find guardian by email: %+v", err)
		return err
	}

	if guardian == nil {
		guardian = &entity.Guardian{
			FullName: input.FullName,
			Contact:  input.Contact,
			Email:    email,
		}
		if err := u.guardianRepo.Create(tx, guardian); err != nil {
			u.log.Warnf("Failed to create guardian: %+v", err)
			return err
		}
	}

	link := &entity.StudentGuardian{
		StudentID:    studentID,
		GuardianID:   guardian.ID,
		Relationship: relationship,
	}
	if err := u.guardianRepo.LinkStudent(tx, link); err != nil {
		u.log.Warnf("Failed to link guardian to student: %+v", err)
		return err
	}
	return nil
}

func (u *healthRecordUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.HealthRecordResponse, error) {
	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find health record: %+v", err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}

	return converter.HealthRecordToResponse(record), nil
}

func (u *healthRecordUsecase) ListPage(ctx context.Context, page pagination.Page) ([]dto.HealthRecordResponse, int64, error) {
	records, total, err := u.recordRepo.FindPage(u.db.WithContext(ctx), page.Limit, page.Offset())
	if err != nil {
		u.log.Warnf("Failed to list health records: %+v", err)
		return nil, 0, err
	}

	return converter.HealthRecordsToResponses(records), total, nil
}

// ListByProfile returns the submission history for the student linked to
// the given user account. A user without a student row has no history.
func (u *healthRecordUsecase) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]dto.HealthRecordResponse, error) {
	student, err := u.studentRepo.FindByProfileID(u.db.WithContext(ctx), profileID)
	if err != nil {
		u.log.Warnf("Failed to find student by profile: %+v", err)
		return nil, err
	}
	if student == nil {
		return []dto.HealthRecordResponse{}, nil
	}

	records, err := u.recordRepo.FindByStudentID(u.db.WithContext(ctx), student.ID)
	if err != nil {
		u.log.Warnf("Failed to list health records by student: %+v", err)
		return nil, err
	}

	return converter.HealthRecordsToResponses(records), nil
}

func (u *healthRecordUsecase) Update(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID, req *dto.UpdateHealthRecordRequest) (*dto.HealthRecordResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	record, err := u.recordRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find health record: %+v", err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}

	record.Allergies = req.Allergies
	record.Notes = req.Notes
	if err := u.recordRepo.Update(tx, record); err != nil {
		u.log.Warnf("Failed to update health record: %+v", err)
		return nil, err
	}

	metadata := entity.JSON{"record_id": record.ID.String()}
	if err := u.activity.Log(tx, &actorID, actorRoleID, entity.ActivityActionRecordUpdate, metadata); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.HealthRecordToResponse(record), nil
}

func (u *healthRecordUsecase) Review(ctx context.Context, actorID uuid.UUID, actorRoleID int, id uuid.UUID) (*dto.HealthRecordResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	record, err := u.recordRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find health record: %+v", err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}
	if !record.IsPending() {
		return nil, ErrAlreadyReviewed
	}

	record.Review()
	if err := u.recordRepo.Update(tx, record); err != nil {
		u.log.Warnf("Failed to mark health record reviewed: %+v", err)
		return nil, err
	}

	metadata := entity.JSON{"record_id": record.ID.String()}
	if err := u.activity.Log(tx, &actorID, actorRoleID, entity.ActivityActionRecordReview, metadata); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.HealthRecordToResponse(record), nil
}
