package usecase

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"campus-clinic-api/internal/delivery/dto"
	"campus-clinic-api/internal/domain/entity"
	"campus-clinic-api/internal/repository"
	"campus-clinic-api/internal/service"
)

func newHealthRecordUsecase(db *gorm.DB) HealthRecordUsecase {
	log := logrus.New()
	log.SetOutput(io.Discard)
	activity := service.NewActivityService(log, repository.NewActivityLogRepository())
	return NewHealthRecordUsecase(db, log,
		repository.NewHealthRecordRepository(),
		repository.NewStudentRepository(),
		repository.NewGuardianRepository(),
		activity)
}

func submitRequest() *dto.SubmitHealthRecordRequest {
	return &dto.SubmitHealthRecordRequest{
		StudentName:    "Maria Santos",
		RollNumber:     "2026-00123",
		DateOfBirth:    "2004-06-15",
		Sex:            entity.SexFemale,
		HomeAddress:    "12 Mabini St, Quezon City",
		StudentContact: "09171234567",
		AcademicLevel:  entity.AcademicLevelCollege,
		YearLevel:      "2nd Year",
		Father: dto.GuardianInput{
			FullName: "Jose Santos",
			Email:    "jose.santos@example.com",
		},
		Mother: dto.GuardianInput{
			FullName: "Ana Santos",
			Email:    "ana.santos@example.com",
		},
		PastMedicalHistory: []string{"Chicken Pox", "Bronchial Asthma"},
	}
}

func TestSubmitByStudentLinksProfile(t *testing.T) {
	db := newTestDB(t)
	uc := newHealthRecordUsecase(db)

	submitterID := uuid.New()
	resp, err := uc.Submit(context.Background(), submitterID, entity.RoleIDStudent, submitRequest())
	require.NoError(t, err)
	assert.Equal(t, string(entity.HealthRecordStatusPending), resp.Status)

	var student entity.Student
	require.NoError(t, db.First(&student, "roll_number = ?", "2026-00123").Error)
	require.NotNil(t, student.ProfileID)
	assert.Equal(t, submitterID, *student.ProfileID)
}

func TestSubmitStoresOneRowPerCheckedCondition(t *testing.T) {
	db := newTestDB(t)
	uc := newHealthRecordUsecase(db)

	_, err := uc.Submit(context.Background(), uuid.New(), entity.RoleIDStudent, submitRequest())
	require.NoError(t, err)

	var histories []entity.MedicalHistory
	require.NoError(t, db.Find(&histories).Error)
	require.Len(t, histories, 2)
	for _, h := range histories {
		assert.True(t, h.HadCondition)
	}
}

func TestSubmitByDoctorLeavesProfileUnlinked(t *testing.T) {
	db := newTestDB(t)
	uc := newHealthRecordUsecase(db)

	doctorID := uuid.New()
	_, err := uc.Submit(context.Background(), doctorID, entity.RoleIDDoctor, submitRequest())
	require.NoError(t, err)

	// the student row exists but is not claimed by the doctor's account
	var student entity.Student
	require.NoError(t, db.First(&student, "roll_number = ?", "2026-00123").Error)
	assert.Nil(t, student.ProfileID)

	var entry entity.ActivityLog
	require.NoError(t, db.First(&entry, "action = ?", entity.ActivityActionRecordSubmit).Error)
	assert.Equal(t, entity.RoleDoctor, entry.Role)
}

func TestSubmitRejectsUnknownCondition(t *testing.T) {
	uc := newHealthRecordUsecase(nil)

	req := submitRequest()
	req.PastMedicalHistory = []string{"Dragon Pox"}
	_, err := uc.Submit(context.Background(), uuid.New(), entity.RoleIDStudent, req)
	assert.ErrorIs(t, err, ErrUnknownCondition)
}
