package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"campus-clinic-api/internal/delivery/dto"
	"campus-clinic-api/internal/repository"
	"campus-clinic-api/internal/service"
)

func newConsultationUsecase(db *gorm.DB) ConsultationUsecase {
	log := logrus.New()
	log.SetOutput(io.Discard)
	activity := service.NewActivityService(log, repository.NewActivityLogRepository())
	return NewConsultationUsecase(db, log, repository.NewConsultationRepository(), repository.NewStudentRepository(), activity)
}

func TestDayStartUsesLocalCalendarDay(t *testing.T) {
	// half past midnight in Manila is still the previous day in UTC
	manila := time.FixedZone("UTC+8", 8*3600)
	now := time.Date(2026, time.March, 1, 0, 30, 0, 0, manila)

	got := dayStart(now)

	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), got)
	assert.NotEqual(t, got, now.UTC().Truncate(24*time.Hour))
}

func TestCreateConsultationRejectsPastDate(t *testing.T) {
	uc := newConsultationUsecase(nil)

	req := &dto.CreateConsultationRequest{
		PreferredDate: time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
		Reason:        "Headache",
	}
	_, err := uc.Create(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestCreateConsultationAcceptsToday(t *testing.T) {
	db := newTestDB(t)
	uc := newConsultationUsecase(db)

	// today's local date passes the cutoff; with no student row the
	// request then fails on profile lookup, not on the date
	req := &dto.CreateConsultationRequest{
		PreferredDate: time.Now().Format("2006-01-02"),
		Reason:        "Checkup",
	}
	_, err := uc.Create(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, ErrNoStudentProfile)
}

func TestCreateConsultationRejectsMalformedDate(t *testing.T) {
	uc := newConsultationUsecase(nil)

	req := &dto.CreateConsultationRequest{PreferredDate: "01-03-2026", Reason: "Checkup"}
	_, err := uc.Create(context.Background(), uuid.New(), req)
	require.ErrorIs(t, err, ErrInvalidDateFormat)
}
