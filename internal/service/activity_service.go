package service

import (
	"campus-clinic-api/internal/domain/entity"
	"campus-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ActivityService appends entries to the activity trail. Entries record
// who did what and when; they are never updated or deleted.
type ActivityService interface {
	Log(tx *gorm.DB, userID *uuid.UUID, roleID int, action string, metadata entity.JSON) error
}

type activityService struct {
	log          *logrus.Logger
	activityRepo repository.ActivityLogRepository
}

func NewActivityService(log *logrus.Logger, activityRepo repository.ActivityLogRepository) ActivityService {
	return &activityService{
		log:          log,
		activityRepo: activityRepo,
	}
}

func (s *activityService) Log(tx *gorm.DB, userID *uuid.UUID, roleID int, action string, metadata entity.JSON) error {
	entry := &entity.ActivityLog{
		UserID:   userID,
		Role:     entity.RoleNameByID(roleID),
		Action:   action,
		Metadata: metadata,
	}

	if err := s.activityRepo.Create(tx, entry); err != nil {
		s.log.Warnf("Failed to create activity log: %+v", err)
		return err
	}

	return nil
}
