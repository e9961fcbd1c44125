package usecase

import (
	"context"
	"strings"

	"campus-clinic-api/internal/converter"
	"campus-clinic-api/internal/delivery/dto"
	"campus-clinic-api/internal/domain/entity"
	"campus-clinic-api/internal/domain/repository"
	"campus-clinic-api/pkg/pagination"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ActivityLogUsecase interface {
	ListPage(ctx context.Context, search, role string, page pagination.Page) ([]dto.ActivityLogResponse, int64, error)
}

type activityLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	activityRepo repository.ActivityLogRepository
}

func NewActivityLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	activityRepo repository.ActivityLogRepository,
) ActivityLogUsecase {
	return &activityLogUsecase{
		db:           db,
		log:          log,
		activityRepo: activityRepo,
	}
}

// ListPage filters the whole trail before paginating, so a search matches
// entries on any page, not just the currently loaded one.
func (u *activityLogUsecase) ListPage(ctx context.Context, search, role string, page pagination.Page) ([]dto.ActivityLogResponse, int64, error) {
	filter := entity.LogFilter{
		Search: strings.TrimSpace(search),
		Role:   strings.TrimSpace(role),
	}

	logs, total, err := u.activityRepo.FindPage(u.db.WithContext(ctx), filter, page.Limit, page.Offset())
	if err != nil {
		u.log.Warnf("Failed to list activity logs: %+v", err)
		return nil, 0, err
	}

	return converter.ActivityLogsToResponses(logs), total, nil
}
