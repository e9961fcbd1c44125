package usecase

import (
	"context"
	"sync"
	"time"

	"campus-clinic-api/internal/delivery/dto"
	"campus-clinic-api/internal/domain/entity"
	"campus-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type DashboardUsecase interface {
	AdminDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error)
	StudentDashboard(ctx context.Context, profileID uuid.UUID) (*dto.StudentDashboardResponse, error)
	ClinicDashboard(ctx context.Context) (*dto.ClinicDashboardResponse, error)
}

type dashboardUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	dashboardRepo    repository.DashboardRepository
	studentRepo      repository.StudentRepository
	consultationRepo repository.ConsultationRepository
	recordRepo       repository.HealthRecordRepository
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	dashboardRepo repository.DashboardRepository,
	studentRepo repository.StudentRepository,
	consultationRepo repository.ConsultationRepository,
	recordRepo repository.HealthRecordRepository,
) DashboardUsecase {
	return &dashboardUsecase{
		db:               db,
		log:              log,
		dashboardRepo:    dashboardRepo,
		studentRepo:      studentRepo,
		consultationRepo: consultationRepo,
		recordRepo:       recordRepo,
	}
}

// sectionErrors collects per-section failures so one broken aggregate
// does not blank the whole dashboard.
type sectionErrors struct {
	mu     sync.Mutex
	errors map[string]string
}

func (s *sectionErrors) record(section string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.errors == nil {
		s.errors = map[string]string{}
	}
	s.errors[section] = err.Error()
}

func (u *dashboardUsecase) AdminDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	resp := &dto.AdminDashboardResponse{}
	var secErrs sectionErrors

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := u.dashboardRepo.CountUsersExcludingAdmin(u.db.WithContext(gctx))
		if err != nil {
			u.log.Warnf("Failed to count users: %+v", err)
			secErrs.record("total_users", err)
			return nil
		}
		resp.TotalUsers = total
		return nil
	})

	g.Go(func() error {
		count, err := u.dashboardRepo.CountUsersByRole(u.db.WithContext(gctx), entity.RoleIDStudent)
		if err != nil {
			u.log.Warnf("Failed to count students: %+v", err)
			secErrs.record("student_count", err)
			return nil
		}
		resp.StudentCount = count
		return nil
	})

	g.Go(func() error {
		count, err := u.dashboardRepo.CountUsersByRoles(u.db.WithContext(gctx), entity.ClinicStaffRoleIDs)
		if err != nil {
			u.log.Warnf("Failed to count staff: %+v", err)
			secErrs.record("staff_count", err)
			return nil
		}
		resp.StaffCount = count
		return nil
	})

	g.Go(func() error {
		distribution, err := u.dashboardRepo.RoleDistribution(u.db.WithContext(gctx))
		if err != nil {
			u.log.Warnf("Failed to load role distribution: %+v", err)
			secErrs.record("role_distribution", err)
			return nil
		}
		resp.RoleDistribution = distribution
		return nil
	})

	g.Go(func() error {
		since := time.Now().AddDate(0, 0, -7)
		counts, err := u.dashboardRepo.ActivityCountsSince(u.db.WithContext(gctx), since)
		if err != nil {
			u.log.Warnf("Failed to load activity counts: %+v", err)
			secErrs.record("activity_last_7_days", err)
			return nil
		}
		resp.ActivityLast7 = counts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp.Errors = secErrs.errors
	return resp, nil
}

func (u *dashboardUsecase) StudentDashboard(ctx context.Context, profileID uuid.UUID) (*dto.StudentDashboardResponse, error) {
	resp := &dto.StudentDashboardResponse{}

	student, err := u.studentRepo.FindByProfileID(u.db.WithContext(ctx), profileID)
	if err != nil {
		u.log.Warnf("Failed to find student by profile: %+v", err)
		return nil, err
	}
	if student == nil {
		// nothing submitted yet; the dashboard shows zeros
		return resp, nil
	}

	var secErrs sectionErrors
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		consultations, err := u.consultationRepo.FindByStudentID(u.db.WithContext(gctx), student.ID)
		if err != nil {
			u.log.Warnf("Failed to list consultations: %+v", err)
			secErrs.record("consultations", err)
			return nil
		}
		resp.TotalConsultations = int64(len(consultations))
		for _, c := range consultations {
			if c.IsPending() {
				resp.PendingConsultations++
			}
		}
		return nil
	})

	g.Go(func() error {
		records, err := u.recordRepo.FindByStudentID(u.db.WithContext(gctx), student.ID)
		if err != nil {
			u.log.Warnf("Failed to list health records: %+v", err)
			secErrs.record("health_records", err)
			return nil
		}
		resp.HealthRecords = int64(len(records))
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp.Errors = secErrs.errors
	return resp, nil
}

func (u *dashboardUsecase) ClinicDashboard(ctx context.Context) (*dto.ClinicDashboardResponse, error) {
	resp := &dto.ClinicDashboardResponse{}
	var secErrs sectionErrors

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := u.dashboardRepo.CountConsultationsByStatus(u.db.WithContext(gctx), entity.ConsultationStatusPending)
		if err != nil {
			u.log.Warnf("Failed to count pending consultations: %+v", err)
			secErrs.record("pending_consultations", err)
			return nil
		}
		resp.PendingConsultations = count
		return nil
	})

	g.Go(func() error {
		count, err := u.dashboardRepo.CountConsultationsByStatus(u.db.WithContext(gctx), entity.ConsultationStatusApproved)
		if err != nil {
			u.log.Warnf("Failed to count approved consultations: %+v", err)
			secErrs.record("approved_consultations", err)
			return nil
		}
		resp.ApprovedConsultations = count
		return nil
	})

	g.Go(func() error {
		count, err := u.dashboardRepo.CountHealthRecordsByStatus(u.db.WithContext(gctx), entity.HealthRecordStatusPending)
		if err != nil {
			u.log.Warnf("Failed to count pending records: %+v", err)
			secErrs.record("pending_records", err)
			return nil
		}
		resp.PendingRecords = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp.Errors = secErrs.errors
	return resp, nil
}
