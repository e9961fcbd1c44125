package usecase

import (
	"context"
	"errors"

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
	ErrUnknownRole       = errors.New("unknown role")
	ErrCannotDemoteSelf  = errors.New("cannot change own role")
	ErrCannotDisableSelf = errors.New("cannot deactivate own account")
)

type UserAdminUsecase interface {
	ListUsers(ctx context.Context, page pagination.Page) ([]dto.UserResponse, int64, error)
	ListRoles(ctx context.Context) ([]entity.Role, error)
	ChangeRole(ctx context.Context, actorID, userID uuid.UUID, req *dto.UpdateUserRoleRequest) (*dto.UserResponse, error)
	ToggleActive(ctx context.Context, actorID, userID uuid.UUID, req *dto.ToggleUserActiveRequest) (*dto.UserResponse, error)
}

type userAdminUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	activity service.ActivityService
}

func NewUserAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	activity service.ActivityService,
) UserAdminUsecase {
	return &userAdminUsecase{
		db:       db,
		log:      log,
		userRepo: userRepo,
		roleRepo: roleRepo,
		activity: activity,
	}
}

// ListRoles returns the role catalogue for the manage-users role picker.
func (u *userAdminUsecase) ListRoles(ctx context.Context) ([]entity.Role, error) {
	roles, err := u.roleRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list roles: %+v", err)
		return nil, err
	}
	return roles, nil
}

func (u *userAdminUsecase) ListUsers(ctx context.Context, page pagination.Page) ([]dto.UserResponse, int64, error) {
	users, total, err := u.userRepo.FindPage(u.db.WithContext(ctx), page.Limit, page.Offset())
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, 0, err
	}

	return converter.UsersToResponses(users), total, nil
}

func (u *userAdminUsecase) ChangeRole(ctx context.Context, actorID, userID uuid.UUID, req *dto.UpdateUserRoleRequest) (*dto.UserResponse, error) {
	roleID, ok := entity.RoleIDByName(req.Role)
	if !ok {
		return nil, ErrUnknownRole
	}
	if actorID == userID {
		return nil, ErrCannotDemoteSelf
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	previousRole := entity.RoleNameByID(user.RoleID)
	user.RoleID = roleID
	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update user role: %+v", err)
		return nil, err
	}

	metadata := entity.JSON{
		"target_user_id": userID.String(),
		"from":           previousRole,
		"to":             req.Role,
	}
	if err := u.activity.Log(tx, &actorID, entity.RoleIDAdmin, entity.ActivityActionRoleChange, metadata); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *userAdminUsecase) ToggleActive(ctx context.Context, actorID, userID uuid.UUID, req *dto.ToggleUserActiveRequest) (*dto.UserResponse, error) {
	if actorID == userID {
		return nil, ErrCannotDisableSelf
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.IsActive = req.IsActive
	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to toggle user active flag: %+v", err)
		return nil, err
	}

	metadata := entity.JSON{
		"target_user_id": userID.String(),
		"is_active":      *req.IsActive,
	}
	if err := u.activity.Log(tx, &actorID, entity.RoleIDAdmin, entity.ActivityActionUserToggleActive, metadata); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}
