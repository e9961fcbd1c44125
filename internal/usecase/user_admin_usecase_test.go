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

func newUserAdminUsecase(db *gorm.DB) UserAdminUsecase {
	log := logrus.New()
	log.SetOutput(io.Discard)
	activity := service.NewActivityService(log, repository.NewActivityLogRepository())
	return NewUserAdminUsecase(db, log, repository.NewUserRepository(), repository.NewRoleRepository(), activity)
}

func seedUser(t *testing.T, db *gorm.DB, roleID int) *entity.User {
	t.Helper()
	active := true
	user := &entity.User{
		ID:       uuid.New(),
		RoleID:   roleID,
		Email:    uuid.New().String() + "@campus.edu",
		Password: "hashed",
		FullName: "Test User",
		IsActive: &active,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestChangeRolePersistsNewRole(t *testing.T) {
	db := newTestDB(t)
	uc := newUserAdminUsecase(db)

	admin := seedUser(t, db, entity.RoleIDAdmin)
	target := seedUser(t, db, entity.RoleIDStudent)

	resp, err := uc.ChangeRole(context.Background(), admin.ID, target.ID, &dto.UpdateUserRoleRequest{Role: entity.RoleDoctor})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDoctor, resp.Role)

	// the new role must survive a reload, not just the returned DTO
	var reloaded entity.User
	require.NoError(t, db.First(&reloaded, "id = ?", target.ID).Error)
	assert.Equal(t, entity.RoleIDDoctor, reloaded.RoleID)
}

func TestChangeRoleWritesActivityEntry(t *testing.T) {
	db := newTestDB(t)
	uc := newUserAdminUsecase(db)

	admin := seedUser(t, db, entity.RoleIDAdmin)
	target := seedUser(t, db, entity.RoleIDStudent)

	_, err := uc.ChangeRole(context.Background(), admin.ID, target.ID, &dto.UpdateUserRoleRequest{Role: entity.RoleNurse})
	require.NoError(t, err)

	var entries []entity.ActivityLog
	require.NoError(t, db.Where("action = ?", entity.ActivityActionRoleChange).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.RoleStudent, entries[0].Metadata["from"])
	assert.Equal(t, entity.RoleNurse, entries[0].Metadata["to"])
}

func TestChangeRoleRejectsSelf(t *testing.T) {
	db := newTestDB(t)
	uc := newUserAdminUsecase(db)

	admin := seedUser(t, db, entity.RoleIDAdmin)

	_, err := uc.ChangeRole(context.Background(), admin.ID, admin.ID, &dto.UpdateUserRoleRequest{Role: entity.RoleStudent})
	assert.ErrorIs(t, err, ErrCannotDemoteSelf)
}

func TestChangeRoleRejectsUnknownRole(t *testing.T) {
	uc := newUserAdminUsecase(nil)

	_, err := uc.ChangeRole(context.Background(), uuid.New(), uuid.New(), &dto.UpdateUserRoleRequest{Role: "Janitor"})
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestToggleActivePersists(t *testing.T) {
	db := newTestDB(t)
	uc := newUserAdminUsecase(db)

	admin := seedUser(t, db, entity.RoleIDAdmin)
	target := seedUser(t, db, entity.RoleIDStudent)

	inactive := false
	_, err := uc.ToggleActive(context.Background(), admin.ID, target.ID, &dto.ToggleUserActiveRequest{IsActive: &inactive})
	require.NoError(t, err)

	var reloaded entity.User
	require.NoError(t, db.First(&reloaded, "id = ?", target.ID).Error)
	require.NotNil(t, reloaded.IsActive)
	assert.False(t, *reloaded.IsActive)
}
