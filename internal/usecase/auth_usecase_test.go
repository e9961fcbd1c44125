package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-clinic-api/config"
	"campus-clinic-api/internal/domain/entity"
	"campus-clinic-api/internal/repository"
	"campus-clinic-api/internal/service"
	"campus-clinic-api/pkg/jwt"
)

// fakeTokenStore fakes the token commands Logout touches. Calls to any
// other command panic through the embedded nil interface.
type fakeTokenStore struct {
	redis.Cmdable
	keys    map[string][]string
	deleted []string
}

func (f *fakeTokenStore) Keys(ctx context.Context, pattern string) *redis.StringSliceCmd {
	cmd := redis.NewStringSliceCmd(ctx, "keys", pattern)
	cmd.SetVal(f.keys[pattern])
	return cmd
}

func (f *fakeTokenStore) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.deleted = append(f.deleted, keys...)
	cmd := redis.NewIntCmd(ctx, "del")
	cmd.SetVal(int64(len(keys)))
	return cmd
}

func TestLogoutRevokesTokensAndWritesActivityEntry(t *testing.T) {
	db := newTestDB(t)
	log := logrus.New()
	log.SetOutput(io.Discard)

	userID := uuid.New()
	store := &fakeTokenStore{keys: map[string][]string{
		"access_token:*:at-1":  {"access_token:" + userID.String() + ":at-1"},
		"refresh_token:*:rt-1": {"refresh_token:" + userID.String() + ":rt-1"},
	}}

	activity := service.NewActivityService(log, repository.NewActivityLogRepository())
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})
	uc := NewAuthUsecase(db, log, repository.NewUserRepository(), activity, jwtService, store, nil, config.OAuthConfig{})

	err := uc.Logout(context.Background(), userID, entity.RoleIDStudent, "at-1", "rt-1")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"access_token:" + userID.String() + ":at-1",
		"refresh_token:" + userID.String() + ":rt-1",
	}, store.deleted)

	var entries []entity.ActivityLog
	require.NoError(t, db.Where("action = ?", entity.ActivityActionUserLogout).Find(&entries).Error)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].UserID)
	assert.Equal(t, userID, *entries[0].UserID)
	assert.Equal(t, entity.RoleStudent, entries[0].Role)
}

func TestLogoutWithNoMatchingKeysStillLogs(t *testing.T) {
	db := newTestDB(t)
	log := logrus.New()
	log.SetOutput(io.Discard)

	store := &fakeTokenStore{keys: map[string][]string{}}
	activity := service.NewActivityService(log, repository.NewActivityLogRepository())
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})
	uc := NewAuthUsecase(db, log, repository.NewUserRepository(), activity, jwtService, store, nil, config.OAuthConfig{})

	userID := uuid.New()
	require.NoError(t, uc.Logout(context.Background(), userID, entity.RoleIDAdmin, "at-gone", "rt-gone"))

	assert.Empty(t, store.deleted)

	var count int64
	require.NoError(t, db.Model(&entity.ActivityLog{}).Where("action = ?", entity.ActivityActionUserLogout).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
