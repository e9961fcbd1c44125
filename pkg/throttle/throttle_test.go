package throttle

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store with manual clock control.
type memStore struct {
	mu      sync.Mutex
	counts  map[string]int64
	expires map[string]time.Time
	now     time.Time
}

func newMemStore() *memStore {
	return &memStore{
		counts:  make(map[string]int64),
		expires: make(map[string]time.Time),
		now:     time.Now(),
	}
}

func (s *memStore) advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}

func (s *memStore) expireLocked(key string) {
	if exp, ok := s.expires[key]; ok && !s.now.Before(exp) {
		delete(s.counts, key)
		delete(s.expires, key)
	}
}

func (s *memStore) Incr(_ context.Context, key string, expiry time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked(key)
	s.counts[key]++
	s.expires[key] = s.now.Add(expiry)
	return s.counts[key], nil
}

func (s *memStore) Count(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked(key)
	return s.counts[key], nil
}

func (s *memStore) TTL(_ context.Context, key string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked(key)
	exp, ok := s.expires[key]
	if !ok {
		return 0, nil
	}
	return exp.Sub(s.now), nil
}

func (s *memStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counts, key)
	delete(s.expires, key)
	return nil
}

func TestLocksAfterThreeFailures(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	th := NewLoginThrottle(store)

	for i := 0; i < 2; i++ {
		require.NoError(t, th.RecordFailure(ctx, "user@clinic.test"))
		locked, _, err := th.Check(ctx, "user@clinic.test")
		require.NoError(t, err)
		assert.False(t, locked, "attempt %d should not lock", i+1)
	}

	require.NoError(t, th.RecordFailure(ctx, "user@clinic.test"))
	locked, retryAfter, err := th.Check(ctx, "user@clinic.test")
	require.NoError(t, err)
	assert.True(t, locked)
	assert.Equal(t, DefaultCooldown, retryAfter)
}

func TestCounterResetsWhenCooldownExpires(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	th := NewLoginThrottle(store)

	for i := 0; i < 3; i++ {
		require.NoError(t, th.RecordFailure(ctx, "user@clinic.test"))
	}
	locked, _, err := th.Check(ctx, "user@clinic.test")
	require.NoError(t, err)
	require.True(t, locked)

	store.advance(DefaultCooldown + time.Second)

	locked, _, err = th.Check(ctx, "user@clinic.test")
	require.NoError(t, err)
	assert.False(t, locked)

	count, err := store.Count(ctx, "user@clinic.test")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestResetOnSuccess(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	th := NewLoginThrottle(store)

	require.NoError(t, th.RecordFailure(ctx, "user@clinic.test"))
	require.NoError(t, th.RecordFailure(ctx, "user@clinic.test"))
	require.NoError(t, th.Reset(ctx, "user@clinic.test"))

	require.NoError(t, th.RecordFailure(ctx, "user@clinic.test"))
	locked, _, err := th.Check(ctx, "user@clinic.test")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	th := NewLoginThrottle(store)

	for i := 0; i < 3; i++ {
		require.NoError(t, th.RecordFailure(ctx, "a@clinic.test"))
	}

	locked, _, err := th.Check(ctx, "b@clinic.test")
	require.NoError(t, err)
	assert.False(t, locked)
}
