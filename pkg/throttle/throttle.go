// Package throttle implements the server-side login attempt limiter:
// after a fixed number of consecutive failures the key is locked for a
// cooldown window and further attempts are blocked before any credential
// check runs. The counter expires with the cooldown, so it resets to zero
// once the window elapses.
package throttle

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultThreshold is the number of consecutive failures that trigger a lock.
	DefaultThreshold = 3
	// DefaultCooldown is how long the key stays locked.
	DefaultCooldown = 30 * time.Second
)

// Store persists attempt counters. The production implementation is
// backed by Redis; tests use an in-memory fake.
type Store interface {
	// Incr increments the counter for key and refreshes its expiry.
	Incr(ctx context.Context, key string, expiry time.Duration) (int64, error)
	// Count returns the current counter value, 0 if absent.
	Count(ctx context.Context, key string) (int64, error)
	// TTL returns the remaining lifetime of the counter, 0 if absent.
	TTL(ctx context.Context, key string) (time.Duration, error)
	// Reset removes the counter.
	Reset(ctx context.Context, key string) error
}

// LoginThrottle tracks consecutive failed attempts per key (email).
type LoginThrottle struct {
	store     Store
	threshold int64
	cooldown  time.Duration
}

func NewLoginThrottle(store Store) *LoginThrottle {
	return &LoginThrottle{
		store:     store,
		threshold: DefaultThreshold,
		cooldown:  DefaultCooldown,
	}
}

// Check reports whether the key is locked and, if so, for how much longer.
func (t *LoginThrottle) Check(ctx context.Context, key string) (bool, time.Duration, error) {
	count, err := t.store.Count(ctx, key)
	if err != nil {
		return false, 0, err
	}
	if count < t.threshold {
		return false, 0, nil
	}

	ttl, err := t.store.TTL(ctx, key)
	if err != nil {
		return false, 0, err
	}
	if ttl <= 0 {
		// counter expired between the two reads
		return false, 0, nil
	}
	return true, ttl, nil
}

// RecordFailure bumps the counter and refreshes the cooldown window.
func (t *LoginThrottle) RecordFailure(ctx context.Context, key string) error {
	_, err := t.store.Incr(ctx, key, t.cooldown)
	return err
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, key string) error {
	return t.store.Reset(ctx, key)
}

// redisStore backs the throttle with Redis.
type redisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client, prefix: "login:attempts:"}
}

func (s *redisStore) Incr(ctx context.Context, key string, expiry time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, s.prefix+key).Result()
	if err != nil {
		return 0, err
	}
	if err := s.client.Expire(ctx, s.prefix+key, expiry).Err(); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *redisStore) Count(ctx context.Context, key string) (int64, error) {
	count, err := s.client.Get(ctx, s.prefix+key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *redisStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := s.client.TTL(ctx, s.prefix+key).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

func (s *redisStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
