package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/tablebook/config"
	"github.com/Domenick1991/tablebook/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client      *redis.Client
	sessionsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, sessionsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		sessionsTTL: sessionsTTL,
	}
}

func (c *RedisCache) GetSessions(ctx context.Context) ([]domain.SessionView, error) {
	data, err := c.client.Get(ctx, sessionsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var views []domain.SessionView
	if err := json.Unmarshal(data, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (c *RedisCache) SetSessions(ctx context.Context, views []domain.SessionView) error {
	payload, err := json.Marshal(views)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, sessionsKey(), payload, c.sessionsTTL).Err()
}

func (c *RedisCache) InvalidateSessions(ctx context.Context) error {
	return c.client.Del(ctx, sessionsKey()).Err()
}

// AcquireSessionLock is a best-effort cross-instance guard; the in-process
// keyed lock remains the authoritative serialization point.
func (c *RedisCache) AcquireSessionLock(ctx context.Context, sessionID int64, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, sessionLockKey(sessionID), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseSessionLock(ctx context.Context, sessionID int64) error {
	return c.client.Del(ctx, sessionLockKey(sessionID)).Err()
}

func sessionsKey() string {
	return "cache:sessions"
}

func sessionLockKey(sessionID int64) string {
	return fmt.Sprintf("lock:session:%d", sessionID)
}
