package middleware

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisRateStore is a fixed-window counter shared by every server instance
// pointed at the same Redis.
type RedisRateStore struct {
	rdb    *goredis.Client
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// NewRedisRateStore connects to url (redis://host:port/db) and verifies the
// connection. Each window of one second admits up to cfg.BurstSize requests.
func NewRedisRateStore(ctx context.Context, url string, cfg RateLimitConfig) (*RedisRateStore, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	limit := cfg.BurstSize
	if limit <= 0 {
		limit = int(cfg.RequestsPerSecond)
	}
	return &RedisRateStore{
		rdb:    rdb,
		limit:  limit,
		window: time.Second,
		prefix: "ratelimit:",
		now:    time.Now,
	}, nil
}

func (s *RedisRateStore) Limit() int { return s.limit }

func (s *RedisRateStore) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	now := s.now()
	windowKey, wait := s.windowKey(key, now)

	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, 2*s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("redis rate count: %w", err)
	}

	if incr.Val() > int64(s.limit) {
		return false, wait, nil
	}
	return true, 0, nil
}

// windowKey names the counter for the window containing now and returns the
// time left until that window closes.
func (s *RedisRateStore) windowKey(key string, now time.Time) (string, time.Duration) {
	start := now.Truncate(s.window)
	return fmt.Sprintf("%s%s:%d", s.prefix, key, start.Unix()), start.Add(s.window).Sub(now)
}

// Ping satisfies db.Pinger for the health endpoint.
func (s *RedisRateStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisRateStore) Close() error { return s.rdb.Close() }
