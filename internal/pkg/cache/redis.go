// Package cache is a small JSON read-through cache on Redis. Concurrent
// misses for one key share a single load.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

type RedisCache struct {
	rdb    *redis.Client
	sf     singleflight.Group
	prefix string
	ttl    time.Duration
}

// NewRedisClient connects and pings. The caller owns the returned client.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func NewRedisCache(rdb *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) Key(name string) string {
	return c.prefix + name
}

// GetOrLoad returns the cached value for name, or calls load and stores the
// result. Redis failures are logged and fall through to load.
func GetOrLoad[T any](ctx context.Context, c *RedisCache, name string, load func(ctx context.Context) (T, error)) (T, error) {
	key := c.Key(name)

	cached, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		var v T
		if json.Unmarshal([]byte(cached), &v) == nil {
			return v, nil
		}
		slog.WarnContext(ctx, "discarding undecodable cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		slog.WarnContext(ctx, "cache read failed", "key", key, "error", err)
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}

		if payload, err := json.Marshal(loaded); err == nil {
			if err := c.rdb.Set(ctx, key, string(payload), c.ttl).Err(); err != nil {
				slog.WarnContext(ctx, "cache write failed", "key", key, "error", err)
			}
		}
		return loaded, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}

// Delete drops the named entries.
func (c *RedisCache) Delete(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = c.Key(name)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}
