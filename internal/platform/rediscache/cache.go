package rediscache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phu024/elearning-rag-platform/internal/platform/envutil"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
)

// Cache is an ephemeral key-value cache. Correctness never depends on
// it: every Get miss (including Redis being down) falls through to the
// source of truth.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	Del(ctx context.Context, key string)
}

type redisCache struct {
	log    *logger.Logger
	client *redis.Client
}

func New(log *logger.Logger) (Cache, error) {
	cacheLog := log.With("service", "RedisCache")
	addr := envutil.GetEnv("REDIS_ADDR", "localhost:6379", log)
	password := envutil.GetEnv("REDIS_PASSWORD", "", log)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	cacheLog.Info("Redis connected", "addr", addr)
	return &redisCache{log: cacheLog, client: client}, nil
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Redis GET failed", "key", key, "error", err)
		}
		return "", false
	}
	return val, true
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Warn("Redis SET failed", "key", key, "error", err)
	}
}

func (c *redisCache) Del(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.log.Warn("Redis DEL failed", "key", key, "error", err)
	}
}

// Noop returns a cache that stores nothing; used when Redis is not
// configured.
func Noop() Cache { return noopCache{} }

type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string) (string, bool)           { return "", false }
func (noopCache) Set(ctx context.Context, key, value string, _ time.Duration)  {}
func (noopCache) Del(ctx context.Context, key string)                          {}
